package services

import (
	"math/rand"

	"bingohall/domain/interfaces"
)

// systemNumberSource delegates to the process-global math/rand source,
// which is safe for concurrent use.
type systemNumberSource struct{}

func (systemNumberSource) Intn(n int) int   { return rand.Intn(n) }
func (systemNumberSource) Perm(n int) []int { return rand.Perm(n) }

// SystemNumberSource returns the default production number source
func SystemNumberSource() interfaces.NumberSource {
	return systemNumberSource{}
}
