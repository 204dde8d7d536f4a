package events

import (
	"context"
	"sync"
)

// TransactionalPublisher buffers events published during a unit of work.
// Flush emits the buffered events on the main bus after a successful commit;
// Discard drops them on rollback so observers never see uncommitted state.
type TransactionalPublisher struct {
	mu      sync.Mutex
	bus     *Bus
	pending []Event
}

// NewTransactionalPublisher creates a publisher bound to the given bus
func NewTransactionalPublisher(bus *Bus) *TransactionalPublisher {
	return &TransactionalPublisher{bus: bus}
}

// Publish buffers an event until the surrounding transaction resolves
func (p *TransactionalPublisher) Publish(event Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.pending = append(p.pending, event)
	return nil
}

// Flush emits all buffered events and clears the buffer
func (p *TransactionalPublisher) Flush(ctx context.Context) {
	p.mu.Lock()
	pending := p.pending
	p.pending = nil
	p.mu.Unlock()

	for _, event := range pending {
		p.bus.Emit(ctx, event)
	}
}

// Discard drops all buffered events
func (p *TransactionalPublisher) Discard() {
	p.mu.Lock()
	p.pending = nil
	p.mu.Unlock()
}
