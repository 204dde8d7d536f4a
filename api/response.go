package api

import (
	"errors"
	"net/http"

	"bingohall/domain/entities"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

func respondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, gin.H{"status": "success", "data": data})
}

func respondCreated(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, gin.H{"status": "success", "data": data})
}

func respondBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{"status": "error", "error": message})
}

// respondError maps domain errors onto HTTP statuses. Anything outside the
// domain taxonomy is a storage or programming fault and surfaces as a
// generic 500 so driver details never leak to clients.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	message := "internal server error"

	switch {
	case errors.Is(err, entities.ErrInvalidRequest),
		errors.Is(err, entities.ErrInsufficientFunds),
		errors.Is(err, entities.ErrNumberNotOnCard):
		status = http.StatusBadRequest
		message = err.Error()
	case errors.Is(err, entities.ErrNotFound):
		status = http.StatusNotFound
		message = err.Error()
	case errors.Is(err, entities.ErrGameNotActive),
		errors.Is(err, entities.ErrDrawExhausted),
		errors.Is(err, entities.ErrAlreadySettled),
		errors.Is(err, entities.ErrAlreadyRegistered):
		status = http.StatusConflict
		message = err.Error()
	}

	if status == http.StatusInternalServerError {
		log.WithError(err).WithFields(log.Fields{
			"method": c.Request.Method,
			"path":   c.FullPath(),
		}).Error("Request failed")
	}

	c.JSON(status, gin.H{"status": "error", "error": message})
}
