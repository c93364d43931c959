package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"parking-status-backend/internal/occupancy"
)

// GetSpaces handles the spaces report. The request carries no parameters.
//
// A database that cannot be reached is reported in the body only, with status
// 200, as existing clients look for the "error" key. Any other failure
// answers 500 with the same body shape.
func (h *Handler) GetSpaces(c *gin.Context) {
	report, err := h.reporter.Report(c.Request.Context())
	if err != nil {
		_ = c.Error(err)

		var connErr *occupancy.ConnectionError
		if errors.As(err, &connErr) {
			log.Printf("spaces report: %v", err)
			c.JSON(http.StatusOK, gin.H{"error": err.Error()})
			return
		}

		log.Printf("spaces report failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, report)
}
