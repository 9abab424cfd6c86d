package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ResetDatabase wipes every table. The route only exists when the test
// endpoints are enabled in config; it must never be mounted in production.
func (h *Handler) ResetDatabase(c *gin.Context) {
	if err := h.store.ResetDatabase(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Échec de la réinitialisation"})
		return
	}

	h.flushCache()
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
