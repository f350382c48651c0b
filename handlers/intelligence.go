package handlers

import (
	"net/http"

	"innroutes/models"
	"innroutes/services/intelligence"

	"github.com/gin-gonic/gin"
)

// IntelligenceHandler exposes the destination resolver.
type IntelligenceHandler struct {
	Resolver intelligence.Resolver
}

// ResolveDestinationHandler handles POST /api/intelligence/resolve.
// Resolution never fails: a degraded backend answers with the offline
// bundle, so the only error surface here is request validation.
func (h *IntelligenceHandler) ResolveDestinationHandler(c *gin.Context) {
	var req models.ResolveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	bundle := h.Resolver.Resolve(c.Request.Context(), req)
	c.JSON(http.StatusOK, bundle)
}
