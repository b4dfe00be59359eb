package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/gymrat/internal/server/http/dto"
)

// HealthHandler serves liveness of the store connection.
type HealthHandler struct {
	facade HealthFacade
}

func NewHealthHandler(facade HealthFacade) *HealthHandler {
	return &HealthHandler{facade: facade}
}

// Check handles GET /healthz.
func (h *HealthHandler) Check(c *gin.Context) {
	if err := h.facade.HealthCheck(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, dto.HealthResponse{Status: "unavailable", Detail: err.Error()})
		return
	}
	c.JSON(http.StatusOK, dto.HealthResponse{Status: "ok"})
}
