package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	v1 "github.com/ivrlabs/callstore/api/v1"
	"github.com/ivrlabs/callstore/internal/services"
)

// GetHealth reports liveness and the current record count
// (GET /health)
func (h *Handler) GetHealth(c *gin.Context) {
	result, err := h.callSrv.List(c.Request.Context(), services.CallListParams{})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, v1.Health{
		Status:  "ok",
		Records: result.Total,
	})
}
