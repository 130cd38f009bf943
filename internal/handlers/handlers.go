package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	v1 "github.com/ivrlabs/callstore/api/v1"
	"github.com/ivrlabs/callstore/internal/services"
	srvErrors "github.com/ivrlabs/callstore/pkg/errors"
)

type Handler struct {
	callSrv   *services.CallService
	backupSrv *services.Backup
}

func New(callSrv *services.CallService, backupSrv *services.Backup) *Handler {
	return &Handler{
		callSrv:   callSrv,
		backupSrv: backupSrv,
	}
}

// writeError maps a service error to its HTTP response: not-found -> 404,
// conflict and validation -> 400, everything else -> 500.
func writeError(c *gin.Context, err error) {
	var verr *srvErrors.ValidationError
	switch {
	case srvErrors.IsResourceNotFoundError(err):
		c.JSON(http.StatusNotFound, v1.Error{Error: err.Error()})
	case srvErrors.IsResourceConflictError(err):
		c.JSON(http.StatusBadRequest, v1.Error{Error: err.Error()})
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, v1.NewValidationError(verr))
	default:
		zap.S().Named("call_handler").Errorw("request failed", "error", err)
		c.JSON(http.StatusInternalServerError, v1.Error{Error: "internal server error"})
	}
}
