package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	v1 "github.com/ivrlabs/callstore/api/v1"
	"github.com/ivrlabs/callstore/internal/models"
)

// GetBackupStatus returns the snapshot-rotation status
// (GET /backup)
func (h *Handler) GetBackupStatus(c *gin.Context) {
	c.JSON(http.StatusOK, v1.NewBackupStatus(h.backupSrv.Status()))
}

// TriggerBackup takes a snapshot immediately
// (POST /backup)
func (h *Handler) TriggerBackup(c *gin.Context) {
	if h.backupSrv.Status().State == models.BackupStateDisabled {
		c.JSON(http.StatusConflict, v1.Error{Error: "backup is disabled"})
		return
	}
	if err := h.backupSrv.RunOnce(c.Request.Context()); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, v1.NewBackupStatus(h.backupSrv.Status()))
}
