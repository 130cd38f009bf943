package models

import "time"

type BackupState string

const (
	BackupStateDisabled BackupState = "disabled"
	BackupStateIdle     BackupState = "idle"
	BackupStateRunning  BackupState = "running"
	BackupStateError    BackupState = "error"
)

// BackupStatus holds the current snapshot-rotation state.
type BackupStatus struct {
	State        BackupState
	LastRun      time.Time
	LastSnapshot string
	Error        error
}
