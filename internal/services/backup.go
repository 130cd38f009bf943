package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/ivrlabs/callstore/internal/models"
	"github.com/ivrlabs/callstore/internal/store"
)

const snapshotPrefix = "calls-"

// Backup periodically snapshots the backing workbook into a rotation folder
// and prunes old snapshots. It is disabled when no folder is configured.
type Backup struct {
	store    *store.Store
	folder   string
	interval time.Duration
	keep     int

	mu     sync.Mutex
	status models.BackupStatus
	cancel context.CancelFunc
	done   chan struct{}
}

func NewBackupService(st *store.Store, folder string, interval time.Duration, keep int) *Backup {
	state := models.BackupStateIdle
	if folder == "" {
		state = models.BackupStateDisabled
	}
	return &Backup{
		store:    st,
		folder:   folder,
		interval: interval,
		keep:     keep,
		status:   models.BackupStatus{State: state},
	}
}

// Start launches the snapshot loop. It is a no-op when the service is
// disabled.
func (b *Backup) Start(ctx context.Context) {
	if b.folder == "" {
		return
	}

	ctx, cancel := context.WithCancel(ctx)
	b.cancel = cancel
	b.done = make(chan struct{})

	go func() {
		defer close(b.done)
		ticker := time.NewTicker(b.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := b.RunOnce(ctx); err != nil {
					zap.S().Named("backup").Errorw("snapshot failed", "error", err)
				}
			}
		}
	}()
}

// Stop cancels the snapshot loop and waits for it to exit.
func (b *Backup) Stop() {
	if b.cancel == nil {
		return
	}
	b.cancel()
	<-b.done
}

// RunOnce takes one snapshot and prunes the rotation folder.
func (b *Backup) RunOnce(ctx context.Context) error {
	if b.folder == "" {
		return fmt.Errorf("backup is disabled")
	}

	b.setState(models.BackupStateRunning, "", nil)

	if err := os.MkdirAll(b.folder, 0o755); err != nil {
		b.setState(models.BackupStateError, "", err)
		return err
	}

	name := snapshotPrefix + time.Now().UTC().Format("20060102T150405") + ".xlsx"
	path := filepath.Join(b.folder, name)
	if err := b.store.Calls().Snapshot(ctx, path); err != nil {
		b.setState(models.BackupStateError, "", err)
		return err
	}

	if err := b.prune(); err != nil {
		b.setState(models.BackupStateError, path, err)
		return err
	}

	b.setState(models.BackupStateIdle, path, nil)
	return nil
}

func (b *Backup) Status() models.BackupStatus {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.status
}

func (b *Backup) setState(state models.BackupState, snapshot string, err error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.status.State = state
	b.status.Error = err
	if snapshot != "" {
		b.status.LastSnapshot = snapshot
		b.status.LastRun = time.Now()
	}
}

// prune removes the oldest snapshots beyond the configured keep count. The
// timestamped names sort chronologically.
func (b *Backup) prune() error {
	if b.keep <= 0 {
		return nil
	}

	entries, err := os.ReadDir(b.folder)
	if err != nil {
		return err
	}

	var snapshots []string
	for _, e := range entries {
		name := e.Name()
		if !e.IsDir() && strings.HasPrefix(name, snapshotPrefix) && strings.HasSuffix(name, ".xlsx") {
			snapshots = append(snapshots, name)
		}
	}
	if len(snapshots) <= b.keep {
		return nil
	}

	sort.Strings(snapshots)
	for _, name := range snapshots[:len(snapshots)-b.keep] {
		if err := os.Remove(filepath.Join(b.folder, name)); err != nil {
			return err
		}
	}
	return nil
}
