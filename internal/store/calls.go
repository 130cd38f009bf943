package store

import (
	"context"
	"sync"

	"github.com/ivrlabs/callstore/internal/models"
	"github.com/ivrlabs/callstore/internal/validation"
	srvErrors "github.com/ivrlabs/callstore/pkg/errors"
)

// CallStore owns the call-record collection. The in-memory slice mirrors the
// backing workbook in file order; the index maps call id to slice position.
//
// Every mutator holds the write lock for its whole read-modify-write-persist
// sequence, mutates a copy, and only swaps the copy in after the workbook
// write succeeded. Readers hold the read lock and therefore only ever see
// fully committed state.
type CallStore struct {
	mu      sync.RWMutex
	wb      *workbook
	records []models.CallRecord
	index   map[int]int
}

func newCallStore(wb *workbook, records []models.CallRecord) *CallStore {
	return &CallStore{
		wb:      wb,
		records: records,
		index:   buildIndex(records),
	}
}

func buildIndex(records []models.CallRecord) map[int]int {
	idx := make(map[int]int, len(records))
	for i, rec := range records {
		idx[rec.CallID] = i
	}
	return idx
}

// List returns a snapshot of the collection in file order, narrowed and
// paginated by the given options.
func (s *CallStore) List(ctx context.Context, opts ...ListOption) ([]models.CallRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	q := newListQuery(opts)

	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := make([]models.CallRecord, 0, len(s.records))
	for _, rec := range s.records {
		if q.matches(rec) {
			matched = append(matched, rec)
		}
	}
	return q.paginate(matched), nil
}

// Count returns the number of records matching the filter options. Pagination
// options are ignored.
func (s *CallStore) Count(ctx context.Context, opts ...ListOption) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	q := newListQuery(opts)

	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for _, rec := range s.records {
		if q.matches(rec) {
			count++
		}
	}
	return count, nil
}

// Get returns the record with the given call id.
func (s *CallStore) Get(ctx context.Context, id int) (*models.CallRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	pos, ok := s.index[id]
	if !ok {
		return nil, srvErrors.NewCallNotFoundError(id)
	}
	rec := s.records[pos]
	return &rec, nil
}

// Create validates rec, rejects duplicate call ids, appends the record and
// persists the collection.
func (s *CallStore) Create(ctx context.Context, rec models.CallRecord) (*models.CallRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := validation.ValidateRecord(rec); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.index[rec.CallID]; ok {
		return nil, srvErrors.NewDuplicateCallError(rec.CallID)
	}

	next := make([]models.CallRecord, len(s.records), len(s.records)+1)
	copy(next, s.records)
	next = append(next, rec)

	if err := s.commit(next); err != nil {
		return nil, err
	}
	return &rec, nil
}

// Replace is an upsert: an existing record is fully overwritten in place, an
// absent id is created with the supplied record. The body's call id must
// match id.
func (s *CallStore) Replace(ctx context.Context, id int, rec models.CallRecord) (*models.CallRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if rec.CallID != id {
		return nil, srvErrors.NewValidationError(srvErrors.FieldViolation{
			Field: models.ColumnCallID,
			Rule:  srvErrors.RuleMismatch,
		})
	}
	if err := validation.ValidateRecord(rec); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := make([]models.CallRecord, len(s.records), len(s.records)+1)
	copy(next, s.records)

	if pos, ok := s.index[id]; ok {
		next[pos] = rec
	} else {
		next = append(next, rec)
	}

	if err := s.commit(next); err != nil {
		return nil, err
	}
	return &rec, nil
}

// Patch merges the supplied fields onto the existing record, validates the
// merged result and persists it. The row keeps its position in the file.
func (s *CallStore) Patch(ctx context.Context, id int, patch models.CallPatch) (*models.CallRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := validation.ValidatePatch(patch); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	pos, ok := s.index[id]
	if !ok {
		return nil, srvErrors.NewCallNotFoundError(id)
	}

	merged := patch.Apply(s.records[pos])
	if err := validation.ValidateRecord(merged); err != nil {
		return nil, err
	}

	next := make([]models.CallRecord, len(s.records))
	copy(next, s.records)
	next[pos] = merged

	if err := s.commit(next); err != nil {
		return nil, err
	}
	return &merged, nil
}

// Delete removes the record with the given call id. Deleting an id twice
// fails with not-found on the second call.
func (s *CallStore) Delete(ctx context.Context, id int) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	pos, ok := s.index[id]
	if !ok {
		return srvErrors.NewCallNotFoundError(id)
	}

	next := make([]models.CallRecord, 0, len(s.records)-1)
	next = append(next, s.records[:pos]...)
	next = append(next, s.records[pos+1:]...)

	return s.commit(next)
}

// Snapshot writes a consistent copy of the collection to path using the same
// workbook layout as the backing file.
func (s *CallStore) Snapshot(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := s.wb.writeTo(path, s.records); err != nil {
		return srvErrors.NewStorageError("snapshot", err)
	}
	return nil
}

// commit persists next and, only on success, makes it the current collection.
// Callers must hold the write lock.
func (s *CallStore) commit(next []models.CallRecord) error {
	if err := s.wb.write(next); err != nil {
		return srvErrors.NewStorageError("write", err)
	}
	s.records = next
	s.index = buildIndex(next)
	return nil
}
