package store

import (
	srvErrors "github.com/ivrlabs/callstore/pkg/errors"
)

// Store provides access to all storage repositories.
type Store struct {
	wb    *workbook
	calls *CallStore
}

// Open loads the backing workbook at path, creating an empty one with the
// correct header row if it does not exist yet, and returns the store facade.
func Open(path string) (*Store, error) {
	wb := newWorkbook(path)

	records, err := wb.load()
	if err != nil {
		return nil, srvErrors.NewStorageError("open", err)
	}

	return &Store{
		wb:    wb,
		calls: newCallStore(wb, records),
	}, nil
}

func (s *Store) Calls() *CallStore {
	return s.calls
}

// Path returns the location of the backing workbook.
func (s *Store) Path() string {
	return s.wb.path
}

func (s *Store) Close() error {
	// Every mutation is flushed before it reports success, so there is
	// nothing left to write here.
	return nil
}
