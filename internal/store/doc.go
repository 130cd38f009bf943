// Package store implements the data access layer for the call-record service.
//
// The backing storage is a single local .xlsx workbook: one sheet, a header
// row naming the columns, one row per call record. There is no database
// engine underneath, so the store itself supplies the atomicity and
// consistency guarantees a database would normally provide.
//
// # Architecture Overview
//
//	┌─────────────────────────────────────────────────────────────────┐
//	│                         Store (facade)                          │
//	├─────────────────────────────────────────────────────────────────┤
//	│                          CallStore                              │
//	│   in-memory collection (file order) + call-id index             │
//	│                             ▼                                   │
//	│                          workbook                               │
//	│   excelize codec, write-new-then-rename persistence             │
//	│                             ▼                                   │
//	│                         calls.xlsx                              │
//	└─────────────────────────────────────────────────────────────────┘
//
// # Persistence
//
// Every mutation rewrites the whole collection:
//
//	 1. take the exclusive lock
//	 2. apply the mutation to a copy of the in-memory collection
//	 3. validate the result (unique ids, field constraints)
//	 4. encode the copy to a fresh workbook and write it to a temp file
//	    in the same directory, then fsync and rename it over the backing
//	    file
//	 5. swap the copy in as the current collection and release the lock
//
// The rename in step 4 is the defense against partial-write corruption: the
// previous file stays untouched until the replacement is fully on disk, so a
// failed write leaves the last committed state authoritative and the
// operation reports a StorageError.
//
// Opening a store with no backing file creates an empty, correctly structured
// workbook rather than failing. A file with an unexpected header is rejected.
//
// # Concurrency
//
// One sync.RWMutex per CallStore serializes all mutators (Create, Replace,
// Patch, Delete) across their full read-modify-write-persist sequence. The
// workbook format has no row-level locking, so uncoordinated writers would
// silently lose updates. Readers (List, Get, Count, Snapshot) share the read
// lock and only ever observe a fully committed collection.
//
// # List Options
//
// CallStore.List and Count use the functional options pattern:
//
//	records, err := store.Calls().List(ctx,
//	    store.ByStatuses("Completed"),
//	    store.ByMinConfidence(0.8),
//	    store.WithLimit(50),
//	    store.WithOffset(0),
//	)
//
// Filtering: ByStatuses, ByResponseTypes, ByActionRequired, ByMinConfidence.
// Pagination: WithLimit, WithOffset (Count ignores pagination).
// With no options, List returns the whole collection in file order.
package store
