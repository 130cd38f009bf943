// Package services implements the business logic layer between the HTTP
// handlers and the store.
//
// # Architecture Overview
//
//	┌─────────────────────────────────────────────────────────────────┐
//	│                          Handlers                               │
//	└─────────────────────────────────────────────────────────────────┘
//	                              │
//	                              ▼
//	┌─────────────────────────────────────────────────────────────────┐
//	│                   Services (this package)                       │
//	│          CallService           │          Backup                │
//	└─────────────────────────────────────────────────────────────────┘
//	                              │
//	                              ▼
//	┌─────────────────────────────────────────────────────────────────┐
//	│                            Store                                │
//	└─────────────────────────────────────────────────────────────────┘
//
// # CallService
//
// Thin CRUD wrapper over the call store. List translates handler-level
// parameters (filters, pagination) into store ListOptions and pairs the page
// with a total count taken with the same filters but no pagination.
//
// # Backup
//
// Optional snapshot rotation for the backing workbook. When a folder is
// configured, a ticker goroutine writes a timestamped copy of the collection
// (calls-20060102T150405.xlsx) at the configured interval and prunes the
// folder down to the configured keep count. Status (idle/running/error, last
// run, last snapshot) is mutex-guarded and served over the API. Snapshots are
// taken under the store's read lock, so they always capture a fully committed
// collection.
package services
