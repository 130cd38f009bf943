// Package handlers implements the HTTP API layer for the call-record service.
//
// Handlers delegate business logic to the services layer and focus on request
// validation, response formatting, and HTTP semantics.
//
// # Architecture Overview
//
//	┌─────────────────────────────────────────────────────────────────┐
//	│                     HTTP Request (Gin)                          │
//	└─────────────────────────────────────────────────────────────────┘
//	                              │
//	                              ▼
//	┌─────────────────────────────────────────────────────────────────┐
//	│                      Handler (this package)                     │
//	│  - Request body / query binding                                 │
//	│  - Error mapping to HTTP status codes                           │
//	│  - Model-to-API conversion                                      │
//	└─────────────────────────────────────────────────────────────────┘
//	                              │
//	                              ▼
//	┌─────────────────────────────────────────────────────────────────┐
//	│                      Services Layer                             │
//	│                 CallService │ Backup                            │
//	└─────────────────────────────────────────────────────────────────┘
//
// # API Endpoints
//
// Call endpoints (calls.go):
//
//	┌────────┬─────────────┬────────────────────────────────────────────┐
//	│ Method │ Endpoint    │ Description                                │
//	├────────┼─────────────┼────────────────────────────────────────────┤
//	│ GET    │ /calls      │ List records (filters, optional paging)    │
//	│ GET    │ /calls/{id} │ Get one record                             │
//	│ POST   │ /calls      │ Create a record (unique call id)           │
//	│ PUT    │ /calls/{id} │ Replace a record (upsert)                  │
//	│ PATCH  │ /calls/{id} │ Update selected fields                     │
//	│ DELETE │ /calls/{id} │ Delete a record                            │
//	└────────┴─────────────┴────────────────────────────────────────────┘
//
// Backup endpoints (backup.go):
//
//	┌────────┬─────────────┬────────────────────────────────────────────┐
//	│ Method │ Endpoint    │ Description                                │
//	├────────┼─────────────┼────────────────────────────────────────────┤
//	│ GET    │ /backup     │ Get snapshot-rotation status               │
//	│ POST   │ /backup     │ Take a snapshot now (409 when disabled)    │
//	└────────┴─────────────┴────────────────────────────────────────────┘
//
// Health endpoint (health.go): GET /health returns liveness and the record
// count.
//
// # Error Mapping
//
//	┌──────────────────────────┬────────────────────────────────────────┐
//	│ Service error            │ HTTP response                          │
//	├──────────────────────────┼────────────────────────────────────────┤
//	│ ResourceNotFoundError    │ 404 with error message                 │
//	│ ResourceConflictError    │ 400 with error message                 │
//	│ ValidationError          │ 400 with field-level violations        │
//	│ StorageError / other     │ 500, details logged, generic body      │
//	│ malformed body / bad id  │ 400 (rejected before the service call) │
//	└──────────────────────────┴────────────────────────────────────────┘
package handlers
