// Package server provides the HTTP server for the call-record service.
//
// The server uses the Gin web framework and supports two modes of operation:
// development (gin debug) and production (gin release).
//
// # Middleware Stack
//
// Two middleware apply to all routes:
//
// Logger (middlewares.Logger):
//   - Logs request start: method, path, query, IP, user-agent
//   - Logs request end: all above + status code, latency
//   - Tags both lines with a per-request uuid, echoed in X-Request-Id
//   - Uses zap structured logging with the "http" logger name
//
// Recovery (ginzap.RecoveryWithZap):
//   - Recovers from panics in handlers
//   - Logs panic details with stack trace
//   - Returns 500 Internal Server Error
//
// # Server Lifecycle
//
// Creation:
//
//	srv := server.NewServer(cfg, func(router *gin.RouterGroup) {
//	    v1.RegisterHandlers(router, handler)
//	})
//
// The callback receives a RouterGroup prefixed with /api/v1. Unknown /api
// routes answer a JSON 404.
//
// Start blocks until error or shutdown; Stop performs a graceful shutdown
// waiting for in-flight requests to complete.
package server
