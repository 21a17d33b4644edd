// Package mockapi serves an in-memory tracking backend with Echo.
//
// It exposes the two endpoints the client consumes plus a health check:
//
//	GET /api/track/:id   {"data":[{"status","location","last_update"}]}  newest first
//	GET /api/history     {"history":[{"timestamp","tracking_number"}]}   oldest first
//	GET /api/health      {"status":"ok"}
//
// Every accepted track request is recorded in the history, including
// lookups of unknown numbers, which return an empty data array.
package mockapi
