// Package tracking implements the query workflow behind the rastreo UI.
//
// # Overview
//
// Controller issues tracking lookups and history fetches through a
// backend.Fetcher, formats results for display, and owns the query history.
// It knows nothing about rendering: the UI subscribes to a Sink and reacts to
// the events it receives.
//
// # Operations
//
//   - TrackPackage: look up a typed number, show it on the primary surface,
//     prepend a history entry, clear the input field
//   - ViewHistoryDetail: look up a history entry, show it on the detail surface
//   - LoadHistory: replace the history with the backend's, reversed so the
//     newest entry is first
//   - ClearHistory: empty the history and both surfaces
//
// Every operation returns immediately. Failures are reported once as an
// ErrorEvent carrying a *Error (EmptyInput, NetworkFailure or ParseFailure)
// and the loading indicator is turned off. Nothing is retried.
//
// # Event Loop
//
//	caller ──> queue ──> Run loop ──> Sink
//	              ^          │
//	              │          └─> go Fetch...() ──┐
//	              └──────── continuation ────────┘
//
// Run drains a FIFO queue on a single goroutine. Requests run on their own
// goroutines and post their results back to the queue, so history mutations
// and Sink calls never race even when lookups overlap. Overlapping lookups
// are neither cancelled nor de-duplicated; the history reflects the order in
// which they complete.
package tracking
