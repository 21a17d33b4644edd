// Package app provides the orchestration layer for the rastreo application.
//
// # Overview
//
// This package wires together configuration, logging, the backend client,
// the tracking controller and the UI. It is the composition root where all
// dependencies are initialized and connected.
//
// # Data Flow
//
//	┌──────────────┐
//	│   Run()      │ Initialize everything
//	└──────┬───────┘
//	       │
//	       ├─────> loadConfig()          File, env, then flag overrides
//	       ├─────> logging.New()         File logger (the TUI owns stdout)
//	       ├─────> backend.NewClient()   HTTP client
//	       ├─────> startController()     Controller loop goroutine
//	       └─────> ui.Run()              Start TUI (blocks)
//
//	Event pump:
//	┌─────────────────────────────────────────┐
//	│ Controller loop                         │
//	│  └─> channelSink() ──> events channel   │
//	│      └─> UI waitForEvent()              │
//	└─────────────────────────────────────────┘
//
// When the UI exits the context is cancelled, which stops the controller
// and aborts in-flight requests. When the controller stops first, the
// events channel is closed and the UI quits.
//
// # Error Handling
//
// Fatal errors (returned from Run):
//   - Configuration file invalid or failing validation
//   - Log file cannot be opened
//   - Backend URL cannot be parsed
//
// Lookup and history failures are not fatal. The controller turns them into
// error events that the UI shows as an alert.
package app
