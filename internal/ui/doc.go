// Package ui provides the terminal front end for rastreo.
//
// # Architecture Overview
//
// The UI is a Bubble Tea program. It owns no query state of its own: every
// operator action is forwarded to a tracking controller, and the controller
// answers with events on a channel. The model folds those events into what
// it renders.
//
//	operator key ──▶ Update ──▶ tea.Cmd ──▶ Controller
//	                   ▲                        │
//	                   └──── eventMsg ◀── events channel
//
// waitForEvent reads exactly one event per command and is re-armed after
// each one, so the channel drains in order.
//
// # Layout
//
//   - Header: title, loading spinner and API URL
//   - Left column: tracking number input over the lookup result
//   - Right column: query history over the detail of a history entry
//   - Footer: short key help
//
// Errors are shown as a modal alert that must be dismissed before any
// other key is handled.
//
// # Key Bindings
//
//   - Enter: Track the typed number, or show details for the selected entry
//   - Tab: Switch focus between the input and the history list
//   - Ctrl+R: Reload history from the server
//   - Ctrl+L: Clear history
//   - j/k, g/G: Move through the history list
//   - PgUp/PgDn: Scroll the detail pane
//   - T: Cycle theme
//   - ?: Help
//   - q or Ctrl+C: Exit
package ui
