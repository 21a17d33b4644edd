package tracking

// Surface names a text area the controller writes to.
type Surface int

const (
	// SurfacePrimary shows the result of the last query typed by the operator.
	SurfacePrimary Surface = iota
	// SurfaceDetail shows the result for a selected history entry.
	SurfaceDetail
)

func (s Surface) String() string {
	if s == SurfaceDetail {
		return "detail"
	}
	return "primary"
}

// Event is emitted by the Controller for the rendering layer.
type Event interface {
	isEvent()
}

// DisplayText replaces the content of a surface. Empty Text clears it.
type DisplayText struct {
	Surface Surface
	Text    string
}

// ErrorEvent reports one failed operation.
type ErrorEvent struct {
	Err *Error
}

// Message returns the text to show the operator.
func (e ErrorEvent) Message() string {
	return e.Err.Error()
}

// LoadingState toggles the progress indicator.
type LoadingState struct {
	Visible bool
}

// HistoryUpdated carries the full history, most recent first.
type HistoryUpdated struct {
	Entries []HistoryEntry
}

// InputCleared asks the UI to empty the tracking number field.
type InputCleared struct{}

func (DisplayText) isEvent()    {}
func (ErrorEvent) isEvent()     {}
func (LoadingState) isEvent()   {}
func (HistoryUpdated) isEvent() {}
func (InputCleared) isEvent()   {}

// Sink receives events. It is always called from the controller's loop
// goroutine, one event at a time.
type Sink func(Event)
