package tracking

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/five82/rastreo/internal/backend"
)

const queueSize = 64

// ErrNotRunning is returned by calls that need the event loop after it stopped.
var ErrNotRunning = errors.New("tracking controller is not running")

type job func(ctx context.Context)

// Controller drives queries against the backend and owns the query history.
//
// All history mutations and all Sink calls happen on the goroutine running
// Run. Operations only enqueue work, so they never block on the network.
type Controller struct {
	fetcher backend.Fetcher
	sink    Sink
	log     zerolog.Logger
	now     func() time.Time

	queue   chan job
	done    chan struct{}
	started atomic.Bool

	// Owned by the loop goroutine.
	history historyList
}

// Option customizes a Controller.
type Option func(*Controller)

// WithLogger attaches a logger.
func WithLogger(log zerolog.Logger) Option {
	return func(c *Controller) {
		c.log = log.With().Str("component", "tracking").Logger()
	}
}

// WithClock overrides the clock used to timestamp new history entries.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) {
		if now != nil {
			c.now = now
		}
	}
}

// NewController builds a Controller. Run must be started for any operation
// to take effect.
func NewController(fetcher backend.Fetcher, sink Sink, opts ...Option) *Controller {
	if sink == nil {
		sink = func(Event) {}
	}
	c := &Controller{
		fetcher: fetcher,
		sink:    sink,
		log:     zerolog.Nop(),
		now:     time.Now,
		queue:   make(chan job, queueSize),
		done:    make(chan struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Run processes queued work until ctx is cancelled. In-flight requests are
// cancelled with ctx and their results are dropped.
func (c *Controller) Run(ctx context.Context) error {
	if !c.started.CompareAndSwap(false, true) {
		return errors.New("tracking controller already running")
	}
	defer close(c.done)

	for {
		select {
		case <-ctx.Done():
			return nil
		case fn := <-c.queue:
			fn(ctx)
		}
	}
}

// TrackPackage looks up a tracking number typed by the operator. A blank
// number is rejected immediately: the returned error is also emitted as an
// ErrorEvent and no request is made.
func (c *Controller) TrackPackage(trackingNumber string) error {
	number := strings.TrimSpace(trackingNumber)
	if number == "" {
		err := emptyInputError()
		c.post(func(context.Context) { c.emit(ErrorEvent{Err: err}) })
		return err
	}
	c.post(func(ctx context.Context) {
		c.startLookup(ctx, number, SurfacePrimary)
	})
	return nil
}

// ViewHistoryDetail looks up a history entry again and shows the result on
// the detail surface. History and the input field are left untouched.
func (c *Controller) ViewHistoryDetail(entry HistoryEntry) error {
	number := strings.TrimSpace(entry.TrackingNumber)
	if number == "" {
		err := emptyInputError()
		c.post(func(context.Context) { c.emit(ErrorEvent{Err: err}) })
		return err
	}
	c.post(func(ctx context.Context) {
		c.startLookup(ctx, number, SurfaceDetail)
	})
	return nil
}

// LoadHistory replaces the local history with the backend's.
func (c *Controller) LoadHistory() {
	c.post(func(ctx context.Context) {
		c.emit(LoadingState{Visible: true})
		c.log.Debug().Msg("history fetch")
		go func() {
			records, err := c.fetcher.FetchHistory(ctx)
			c.post(func(context.Context) { c.finishHistory(records, err) })
		}()
	})
}

// ClearHistory empties the history and both surfaces. No request is made.
func (c *Controller) ClearHistory() {
	c.post(func(context.Context) {
		c.history = nil
		c.emit(DisplayText{Surface: SurfacePrimary})
		c.emit(DisplayText{Surface: SurfaceDetail})
		c.emit(HistoryUpdated{Entries: c.history.clone()})
	})
}

// History returns a copy of the current history, most recent first. It
// observes every operation enqueued before the call.
func (c *Controller) History(ctx context.Context) ([]HistoryEntry, error) {
	reply := make(chan []HistoryEntry, 1)
	if !c.post(func(context.Context) { reply <- c.history.clone() }) {
		return nil, ErrNotRunning
	}
	select {
	case entries := <-reply:
		return entries, nil
	case <-c.done:
		return nil, ErrNotRunning
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (c *Controller) startLookup(ctx context.Context, number string, surface Surface) {
	c.emit(LoadingState{Visible: true})
	c.log.Info().Str("tracking_number", number).Stringer("surface", surface).Msg("tracking lookup")
	go func() {
		resp, err := c.fetcher.FetchTracking(ctx, number)
		c.post(func(context.Context) { c.finishLookup(number, surface, resp, err) })
	}()
}

func (c *Controller) finishLookup(number string, surface Surface, resp backend.TrackingResponse, err error) {
	if err != nil {
		c.log.Warn().Err(err).Str("tracking_number", number).Msg("tracking lookup failed")
		c.fail(lookupError(err))
		return
	}

	c.emit(DisplayText{Surface: surface, Text: FormatResult(number, resp)})
	if surface == SurfacePrimary {
		c.history = c.history.prepend(HistoryEntry{
			Timestamp:      c.now().Format(EntryTimestampLayout),
			TrackingNumber: number,
		})
		c.emit(HistoryUpdated{Entries: c.history.clone()})
		c.emit(InputCleared{})
	}
	c.emit(LoadingState{Visible: false})
}

func (c *Controller) finishHistory(records []backend.HistoryRecord, err error) {
	if err != nil {
		c.log.Warn().Err(err).Msg("history fetch failed")
		c.fail(historyError(err))
		return
	}
	c.history = fromRecords(records)
	c.log.Debug().Int("entries", len(c.history)).Msg("history loaded")
	c.emit(HistoryUpdated{Entries: c.history.clone()})
	c.emit(LoadingState{Visible: false})
}

func (c *Controller) fail(err *Error) {
	c.emit(ErrorEvent{Err: err})
	c.emit(LoadingState{Visible: false})
}

func (c *Controller) emit(ev Event) {
	c.sink(ev)
}

// post enqueues fn for the loop. It reports false once the loop has stopped.
func (c *Controller) post(fn job) bool {
	select {
	case c.queue <- fn:
		return true
	case <-c.done:
		return false
	}
}
