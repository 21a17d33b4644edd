package app

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/five82/rastreo/internal/tracking"
)

// eventBuffer bounds how far the controller can run ahead of the UI.
const eventBuffer = 64

// runner is the part of *tracking.Controller the pump needs.
type runner interface {
	Run(ctx context.Context) error
}

// channelSink returns a Sink that forwards events to ch. Once ctx is done it
// drops events instead of blocking the controller loop.
func channelSink(ctx context.Context, ch chan<- tracking.Event) tracking.Sink {
	return func(ev tracking.Event) {
		select {
		case ch <- ev:
		case <-ctx.Done():
		}
	}
}

// startController launches the controller loop in the background. events is
// closed after the loop exits, which tells the UI to shut down. The returned
// channel yields the loop's error exactly once.
func startController(ctx context.Context, ctrl runner, events chan tracking.Event, log zerolog.Logger) <-chan error {
	errc := make(chan error, 1)
	go func() {
		defer close(events)
		err := ctrl.Run(ctx)
		if err != nil {
			log.Error().Err(err).Msg("controller stopped")
		} else {
			log.Debug().Msg("controller stopped")
		}
		errc <- err
	}()
	return errc
}
