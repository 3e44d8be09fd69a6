// Package display hands finished frames to the outside world.
// Sinks only receive frames; nothing flows back into the renderer.
package display

import (
	"context"
	"errors"

	"github.com/df07/go-raycaster/pkg/renderer"
)

// Frame is a rendered pixel buffer together with its layout
type Frame struct {
	Scene  string
	Info   renderer.ImageInfo
	Pixels []byte
}

// Sink presents a finished frame. Present blocks until the sink is done
// with the frame; for interactive sinks that is when the user dismisses it.
type Sink interface {
	Present(ctx context.Context, frame Frame) error
}

// SinkFunc adapts a function to the Sink interface
type SinkFunc func(ctx context.Context, frame Frame) error

// Present calls f(ctx, frame)
func (f SinkFunc) Present(ctx context.Context, frame Frame) error {
	return f(ctx, frame)
}

// MultiSink presents a frame to several sinks in order
type MultiSink []Sink

// Present hands the frame to every sink and joins their errors
func (m MultiSink) Present(ctx context.Context, frame Frame) error {
	var errs []error
	for _, sink := range m {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		if err := sink.Present(ctx, frame); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
