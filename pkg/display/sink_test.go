package display

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/df07/go-raycaster/pkg/renderer"
)

// captureLogger records formatted log lines
type captureLogger struct {
	mu    sync.Mutex
	lines []string
}

func (c *captureLogger) Printf(format string, args ...interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lines = append(c.lines, fmt.Sprintf(format, args...))
}

func TestMultiSink_PresentsToAll(t *testing.T) {
	var order []string
	record := func(name string) Sink {
		return SinkFunc(func(ctx context.Context, frame Frame) error {
			order = append(order, name)
			return nil
		})
	}

	sinks := MultiSink{record("a"), record("b"), record("c")}
	if err := sinks.Present(context.Background(), Frame{}); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(order) != 3 || order[0] != "a" || order[2] != "c" {
		t.Errorf("Expected sinks called in order, got %v", order)
	}
}

func TestMultiSink_JoinsErrors(t *testing.T) {
	errA := errors.New("a failed")
	errC := errors.New("c failed")
	called := 0

	sinks := MultiSink{
		SinkFunc(func(context.Context, Frame) error { called++; return errA }),
		SinkFunc(func(context.Context, Frame) error { called++; return nil }),
		SinkFunc(func(context.Context, Frame) error { called++; return errC }),
	}

	err := sinks.Present(context.Background(), Frame{})
	if !errors.Is(err, errA) || !errors.Is(err, errC) {
		t.Errorf("Expected both errors joined, got %v", err)
	}
	if called != 3 {
		t.Errorf("Expected a failing sink not to stop the others, %d called", called)
	}
}

func TestMultiSink_StopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	sinks := MultiSink{SinkFunc(func(context.Context, Frame) error { called = true; return nil })}

	if err := sinks.Present(ctx, Frame{}); !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
	if called {
		t.Error("Expected no sink to run after cancellation")
	}
}

func TestLogSink(t *testing.T) {
	logger := &captureLogger{}
	sink := LogSink{Logger: logger}

	if err := sink.Present(context.Background(), testFrame(renderer.RGB8)); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(logger.lines) != 1 {
		t.Fatalf("Expected 1 log line, got %d", len(logger.lines))
	}
}
