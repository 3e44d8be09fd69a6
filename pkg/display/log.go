package display

import (
	"context"

	"github.com/df07/go-raycaster/pkg/core"
)

// LogSink reports frames without showing them, for headless runs
type LogSink struct {
	Logger core.Logger
}

// Present logs the frame layout and its average luminance
func (l LogSink) Present(ctx context.Context, frame Frame) error {
	img, err := ToImage(frame)
	if err != nil {
		return err
	}
	l.Logger.Printf("Frame %q: %s, average luminance %.4f\n", frame.Scene, frameInfo(frame), AverageLuminance(img))
	return nil
}
