// Package app runs one render from a configuration: build the scene, render
// the frame and present it to the configured sinks.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/df07/go-raycaster/pkg/config"
	"github.com/df07/go-raycaster/pkg/core"
	"github.com/df07/go-raycaster/pkg/display"
	"github.com/df07/go-raycaster/pkg/renderer"
	"github.com/df07/go-raycaster/pkg/scene"
)

// WindowFactory creates the interactive window sink
type WindowFactory func(title string, scale int, logger core.Logger) display.Sink

// Options wires the pieces that differ between the CLI and tests
type Options struct {
	Logger    core.Logger
	NewWindow WindowFactory // Required when the window sink is enabled
	NewS3     func(display.S3Config, core.Logger) (display.Sink, error)
}

// Result summarizes a completed run
type Result struct {
	Frame display.Frame
	Stats renderer.RenderStats
}

// Run renders the configured scene and presents it. The frame is always
// rendered before any sink sees it.
func Run(ctx context.Context, cfg *config.Config, opts Options) (*Result, error) {
	logger := opts.Logger
	if logger == nil {
		logger = renderer.NewDefaultLogger()
	}

	sceneObj, err := scene.Create(cfg.Scene)
	if err != nil {
		return nil, err
	}
	sceneObj.Policy = cfg.HitPolicy

	info, err := cfg.ImageInfo()
	if err != nil {
		return nil, err
	}

	sinks, err := BuildSinks(cfg, opts, logger)
	if err != nil {
		return nil, err
	}

	logger.Printf("Rendering %q (%d spheres) at %dx%d %s, %s\n",
		sceneObj.Name, sceneObj.GetPrimitiveCount(), info.Width, info.Height, info.Format, sceneObj.Policy)

	start := time.Now()
	fr := renderer.NewFrameRenderer(sceneObj, info, renderer.RenderConfig{TileSize: 64, NumWorkers: cfg.Workers}, logger)
	pixels, stats := fr.Render()
	logger.Printf("Render completed in %v\n", time.Since(start))

	frame := display.Frame{Scene: sceneObj.Name, Info: info, Pixels: pixels}
	if err := sinks.Present(ctx, frame); err != nil {
		return nil, err
	}

	return &Result{Frame: frame, Stats: stats}, nil
}

// BuildSinks creates the enabled sinks in the order they were named
func BuildSinks(cfg *config.Config, opts Options, logger core.Logger) (display.MultiSink, error) {
	var sinks display.MultiSink
	for _, name := range cfg.SinkNames {
		switch name {
		case "window":
			if opts.NewWindow == nil {
				return nil, fmt.Errorf("window sink is not available")
			}
			sinks = append(sinks, opts.NewWindow("Ray Caster: "+cfg.Scene, cfg.Scale, logger))
		case "png":
			sinks = append(sinks, display.NewPNGSink(cfg.OutputDir, cfg.Scale, logger))
		case "s3":
			newS3 := opts.NewS3
			if newS3 == nil {
				newS3 = defaultS3
			}
			sink, err := newS3(cfg.S3, logger)
			if err != nil {
				return nil, err
			}
			sinks = append(sinks, sink)
		case "log":
			sinks = append(sinks, display.LogSink{Logger: logger})
		default:
			return nil, fmt.Errorf("unknown sink %q", name)
		}
	}
	return sinks, nil
}

func defaultS3(cfg display.S3Config, logger core.Logger) (display.Sink, error) {
	return display.NewS3Sink(cfg, logger)
}
