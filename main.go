package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/df07/go-raycaster/pkg/app"
	"github.com/df07/go-raycaster/pkg/config"
	"github.com/df07/go-raycaster/pkg/core"
	"github.com/df07/go-raycaster/pkg/display"
	"github.com/df07/go-raycaster/pkg/display/window"
	"github.com/df07/go-raycaster/pkg/scene"
)

func main() {
	cfg, err := config.Load("raycaster", os.Args[1:], os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	// Show help if requested
	if cfg.Help {
		printHelp(cfg)
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := app.Options{
		NewWindow: func(title string, scale int, logger core.Logger) display.Sink {
			return window.New(title, scale, logger)
		},
	}

	if _, err := app.Run(ctx, cfg, opts); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printHelp(cfg *config.Config) {
	fmt.Println("Ray Caster")
	fmt.Println("Usage: raycaster [options]")
	fmt.Println()
	fmt.Println("Options:")
	cfg.PrintDefaults()
	fmt.Println()
	fmt.Println("Available scenes:")
	for _, info := range scene.ListScenes() {
		fmt.Printf("  %-8s - %s\n", info.ID, info.Description)
	}
	fmt.Println()
	fmt.Printf("Every option can also be set with a %s* environment variable or in .env\n", config.EnvPrefix)
	fmt.Println("The png sink saves to <out>/<scene>/render_<timestamp>.png")
}
