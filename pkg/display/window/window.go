// Package window shows frames in a desktop window.
package window

import (
	"context"
	"fmt"

	"github.com/disintegration/imaging"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/df07/go-raycaster/pkg/core"
	"github.com/df07/go-raycaster/pkg/display"
)

// Sink displays a frame until Escape is pressed, the window is closed or
// the context is cancelled. Present must be called from the main goroutine.
type Sink struct {
	Title  string
	Scale  int // Window size multiplier
	Logger core.Logger
}

// New creates a window sink
func New(title string, scale int, logger core.Logger) *Sink {
	if scale < 1 {
		scale = 1
	}
	return &Sink{Title: title, Scale: scale, Logger: logger}
}

// Present opens the window and blocks until it is dismissed
func (s *Sink) Present(ctx context.Context, frame display.Frame) error {
	img, err := display.ToImage(frame)
	if err != nil {
		return err
	}

	// ebiten takes 8-bit RGBA; every frame is opaque so premultiplication is a no-op
	rgba := imaging.Clone(img)
	width, height := int(frame.Info.Width), int(frame.Info.Height)

	g := &frameGame{
		ctx:    ctx,
		pix:    rgba.Pix,
		width:  width,
		height: height,
		logger: s.Logger,
	}

	title := s.Title
	if title == "" {
		title = frame.Scene
	}
	ebiten.SetWindowTitle(fmt.Sprintf("%s (%dx%d)", title, width, height))
	ebiten.SetWindowSize(width*s.Scale, height*s.Scale)
	ebiten.SetTPS(30)

	if err := ebiten.RunGame(g); err != nil {
		return fmt.Errorf("window: %w", err)
	}
	return nil
}

type frameGame struct {
	ctx    context.Context
	pix    []byte
	width  int
	height int
	fbImg  *ebiten.Image
	logger core.Logger
}

func (g *frameGame) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		if g.logger != nil {
			g.logger.Printf("Escape pressed, closing window\n")
		}
		return ebiten.Termination
	}
	if g.ctx.Err() != nil {
		return ebiten.Termination
	}
	return nil
}

func (g *frameGame) Draw(screen *ebiten.Image) {
	if g.fbImg == nil {
		g.fbImg = ebiten.NewImage(g.width, g.height)
		g.fbImg.WritePixels(g.pix)
	}
	screen.DrawImage(g.fbImg, nil)
}

func (g *frameGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.width, g.height
}
