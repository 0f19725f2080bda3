// Package terminal is a tcell-driven interactive frontend: it runs the
// emulator at 60Hz, maps keyboard input onto the joypad, and renders each
// frame as shaded terminal cells.
package terminal

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/vireo-go/gbcore"
	"github.com/vireo-go/gbcore/internal/joypad"
	"github.com/vireo-go/gbcore/internal/video"
)

const frameTime = time.Second / 60

// shadeChars maps a greyscale intensity bucket to a terminal glyph,
// lightest first (glyphs are drawn white on black, so the full block is the
// brightest), matching the four DMG shades.
var shadeChars = []rune{'█', '▓', '▒', '░'}

// Renderer drives a System interactively inside the current terminal.
type Renderer struct {
	screen tcell.Screen
	sys    *gbcore.System
	running bool
}

// New initializes the terminal and wraps sys for interactive play.
func New(sys *gbcore.System) (*Renderer, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("initializing terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("initializing terminal: %w", err)
	}

	return &Renderer{screen: screen, sys: sys, running: true}, nil
}

// Run drives the 60Hz emulate-render loop until the user quits or the
// process receives a termination signal.
func (r *Renderer) Run() error {
	defer func() {
		slog.Info("terminal frontend stopping")
		r.screen.Fini()
	}()

	r.screen.SetStyle(tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite))
	r.screen.Clear()

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP, syscall.SIGQUIT)

	go r.handleInput()

	ticker := time.NewTicker(frameTime)
	defer ticker.Stop()

	for r.running {
		select {
		case <-ticker.C:
			frame := r.sys.RunFrame()
			r.render(frame)
			r.screen.Show()
		case <-signals:
			r.running = false
			return nil
		}
	}

	return nil
}

func (r *Renderer) handleInput() {
	for r.running {
		ev := r.screen.PollEvent()
		key, ok := ev.(*tcell.EventKey)
		if !ok {
			continue
		}

		switch key.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			r.running = false
			return
		case tcell.KeyEnter:
			r.sys.PressKey(joypad.Start)
		case tcell.KeyRight:
			r.sys.PressKey(joypad.Right)
		case tcell.KeyLeft:
			r.sys.PressKey(joypad.Left)
		case tcell.KeyUp:
			r.sys.PressKey(joypad.Up)
		case tcell.KeyDown:
			r.sys.PressKey(joypad.Down)
		case tcell.KeyRune:
			switch key.Rune() {
			case 'a':
				r.sys.PressKey(joypad.A)
			case 's':
				r.sys.PressKey(joypad.B)
			case 'q':
				r.sys.PressKey(joypad.Select)
			}
		}
	}
}

// render paints the framebuffer at one terminal cell per pixel, clipped to
// the terminal's size, picking a shadeChars glyph from each pixel's
// luminance.
func (r *Renderer) render(frame *video.FrameBuffer) {
	w, h := r.screen.Size()
	style := tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlack)

	maxX := min(w, video.Width)
	maxY := min(h, video.Height)

	for y := 0; y < maxY; y++ {
		for x := 0; x < maxX; x++ {
			i := (y*video.Width + x) * 4
			lum := (int(frame.Pixels[i]) + int(frame.Pixels[i+1]) + int(frame.Pixels[i+2])) / 3
			shade := 3 - lum*4/256
			if shade < 0 {
				shade = 0
			}
			if shade > 3 {
				shade = 3
			}
			r.screen.SetContent(x, y, shadeChars[shade], nil, style)
		}
	}
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
