package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/vireo-go/gbcore/internal/video"
)

// halfBlockShade buckets a 0-255 luminance sample into one of four DMG
// shade levels, darkest first.
func halfBlockShade(lum uint8) int {
	switch {
	case lum >= 224:
		return 3
	case lum >= 128:
		return 2
	case lum >= 64:
		return 1
	default:
		return 0
	}
}

// halfBlockChar picks the half-block glyph representing a pair of vertically
// stacked shade samples in a single terminal row.
func halfBlockChar(top, bottom int) rune {
	switch {
	case top == bottom:
		return '█'
	case top == 3 && bottom != 3:
		return '▄'
	case top != 3 && bottom == 3:
		return '▀'
	default:
		return '▀'
	}
}

func luminance(frame *video.FrameBuffer, x, y int) uint8 {
	i := (y*video.Width + x) * 4
	return uint8((int(frame.Pixels[i]) + int(frame.Pixels[i+1]) + int(frame.Pixels[i+2])) / 3)
}

// renderFrameToHalfBlocks converts a framebuffer to a half-block text
// representation, one output row per two pixel rows.
func renderFrameToHalfBlocks(frame *video.FrameBuffer) []string {
	textHeight := video.Height / 2
	lines := make([]string, textHeight)

	for row := 0; row < textHeight; row++ {
		var line strings.Builder
		for x := 0; x < video.Width; x++ {
			top := halfBlockShade(luminance(frame, x, row*2))
			bottom := halfBlockShade(luminance(frame, x, row*2+1))
			line.WriteRune(halfBlockChar(top, bottom))
		}
		lines[row] = line.String()
	}

	return lines
}

// saveFrameSnapshot writes a frame as half-block text art, for headless
// visual inspection without a terminal UI attached.
func saveFrameSnapshot(frame *video.FrameBuffer, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("creating snapshot file: %w", err)
	}
	defer file.Close()

	fmt.Fprintf(file, "# Game Boy frame snapshot (half-block rendering)\n")
	fmt.Fprintf(file, "# Resolution: %dx%d pixels -> %dx%d text rows\n", video.Width, video.Height, video.Width, video.Height/2)
	fmt.Fprintf(file, "#\n")

	for _, line := range renderFrameToHalfBlocks(frame) {
		fmt.Fprintf(file, "%s\n", line)
	}

	return nil
}
