// Package display implements the monochrome CHIP-8 frame buffer.
package display

import (
	"strings"
)

const (
	// Width is the number of pixel columns.
	Width = 64
	// Height is the number of pixel rows.
	Height = 32
	// SpriteWidth is the number of pixels drawn per sprite row.
	SpriteWidth = 8
)

// Frame is a copy of the pixel grid, indexed as [y][x].
type Frame [Height][Width]bool

// Pixel returns whether the pixel at the given coordinates is set.
// Coordinates wrap around the frame edges.
func (f *Frame) Pixel(x, y int) bool {
	return f[wrap(y, Height)][wrap(x, Width)]
}

// Count returns the number of set pixels.
func (f *Frame) Count() int {
	var n int
	for y := range f {
		for x := range f[y] {
			if f[y][x] {
				n++
			}
		}
	}
	return n
}

// String renders the frame as text, one line per row, using '#' for set
// and '.' for unset pixels.
func (f *Frame) String() string {
	var sb strings.Builder
	sb.Grow(Height * (Width + 1))
	for y := range f {
		for x := range f[y] {
			if f[y][x] {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// FrameBuffer is the mutable pixel grid owned by the interpreter.
type FrameBuffer struct {
	pixels Frame
}

// New returns a cleared frame buffer.
func New() *FrameBuffer {
	return &FrameBuffer{}
}

// Clear unsets all pixels.
func (fb *FrameBuffer) Clear() {
	fb.pixels = Frame{}
}

// Pixel returns whether the pixel at the given coordinates is set.
func (fb *FrameBuffer) Pixel(x, y int) bool {
	return fb.pixels.Pixel(x, y)
}

// DrawSprite xors the sprite rows onto the frame buffer with the top left corner at
// the given origin. Every pixel wraps around the frame edges on its own.
// It returns true if any previously set pixel was erased.
func (fb *FrameBuffer) DrawSprite(x, y uint8, rows []byte) bool {
	var collision bool
	for row, bits := range rows {
		py := wrap(int(y)+row, Height)
		for bit := 0; bit < SpriteWidth; bit++ {
			if bits&(0x80>>bit) == 0 {
				continue
			}
			px := wrap(int(x)+bit, Width)
			if fb.pixels[py][px] {
				collision = true
			}
			fb.pixels[py][px] = !fb.pixels[py][px]
		}
	}
	return collision
}

// Snapshot returns a copy of the current pixel grid.
func (fb *FrameBuffer) Snapshot() Frame {
	return fb.pixels
}

func wrap(value, size int) int {
	value %= size
	if value < 0 {
		value += size
	}
	return value
}
