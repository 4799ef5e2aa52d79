// Package terminal implements a display and keypad for the emulator using the
// terminal via termbox.
package terminal

import (
	"context"
	"fmt"

	"github.com/nsf/termbox-go"
	"github.com/retroenv/retrochip8/internal/display"
	"github.com/retroenv/retrochip8/internal/keypad"
	"github.com/retroenv/retrogolib/log"
)

// Rows is the number of terminal rows used, every row shows two pixel rows.
const Rows = display.Height / 2

// Terminal renders frames to the terminal and reads key presses.
type Terminal struct {
	logger *log.Logger
	fg, bg termbox.Attribute
}

// Open initializes the terminal. Close has to be called to restore it.
func Open(logger *log.Logger) (*Terminal, error) {
	if err := termbox.Init(); err != nil {
		return nil, fmt.Errorf("initializing terminal: %w", err)
	}
	termbox.SetInputMode(termbox.InputEsc)
	termbox.HideCursor()

	return &Terminal{
		logger: logger,
		fg:     termbox.ColorGreen,
		bg:     termbox.ColorDefault,
	}, nil
}

// Close restores the terminal.
func (t *Terminal) Close() {
	termbox.Close()
}

// Render draws the frame, using half block characters to show two pixel rows
// per terminal row.
func (t *Terminal) Render(frame display.Frame) error {
	cells := Cells(frame)
	for row := range cells {
		for col, ch := range cells[row] {
			termbox.SetCell(col, row, ch, t.fg, t.bg)
		}
	}
	if err := termbox.Flush(); err != nil {
		return fmt.Errorf("flushing terminal: %w", err)
	}
	return nil
}

// Listen reads terminal events until the context is cancelled, a quit key is
// pressed or reading fails. Mapped keypad keys are passed to press, quit is
// called when the user requests to exit.
func (t *Terminal) Listen(ctx context.Context, press func(keypad.Key), quit func()) error {
	stopped := make(chan struct{})
	defer close(stopped)
	go func() {
		select {
		case <-ctx.Done():
			termbox.Interrupt()
		case <-stopped:
		}
	}()

	for {
		evt := termbox.PollEvent()
		switch evt.Type {
		case termbox.EventInterrupt:
			return nil

		case termbox.EventError:
			return fmt.Errorf("polling terminal event: %w", evt.Err)

		case termbox.EventKey:
			if evt.Key == termbox.KeyEsc || evt.Key == termbox.KeyCtrlC {
				t.logger.Debug("Quit requested")
				quit()
				return nil
			}
			if key, ok := KeyForRune(evt.Ch); ok {
				press(key)
			}

		default:
		}
	}
}

// Cells converts a frame to the terminal characters representing it.
func Cells(frame display.Frame) [Rows][display.Width]rune {
	var cells [Rows][display.Width]rune
	for row := range cells {
		for col := range cells[row] {
			top := frame[row*2][col]
			bottom := frame[row*2+1][col]
			cells[row][col] = halfBlock(top, bottom)
		}
	}
	return cells
}

func halfBlock(top, bottom bool) rune {
	switch {
	case top && bottom:
		return '█'
	case top:
		return '▀'
	case bottom:
		return '▄'
	default:
		return ' '
	}
}
