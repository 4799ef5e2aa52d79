// Package detector handles the detection of the output mode and the ROM type.
package detector

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrogolib/log"
)

// Mode is the display mode of the emulator.
type Mode int

const (
	// Headless runs without display and prints the final frame as text.
	Headless Mode = iota
	// Terminal renders the frame buffer to the terminal and reads the keypad from it.
	Terminal
)

// String implements fmt.Stringer.
func (m Mode) String() string {
	if m == Terminal {
		return "terminal"
	}
	return "headless"
}

// Result contains the detected settings.
type Result struct {
	Mode       Mode
	TraceColor bool // trace output supports ANSI colors
	KnownROM   bool // the file extension is a known CHIP-8 ROM extension
}

// Detector handles output mode detection from the environment and options.
type Detector struct {
	logger     *log.Logger
	isTerminal func(fd uintptr) bool
	stdout     uintptr
	stderr     uintptr
}

// New creates a new detector.
func New(logger *log.Logger) *Detector {
	return &Detector{
		logger:     logger,
		isTerminal: isTerminal,
		stdout:     os.Stdout.Fd(),
		stderr:     os.Stderr.Fd(),
	}
}

func isTerminal(fd uintptr) bool {
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// Detect determines the display mode and trace coloring. The terminal mode is
// only used when stdout is a terminal and headless mode was not requested.
func (d *Detector) Detect(opts options.Program) Result {
	stdoutTerminal := d.isTerminal(d.stdout)

	result := Result{
		Mode:       Headless,
		TraceColor: d.isTerminal(d.stderr),
		KnownROM:   isROMFile(opts.Input),
	}
	if stdoutTerminal && !opts.Headless {
		result.Mode = Terminal
	}

	d.logger.Debug("Detected environment",
		log.Stringer("mode", result.Mode),
		log.String("file", opts.Input))
	if !result.KnownROM {
		d.logger.Warn("Unknown ROM file extension, trying to run as CHIP-8 program",
			log.String("file", opts.Input))
	}
	return result
}

// isROMFile returns whether the file name has a known CHIP-8 ROM extension.
func isROMFile(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".ch8", ".c8", ".rom":
		return true
	default:
		return false
	}
}
