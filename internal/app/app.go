// Package app provides the main application helper for the emulator and disassembler.
package app

import (
	"github.com/retroenv/retrochip8/internal/detector"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrogolib/log"
)

// PrintInfo prints the information about the input file and the chosen display mode.
func PrintInfo(logger *log.Logger, opts options.Program, size int, detected detector.Result) {
	if opts.Quiet {
		return
	}

	logger.Info("Running CHIP-8 ROM",
		log.String("file", opts.Input),
		log.Int("size", size),
		log.Stringer("mode", detected.Mode),
		log.Stringer("rate", &opts.Rate),
	)
	if opts.SeedSet {
		logger.Info("Using fixed random seed", log.Int("seed", int(opts.Seed)))
	}
}

// PrintDisasmInfo prints the information about the file to disassemble.
func PrintDisasmInfo(logger *log.Logger, opts options.Program, size int) {
	if opts.Quiet {
		return
	}

	logger.Info("Processing CHIP-8 ROM",
		log.String("file", opts.Input),
		log.Int("size", size),
	)
	if size > 0 && size%2 != 0 {
		logger.Warn("ROM has an odd size, the last byte can only be data")
	}
}
