// Package disasm implements a flow tracing CHIP-8 disassembler.
//
// Starting at the program entry point, the execution flow is followed through
// jumps, calls and both paths of skip instructions. Everything that is never
// reached as code is output as data bytes.
package disasm

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/retroenv/retrochip8/internal/memory"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrochip8/internal/program"
	"github.com/retroenv/retrochip8/internal/writer"
	"github.com/retroenv/retrogolib/log"
	"github.com/retroenv/retrogolib/set"
)

var errEmptyProgram = errors.New("program is empty")

// Disasm implements a disassembler.
type Disasm struct {
	logger  *log.Logger
	options options.Disassembler

	app *program.Program

	branchDestinations set.Set[uint16] // set of all addresses that are branched to

	offsetsToParse      []uint16
	offsetsToParseAdded set.Set[uint16]
	offsetsParsed       set.Set[uint16]
}

// New creates a new disassembler for the given ROM. ROM bytes that do not fit
// into memory are ignored.
func New(logger *log.Logger, rom []byte, options options.Disassembler) (*Disasm, error) {
	if len(rom) == 0 {
		return nil, errEmptyProgram
	}
	if len(rom) > memory.MaxProgramSize {
		logger.Warn("ROM does not fit into memory, ignoring trailing bytes",
			log.Int("size", len(rom)),
			log.Int("max_size", memory.MaxProgramSize))
		rom = rom[:memory.MaxProgramSize]
	}

	dis := &Disasm{
		logger:              logger,
		options:             options,
		app:                 program.New(rom, memory.ProgramStart),
		branchDestinations:  set.New[uint16](),
		offsetsToParseAdded: set.New[uint16](),
		offsetsParsed:       set.New[uint16](),
	}

	offsetInfo := dis.app.OffsetInfo(memory.ProgramStart)
	offsetInfo.Label = "Start"
	dis.addAddressToParse(memory.ProgramStart)
	return dis, nil
}

// Process disassembles the program and writes the assembly code to the writer.
func (dis *Disasm) Process(ctx context.Context, mainWriter io.Writer) (*program.Program, error) {
	if err := dis.followExecutionFlow(ctx); err != nil {
		return nil, err
	}

	dis.processJumpDestinations()
	if err := dis.processComments(); err != nil {
		return nil, err
	}

	w := writer.New(dis.app, mainWriter, writer.Options{
		OffsetComments: dis.options.OffsetComments,
	})
	if err := w.Write(); err != nil {
		return nil, fmt.Errorf("writing program: %w", err)
	}
	return dis.app, nil
}
