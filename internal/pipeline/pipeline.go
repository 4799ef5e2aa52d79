// Package pipeline orchestrates the emulation and disassembly workflow stages.
package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/retroenv/retrochip8/internal/app"
	"github.com/retroenv/retrochip8/internal/buzzer"
	"github.com/retroenv/retrochip8/internal/config"
	"github.com/retroenv/retrochip8/internal/detector"
	"github.com/retroenv/retrochip8/internal/disasm"
	"github.com/retroenv/retrochip8/internal/interpreter"
	"github.com/retroenv/retrochip8/internal/loader"
	"github.com/retroenv/retrochip8/internal/machine"
	"github.com/retroenv/retrochip8/internal/memory"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrochip8/internal/program"
	"github.com/retroenv/retrochip8/internal/terminal"
	"github.com/retroenv/retrochip8/internal/trace"
	"github.com/retroenv/retrogolib/log"
)

// Pipeline orchestrates the complete emulation workflow.
type Pipeline struct {
	logger   *log.Logger
	detector *detector.Detector
	loader   *loader.Loader

	stdout    io.Writer // final frame output in headless mode
	stderr    io.Writer // trace output
	logOutput io.Writer // destination of log lines buffered during a terminal session
}

// New creates a new pipeline.
func New(logger *log.Logger) *Pipeline {
	return &Pipeline{
		logger:   logger,
		detector: detector.New(logger),
		loader:   loader.New(),
		stdout:    os.Stdout,
		stderr:    os.Stderr,
		logOutput: os.Stdout,
	}
}

// Execute loads the ROM and runs it with the given options.
func (p *Pipeline) Execute(ctx context.Context, opts options.Program) error {
	rom, err := p.loader.Load(opts.Input)
	if err != nil {
		return fmt.Errorf("loading rom: %w", err)
	}
	return p.ExecuteWithROM(ctx, rom, opts)
}

// ExecuteWithROM runs the emulation with a pre-loaded ROM.
// This is useful for testing and programmatic usage where the ROM is already in memory.
func (p *Pipeline) ExecuteWithROM(ctx context.Context, rom []byte, opts options.Program) (rerr error) {
	detected := p.detector.Detect(opts)
	app.PrintInfo(p.logger, opts, len(rom), detected)

	logger, flushLog := p.sessionLogger(detected.Mode)
	defer flushLog()

	interp, tracer, err := p.createInterpreter(logger, rom, opts, detected)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	cfg := machine.Config{
		StepRate:  opts.Rate,
		TimerRate: opts.Timer,
	}

	if opts.Wav != "" {
		recorder := buzzer.New(p.logger, opts.Wav, opts.Timer)
		cfg.Buzzer = recorder
		defer func() {
			if err := recorder.Close(); err != nil && rerr == nil {
				rerr = fmt.Errorf("closing buzzer: %w", err)
			}
		}()
	}

	var term *terminal.Terminal
	if detected.Mode == detector.Terminal {
		term, err = terminal.Open(logger)
		if err != nil {
			return fmt.Errorf("opening terminal: %w", err)
		}
		cfg.Display = term
	}

	m := machine.New(logger, interp, cfg)
	if term != nil {
		listening := make(chan struct{})
		go func() {
			defer close(listening)
			if err := term.Listen(ctx, m.PressKey, cancel); err != nil {
				logger.Error("Reading terminal input failed", log.Err(err))
				cancel()
			}
		}()
		// the listener has to stop polling before the terminal is restored
		defer func() {
			cancel()
			<-listening
			term.Close()
		}()
	}

	err = p.run(ctx, logger, m, opts, detected)
	if tracer != nil && tracer.Err() != nil {
		logger.Warn("Writing trace failed", log.Err(tracer.Err()))
	}
	if detected.Mode == detector.Headless {
		frame := interp.Frame()
		if _, werr := fmt.Fprint(p.stdout, frame.String()); werr != nil && err == nil {
			err = fmt.Errorf("writing frame: %w", werr)
		}
	}
	return err
}

// createInterpreter creates the interpreter and loads the program into it.
// The returned tracer is nil if tracing is disabled.
func (p *Pipeline) createInterpreter(logger *log.Logger, rom []byte, opts options.Program,
	detected detector.Result) (*interpreter.Interpreter, *trace.Tracer, error) {

	interpOpts := []interpreter.Option{interpreter.WithLogger(logger)}
	if opts.SeedSet {
		interpOpts = append(interpOpts, interpreter.WithSeed(opts.Seed))
	}
	var tracer *trace.Tracer
	if opts.Trace {
		tracer = trace.New(p.stderr, detected.TraceColor)
		interpOpts = append(interpOpts, interpreter.WithStepHook(tracer.Hook))
	}

	interp := interpreter.New(interpOpts...)
	n, err := interp.Load(rom)
	switch {
	case errors.Is(err, memory.ErrProgramTruncated):
		logger.Warn("ROM does not fit into memory, ignoring trailing bytes",
			log.Int("size", len(rom)),
			log.Int("loaded", n))
	case err != nil:
		return nil, nil, fmt.Errorf("loading program: %w", err)
	}
	return interp, tracer, nil
}

// sessionLogger returns the logger to use while the program runs. The terminal
// display owns the screen, so in terminal mode log lines are buffered and written
// by the returned flush function after the terminal has been restored.
func (p *Pipeline) sessionLogger(mode detector.Mode) (*log.Logger, func()) {
	if mode != detector.Terminal {
		return p.logger, func() {}
	}

	buf := &bytes.Buffer{}
	logger := config.SessionLogger(p.logger, buf)
	return logger, func() {
		if _, err := io.Copy(p.logOutput, buf); err != nil {
			p.logger.Error("Writing session log failed", log.Err(err))
		}
	}
}

// run drives the machine until the step limit is reached, the user quits or
// the program halts.
func (p *Pipeline) run(ctx context.Context, logger *log.Logger, m *machine.Machine, opts options.Program,
	detected detector.Result) error {

	var err error
	if detected.Mode == detector.Headless && opts.Steps > 0 {
		err = m.RunSteps(ctx, opts.Steps)
	} else {
		err = m.Run(ctx)
	}

	if errors.Is(err, context.Canceled) {
		logger.Debug("Machine stopped")
		return nil
	}
	if err != nil {
		return fmt.Errorf("running program: %w", err)
	}
	return nil
}

// Disassemble disassembles the ROM and writes the assembly code to the writer.
func (p *Pipeline) Disassemble(ctx context.Context, opts options.Program, disasmOpts options.Disassembler,
	writer io.Writer) (*program.Program, error) {

	rom, err := p.loader.Load(opts.Input)
	if err != nil {
		return nil, fmt.Errorf("loading rom: %w", err)
	}

	app.PrintDisasmInfo(p.logger, opts, len(rom))

	dis, err := disasm.New(p.logger, rom, disasmOpts)
	if err != nil {
		return nil, fmt.Errorf("creating disassembler: %w", err)
	}

	prg, err := dis.Process(ctx, writer)
	if err != nil {
		return nil, fmt.Errorf("disassembling: %w", err)
	}
	return prg, nil
}
