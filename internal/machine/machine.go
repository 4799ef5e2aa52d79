// Package machine implements the external control loop that drives the
// interpreter at the instruction and timer cadences and connects it to the
// display, keypad and buzzer collaborators.
//
// A single goroutine owns the interpreter. Other goroutines only communicate
// with it through messages, like key presses sent with PressKey.
package machine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/retroenv/retrochip8/internal/display"
	"github.com/retroenv/retrochip8/internal/interpreter"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrogolib/log"
)

// DefaultKeyHold is how long a key press is reported as held when the input
// source does not report key releases.
const DefaultKeyHold = 150 * time.Millisecond

// Display renders frame snapshots.
type Display interface {
	Render(frame display.Frame) error
}

// Keypad returns the currently pressed key.
type Keypad interface {
	Key() interpreter.Key
}

// Buzzer is updated with the sound state after every timer tick.
type Buzzer interface {
	Update(active bool)
}

// MachineError is returned when the interpreter halted because of a fatal error.
type MachineError struct {
	PC  uint16
	Err error
}

func (e *MachineError) Error() string {
	return fmt.Sprintf("machine halted at $%03X: %v", e.PC, e.Err)
}

func (e *MachineError) Unwrap() error {
	return e.Err
}

// Config contains the collaborators and cadences of a machine.
// Collaborators that are nil are not used.
type Config struct {
	Display Display
	Keypad  Keypad
	Buzzer  Buzzer

	StepRate  options.ClockRate
	TimerRate options.ClockRate
	KeyHold   time.Duration
}

// Machine drives an interpreter.
type Machine struct {
	logger *log.Logger
	interp *interpreter.Interpreter
	cfg    Config

	keys      chan interpreter.Key
	held      interpreter.Key
	heldUntil time.Time
	now       func() time.Time
}

// New returns a machine driving the given interpreter.
func New(logger *log.Logger, interp *interpreter.Interpreter, cfg Config) *Machine {
	if cfg.StepRate == 0 {
		cfg.StepRate = options.DefaultRate
	}
	if cfg.TimerRate == 0 {
		cfg.TimerRate = options.DefaultTimer
	}
	if cfg.KeyHold == 0 {
		cfg.KeyHold = DefaultKeyHold
	}

	return &Machine{
		logger: logger,
		interp: interp,
		cfg:    cfg,
		keys:   make(chan interpreter.Key, 16),
		now:    time.Now,
	}
}

// PressKey reports a key press. It is safe to call from any goroutine, the key is
// held for the configured hold duration. Presses are dropped if the machine is
// not consuming them fast enough.
func (m *Machine) PressKey(key interpreter.Key) {
	select {
	case m.keys <- key:
	default:
	}
}

// Run executes the program at the configured cadences until the context is
// cancelled or the interpreter halts.
func (m *Machine) Run(ctx context.Context) error {
	stepTicker := time.NewTicker(m.cfg.StepRate.Period())
	defer stepTicker.Stop()
	timerTicker := time.NewTicker(m.cfg.TimerRate.Period())
	defer timerTicker.Stop()

	m.logger.Debug("Machine started",
		log.Stringer("step_rate", &m.cfg.StepRate),
		log.Stringer("timer_rate", &m.cfg.TimerRate))

	for {
		select {
		case <-ctx.Done():
			return fmt.Errorf("running machine: %w", ctx.Err())

		case key := <-m.keys:
			m.hold(key)

		case <-stepTicker.C:
			if err := m.step(); err != nil {
				return err
			}

		case <-timerTicker.C:
			if err := m.tick(); err != nil {
				return err
			}
		}
	}
}

// RunSteps executes the given number of instructions as fast as possible,
// ticking the timers in the ratio of the configured cadences. It stops early
// if the context is cancelled or the interpreter halts.
func (m *Machine) RunSteps(ctx context.Context, steps uint64) error {
	var timerAccumulator float64
	for n := uint64(0); n < steps; n++ {
		if n%1024 == 0 {
			if err := ctx.Err(); err != nil {
				return fmt.Errorf("running machine: %w", err)
			}
		}

		m.drainKeys()
		if err := m.step(); err != nil {
			return err
		}

		timerAccumulator += float64(m.cfg.TimerRate)
		for timerAccumulator >= float64(m.cfg.StepRate) {
			timerAccumulator -= float64(m.cfg.StepRate)
			if err := m.tick(); err != nil {
				return err
			}
		}
	}
	return nil
}

func (m *Machine) step() error {
	err := m.interp.Step(m.currentKey())
	if err == nil {
		return nil
	}

	machineErr := &MachineError{
		PC:  m.interp.Registers().PC,
		Err: err,
	}
	var execErr *interpreter.ExecutionError
	if errors.As(err, &execErr) {
		machineErr.PC = execErr.PC
	}
	return machineErr
}

// tick advances the timers and publishes the new state to the collaborators.
func (m *Machine) tick() error {
	m.interp.TickTimers()

	if m.cfg.Buzzer != nil {
		m.cfg.Buzzer.Update(m.interp.SoundActive())
	}
	if m.cfg.Display != nil {
		if err := m.cfg.Display.Render(m.interp.Frame()); err != nil {
			return fmt.Errorf("rendering frame: %w", err)
		}
	}
	return nil
}

func (m *Machine) drainKeys() {
	for {
		select {
		case key := <-m.keys:
			m.hold(key)
		default:
			return
		}
	}
}

func (m *Machine) hold(key interpreter.Key) {
	m.held = key
	m.heldUntil = m.now().Add(m.cfg.KeyHold)
}

// currentKey returns the key to pass into the next step.
func (m *Machine) currentKey() interpreter.Key {
	if m.cfg.Keypad != nil {
		if key := m.cfg.Keypad.Key(); key.Pressed() {
			return key
		}
	}
	if m.held.Pressed() && m.now().Before(m.heldUntil) {
		return m.held
	}
	return interpreter.NoKey
}
