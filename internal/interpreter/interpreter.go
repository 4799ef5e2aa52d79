// Package interpreter implements the CHIP-8 fetch-decode-execute engine.
//
// The Interpreter owns all machine state. It does not schedule itself: an
// external control loop calls Step at the instruction cadence and TickTimers
// at the timer cadence, passing the currently pressed key into every step.
package interpreter

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/retroenv/retrochip8/internal/decoder"
	"github.com/retroenv/retrochip8/internal/display"
	"github.com/retroenv/retrochip8/internal/executor"
	"github.com/retroenv/retrochip8/internal/keypad"
	"github.com/retroenv/retrochip8/internal/memory"
	"github.com/retroenv/retrochip8/internal/registers"
	"github.com/retroenv/retrochip8/internal/timer"
	"github.com/retroenv/retrogolib/log"
)

// Key is the keypad input of a single step, either NoKey or a value 0x0-0xF.
type Key = keypad.Key

// NoKey represents that no key is currently pressed.
var NoKey = keypad.NoKey

// KeyOf returns the key for the given keypad value.
func KeyOf(value uint8) Key {
	return keypad.KeyOf(value)
}

// Random is the source of the RND instruction.
type Random = executor.Random

// ExecutionError is returned for fatal errors while executing a program.
// Once returned the interpreter is halted and returns the same error for every
// following step.
type ExecutionError struct {
	PC   uint16 // address of the failing instruction
	Word uint16 // raw instruction word
	Err  error
}

func (e *ExecutionError) Error() string {
	return fmt.Sprintf("execution failed at $%03X (word $%04X): %v", e.PC, e.Word, e.Err)
}

func (e *ExecutionError) Unwrap() error {
	return e.Err
}

// Trace describes a single executed instruction, it is passed to the step hook.
type Trace struct {
	PC          uint16
	Instruction decoder.Instruction
	Registers   registers.Registers // register state after execution
	Delay       uint8
	Sound       uint8
	AwaitingKey bool
}

// Interpreter is a CHIP-8 virtual machine.
type Interpreter struct {
	logger *log.Logger
	hook   func(Trace)

	state *executor.State

	awaitingKey bool
	keyRegister uint8
	err         error
	steps       uint64
}

// Option configures an Interpreter.
type Option func(*Interpreter)

// WithLogger sets the logger to use for debug output.
func WithLogger(logger *log.Logger) Option {
	return func(i *Interpreter) {
		i.logger = logger
	}
}

// WithRandom sets the random source used by the RND instruction.
func WithRandom(random Random) Option {
	return func(i *Interpreter) {
		i.state.Random = random
	}
}

// WithSeed seeds the random source used by the RND instruction, making
// program execution reproducible.
func WithSeed(seed int64) Option {
	return WithRandom(rand.New(rand.NewSource(seed))) //nolint:gosec // not used for security
}

// WithStepHook sets a function that is called after every executed instruction.
func WithStepHook(hook func(Trace)) Option {
	return func(i *Interpreter) {
		i.hook = hook
	}
}

// New returns an interpreter in reset state with the glyphs loaded.
func New(opts ...Option) *Interpreter {
	i := &Interpreter{
		state: &executor.State{
			Memory:    memory.New(),
			Registers: registers.New(),
			Display:   display.New(),
			Timers:    &timer.Timers{},
			Random:    rand.New(rand.NewSource(time.Now().UnixNano())), //nolint:gosec // not used for security
		},
	}
	for _, opt := range opts {
		opt(i)
	}
	if i.logger == nil {
		i.logger = log.NewWithConfig(log.DefaultConfig())
	}
	return i
}

// Load copies the program into memory at the program start address and returns
// the number of bytes copied. A program that does not fit is truncated and
// memory.ErrProgramTruncated is returned, the interpreter remains usable.
func (i *Interpreter) Load(program []byte) (int, error) {
	n, err := i.state.Memory.Load(program)
	if err != nil {
		return n, fmt.Errorf("loading %d bytes: %w", len(program), err)
	}
	i.logger.Debug("Program loaded", log.Int("size", n))
	return n, nil
}

// Step executes a single instruction, or while the interpreter waits for a key,
// stores the supplied key and resumes execution on the next step.
func (i *Interpreter) Step(key Key) error {
	if i.err != nil {
		return i.err
	}

	if i.awaitingKey {
		i.commitKey(key)
		return nil
	}

	regs := i.state.Registers
	pc := regs.PC
	word := i.state.Memory.ReadWord(pc)

	ins, err := decoder.Decode(word)
	if err == nil {
		var res executor.Result
		res, err = executor.Execute(i.state, ins, key)
		if err == nil {
			regs.PC = res.Next.Apply(pc)
			if res.AwaitKey {
				i.awaitingKey = true
				i.keyRegister = res.KeyRegister
				i.logger.Debug("Waiting for key", log.Hex("pc", pc), log.Uint8("register", res.KeyRegister))
			}
		}
	}
	if err != nil {
		return i.halt(pc, word, err)
	}

	i.steps++
	if i.hook != nil {
		i.hook(Trace{
			PC:          pc,
			Instruction: ins,
			Registers:   *regs,
			Delay:       i.state.Timers.Delay,
			Sound:       i.state.Timers.Sound,
			AwaitingKey: i.awaitingKey,
		})
	}
	return nil
}

// commitKey finishes a wait for key instruction if a key is pressed.
func (i *Interpreter) commitKey(key Key) {
	if !key.Pressed() {
		return
	}
	i.state.Registers.V[i.keyRegister] = key.Value()
	i.awaitingKey = false
	i.logger.Debug("Key received", log.Stringer("key", key), log.Uint8("register", i.keyRegister))
}

func (i *Interpreter) halt(pc, word uint16, err error) error {
	i.err = &ExecutionError{
		PC:   pc,
		Word: word,
		Err:  err,
	}

	var unknown *decoder.UnknownInstructionError
	if errors.As(err, &unknown) {
		i.logger.Debug("Unknown instruction", log.Hex("pc", pc), log.Hex("word", word))
	} else {
		i.logger.Debug("Execution halted", log.Hex("pc", pc), log.Err(err))
	}
	return i.err
}

// TickTimers decrements the delay and sound timers. It keeps working while the
// interpreter waits for a key or is halted.
func (i *Interpreter) TickTimers() {
	i.state.Timers.Tick()
}

// Frame returns a snapshot of the frame buffer.
func (i *Interpreter) Frame() display.Frame {
	return i.state.Display.Snapshot()
}

// Registers returns a copy of the register file.
func (i *Interpreter) Registers() registers.Registers {
	return *i.state.Registers
}

// Memory returns a copy of the complete memory.
func (i *Interpreter) Memory() [memory.Size]byte {
	return i.state.Memory.Snapshot()
}

// SoundActive returns whether the buzzer should currently sound.
func (i *Interpreter) SoundActive() bool {
	return i.state.Timers.SoundActive()
}

// Delay returns the current value of the delay timer.
func (i *Interpreter) Delay() uint8 {
	return i.state.Timers.Delay
}

// Sound returns the current value of the sound timer.
func (i *Interpreter) Sound() uint8 {
	return i.state.Timers.Sound
}

// Waiting returns whether execution is suspended until a key is pressed.
func (i *Interpreter) Waiting() bool {
	return i.awaitingKey
}

// Err returns the fatal error that halted the interpreter, if any.
func (i *Interpreter) Err() error {
	return i.err
}

// Steps returns the number of executed instructions.
func (i *Interpreter) Steps() uint64 {
	return i.steps
}
