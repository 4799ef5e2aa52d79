package machine

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/retroenv/retrochip8/internal/decoder"
	"github.com/retroenv/retrochip8/internal/display"
	"github.com/retroenv/retrochip8/internal/interpreter"
	"github.com/retroenv/retrochip8/internal/registers"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

type fakeDisplay struct {
	frames int
	last   display.Frame
	err    error
}

func (d *fakeDisplay) Render(frame display.Frame) error {
	d.frames++
	d.last = frame
	return d.err
}

type fakeBuzzer struct {
	updates []bool
}

func (b *fakeBuzzer) Update(active bool) {
	b.updates = append(b.updates, active)
}

type fakeKeypad struct {
	key interpreter.Key
}

func (k *fakeKeypad) Key() interpreter.Key {
	return k.key
}

func newInterpreter(t *testing.T, program []byte) *interpreter.Interpreter {
	t.Helper()
	i := interpreter.New(interpreter.WithLogger(log.NewTestLogger(t)), interpreter.WithSeed(1))
	_, err := i.Load(program)
	assert.NoError(t, err)
	return i
}

// loop draws a glyph, sets the sound timer and spins forever.
var loop = []byte{
	0x60, 0x03, // ld V0, $03
	0xF0, 0x18, // ld ST, V0
	0xD1, 0x15, // drw V1, V1, $5
	0x12, 0x06, // jp $206
}

func TestRunStepsTicksTimers(t *testing.T) {
	interp := newInterpreter(t, loop)
	disp := &fakeDisplay{}
	buzz := &fakeBuzzer{}
	m := New(log.NewTestLogger(t), interp, Config{
		Display:   disp,
		Buzzer:    buzz,
		StepRate:  100,
		TimerRate: 10,
	})

	assert.NoError(t, m.RunSteps(context.Background(), 50))
	assert.Equal(t, 5, disp.frames)
	assert.True(t, disp.last.Count() > 0)
	expected := []bool{true, true, false, false, false}
	assert.Len(t, buzz.updates, len(expected))
	for i, active := range expected {
		assert.Equal(t, active, buzz.updates[i])
	}
	assert.Equal(t, uint64(50), interp.Steps())
}

func TestRunStepsTimerFasterThanSteps(t *testing.T) {
	interp := newInterpreter(t, loop)
	disp := &fakeDisplay{}
	buzz := &fakeBuzzer{}
	m := New(log.NewTestLogger(t), interp, Config{
		Display:   disp,
		Buzzer:    buzz,
		StepRate:  10,
		TimerRate: 60,
	})

	assert.NoError(t, m.RunSteps(context.Background(), 3))
	assert.Equal(t, 18, disp.frames)
	assert.Len(t, buzz.updates, 18)
	// the sound timer is set to 3 by the second step and expires on the third tick after it
	expected := []bool{false, false, false, false, false, false, true, true, false}
	for i, active := range expected {
		assert.Equal(t, active, buzz.updates[i])
	}
}

func TestRunStepsHalts(t *testing.T) {
	interp := newInterpreter(t, []byte{
		0x60, 0x01, // ld V0, $01
		0x00, 0xEE, // ret
	})
	m := New(log.NewTestLogger(t), interp, Config{})

	err := m.RunSteps(context.Background(), 10)
	var machineErr *MachineError
	assert.True(t, errors.As(err, &machineErr))
	assert.Equal(t, uint16(0x202), machineErr.PC)
	assert.True(t, errors.Is(err, registers.ErrStackUnderflow))
}

func TestRunStepsUnknownInstruction(t *testing.T) {
	interp := newInterpreter(t, []byte{0xFF, 0xFF})
	m := New(log.NewTestLogger(t), interp, Config{})

	err := m.RunSteps(context.Background(), 10)
	var unknown *decoder.UnknownInstructionError
	assert.True(t, errors.As(err, &unknown))
	assert.Equal(t, uint16(0xFFFF), unknown.Word)
}

func TestRenderError(t *testing.T) {
	interp := newInterpreter(t, loop)
	disp := &fakeDisplay{err: errors.New("terminal closed")}
	m := New(log.NewTestLogger(t), interp, Config{Display: disp, StepRate: 10, TimerRate: 10})

	err := m.RunSteps(context.Background(), 5)
	assert.ErrorContains(t, err, "terminal closed")
	assert.Equal(t, 1, disp.frames)
}

var waitForKey = []byte{
	0xF3, 0x0A, // ld V3, K
	0x12, 0x02, // jp $202
}

func TestKeypad(t *testing.T) {
	interp := newInterpreter(t, waitForKey)
	keys := &fakeKeypad{}
	m := New(log.NewTestLogger(t), interp, Config{Keypad: keys})

	assert.NoError(t, m.RunSteps(context.Background(), 3))
	assert.True(t, interp.Waiting())

	keys.key = interpreter.KeyOf(0xC)
	assert.NoError(t, m.RunSteps(context.Background(), 1))
	assert.False(t, interp.Waiting())
	assert.Equal(t, uint8(0xC), interp.Registers().V[3])
}

func TestPressKeyIsHeld(t *testing.T) {
	interp := newInterpreter(t, waitForKey)
	m := New(log.NewTestLogger(t), interp, Config{KeyHold: time.Second})
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return now }

	assert.NoError(t, m.RunSteps(context.Background(), 1))
	m.PressKey(interpreter.KeyOf(0x5))
	assert.NoError(t, m.RunSteps(context.Background(), 1))
	assert.Equal(t, uint8(0x5), interp.Registers().V[3])
	assert.Equal(t, interpreter.KeyOf(0x5), m.currentKey())

	now = now.Add(2 * time.Second)
	assert.Equal(t, interpreter.NoKey, m.currentKey())
}

func TestRunCancelled(t *testing.T) {
	interp := newInterpreter(t, loop)
	disp := &fakeDisplay{}
	m := New(log.NewTestLogger(t), interp, Config{Display: disp, StepRate: 1000, TimerRate: 100})

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	err := m.Run(ctx)
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
	assert.True(t, interp.Steps() > 0)
}

func TestRunHalts(t *testing.T) {
	interp := newInterpreter(t, []byte{0x00, 0xEE})
	m := New(log.NewTestLogger(t), interp, Config{StepRate: 1000})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err := m.Run(ctx)
	var machineErr *MachineError
	assert.True(t, errors.As(err, &machineErr))
	assert.Equal(t, uint16(0x200), machineErr.PC)
}
