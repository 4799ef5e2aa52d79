// Package trace prints every executed instruction together with the registers
// it changed.
package trace

import (
	"fmt"
	"io"
	"strings"

	"github.com/mgutz/ansi"
	"github.com/retroenv/retrochip8/internal/interpreter"
	"github.com/retroenv/retrochip8/internal/registers"
)

var (
	colorAddress = ansi.ColorCode("default+d:default")
	colorChanged = ansi.ColorCode("default+bu:default")
)

// Change is a register whose value changed by executing an instruction.
type Change struct {
	Name     string
	Old, New uint16
	Width    int // number of hex digits
}

func (c Change) String(color bool) string {
	value := fmt.Sprintf("%0*X", c.Width, c.New)
	if !color {
		return fmt.Sprintf("%s=%s", c.Name, value)
	}
	return fmt.Sprintf("%s=%s%s%s", c.Name, colorChanged, value, ansi.Reset)
}

// Tracer writes a line per executed instruction.
type Tracer struct {
	w     io.Writer
	color bool

	prev registers.Registers
	err  error
}

// New returns a tracer writing to w. The previous register state starts as the
// reset state of the interpreter.
func New(w io.Writer, color bool) *Tracer {
	return &Tracer{
		w:     w,
		color: color,
		prev:  *registers.New(),
	}
}

// Hook is passed to the interpreter as step hook.
func (t *Tracer) Hook(tr interpreter.Trace) {
	if t.err != nil {
		return
	}

	changes := Diff(t.prev, tr.Registers)
	t.prev = tr.Registers

	parts := make([]string, 0, len(changes))
	for _, c := range changes {
		parts = append(parts, c.String(t.color))
	}

	address := fmt.Sprintf("%03X", tr.PC)
	if t.color {
		address = colorAddress + address + ansi.Reset
	}
	line := fmt.Sprintf("%s  %04X  %-20s %s", address, tr.Instruction.Word, tr.Instruction.String(), strings.Join(parts, " "))
	if tr.AwaitingKey {
		line += " (waiting for key)"
	}
	_, t.err = fmt.Fprintln(t.w, strings.TrimRight(line, " "))
}

// Err returns the first error that occurred writing the trace.
func (t *Tracer) Err() error {
	return t.err
}

// Diff returns the registers that differ between the two register files.
// The program counter is not included as it changes with every instruction.
func Diff(old, updated registers.Registers) []Change {
	var changes []Change
	for i := range old.V {
		if old.V[i] != updated.V[i] {
			changes = append(changes, Change{
				Name:  fmt.Sprintf("V%X", i),
				Old:   uint16(old.V[i]),
				New:   uint16(updated.V[i]),
				Width: 2,
			})
		}
	}
	if old.I != updated.I {
		changes = append(changes, Change{Name: "I", Old: old.I, New: updated.I, Width: 3})
	}
	oldSP, newSP := old.Stack.Depth(), updated.Stack.Depth()
	if oldSP != newSP {
		changes = append(changes, Change{Name: "SP", Old: uint16(oldSP), New: uint16(newSP), Width: 2})
	}
	return changes
}
