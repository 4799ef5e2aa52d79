package executor

import (
	"github.com/retroenv/retrochip8/internal/memory"
)

// instructionSize is the size of every CHIP-8 instruction in bytes.
const instructionSize = 2

type nextPCKind uint8

const (
	advance nextPCKind = iota
	skip
	setTo
)

// NextPC describes how the program counter changes after an instruction.
// It is returned by every handler and applied exactly once by the caller.
type NextPC struct {
	kind    nextPCKind
	address uint16
}

// Advance moves to the following instruction.
func Advance() NextPC {
	return NextPC{kind: advance}
}

// Skip moves past the following instruction.
func Skip() NextPC {
	return NextPC{kind: skip}
}

// SetTo continues execution at the given address.
func SetTo(address uint16) NextPC {
	return NextPC{kind: setTo, address: address}
}

// Apply returns the new program counter for the given current one.
// The result is kept inside the 12-bit address space.
func (n NextPC) Apply(pc uint16) uint16 {
	switch n.kind {
	case skip:
		pc += 2 * instructionSize
	case setTo:
		pc = n.address
	default:
		pc += instructionSize
	}
	return pc & memory.AddressMask
}

// IsJump returns whether the program counter is set explicitly.
func (n NextPC) IsJump() bool {
	return n.kind == setTo
}
