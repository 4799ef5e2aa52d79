// Package registers implements the CHIP-8 register file and call stack.
package registers

import (
	"errors"
	"fmt"
)

const (
	// Count is the number of general purpose V registers.
	Count = 16

	// VF is the index of the register that doubles as carry, borrow and collision flag.
	VF = 0xF

	// StackSize is the number of return addresses the call stack can hold.
	StackSize = 32

	// ResetPC is the program counter value after reset.
	ResetPC = 0x200
)

var (
	// ErrStackOverflow is returned when a call is made with a full stack.
	ErrStackOverflow = errors.New("stack overflow")
	// ErrStackUnderflow is returned when a return is made with an empty stack.
	ErrStackUnderflow = errors.New("stack underflow")
)

// Registers contains the complete register file of the virtual machine.
type Registers struct {
	V  [Count]uint8 // general purpose registers V0-VF
	I  uint16       // index register
	PC uint16       // program counter

	Stack Stack
}

// New returns a register file in reset state.
func New() *Registers {
	return &Registers{
		PC: ResetPC,
	}
}

// SetFlag sets VF to 1 if the flag is set, otherwise to 0.
func (r *Registers) SetFlag(set bool) {
	if set {
		r.V[VF] = 1
		return
	}
	r.V[VF] = 0
}

// String returns a single line dump of the register file.
func (r *Registers) String() string {
	return fmt.Sprintf("PC=%03X I=%03X SP=%02d V=% X", r.PC, r.I, r.Stack.Depth(), r.V[:])
}

// Stack is a fixed capacity stack of return addresses.
type Stack struct {
	entries [StackSize]uint16
	sp      int
}

// Push stores a return address on the stack.
func (s *Stack) Push(address uint16) error {
	if s.sp >= len(s.entries) {
		return fmt.Errorf("pushing return address %03X: %w", address, ErrStackOverflow)
	}
	s.entries[s.sp] = address
	s.sp++
	return nil
}

// Pop removes and returns the most recently pushed return address.
func (s *Stack) Pop() (uint16, error) {
	if s.sp == 0 {
		return 0, ErrStackUnderflow
	}
	s.sp--
	return s.entries[s.sp], nil
}

// Depth returns the number of entries on the stack.
func (s *Stack) Depth() int {
	return s.sp
}

// Entries returns a copy of the used part of the stack, oldest entry first.
func (s *Stack) Entries() []uint16 {
	entries := make([]uint16, s.sp)
	copy(entries, s.entries[:s.sp])
	return entries
}
