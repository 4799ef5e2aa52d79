package executor

import (
	"github.com/retroenv/retrochip8/internal/decoder"
	"github.com/retroenv/retrochip8/internal/keypad"
	"github.com/retroenv/retrochip8/internal/memory"
)

func ldI(s *State, ins decoder.Instruction, _ keypad.Key) (Result, error) {
	s.Registers.I = ins.Address
	return advanceResult()
}

func addI(s *State, ins decoder.Instruction, _ keypad.Key) (Result, error) {
	s.Registers.I += uint16(s.Registers.V[ins.X])
	return advanceResult()
}

// ldF points I at the built-in glyph for the digit in Vx.
func ldF(s *State, ins decoder.Instruction, _ keypad.Key) (Result, error) {
	s.Registers.I = memory.GlyphAddress(s.Registers.V[ins.X])
	return advanceResult()
}

// ldB stores the decimal digits of Vx at I, I+1 and I+2.
func ldB(s *State, ins decoder.Instruction, _ keypad.Key) (Result, error) {
	vx := s.Registers.V[ins.X]
	i := s.Registers.I
	s.Memory.Write(i, vx/100)
	s.Memory.Write(i+1, vx/10%10)
	s.Memory.Write(i+2, vx%10)
	return advanceResult()
}

// store copies V0 through Vx to memory starting at I. I is not modified.
func store(s *State, ins decoder.Instruction, _ keypad.Key) (Result, error) {
	s.Memory.WriteBlock(s.Registers.I, s.Registers.V[:int(ins.X)+1])
	return advanceResult()
}

// load copies memory starting at I to V0 through Vx. I is not modified.
func load(s *State, ins decoder.Instruction, _ keypad.Key) (Result, error) {
	s.Memory.ReadBlock(s.Registers.I, s.Registers.V[:int(ins.X)+1])
	return advanceResult()
}

func ldVxDT(s *State, ins decoder.Instruction, _ keypad.Key) (Result, error) {
	s.Registers.V[ins.X] = s.Timers.Delay
	return advanceResult()
}

func ldDTVx(s *State, ins decoder.Instruction, _ keypad.Key) (Result, error) {
	s.Timers.Delay = s.Registers.V[ins.X]
	return advanceResult()
}

func ldSTVx(s *State, ins decoder.Instruction, _ keypad.Key) (Result, error) {
	s.Timers.Sound = s.Registers.V[ins.X]
	return advanceResult()
}

// drw draws an n byte sprite from memory at I to the coordinates in Vx and Vy.
// VF is cleared first and set if any set pixel was erased.
func drw(s *State, ins decoder.Instruction, _ keypad.Key) (Result, error) {
	x, y := s.Registers.V[ins.X], s.Registers.V[ins.Y]
	s.Registers.SetFlag(false)

	rows := make([]byte, ins.Variant)
	s.Memory.ReadBlock(s.Registers.I, rows)
	collision := s.Display.DrawSprite(x, y, rows)
	s.Registers.SetFlag(collision)
	return advanceResult()
}
