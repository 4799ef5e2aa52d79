package executor

import (
	"github.com/retroenv/retrochip8/internal/decoder"
	"github.com/retroenv/retrochip8/internal/keypad"
)

func ldImm(s *State, ins decoder.Instruction, _ keypad.Key) (Result, error) {
	s.Registers.V[ins.X] = ins.Immediate
	return advanceResult()
}

// addImm adds without touching the carry flag.
func addImm(s *State, ins decoder.Instruction, _ keypad.Key) (Result, error) {
	s.Registers.V[ins.X] += ins.Immediate
	return advanceResult()
}

func ldReg(s *State, ins decoder.Instruction, _ keypad.Key) (Result, error) {
	s.Registers.V[ins.X] = s.Registers.V[ins.Y]
	return advanceResult()
}

func or(s *State, ins decoder.Instruction, _ keypad.Key) (Result, error) {
	s.Registers.V[ins.X] |= s.Registers.V[ins.Y]
	return advanceResult()
}

func and(s *State, ins decoder.Instruction, _ keypad.Key) (Result, error) {
	s.Registers.V[ins.X] &= s.Registers.V[ins.Y]
	return advanceResult()
}

func xor(s *State, ins decoder.Instruction, _ keypad.Key) (Result, error) {
	s.Registers.V[ins.X] ^= s.Registers.V[ins.Y]
	return advanceResult()
}

// The flag producing instructions read their operands before writing Vx, and
// write VF last, so that the flag wins when Vx is VF.

// addReg adds Vy to Vx, VF is set on carry.
func addReg(s *State, ins decoder.Instruction, _ keypad.Key) (Result, error) {
	vx, vy := s.Registers.V[ins.X], s.Registers.V[ins.Y]
	sum := uint16(vx) + uint16(vy)
	s.Registers.V[ins.X] = uint8(sum)
	s.Registers.SetFlag(sum > 0xFF)
	return advanceResult()
}

// sub subtracts Vy from Vx, VF is set if there was no borrow.
func sub(s *State, ins decoder.Instruction, _ keypad.Key) (Result, error) {
	vx, vy := s.Registers.V[ins.X], s.Registers.V[ins.Y]
	s.Registers.V[ins.X] = vx - vy
	s.Registers.SetFlag(vx >= vy)
	return advanceResult()
}

// subn sets Vx to Vy minus Vx, VF is set if there was no borrow.
func subn(s *State, ins decoder.Instruction, _ keypad.Key) (Result, error) {
	vx, vy := s.Registers.V[ins.X], s.Registers.V[ins.Y]
	s.Registers.V[ins.X] = vy - vx
	s.Registers.SetFlag(vy >= vx)
	return advanceResult()
}

// shr shifts Vx right, VF receives the shifted out bit.
func shr(s *State, ins decoder.Instruction, _ keypad.Key) (Result, error) {
	vx := s.Registers.V[ins.X]
	s.Registers.V[ins.X] = vx >> 1
	s.Registers.SetFlag(vx&0x01 != 0)
	return advanceResult()
}

// shl shifts Vx left, VF receives the shifted out bit.
func shl(s *State, ins decoder.Instruction, _ keypad.Key) (Result, error) {
	vx := s.Registers.V[ins.X]
	s.Registers.V[ins.X] = vx << 1
	s.Registers.SetFlag(vx&0x80 != 0)
	return advanceResult()
}

// rnd sets Vx to a random byte masked with the immediate.
func rnd(s *State, ins decoder.Instruction, _ keypad.Key) (Result, error) {
	s.Registers.V[ins.X] = uint8(s.Random.Intn(0x100)) & ins.Immediate
	return advanceResult()
}
