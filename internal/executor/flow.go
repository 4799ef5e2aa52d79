package executor

import (
	"github.com/retroenv/retrochip8/internal/decoder"
	"github.com/retroenv/retrochip8/internal/keypad"
)

// cls clears the frame buffer.
func cls(s *State, _ decoder.Instruction, _ keypad.Key) (Result, error) {
	s.Display.Clear()
	return advanceResult()
}

// ret returns from a subroutine.
func ret(s *State, _ decoder.Instruction, _ keypad.Key) (Result, error) {
	address, err := s.Registers.Stack.Pop()
	if err != nil {
		return Result{}, err
	}
	return jumpTo(address)
}

// jp jumps to the address.
func jp(_ *State, ins decoder.Instruction, _ keypad.Key) (Result, error) {
	return jumpTo(ins.Address)
}

// call pushes the address of the following instruction and jumps to the subroutine.
func call(s *State, ins decoder.Instruction, _ keypad.Key) (Result, error) {
	if err := s.Registers.Stack.Push(s.Registers.PC + instructionSize); err != nil {
		return Result{}, err
	}
	return jumpTo(ins.Address)
}

// jpV0 jumps to the address plus V0.
func jpV0(s *State, ins decoder.Instruction, _ keypad.Key) (Result, error) {
	return jumpTo(uint16(s.Registers.V[0]) + ins.Address)
}

func seImm(s *State, ins decoder.Instruction, _ keypad.Key) (Result, error) {
	return skipIf(s.Registers.V[ins.X] == ins.Immediate)
}

func sneImm(s *State, ins decoder.Instruction, _ keypad.Key) (Result, error) {
	return skipIf(s.Registers.V[ins.X] != ins.Immediate)
}

func seReg(s *State, ins decoder.Instruction, _ keypad.Key) (Result, error) {
	return skipIf(s.Registers.V[ins.X] == s.Registers.V[ins.Y])
}

func sneReg(s *State, ins decoder.Instruction, _ keypad.Key) (Result, error) {
	return skipIf(s.Registers.V[ins.X] != s.Registers.V[ins.Y])
}

// skp skips if the key in Vx is pressed.
func skp(s *State, ins decoder.Instruction, key keypad.Key) (Result, error) {
	return skipIf(key.Is(s.Registers.V[ins.X]))
}

// sknp skips if the key in Vx is not pressed, no known key counts as not pressed.
func sknp(s *State, ins decoder.Instruction, key keypad.Key) (Result, error) {
	return skipIf(!key.Is(s.Registers.V[ins.X]))
}

// ldKey suspends execution until a key is pressed.
func ldKey(_ *State, ins decoder.Instruction, _ keypad.Key) (Result, error) {
	return Result{
		Next:        Advance(),
		AwaitKey:    true,
		KeyRegister: ins.X,
	}, nil
}
