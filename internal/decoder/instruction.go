package decoder

import (
	"github.com/retroenv/retrogolib/arch/cpu/chip8"
)

// Op identifies the operation of a decoded instruction.
type Op uint8

// All executable operations, in opcode order.
const (
	OpInvalid Op = iota
	OpCls        // 00E0
	OpRet        // 00EE
	OpJp         // 1nnn
	OpCall       // 2nnn
	OpSeImm      // 3xkk
	OpSneImm     // 4xkk
	OpSeReg      // 5xy0
	OpLdImm      // 6xkk
	OpAddImm     // 7xkk
	OpLdReg      // 8xy0
	OpOr         // 8xy1
	OpAnd        // 8xy2
	OpXor        // 8xy3
	OpAddReg     // 8xy4
	OpSub        // 8xy5
	OpShr        // 8xy6
	OpSubn       // 8xy7
	OpShl        // 8xyE
	OpSneReg     // 9xy0
	OpLdI        // Annn
	OpJpV0       // Bnnn
	OpRnd        // Cxkk
	OpDrw        // Dxyn
	OpSkp        // Ex9E
	OpSknp       // ExA1
	OpLdVxDT     // Fx07
	OpLdKey      // Fx0A
	OpLdDTVx     // Fx15
	OpLdSTVx     // Fx18
	OpAddI       // Fx1E
	OpLdF        // Fx29
	OpLdB        // Fx33
	OpStore      // Fx55
	OpLoad       // Fx65
)

// Instruction is a decoded instruction word. Only the fields belonging to the
// instruction group of the word are populated, see the package documentation.
type Instruction struct {
	Op   Op
	Word uint16 // raw instruction word

	Address   uint16 // 12-bit address operand
	X         uint8  // first register operand
	Y         uint8  // second register operand
	Immediate uint8  // 8-bit immediate operand
	Variant   uint8  // operation selector within the group, or sprite height for DRW

	mnemonic *chip8.Instruction
}

// Mnemonic returns the retrogolib instruction definition of the operation,
// nil for words that are not valid instructions.
func (i Instruction) Mnemonic() *chip8.Instruction {
	return i.mnemonic
}

// Name returns the instruction name.
func (i Instruction) Name() string {
	ins := i.Mnemonic()
	if ins == nil {
		return ""
	}
	return ins.Name
}

// IsJump returns true if the instruction is an unconditional jump.
func (i Instruction) IsJump() bool {
	return i.Op == OpJp || i.Op == OpJpV0
}

// IsCall returns true if the instruction is a subroutine call.
func (i Instruction) IsCall() bool {
	return i.Op == OpCall
}

// IsReturn returns true if the instruction returns from a subroutine.
func (i Instruction) IsReturn() bool {
	return i.Op == OpRet
}

// IsSkip returns true if the instruction conditionally skips the next instruction.
func (i Instruction) IsSkip() bool {
	ins := i.Mnemonic()
	if ins == nil {
		return false
	}
	return chip8.SkipInstructions.Contains(ins.Name)
}

// IsDataReference returns true if the instruction points the index register at data.
func (i Instruction) IsDataReference() bool {
	return i.Op == OpLdI
}

// Target returns the address operand of jump, call and index load instructions.
// The boolean is false if the target is not statically known, which is the case
// for the register relative jump.
func (i Instruction) Target() (uint16, bool) {
	switch i.Op {
	case OpJp, OpCall, OpLdI:
		return i.Address, true
	default:
		return 0, false
	}
}
