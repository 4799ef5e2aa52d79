package decoder

import (
	"fmt"

	"github.com/retroenv/retrogolib/arch/cpu/chip8"
)

// UnknownInstructionError is returned for words that do not encode a valid instruction.
type UnknownInstructionError struct {
	Word uint16
}

func (e *UnknownInstructionError) Error() string {
	return fmt.Sprintf("unknown instruction $%04X", e.Word)
}

// opsByOpcode maps the retrogolib opcode of every executable operation to the operation.
var opsByOpcode = map[chip8.OpcodeInfo]Op{
	chip8.Opcode00E0: OpCls,
	chip8.Opcode00EE: OpRet,
	chip8.Opcode1000: OpJp,
	chip8.Opcode2000: OpCall,
	chip8.Opcode3000: OpSeImm,
	chip8.Opcode4000: OpSneImm,
	chip8.Opcode5000: OpSeReg,
	chip8.Opcode6000: OpLdImm,
	chip8.Opcode7000: OpAddImm,
	chip8.Opcode8000: OpLdReg,
	chip8.Opcode8001: OpOr,
	chip8.Opcode8002: OpAnd,
	chip8.Opcode8003: OpXor,
	chip8.Opcode8004: OpAddReg,
	chip8.Opcode8005: OpSub,
	chip8.Opcode8006: OpShr,
	chip8.Opcode8007: OpSubn,
	chip8.Opcode800E: OpShl,
	chip8.Opcode9000: OpSneReg,
	chip8.OpcodeA000: OpLdI,
	chip8.OpcodeB000: OpJpV0,
	chip8.OpcodeC000: OpRnd,
	chip8.OpcodeD000: OpDrw,
	chip8.OpcodeE09E: OpSkp,
	chip8.OpcodeE0A1: OpSknp,
	chip8.OpcodeF007: OpLdVxDT,
	chip8.OpcodeF00A: OpLdKey,
	chip8.OpcodeF015: OpLdDTVx,
	chip8.OpcodeF018: OpLdSTVx,
	chip8.OpcodeF01E: OpAddI,
	chip8.OpcodeF029: OpLdF,
	chip8.OpcodeF033: OpLdB,
	chip8.OpcodeF055: OpStore,
	chip8.OpcodeF065: OpLoad,
}

// Decode parses an instruction word. The operand fields of the word's group are
// populated even if the word is not a valid instruction.
func Decode(word uint16) (Instruction, error) {
	ins := Instruction{Word: word}
	decodeOperands(&ins)

	opcode, ok := lookupOpcode(word)
	if !ok {
		return ins, &UnknownInstructionError{Word: word}
	}
	op, ok := opsByOpcode[opcode.Info]
	if !ok {
		return ins, &UnknownInstructionError{Word: word}
	}

	ins.Op = op
	ins.mnemonic = opcode.Instruction
	return ins, nil
}

// lookupOpcode returns the opcode matching the word from the opcode table of
// its leading nibble.
func lookupOpcode(word uint16) (chip8.Opcode, bool) {
	for _, opcode := range chip8.Opcodes[word>>12] {
		if opcode.Info.Mask&word == opcode.Info.Value {
			return opcode, true
		}
	}
	return chip8.Opcode{}, false
}

// decodeOperands extracts the operand fields according to the instruction group.
func decodeOperands(ins *Instruction) {
	word := ins.Word
	low := uint8(word)

	switch word >> 12 {
	case 0x0:
		ins.Variant = low

	case 0x1, 0x2, 0xA, 0xB:
		ins.Address = word & 0x0FFF

	case 0x3, 0x4, 0x6, 0x7, 0xC:
		ins.X = registerX(word)
		ins.Immediate = low

	case 0x5, 0x8, 0x9, 0xD:
		ins.X = registerX(word)
		ins.Y = registerY(word)
		ins.Variant = low & 0x0F

	case 0xE, 0xF:
		ins.X = registerX(word)
		ins.Variant = low
	}
}

// registerX extracts the X register nibble from an instruction word.
func registerX(word uint16) uint8 {
	return uint8((word & 0x0F00) >> 8)
}

// registerY extracts the Y register nibble from an instruction word.
func registerY(word uint16) uint8 {
	return uint8((word & 0x00F0) >> 4)
}
