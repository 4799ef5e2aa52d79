package decoder

import (
	"fmt"
)

// String returns the instruction formatted as assembly code, for example
// "drw V1, V2, $5". Invalid instructions are formatted as a data word.
func (i Instruction) String() string {
	name := i.Name()
	if name == "" {
		return fmt.Sprintf(".word $%04X", i.Word)
	}
	if params := i.formatParams(); params != "" {
		return fmt.Sprintf("%s %s", name, params)
	}
	return name
}

// formatParams returns the formatted parameter string of the instruction.
func (i Instruction) formatParams() string {
	switch i.Op {
	case OpCls, OpRet:
		return "" // No parameters
	case OpJp, OpCall:
		return fmt.Sprintf("$%03X", i.Address)
	case OpJpV0:
		return fmt.Sprintf("V0, $%03X", i.Address)
	case OpLdI:
		return fmt.Sprintf("I, $%03X", i.Address)
	case OpSeImm, OpSneImm, OpLdImm, OpAddImm, OpRnd:
		return fmt.Sprintf("V%X, $%02X", i.X, i.Immediate)
	case OpSeReg, OpSneReg, OpLdReg, OpOr, OpAnd, OpXor, OpAddReg, OpSub, OpSubn:
		return fmt.Sprintf("V%X, V%X", i.X, i.Y)
	case OpShr, OpShl, OpSkp, OpSknp:
		return fmt.Sprintf("V%X", i.X)
	case OpDrw:
		return fmt.Sprintf("V%X, V%X, $%X", i.X, i.Y, i.Variant)
	}
	return i.formatLoadParams()
}

// formatLoadParams formats the FxNN load and store instructions.
func (i Instruction) formatLoadParams() string {
	switch i.Op {
	case OpLdVxDT:
		return fmt.Sprintf("V%X, DT", i.X)
	case OpLdKey:
		return fmt.Sprintf("V%X, K", i.X)
	case OpLdDTVx:
		return fmt.Sprintf("DT, V%X", i.X)
	case OpLdSTVx:
		return fmt.Sprintf("ST, V%X", i.X)
	case OpAddI:
		return fmt.Sprintf("I, V%X", i.X)
	case OpLdF:
		return fmt.Sprintf("F, V%X", i.X)
	case OpLdB:
		return fmt.Sprintf("B, V%X", i.X)
	case OpStore:
		return fmt.Sprintf("[I], V%X", i.X)
	case OpLoad:
		return fmt.Sprintf("V%X, [I]", i.X)
	}
	return ""
}
