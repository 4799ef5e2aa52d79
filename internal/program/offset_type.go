package program

import "strings"

// OffsetType is a set of flags describing how a program byte is used.
type OffsetType uint8

// Offset type flags, an offset can have multiple of them set.
const (
	UnknownOffset OffsetType = 0
	CodeOffset    OffsetType = 1 << iota
	DataOffset
	CodeAsData      // second byte of an instruction that is also branched to
	CallDestination // first byte of a subroutine
	JumpDestination
)

var offsetTypeNames = []struct {
	typ  OffsetType
	name string
}{
	{CodeOffset, "code"},
	{DataOffset, "data"},
	{CodeAsData, "code_as_data"},
	{CallDestination, "call"},
	{JumpDestination, "jump"},
}

// String returns the names of all set flags joined by '|'.
func (t OffsetType) String() string {
	if t == UnknownOffset {
		return "unknown"
	}
	var names []string
	for _, n := range offsetTypeNames {
		if t&n.typ != 0 {
			names = append(names, n.name)
		}
	}
	return strings.Join(names, "|")
}

// IsType returns whether any of the given flags is set.
func (o *Offset) IsType(typ OffsetType) bool {
	return o.Type&typ != 0
}

// SetType sets the given flags.
func (o *Offset) SetType(typ OffsetType) {
	o.Type |= typ
}

// ClearType unsets the given flags.
func (o *Offset) ClearType(typ OffsetType) {
	o.Type &^= typ
}

// IsInstruction returns whether the offset is the first byte of a traced
// instruction, it then holds both instruction bytes.
func (o *Offset) IsInstruction() bool {
	return o.IsType(CodeOffset) && len(o.Data) != 0
}

// IsInstructionTail returns whether the offset is the second byte of a traced
// instruction. Its data is part of the preceding offset.
func (o *Offset) IsInstructionTail() bool {
	return o.IsType(CodeOffset) && len(o.Data) == 0
}
