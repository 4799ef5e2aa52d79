package decoder

import (
	"errors"
	"testing"

	"github.com/retroenv/retrogolib/arch/cpu/chip8"
	"github.com/retroenv/retrogolib/assert"
)

func TestDecodeFields(t *testing.T) {
	ins, err := Decode(0x6A0F)
	assert.NoError(t, err)
	assert.Equal(t, OpLdImm, ins.Op)
	assert.Equal(t, uint8(0xA), ins.X)
	assert.Equal(t, uint8(0x0F), ins.Immediate)
	assert.Equal(t, chip8.LdInst, ins.Mnemonic())
}

//nolint:funlen // test tables can be long
func TestDecodeAllOperations(t *testing.T) {
	tests := []struct {
		word      uint16
		op        Op
		address   uint16
		x, y      uint8
		immediate uint8
		variant   uint8
	}{
		{word: 0x00E0, op: OpCls, variant: 0xE0},
		{word: 0x00EE, op: OpRet, variant: 0xEE},
		{word: 0x1234, op: OpJp, address: 0x234},
		{word: 0x2ABC, op: OpCall, address: 0xABC},
		{word: 0x3142, op: OpSeImm, x: 1, immediate: 0x42},
		{word: 0x4E01, op: OpSneImm, x: 0xE, immediate: 0x01},
		{word: 0x5120, op: OpSeReg, x: 1, y: 2},
		{word: 0x63FF, op: OpLdImm, x: 3, immediate: 0xFF},
		{word: 0x7401, op: OpAddImm, x: 4, immediate: 0x01},
		{word: 0x8120, op: OpLdReg, x: 1, y: 2},
		{word: 0x8121, op: OpOr, x: 1, y: 2, variant: 1},
		{word: 0x8122, op: OpAnd, x: 1, y: 2, variant: 2},
		{word: 0x8123, op: OpXor, x: 1, y: 2, variant: 3},
		{word: 0x8124, op: OpAddReg, x: 1, y: 2, variant: 4},
		{word: 0x8125, op: OpSub, x: 1, y: 2, variant: 5},
		{word: 0x8126, op: OpShr, x: 1, y: 2, variant: 6},
		{word: 0x8127, op: OpSubn, x: 1, y: 2, variant: 7},
		{word: 0x812E, op: OpShl, x: 1, y: 2, variant: 0xE},
		{word: 0x9AB0, op: OpSneReg, x: 0xA, y: 0xB},
		{word: 0xA123, op: OpLdI, address: 0x123},
		{word: 0xB400, op: OpJpV0, address: 0x400},
		{word: 0xC70F, op: OpRnd, x: 7, immediate: 0x0F},
		{word: 0xD125, op: OpDrw, x: 1, y: 2, variant: 5},
		{word: 0xE39E, op: OpSkp, x: 3, variant: 0x9E},
		{word: 0xE3A1, op: OpSknp, x: 3, variant: 0xA1},
		{word: 0xF507, op: OpLdVxDT, x: 5, variant: 0x07},
		{word: 0xF50A, op: OpLdKey, x: 5, variant: 0x0A},
		{word: 0xF515, op: OpLdDTVx, x: 5, variant: 0x15},
		{word: 0xF518, op: OpLdSTVx, x: 5, variant: 0x18},
		{word: 0xF51E, op: OpAddI, x: 5, variant: 0x1E},
		{word: 0xF529, op: OpLdF, x: 5, variant: 0x29},
		{word: 0xF533, op: OpLdB, x: 5, variant: 0x33},
		{word: 0xF555, op: OpStore, x: 5, variant: 0x55},
		{word: 0xF565, op: OpLoad, x: 5, variant: 0x65},
	}

	for _, tt := range tests {
		t.Run(Instruction{Word: tt.word}.String(), func(t *testing.T) {
			ins, err := Decode(tt.word)
			assert.NoError(t, err)
			assert.Equal(t, tt.op, ins.Op)
			assert.Equal(t, tt.word, ins.Word)
			assert.Equal(t, tt.address, ins.Address)
			assert.Equal(t, tt.x, ins.X)
			assert.Equal(t, tt.y, ins.Y)
			assert.Equal(t, tt.immediate, ins.Immediate)
			assert.Equal(t, tt.variant, ins.Variant)
			assert.NotNil(t, ins.Mnemonic())
		})
	}
}

func TestDecodeOpcodeTable(t *testing.T) {
	var count int
	for nibble, opcodes := range chip8.Opcodes {
		for _, opcode := range opcodes {
			count++
			ins, err := Decode(opcode.Info.Value)
			assert.NoError(t, err)
			assert.Equal(t, uint16(nibble), ins.Word>>12)
			assert.True(t, ins.Op != OpInvalid)
			assert.Equal(t, opcode.Instruction, ins.Mnemonic())
			assert.Equal(t, opcode.Instruction.Name, ins.Name())
		}
	}
	assert.Equal(t, len(opsByOpcode), count)
}

func TestDecodeUnknown(t *testing.T) {
	tests := []struct {
		name string
		word uint16
	}{
		{"system call", 0x0123},
		{"zero word", 0x0000},
		{"skip register with variant", 0x5121},
		{"alu variant 8", 0x8128},
		{"alu variant F", 0x812F},
		{"skip not equal with variant", 0x9121},
		{"key group variant", 0xE100},
		{"misc group variant", 0xF1FF},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ins, err := Decode(tt.word)
			assert.Error(t, err)

			var unknown *UnknownInstructionError
			assert.True(t, errors.As(err, &unknown))
			assert.Equal(t, tt.word, unknown.Word)
			assert.Equal(t, OpInvalid, ins.Op)
			assert.Nil(t, ins.Mnemonic())
		})
	}
}

func TestInstructionClassification(t *testing.T) {
	tests := []struct {
		word     uint16
		jump     bool
		call     bool
		ret      bool
		skip     bool
		dataRef  bool
		target   uint16
		isTarget bool
	}{
		{word: 0x1234, jump: true, target: 0x234, isTarget: true},
		{word: 0xB234, jump: true},
		{word: 0x2300, call: true, target: 0x300, isTarget: true},
		{word: 0x00EE, ret: true},
		{word: 0x3100, skip: true},
		{word: 0x4100, skip: true},
		{word: 0x5120, skip: true},
		{word: 0x9120, skip: true},
		{word: 0xE19E, skip: true},
		{word: 0xE1A1, skip: true},
		{word: 0xA2F0, dataRef: true, target: 0x2F0, isTarget: true},
		{word: 0x6100},
		{word: 0x00E0},
	}

	for _, tt := range tests {
		ins, err := Decode(tt.word)
		assert.NoError(t, err)

		t.Run(ins.String(), func(t *testing.T) {
			assert.Equal(t, tt.jump, ins.IsJump())
			assert.Equal(t, tt.call, ins.IsCall())
			assert.Equal(t, tt.ret, ins.IsReturn())
			assert.Equal(t, tt.skip, ins.IsSkip())
			assert.Equal(t, tt.dataRef, ins.IsDataReference())

			target, ok := ins.Target()
			assert.Equal(t, tt.isTarget, ok)
			assert.Equal(t, tt.target, target)
		})
	}
}
