package decoder

import (
	"testing"

	"github.com/retroenv/retrogolib/arch/cpu/chip8"
	"github.com/retroenv/retrogolib/assert"
)

func TestInstructionString(t *testing.T) {
	tests := []struct {
		word uint16
		want string
	}{
		{0x00E0, chip8.ClsName},
		{0x00EE, chip8.RetName},
		{0x1234, chip8.JpName + " $234"},
		{0xB234, chip8.JpName + " V0, $234"},
		{0x2300, chip8.CallName + " $300"},
		{0x3234, chip8.SeName + " V2, $34"},
		{0x5120, chip8.SeName + " V1, V2"},
		{0x6A0F, chip8.LdName + " VA, $0F"},
		{0x8AB0, chip8.LdName + " VA, VB"},
		{0xA123, chip8.LdName + " I, $123"},
		{0x7101, chip8.AddName + " V1, $01"},
		{0x8124, chip8.AddName + " V1, V2"},
		{0x8127, chip8.SubnName + " V1, V2"},
		{0x8106, chip8.ShrName + " V1"},
		{0xC3FF, chip8.RndName + " V3, $FF"},
		{0xD125, chip8.DrwName + " V1, V2, $5"},
		{0xE29E, chip8.SkpName + " V2"},
		{0xF107, chip8.LdName + " V1, DT"},
		{0xF10A, chip8.LdName + " V1, K"},
		{0xF115, chip8.LdName + " DT, V1"},
		{0xF118, chip8.LdName + " ST, V1"},
		{0xF11E, chip8.AddName + " I, V1"},
		{0xF129, chip8.LdName + " F, V1"},
		{0xF133, chip8.LdName + " B, V1"},
		{0xF155, chip8.LdName + " [I], V1"},
		{0xF165, chip8.LdName + " V1, [I]"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			ins, err := Decode(tt.word)
			assert.NoError(t, err)
			assert.Equal(t, tt.want, ins.String())
		})
	}
}

func TestInvalidInstructionString(t *testing.T) {
	ins, err := Decode(0x0123)
	assert.Error(t, err)
	assert.Equal(t, ".word $0123", ins.String())
}
