package disasm

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/retroenv/retrochip8/internal/decoder"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrochip8/internal/program"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

var testROM = []byte{
	0x00, 0xE0, // 200: cls
	0xA2, 0x0E, // 202: ld I, $20E
	0x22, 0x08, // 204: call $208
	0x12, 0x06, // 206: jp $206
	0x30, 0x01, // 208: se V0, $01
	0x60, 0x05, // 20A: ld V0, $05
	0x00, 0xEE, // 20C: ret
	0xF0, 0x90, // 20E: sprite data
	0xFF, 0xFF, // 210: unreachable
}

func disassemble(t *testing.T, rom []byte, opts options.Disassembler) (*Disasm, *program.Program, string) {
	t.Helper()
	dis, err := New(log.NewTestLogger(t), rom, opts)
	assert.NoError(t, err)

	var buf bytes.Buffer
	app, err := dis.Process(context.Background(), &buf)
	assert.NoError(t, err)
	return dis, app, buf.String()
}

//nolint:funlen // test functions can be long
func TestDisassembleFlow(t *testing.T) {
	dis, app, output := disassemble(t, testROM, options.Disassembler{})

	tests := []struct {
		address uint16
		op      decoder.Op
	}{
		{0x200, decoder.OpCls},
		{0x202, decoder.OpLdI},
		{0x204, decoder.OpCall},
		{0x206, decoder.OpJp},
		{0x208, decoder.OpSeImm},
		{0x20A, decoder.OpLdImm},
		{0x20C, decoder.OpRet},
	}
	for _, tt := range tests {
		ins, ok := dis.Instruction(tt.address)
		assert.True(t, ok)
		assert.Equal(t, tt.op, ins.Op)
	}

	_, ok := dis.Instruction(0x20E)
	assert.False(t, ok)
	_, ok = dis.Instruction(0x210)
	assert.False(t, ok)

	assert.Equal(t, "Start", app.OffsetInfo(0x200).Label)
	assert.Equal(t, "_func_0208", app.OffsetInfo(0x208).Label)
	assert.Equal(t, "_label_0206", app.OffsetInfo(0x206).Label)
	assert.Equal(t, "_data_020e", app.OffsetInfo(0x20E).Label)
	assert.True(t, app.OffsetInfo(0x20E).IsType(program.DataOffset))
	assert.Equal(t, "_func_0208", app.OffsetInfo(0x204).BranchingTo)

	expected := []string{
		"Start:\n  cls\n  ld I, _data_020e\n  call _func_0208\n",
		"_label_0206:\n  jp _label_0206\n",
		"_func_0208:\n  se V0, $01\n  ld V0, $05\n  ret\n",
		"_data_020e:\n  .byte $f0, $90, $ff, $ff\n",
	}
	for _, s := range expected {
		assert.True(t, strings.Contains(output, s))
	}
}

func TestDisassembleComments(t *testing.T) {
	_, _, output := disassemble(t, testROM, options.NewDisassembler())

	assert.True(t, strings.Contains(output, fmt.Sprintf("  %-30s ; $0200  00 E0\n", "cls")))
	assert.True(t, strings.Contains(output, "; $020E\n"))
}

func TestDisassembleSkipPaths(t *testing.T) {
	rom := []byte{
		0xE1, 0x9E, // 200: skp V1
		0x12, 0x00, // 202: jp $200
		0x00, 0xEE, // 204: ret
	}
	dis, _, _ := disassemble(t, rom, options.Disassembler{})

	ins, ok := dis.Instruction(0x204)
	assert.True(t, ok)
	assert.Equal(t, decoder.OpRet, ins.Op)
}

func TestDisassembleUnknownInstruction(t *testing.T) {
	rom := []byte{
		0x60, 0x01, // 200: ld V0, $01
		0x51, 0x21, // 202: invalid
		0x00, 0xE0,
	}
	dis, _, output := disassemble(t, rom, options.Disassembler{})

	_, ok := dis.Instruction(0x202)
	assert.False(t, ok)
	_, ok = dis.Instruction(0x204)
	assert.False(t, ok)
	assert.True(t, strings.Contains(output, "  .byte $51, $21, $00, $e0\n"))
}

func TestDisassembleJumpIntoInstruction(t *testing.T) {
	rom := []byte{
		0x12, 0x04, // 200: jp $204
		0x12, 0x03, // 202: jp $203 (unreached)
		0x22, 0x05, // 204: call $205, into its own operand
		0x00, 0xEE, // 206: ret
	}
	dis, app, output := disassemble(t, rom, options.Disassembler{})

	_, ok := dis.Instruction(0x204)
	assert.True(t, ok)
	assert.True(t, strings.Contains(output, "call $205"))
	assert.Equal(t, "branch into instruction detected", app.OffsetInfo(0x204).Comment)
	assert.Equal(t, "", app.OffsetInfo(0x205).Label)
}

func TestNewEmpty(t *testing.T) {
	_, err := New(log.NewTestLogger(t), nil, options.Disassembler{})
	assert.Error(t, err)
}

func TestProcessCancelled(t *testing.T) {
	dis, err := New(log.NewTestLogger(t), testROM, options.Disassembler{})
	assert.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = dis.Process(ctx, &bytes.Buffer{})
	assert.Error(t, err)
}
