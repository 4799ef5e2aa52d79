package fileprocessor

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

func TestProcessFile(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "test.ch8")
	output := filepath.Join(dir, "test.asm")
	assert.NoError(t, os.WriteFile(input, []byte{0x00, 0xE0, 0x12, 0x00}, 0600))

	opts := options.Program{Parameters: options.Parameters{Input: input}}
	err := ProcessFile(context.Background(), log.NewTestLogger(t), opts, output, options.NewDisassembler())
	assert.NoError(t, err)

	data, err := os.ReadFile(output)
	assert.NoError(t, err)
	assert.True(t, strings.Contains(string(data), "jp Start"))
}

func TestProcessFileMissingInput(t *testing.T) {
	dir := t.TempDir()
	opts := options.Program{Parameters: options.Parameters{Input: filepath.Join(dir, "missing.ch8")}}

	err := ProcessFile(context.Background(), log.NewTestLogger(t), opts, filepath.Join(dir, "out.asm"), options.NewDisassembler())
	assert.Error(t, err)
}

func TestCreateWriterStdout(t *testing.T) {
	w, err := createWriter("")
	assert.NoError(t, err)
	assert.True(t, w == os.Stdout)
}

func TestPrintBanner(t *testing.T) {
	logger := log.NewTestLogger(t)
	PrintBanner(logger, "chip8dis", false, "1.0.0", "abc123", "2026-10-01")
	PrintBanner(logger, "chip8dis", true, "1.0.0", "", "")
}
