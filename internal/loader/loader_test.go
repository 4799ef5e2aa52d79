package loader

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("device not ready")
}

func TestLoad(t *testing.T) {
	t.Run("load ROM file", func(t *testing.T) {
		data := []byte{0x12, 0x34, 0x56, 0x78}
		tmpFile := createTempFile(t, data)

		loader := New()
		rom, err := loader.Load(tmpFile)
		assert.NoError(t, err)
		assert.True(t, bytes.Equal(data, rom))
	})

	t.Run("error on non-existent file", func(t *testing.T) {
		loader := New()
		_, err := loader.Load("/nonexistent/file.ch8")
		assert.Error(t, err)
		assert.True(t, errors.Is(err, ErrLoadFailure))
		assert.True(t, errors.Is(err, os.ErrNotExist))
	})

	t.Run("error on empty file", func(t *testing.T) {
		tmpFile := createTempFile(t, nil)

		loader := New()
		_, err := loader.Load(tmpFile)
		assert.True(t, errors.Is(err, ErrLoadFailure))
	})
}

func TestLoadReader(t *testing.T) {
	loader := New()

	rom, err := loader.LoadReader(bytes.NewReader([]byte{0x00, 0xE0}))
	assert.NoError(t, err)
	assert.Len(t, rom, 2)

	_, err = loader.LoadReader(failingReader{})
	assert.True(t, errors.Is(err, ErrLoadFailure))
	assert.ErrorContains(t, err, "device not ready")
}

func createTempFile(t *testing.T, data []byte) string {
	t.Helper()
	tmpDir := t.TempDir()
	tmpFile := filepath.Join(tmpDir, "test.ch8")
	if err := os.WriteFile(tmpFile, data, 0600); err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}
	return tmpFile
}
