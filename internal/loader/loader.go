// Package loader handles ROM file loading operations.
package loader

import (
	"errors"
	"fmt"
	"io"
	"os"
)

// ErrLoadFailure is returned when the ROM source can not be read.
var ErrLoadFailure = errors.New("rom load failure")

var errEmptyROM = errors.New("rom is empty")

// Loader handles loading ROM files from disk.
type Loader struct{}

// New creates a new ROM loader.
func New() *Loader {
	return &Loader{}
}

// Load reads the complete ROM file at the given path.
func (l *Loader) Load(path string) ([]byte, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: opening file %s: %w", ErrLoadFailure, path, err)
	}
	defer func() { _ = file.Close() }()

	data, err := l.LoadReader(file)
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", path, err)
	}
	return data, nil
}

// LoadReader reads the complete ROM from the reader.
func (l *Loader) LoadReader(reader io.Reader) ([]byte, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadFailure, err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: %w", ErrLoadFailure, errEmptyROM)
	}
	return data, nil
}
