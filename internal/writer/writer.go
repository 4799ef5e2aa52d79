// Package writer implements the assembly file writing of disassembled programs.
package writer

import (
	"fmt"
	"io"
	"strings"

	"github.com/retroenv/retrochip8/internal/program"
)

const dataBytesPerLine = 16

type lineWriterFunc func(line string, byteCount int) error

// Writer implements the assembly file writing.
type Writer struct {
	app     *program.Program
	options Options
	writer  io.Writer
}

// Options of the writer.
type Options struct {
	OffsetComments bool
}

// New creates a new writer.
func New(app *program.Program, writer io.Writer, options Options) *Writer {
	return &Writer{
		app:     app,
		options: options,
		writer:  writer,
	}
}

// Write writes the header and all offsets of the program.
func (w Writer) Write() error {
	if err := w.WriteCommentHeader(); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w.writer, ".org $%03X\n\n", w.app.CodeBaseAddress); err != nil {
		return fmt.Errorf("writing org directive: %w", err)
	}
	return w.ProcessOffsets()
}

// WriteCommentHeader writes the CRC32 checksum and code base address as comments to the output.
func (w Writer) WriteCommentHeader() error {
	if _, err := fmt.Fprintf(w.writer, "; CHIP-8 ROM Disassembly\n"); err != nil {
		return fmt.Errorf("writing header comment: %w", err)
	}
	if _, err := fmt.Fprintf(w.writer, "; CRC32 checksum: %08x\n", w.app.Checksum); err != nil {
		return fmt.Errorf("writing checksum: %w", err)
	}
	if _, err := fmt.Fprintf(w.writer, "; Code base address: $%04x\n\n", w.app.CodeBaseAddress); err != nil {
		return fmt.Errorf("writing code base address: %w", err)
	}
	return nil
}

// ProcessOffsets writes all code offsets, labels and their comments.
func (w Writer) ProcessOffsets() error {
	var previousLineWasCode bool
	offsets := w.app.Offsets

	for i := 0; i < len(offsets); i++ {
		offset := offsets[i]
		if offset.IsInstructionTail() {
			continue // second byte of an instruction
		}

		if err := w.writeLabel(i, offset); err != nil {
			return err
		}

		isCode := offset.IsType(program.CodeOffset)
		// print an empty line in case of data after code and vice versa
		if i > 0 && offset.Label == "" && isCode != previousLineWasCode {
			if _, err := fmt.Fprintln(w.writer); err != nil {
				return fmt.Errorf("writing line: %w", err)
			}
		}
		previousLineWasCode = isCode

		if isCode {
			if err := w.writeCodeLine(offset); err != nil {
				return fmt.Errorf("writing code line: %w", err)
			}
			continue
		}

		count, err := w.bundleDataWrites(i)
		if err != nil {
			return err
		}
		i += count - 1
	}
	return nil
}

// BundleDataWrites bundles writes of data bytes to print dataBytesPerLine bytes per line.
func (w Writer) BundleDataWrites(data []byte, lineWriter lineWriterFunc) error {
	remaining := len(data)
	for i := 0; remaining > 0; {
		toWrite := min(remaining, dataBytesPerLine)

		buf := &strings.Builder{}
		buf.WriteString(".byte ")
		for j := range toWrite {
			if _, err := fmt.Fprintf(buf, "$%02x, ", data[i+j]); err != nil {
				return fmt.Errorf("writing data byte: %w", err)
			}
		}

		line := "  " + strings.TrimRight(buf.String(), ", ")
		if lineWriter != nil {
			if err := lineWriter(line, toWrite); err != nil {
				return fmt.Errorf("writing data line using custom writer: %w", err)
			}
		} else {
			if _, err := fmt.Fprintf(w.writer, "%s\n", line); err != nil {
				return fmt.Errorf("writing data line: %w", err)
			}
		}

		i += toWrite
		remaining -= toWrite
	}
	return nil
}

func (w Writer) writeLabel(index int, offset program.Offset) error {
	if offset.Label == "" {
		return nil
	}

	if index > 0 {
		if _, err := fmt.Fprintln(w.writer); err != nil {
			return fmt.Errorf("writing line: %w", err)
		}
	}
	if _, err := fmt.Fprintf(w.writer, "%s:\n", offset.Label); err != nil {
		return fmt.Errorf("writing label: %w", err)
	}
	return nil
}

func (w Writer) writeCodeLine(offset program.Offset) error {
	if offset.Comment == "" {
		if _, err := fmt.Fprintf(w.writer, "  %s\n", offset.Code); err != nil {
			return fmt.Errorf("writing line: %w", err)
		}
	} else {
		if _, err := fmt.Fprintf(w.writer, "  %-30s ; %s\n", offset.Code, offset.Comment); err != nil {
			return fmt.Errorf("writing line: %w", err)
		}
	}
	return nil
}

// bundleDataWrites writes the data bytes starting at the index until the next
// code offset or label and returns the number of bytes written.
func (w Writer) bundleDataWrites(startIndex int) (int, error) {
	data := w.getData(startIndex)

	currentIndex := startIndex
	lineWriter := func(line string, byteCount int) error {
		var err error

		offset := w.app.Offsets[currentIndex]
		comment := offset.Comment
		if w.options.OffsetComments {
			comment = strings.TrimSpace(fmt.Sprintf("$%04X  %s", offset.Address, comment))
		}

		if comment == "" {
			_, err = fmt.Fprintf(w.writer, "%s\n", line)
		} else {
			_, err = fmt.Fprintf(w.writer, "%-32s ; %s\n", line, comment)
		}
		if err != nil {
			return fmt.Errorf("writing data line: %w", err)
		}

		currentIndex += byteCount
		return nil
	}

	if err := w.BundleDataWrites(data, lineWriter); err != nil {
		return 0, fmt.Errorf("writing data: %w", err)
	}
	return len(data), nil
}

func (w Writer) getData(startIndex int) []byte {
	var data []byte

	for i := startIndex; i < len(w.app.Offsets); i++ {
		offset := w.app.Offsets[i]
		// stop at first label or code after start index
		if offset.IsType(program.CodeOffset) || (i > startIndex && offset.Label != "") {
			break
		}
		data = append(data, offset.Data...)
	}
	return data
}
