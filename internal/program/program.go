// Package program represents a disassembled CHIP-8 program.
package program

import (
	"fmt"
	"hash/crc32"
	"strings"

	"github.com/retroenv/retrochip8/internal/decoder"
)

// Offset defines the content of an offset in a program that can represent data or code.
type Offset struct {
	Address uint16 // memory address of the offset
	Data    []byte // data byte or all opcode bytes that are part of the instruction

	Type        OffsetType
	Instruction decoder.Instruction // decoded instruction of a code offset

	Label       string // name of label or subroutine if identified as a jump destination
	Code        string // asm output of this instruction
	Comment     string
	BranchingTo string // label name of the destination of a jump or call
}

// HexCodeComment returns the data bytes of the offset formatted as hex values.
func (o *Offset) HexCodeComment() (string, error) {
	buf := &strings.Builder{}
	for i, b := range o.Data {
		if i > 0 {
			if err := buf.WriteByte(' '); err != nil {
				return "", fmt.Errorf("writing separator: %w", err)
			}
		}
		if _, err := fmt.Fprintf(buf, "%02X", b); err != nil {
			return "", fmt.Errorf("writing hex comment: %w", err)
		}
	}
	return buf.String(), nil
}

// Program defines a CHIP-8 program that contains code or data.
type Program struct {
	Offsets []Offset // one offset per ROM byte

	CodeBaseAddress uint16
	Checksum        uint32 // CRC32 of the ROM
}

// New creates a new program for the given ROM, with every byte as unknown offset.
func New(rom []byte, codeBaseAddress uint16) *Program {
	p := &Program{
		Offsets:         make([]Offset, len(rom)),
		CodeBaseAddress: codeBaseAddress,
		Checksum:        crc32.ChecksumIEEE(rom),
	}
	for i, b := range rom {
		p.Offsets[i] = Offset{
			Address: codeBaseAddress + uint16(i),
			Data:    []byte{b},
		}
	}
	return p
}

// OffsetInfo returns the offset for the given memory address or nil if the
// address is outside of the program.
func (p *Program) OffsetInfo(address uint16) *Offset {
	if address < p.CodeBaseAddress {
		return nil
	}
	index := int(address - p.CodeBaseAddress)
	if index >= len(p.Offsets) {
		return nil
	}
	return &p.Offsets[index]
}
