// Package memory implements the flat 4KB CHIP-8 address space.
//
// CHIP-8 memory map (4KB total):
//
//	0x000-0x04F: Built-in hexadecimal glyph sprites (16 glyphs, 5 bytes each)
//	0x050-0x1FF: Reserved interpreter area
//	0x200-0xFFF: Program space (3584 bytes)
package memory

import (
	"errors"
)

const (
	// Size is the number of addressable bytes.
	Size = 0x1000

	// AddressMask limits any address to the 12-bit address space.
	AddressMask = Size - 1

	// ProgramStart is the address programs are loaded to and start execution at.
	ProgramStart = 0x200

	// MaxProgramSize is the largest program that fits without truncation.
	MaxProgramSize = Size - ProgramStart

	// FontStart is the address of the first built-in glyph.
	FontStart = 0x000

	// GlyphSize is the number of bytes, and rows, of a built-in glyph.
	GlyphSize = 5
)

// ErrProgramTruncated is returned by Load when the program does not fit into memory.
// It is not fatal, the program has been loaded up to the end of memory.
var ErrProgramTruncated = errors.New("program truncated at end of memory")

// glyphs are the built-in sprites for the hexadecimal digits 0-F.
var glyphs = [16][GlyphSize]byte{
	{0xF0, 0x90, 0x90, 0x90, 0xF0}, // 0
	{0x20, 0x60, 0x20, 0x20, 0x70}, // 1
	{0xF0, 0x10, 0xF0, 0x80, 0xF0}, // 2
	{0xF0, 0x10, 0xF0, 0x10, 0xF0}, // 3
	{0x90, 0x90, 0xF0, 0x10, 0x10}, // 4
	{0xF0, 0x80, 0xF0, 0x10, 0xF0}, // 5
	{0xF0, 0x80, 0xF0, 0x90, 0xF0}, // 6
	{0xF0, 0x10, 0x20, 0x40, 0x40}, // 7
	{0xF0, 0x90, 0xF0, 0x90, 0xF0}, // 8
	{0xF0, 0x90, 0xF0, 0x10, 0xF0}, // 9
	{0xF0, 0x90, 0xF0, 0x90, 0x90}, // A
	{0xE0, 0x90, 0xE0, 0x90, 0xE0}, // B
	{0xF0, 0x80, 0x80, 0x80, 0xF0}, // C
	{0xE0, 0x90, 0x90, 0x90, 0xE0}, // D
	{0xF0, 0x80, 0xF0, 0x80, 0xF0}, // E
	{0xF0, 0x80, 0xF0, 0x80, 0x80}, // F
}

// Memory is the byte addressable main memory of the virtual machine.
// All accesses wrap around at the end of the 12-bit address space.
type Memory struct {
	data [Size]byte
}

// New returns a memory instance with the built-in glyphs seeded.
func New() *Memory {
	m := &Memory{}
	for digit, glyph := range glyphs {
		copy(m.data[GlyphAddress(uint8(digit)):], glyph[:])
	}
	return m
}

// GlyphAddress returns the address of the built-in glyph for the given digit.
func GlyphAddress(digit uint8) uint16 {
	return FontStart + uint16(digit)*GlyphSize
}

// Load copies the program into memory starting at ProgramStart and returns the
// number of bytes copied. Bytes that do not fit are dropped and ErrProgramTruncated
// is returned alongside the count.
func (m *Memory) Load(program []byte) (int, error) {
	n := copy(m.data[ProgramStart:], program)
	if n < len(program) {
		return n, ErrProgramTruncated
	}
	return n, nil
}

// Read returns the byte at the given address.
func (m *Memory) Read(address uint16) byte {
	return m.data[address&AddressMask]
}

// Write sets the byte at the given address.
func (m *Memory) Write(address uint16, value byte) {
	m.data[address&AddressMask] = value
}

// ReadWord returns the big-endian 16-bit word starting at the given address.
func (m *Memory) ReadWord(address uint16) uint16 {
	return uint16(m.Read(address))<<8 | uint16(m.Read(address+1))
}

// ReadBlock fills buf with the bytes starting at the given address.
func (m *Memory) ReadBlock(address uint16, buf []byte) {
	for i := range buf {
		buf[i] = m.Read(address + uint16(i))
	}
}

// WriteBlock stores data starting at the given address.
func (m *Memory) WriteBlock(address uint16, data []byte) {
	for i, b := range data {
		m.Write(address+uint16(i), b)
	}
}

// Snapshot returns a copy of the whole address space.
func (m *Memory) Snapshot() [Size]byte {
	return m.data
}
