// Package decoder parses 2-byte CHIP-8 instruction words into tagged instructions.
//
// # Instruction Layout
//
// Every instruction is a big-endian 16-bit word. The leading nibble selects the
// instruction group, the remaining nibbles carry operands:
//
//	0x0         variant = low byte         (CLS, RET)
//	0x1 0x2 0xA 0xB  address = low 12 bits  (JP, CALL, LD I, JP V0)
//	0x3 0x4 0x6 0x7  x, immediate          (SE, SNE, LD, ADD)
//	0x5 0x8 0x9 0xD  x, y, variant nibble  (SE, ALU ops, SNE, DRW)
//	0xC         x, immediate               (RND)
//	0xE 0xF     x, variant = low byte      (key, timer, memory ops)
//
// Words are recognized by matching them against the retrogolib CHIP-8 opcode
// tables of their leading nibble. The matched instruction definition provides the
// mnemonic, so decoded instructions and the disassembler output use the same names.
package decoder
