package disasm

import (
	"context"
	"fmt"

	"github.com/retroenv/retrochip8/internal/decoder"
	"github.com/retroenv/retrochip8/internal/program"
	"github.com/retroenv/retrogolib/log"
)

const instructionSize = 2

// followExecutionFlow parses opcodes and follows the execution flow to parse all code.
func (dis *Disasm) followExecutionFlow(ctx context.Context) error {
	for len(dis.offsetsToParse) > 0 {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("following execution flow: %w", err)
		}

		address := dis.offsetsToParse[0]
		dis.offsetsToParse = dis.offsetsToParse[1:]
		if dis.offsetsParsed.Contains(address) {
			continue
		}
		dis.offsetsParsed.Add(address)

		ins, ok := dis.decodeAt(address)
		if !ok {
			continue
		}
		dis.markAsCode(address, ins)
		dis.handleControlFlow(address, ins)
	}
	return nil
}

// decodeAt decodes the instruction at the given address. It returns false if
// the address does not contain a complete, valid instruction that does not
// overlap with an already traced one.
func (dis *Disasm) decodeAt(address uint16) (decoder.Instruction, bool) {
	first := dis.app.OffsetInfo(address)
	second := dis.app.OffsetInfo(address + 1)
	if first == nil || second == nil {
		return decoder.Instruction{}, false
	}

	if first.IsInstructionTail() {
		dis.logger.Debug("Branch into instruction detected", log.Hex("address", address))
		first.SetType(program.CodeAsData)
		if owner := dis.app.OffsetInfo(address - 1); owner != nil {
			owner.Comment = "branch into instruction detected"
		}
		return decoder.Instruction{}, false
	}
	if second.IsType(program.CodeOffset) {
		dis.logger.Debug("Instruction overlaps with traced code",
			log.Hex("address", address),
			log.Stringer("type", second.Type))
		return decoder.Instruction{}, false
	}

	word := uint16(first.Data[0])<<8 | uint16(second.Data[0])
	ins, err := decoder.Decode(word)
	if err != nil {
		dis.logger.Debug("Unknown instruction in execution flow",
			log.Hex("address", address),
			log.Hex("word", word))
		return decoder.Instruction{}, false
	}
	return ins, true
}

// markAsCode combines the two bytes of an instruction into a single code offset.
func (dis *Disasm) markAsCode(address uint16, ins decoder.Instruction) {
	first := dis.app.OffsetInfo(address)
	second := dis.app.OffsetInfo(address + 1)

	first.Data = []byte{first.Data[0], second.Data[0]}
	first.Code = ins.String()
	first.ClearType(program.DataOffset)
	first.SetType(program.CodeOffset)
	first.Instruction = ins

	second.Data = nil
	second.ClearType(program.DataOffset)
	second.SetType(program.CodeOffset)
}

// handleControlFlow queues all addresses that can be executed after the instruction.
func (dis *Disasm) handleControlFlow(address uint16, ins decoder.Instruction) {
	next := address + instructionSize

	switch {
	case ins.IsJump():
		if target, ok := ins.Target(); ok {
			dis.addBranchDestination(target, program.JumpDestination)
			dis.addAddressToParse(target)
		}

	case ins.IsCall():
		if target, ok := ins.Target(); ok {
			dis.addBranchDestination(target, program.CallDestination)
			dis.addAddressToParse(target)
		}
		dis.addAddressToParse(next)

	case ins.IsSkip():
		dis.addAddressToParse(next)
		dis.addAddressToParse(next + instructionSize)

	case ins.IsDataReference():
		dis.handleDataReference(ins)
		dis.addAddressToParse(next)

	case !ins.IsReturn():
		dis.addAddressToParse(next)
	}
}

// handleDataReference marks the target of an index register load as data.
func (dis *Disasm) handleDataReference(ins decoder.Instruction) {
	target, ok := ins.Target()
	if !ok {
		return
	}
	offsetInfo := dis.app.OffsetInfo(target)
	if offsetInfo == nil {
		return
	}
	dis.branchDestinations.Add(target)
	if !offsetInfo.IsType(program.CodeOffset) {
		offsetInfo.SetType(program.DataOffset)
	}
}

func (dis *Disasm) addBranchDestination(target uint16, typ program.OffsetType) {
	offsetInfo := dis.app.OffsetInfo(target)
	if offsetInfo == nil {
		return
	}
	offsetInfo.SetType(typ)
	dis.branchDestinations.Add(target)
}

// addAddressToParse adds an address to the list to be processed if the address
// is inside the program and has not been added already.
func (dis *Disasm) addAddressToParse(address uint16) {
	if dis.app.OffsetInfo(address) == nil || dis.offsetsToParseAdded.Contains(address) {
		return
	}
	dis.offsetsToParseAdded.Add(address)
	dis.offsetsToParse = append(dis.offsetsToParse, address)
}
