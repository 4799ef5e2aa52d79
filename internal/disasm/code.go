package disasm

import (
	"fmt"
	"slices"
	"strings"

	"github.com/retroenv/retrochip8/internal/decoder"
	"github.com/retroenv/retrochip8/internal/program"
)

const (
	funcNaming  = "_func_%04x"
	labelNaming = "_label_%04x"
	dataNaming  = "_data_%04x"
)

// processJumpDestinations names all branch destinations and updates the
// instructions that reference them with the label name.
func (dis *Disasm) processJumpDestinations() {
	destinations := make([]uint16, 0, len(dis.branchDestinations))
	for dest := range dis.branchDestinations {
		destinations = append(destinations, dest)
	}
	slices.Sort(destinations)

	for _, address := range destinations {
		offsetInfo := dis.app.OffsetInfo(address)
		// destinations inside of an instruction can not be labeled
		if offsetInfo.Label != "" || offsetInfo.IsInstructionTail() {
			continue
		}

		switch {
		case offsetInfo.IsType(program.CallDestination):
			offsetInfo.Label = fmt.Sprintf(funcNaming, address)
		case offsetInfo.IsType(program.CodeOffset | program.JumpDestination):
			offsetInfo.Label = fmt.Sprintf(labelNaming, address)
		default:
			offsetInfo.Label = fmt.Sprintf(dataNaming, address)
		}
	}

	for i := range dis.app.Offsets {
		offsetInfo := &dis.app.Offsets[i]
		if !offsetInfo.IsInstruction() {
			continue
		}
		dis.replaceTargetWithLabel(offsetInfo)
	}
}

// replaceTargetWithLabel replaces the numeric address operand of the instruction
// with the label of the destination.
func (dis *Disasm) replaceTargetWithLabel(offsetInfo *program.Offset) {
	ins := offsetInfo.Instruction
	target, ok := ins.Target()
	if !ok {
		return
	}
	destination := dis.app.OffsetInfo(target)
	if destination == nil || destination.Label == "" {
		return
	}

	offsetInfo.BranchingTo = destination.Label
	address := fmt.Sprintf("$%03X", target)
	offsetInfo.Code = strings.Replace(offsetInfo.Code, address, destination.Label, 1)
}

// processComments sets the hex and offset comments of all code offsets.
func (dis *Disasm) processComments() error {
	for i := range dis.app.Offsets {
		offsetInfo := &dis.app.Offsets[i]
		if !offsetInfo.IsInstruction() {
			continue
		}

		var comments []string
		if dis.options.OffsetComments {
			comments = append(comments, fmt.Sprintf("$%04X", offsetInfo.Address))
		}
		if dis.options.HexComments {
			hexComment, err := offsetInfo.HexCodeComment()
			if err != nil {
				return fmt.Errorf("creating hex comment: %w", err)
			}
			comments = append(comments, hexComment)
		}
		if offsetInfo.Comment != "" {
			comments = append(comments, offsetInfo.Comment)
		}
		offsetInfo.Comment = strings.Join(comments, "  ")
	}
	return nil
}

// Instruction returns the decoded instruction at the address, if the address
// was traced as code.
func (dis *Disasm) Instruction(address uint16) (decoder.Instruction, bool) {
	offsetInfo := dis.app.OffsetInfo(address)
	if offsetInfo == nil || !offsetInfo.IsInstruction() {
		return decoder.Instruction{}, false
	}
	return offsetInfo.Instruction, true
}
