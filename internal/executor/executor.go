// Package executor implements the semantics of all CHIP-8 instructions.
//
// Every instruction handler mutates the machine state and returns a Result that
// describes how the program counter continues, instead of changing the program
// counter itself. All 8-bit arithmetic wraps, instructions that produce a flag
// always write VF explicitly as 0 or 1.
package executor

import (
	"fmt"

	"github.com/retroenv/retrochip8/internal/decoder"
	"github.com/retroenv/retrochip8/internal/display"
	"github.com/retroenv/retrochip8/internal/keypad"
	"github.com/retroenv/retrochip8/internal/memory"
	"github.com/retroenv/retrochip8/internal/registers"
	"github.com/retroenv/retrochip8/internal/timer"
)

// Random is the source of the RND instruction, math/rand.Rand satisfies it.
type Random interface {
	Intn(n int) int
}

// State bundles the machine state the instructions operate on.
// It is owned by a single interpreter, no synchronization is done.
type State struct {
	Memory    *memory.Memory
	Registers *registers.Registers
	Display   *display.FrameBuffer
	Timers    *timer.Timers
	Random    Random
}

// Result is the outcome of executing a single instruction.
type Result struct {
	Next NextPC

	// AwaitKey is set by LD Vx, K: stepping suspends until a key arrives,
	// which is then stored in KeyRegister.
	AwaitKey    bool
	KeyRegister uint8
}

type handler func(s *State, ins decoder.Instruction, key keypad.Key) (Result, error)

var handlers = map[decoder.Op]handler{
	decoder.OpCls:    cls,
	decoder.OpRet:    ret,
	decoder.OpJp:     jp,
	decoder.OpCall:   call,
	decoder.OpSeImm:  seImm,
	decoder.OpSneImm: sneImm,
	decoder.OpSeReg:  seReg,
	decoder.OpLdImm:  ldImm,
	decoder.OpAddImm: addImm,
	decoder.OpLdReg:  ldReg,
	decoder.OpOr:     or,
	decoder.OpAnd:    and,
	decoder.OpXor:    xor,
	decoder.OpAddReg: addReg,
	decoder.OpSub:    sub,
	decoder.OpShr:    shr,
	decoder.OpSubn:   subn,
	decoder.OpShl:    shl,
	decoder.OpSneReg: sneReg,
	decoder.OpLdI:    ldI,
	decoder.OpJpV0:   jpV0,
	decoder.OpRnd:    rnd,
	decoder.OpDrw:    drw,
	decoder.OpSkp:    skp,
	decoder.OpSknp:   sknp,
	decoder.OpLdVxDT: ldVxDT,
	decoder.OpLdKey:  ldKey,
	decoder.OpLdDTVx: ldDTVx,
	decoder.OpLdSTVx: ldSTVx,
	decoder.OpAddI:   addI,
	decoder.OpLdF:    ldF,
	decoder.OpLdB:    ldB,
	decoder.OpStore:  store,
	decoder.OpLoad:   load,
}

// Execute applies the instruction to the state. The key is the currently
// pressed keypad key, it is only used by the key skip instructions.
func Execute(s *State, ins decoder.Instruction, key keypad.Key) (Result, error) {
	h, ok := handlers[ins.Op]
	if !ok {
		return Result{}, &decoder.UnknownInstructionError{Word: ins.Word}
	}
	res, err := h(s, ins, key)
	if err != nil {
		return Result{}, fmt.Errorf("executing %s: %w", ins, err)
	}
	return res, nil
}

func advanceResult() (Result, error) {
	return Result{Next: Advance()}, nil
}

func skipIf(condition bool) (Result, error) {
	if condition {
		return Result{Next: Skip()}, nil
	}
	return advanceResult()
}

func jumpTo(address uint16) (Result, error) {
	return Result{Next: SetTo(address)}, nil
}
