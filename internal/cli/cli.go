// Package cli handles command line interface logic
package cli

import (
	"flag"
	"fmt"
	"os"

	"github.com/retroenv/retrochip8/internal/options"
)

// ParseFlags parses the command line flags of the emulator.
func ParseFlags() (options.Program, error) {
	flags := flag.NewFlagSet(os.Args[0], flag.ContinueOnError)
	opts := options.Program{
		Flags: options.Flags{
			Rate:  options.DefaultRate,
			Timer: options.DefaultTimer,
		},
	}
	readOptionFlags(flags, &opts)

	err := flags.Parse(os.Args[1:])
	args := flags.Args()
	if err != nil || (len(args) == 0 && opts.Input == "") {
		return opts, &UsageError{flags: flags, usage: "retrochip8 [options] <rom file>"}
	}

	if err := validateArgs(args); err != nil {
		return opts, err
	}
	if len(args) > 0 {
		opts.Input = args[0]
	}

	flags.Visit(func(f *flag.Flag) {
		if f.Name == "seed" {
			opts.SeedSet = true
		}
	})
	return opts, nil
}

// ParseDisasmFlags parses the command line flags of the disassembler and returns
// program and disassembler options.
func ParseDisasmFlags() (options.Program, string, options.Disassembler, error) {
	flags := flag.NewFlagSet(os.Args[0], flag.ContinueOnError)
	var opts options.Program
	var output string
	flags.StringVar(&output, "o", "", "name of the output .asm file, printed on console if no name given")
	flags.BoolVar(&opts.Debug, "debug", false, "enable debugging options for extended logging")
	flags.BoolVar(&opts.Quiet, "q", false, "perform operations quietly")
	disasmOptions := options.NewDisassembler()
	var noHexComments, noOffsets bool
	flags.BoolVar(&noHexComments, "nohexcomments", false, "do not output opcode bytes as hex values in comments")
	flags.BoolVar(&noOffsets, "nooffsets", false, "do not output offsets in comments")

	err := flags.Parse(os.Args[1:])
	args := flags.Args()
	if err != nil || len(args) == 0 {
		return opts, output, disasmOptions, &UsageError{flags: flags, usage: "chip8dis [options] <file to disassemble>"}
	}
	if err := validateArgs(args); err != nil {
		return opts, output, disasmOptions, err
	}
	opts.Input = args[0]

	// Apply inverse logic for hex comments and offsets
	disasmOptions.HexComments = !noHexComments
	disasmOptions.OffsetComments = !noOffsets
	return opts, output, disasmOptions, nil
}

// UsageError represents an error that should show usage information
type UsageError struct {
	flags *flag.FlagSet
	usage string
	msg   string
}

func (e *UsageError) Error() string {
	return e.msg
}

func (e *UsageError) ShowUsage() {
	if e.flags == nil {
		fmt.Println(e.msg)
		return
	}
	fmt.Printf("usage: %s\n\n", e.usage)
	e.flags.PrintDefaults()
	fmt.Println()
}

// validateArgs checks if arguments are in correct order
func validateArgs(args []string) error {
	for i, arg := range args {
		if i > 0 && arg != "" && arg[0] == '-' {
			return &UsageError{
				msg: fmt.Sprintf("Potential argument %s found after ROM file, please pass the ROM file as last argument", arg),
			}
		}
	}
	return nil
}

func readOptionFlags(flags *flag.FlagSet, opts *options.Program) {
	flags.StringVar(&opts.Input, "i", "", "name of the input ROM file")
	flags.StringVar(&opts.Wav, "wav", "", "record the buzzer output to the given .wav file")
	flags.Var(&opts.Rate, "rate", "instruction step rate, supports Hz/KHz/MHz suffixes")
	flags.Var(&opts.Timer, "timer", "delay and sound timer rate, supports Hz/KHz/MHz suffixes")
	flags.Int64Var(&opts.Seed, "seed", 0, "random seed for the RND instruction, time based if not set")
	flags.Uint64Var(&opts.Steps, "steps", 0, "number of instructions to execute in headless mode, 0 runs until the program halts")
	flags.BoolVar(&opts.Headless, "headless", false, "run without terminal display and print the final frame")
	flags.BoolVar(&opts.Trace, "trace", false, "print every executed instruction with the changed registers")
	flags.BoolVar(&opts.Debug, "debug", false, "enable debugging options for extended logging")
	flags.BoolVar(&opts.Quiet, "q", false, "perform operations quietly")
}
