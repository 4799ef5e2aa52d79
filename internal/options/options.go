// Package options contains the program options.
package options

// Parameters contains file path options.
type Parameters struct {
	Input string `flag:"i" usage:"input ROM file"`
	Wav   string `flag:"wav" usage:"record the buzzer to a .wav file"`
}

// Flags contains behavior options.
type Flags struct {
	Rate     ClockRate `flag:"rate" usage:"instruction step rate" default:"500Hz"`
	Timer    ClockRate `flag:"timer" usage:"delay and sound timer rate" default:"60Hz"`
	Seed     int64     `flag:"seed" usage:"random seed for the RND instruction (default: time based)"`
	Steps    uint64    `flag:"steps" usage:"number of instructions to execute in headless mode (0: until halt)"`
	Headless bool      `flag:"headless" usage:"run without terminal display and print the final frame"`
	Trace    bool      `flag:"trace" usage:"print every executed instruction and register changes"`
	Debug    bool      `flag:"debug" usage:"enable debug logging"`
	Quiet    bool      `flag:"q" usage:"quiet mode"`
}

// Program options of the emulator.
type Program struct {
	Parameters
	Flags

	SeedSet bool // seed was passed explicitly
}

// Default cadences of the external control loop.
const (
	DefaultRate  ClockRate = 500
	DefaultTimer ClockRate = 60
)

// Disassembler defines options to control the disassembler.
type Disassembler struct {
	HexComments    bool
	OffsetComments bool
}

// NewDisassembler returns a new options instance with default options.
func NewDisassembler() Disassembler {
	return Disassembler{
		HexComments:    true,
		OffsetComments: true,
	}
}
