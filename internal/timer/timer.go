// Package timer implements the CHIP-8 delay and sound timers.
package timer

// Timers holds the two 8-bit countdown timers. Both are set by instructions and
// only decremented by Tick, which an external collaborator calls at its own
// cadence, conventionally 60Hz.
type Timers struct {
	Delay uint8
	Sound uint8
}

// Tick decrements both timers by one, stopping at zero.
func (t *Timers) Tick() {
	if t.Delay > 0 {
		t.Delay--
	}
	if t.Sound > 0 {
		t.Sound--
	}
}

// SoundActive reports whether the buzzer should currently sound.
func (t *Timers) SoundActive() bool {
	return t.Sound > 0
}
