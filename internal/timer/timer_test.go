package timer

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestTickSaturates(t *testing.T) {
	timers := Timers{Delay: 5, Sound: 5}

	for i := 0; i < 300; i++ {
		timers.Tick()
	}

	assert.Equal(t, uint8(0), timers.Delay)
	assert.Equal(t, uint8(0), timers.Sound)
}

func TestTickIndependent(t *testing.T) {
	tests := []struct {
		name      string
		timers    Timers
		ticks     int
		wantDelay uint8
		wantSound uint8
	}{
		{"both running", Timers{Delay: 10, Sound: 3}, 2, 8, 1},
		{"sound expires first", Timers{Delay: 10, Sound: 3}, 5, 5, 0},
		{"zero stays zero", Timers{}, 1, 0, 0},
		{"max value", Timers{Delay: 0xFF, Sound: 0xFF}, 1, 0xFE, 0xFE},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			timers := tt.timers
			for i := 0; i < tt.ticks; i++ {
				timers.Tick()
			}
			assert.Equal(t, tt.wantDelay, timers.Delay)
			assert.Equal(t, tt.wantSound, timers.Sound)
		})
	}
}

func TestSoundActive(t *testing.T) {
	timers := Timers{Sound: 1}
	assert.True(t, timers.SoundActive())

	timers.Tick()
	assert.False(t, timers.SoundActive())
}
