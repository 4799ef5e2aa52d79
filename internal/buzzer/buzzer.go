// Package buzzer records the buzzer of the emulator as a square wave to a WAV
// file. Audio data is buffered in memory and written to disk on Close.
package buzzer

import (
	"fmt"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrogolib/log"
)

const (
	// SampleRate of the recording in Hz.
	SampleRate = 44100
	// Frequency of the buzzer tone in Hz.
	Frequency = 440

	bitDepth    = 16
	channels    = 1
	pcmFormat   = 1
	amplitude   = 8000
	wavFileMode = 0o644
)

// Recorder implements the machine buzzer interface by recording every timer
// tick as tone or silence.
type Recorder struct {
	logger   *log.Logger
	filename string

	samplesPerTick float64
	pending        float64 // fractional samples carried to the next tick
	phase          int
	samples        []int
}

// New returns a recorder that writes to the given file on Close. The timer rate
// defines how much time every Update call covers.
func New(logger *log.Logger, filename string, timerRate options.ClockRate) *Recorder {
	if timerRate == 0 {
		timerRate = options.DefaultTimer
	}
	return &Recorder{
		logger:         logger,
		filename:       filename,
		samplesPerTick: SampleRate / float64(timerRate),
	}
}

// Update appends one timer tick of tone or silence.
func (r *Recorder) Update(active bool) {
	r.pending += r.samplesPerTick
	n := int(r.pending)
	r.pending -= float64(n)

	halfPeriod := SampleRate / Frequency / 2
	for range n {
		value := 0
		if active {
			value = amplitude
			if (r.phase/halfPeriod)%2 == 1 {
				value = -amplitude
			}
			r.phase++
		}
		r.samples = append(r.samples, value)
	}
}

// Samples returns the number of recorded samples.
func (r *Recorder) Samples() int {
	return len(r.samples)
}

// Close writes the recording to the WAV file. A run that ended before the
// first timer tick results in a valid WAV file without samples.
func (r *Recorder) Close() (rerr error) {
	if len(r.samples) == 0 {
		r.logger.Debug("No timer tick happened, writing empty recording", log.String("file", r.filename))
	}

	f, err := os.OpenFile(r.filename, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, wavFileMode)
	if err != nil {
		return fmt.Errorf("creating wav file: %w", err)
	}
	defer func() {
		if err := f.Close(); err != nil && rerr == nil {
			rerr = fmt.Errorf("closing wav file: %w", err)
		}
	}()

	enc := wav.NewEncoder(f, SampleRate, bitDepth, channels, pcmFormat)
	buf := &audio.IntBuffer{
		Format: &audio.Format{
			NumChannels: channels,
			SampleRate:  SampleRate,
		},
		Data:           r.samples,
		SourceBitDepth: bitDepth,
	}
	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("encoding wav data: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("finishing wav file: %w", err)
	}

	r.logger.Info("Buzzer recording written",
		log.String("file", r.filename),
		log.Int("samples", len(r.samples)))
	return nil
}
