package options

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// ClockRate is a frequency in Hz. It implements flag.Value and accepts values
// with an optional Hz, KHz or MHz suffix, like 500, 500Hz or 1.5KHz.
type ClockRate float64

var (
	errInvalidRate = errors.New("rate must be a positive number")
	errRateTooHigh = errors.New("rate exceeds the timer resolution")
)

var rateUnits = []struct {
	suffix     string
	multiplier float64
}{
	{"mhz", 1_000_000},
	{"khz", 1_000},
	{"hz", 1},
}

// String implements flag.Value.
func (c *ClockRate) String() string {
	if c == nil {
		return ""
	}
	value := float64(*c)
	switch {
	case value >= 1_000_000:
		return strconv.FormatFloat(value/1_000_000, 'f', -1, 64) + "MHz"
	case value >= 1_000:
		return strconv.FormatFloat(value/1_000, 'f', -1, 64) + "KHz"
	default:
		return strconv.FormatFloat(value, 'f', -1, 64) + "Hz"
	}
}

// Set implements flag.Value.
func (c *ClockRate) Set(s string) error {
	text := strings.ToLower(strings.TrimSpace(s))
	multiplier := 1.0
	for _, unit := range rateUnits {
		if trimmed, ok := strings.CutSuffix(text, unit.suffix); ok {
			text = strings.TrimSpace(trimmed)
			multiplier = unit.multiplier
			break
		}
	}

	value, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return fmt.Errorf("parsing rate '%s': %w", s, err)
	}
	rate := ClockRate(value * multiplier)
	if math.IsNaN(value) || math.IsInf(float64(rate), 0) || rate <= 0 {
		return fmt.Errorf("parsing rate '%s': %w", s, errInvalidRate)
	}
	if rate.Period() <= 0 {
		return fmt.Errorf("parsing rate '%s': %w", s, errRateTooHigh)
	}
	*c = rate
	return nil
}

// Period returns the duration of a single cycle at this rate.
func (c ClockRate) Period() time.Duration {
	if c == 0 {
		return 0
	}
	return time.Duration(float64(time.Second) / float64(c))
}
