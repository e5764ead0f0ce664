package tts

import (
	"fmt"
	"strings"
)

// Speed is one of the named speech rates offered on the command line.
type Speed int

const (
	SpeedNormal Speed = iota
	SpeedSlow
	SpeedFast
)

// Speeds lists the accepted speed names in display order.
var Speeds = []Speed{SpeedSlow, SpeedNormal, SpeedFast}

// ParseSpeed parses a speed name, case-insensitively. An empty string is
// treated as normal.
func ParseSpeed(s string) (Speed, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "normal":
		return SpeedNormal, nil
	case "slow":
		return SpeedSlow, nil
	case "fast":
		return SpeedFast, nil
	default:
		return SpeedNormal, NewError(KindInvalidSpeed, s, nil)
	}
}

// String returns the speed name.
func (s Speed) String() string {
	switch s {
	case SpeedSlow:
		return "slow"
	case SpeedFast:
		return "fast"
	default:
		return "normal"
	}
}

// LengthScale converts the speed to an engine length scale. Smaller values
// produce faster speech.
func (s Speed) LengthScale() float64 {
	switch s {
	case SpeedSlow:
		return 1.2
	case SpeedFast:
		return 0.8
	default:
		return 1.0
	}
}

// EffectiveSpeed applies the --fast shortcut, which wins over any explicit
// speed.
func EffectiveSpeed(s Speed, fast bool) Speed {
	if fast {
		return SpeedFast
	}
	return s
}

// FormatLengthScale renders a length scale the way engines expect it on the
// command line.
func FormatLengthScale(scale float64) string {
	return fmt.Sprintf("%.2f", scale)
}
