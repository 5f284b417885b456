package blend

import (
	"strings"

	"golang.org/x/text/cases"
)

// Mode selects how a layer's color is mixed with the color beneath it
// before alpha compositing.
type Mode uint8

const (
	// ModeNormal uses the source color unchanged.
	ModeNormal Mode = iota
	// ModeMultiply darkens: S * D / 255.
	ModeMultiply
	// ModeAdd lightens: S + D, clamped to 255.
	ModeAdd
	// ModeScreen lightens: 255 * (1 - (1-S/255)(1-D/255)).
	ModeScreen

	modeCount
)

var modeNames = [modeCount]string{
	ModeNormal:   "Normal",
	ModeMultiply: "Multiply",
	ModeAdd:      "Add",
	ModeScreen:   "Screen",
}

// String returns the display name of the mode.
func (m Mode) String() string {
	if m < modeCount {
		return modeNames[m]
	}
	return "Unknown"
}

// IsValid reports whether m is one of the defined modes.
func (m Mode) IsValid() bool {
	return m < modeCount
}

// ParseMode looks a mode up by name, ignoring case and surrounding space.
func ParseMode(name string) (Mode, bool) {
	fold := cases.Fold()
	key := fold.String(strings.TrimSpace(name))
	for m := range modeCount {
		if fold.String(modeNames[m]) == key {
			return m, true
		}
	}
	return ModeNormal, false
}

// mix returns the blended channel value in [0, 255] before alpha is applied.
func (m Mode) mix(s, d uint8) float64 {
	sf, df := float64(s), float64(d)
	switch m {
	case ModeMultiply:
		return sf * df / 255
	case ModeAdd:
		return min(sf+df, 255)
	case ModeScreen:
		return 255 * (1 - (1-sf/255)*(1-df/255))
	default:
		return sf
	}
}
