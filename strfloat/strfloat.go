// Package strfloat converts floating-point values to and from text.
package strfloat

import (
	"fmt"
	"strings"

	"github.com/rgolang/dprintf/dprintf"
)

// DisplayMode selects the notation used by DoubleToString.
type DisplayMode int

const (
	Fixed    DisplayMode = iota // %f
	Floating                    // %e
	Mixed                       // %g
)

var ErrInvalidMode = fmt.Errorf("%w: invalid radix display value", dprintf.ErrInvalidArgument)

var modeNames = [...]string{"fixed", "floating", "mixed"}

func (m DisplayMode) String() string {
	if m >= 0 && int(m) < len(modeNames) {
		return modeNames[m]
	}
	return fmt.Sprintf("DisplayMode(%d)", int(m))
}

// ParseDisplayMode accepts the mode names and their common aliases.
func ParseDisplayMode(s string) (DisplayMode, error) {
	switch strings.ToLower(s) {
	case "fixed", "f":
		return Fixed, nil
	case "floating", "scientific", "e":
		return Floating, nil
	case "mixed", "general", "g":
		return Mixed, nil
	}
	return 0, fmt.Errorf("display mode %q: %w", s, ErrInvalidMode)
}

// Template returns the format for m. Width and precision are read from
// arguments.
func Template(m DisplayMode) (string, error) {
	switch m {
	case Fixed:
		return "%*.*f", nil
	case Floating:
		return "%*.*e", nil
	case Mixed:
		return "%*.*g", nil
	}
	return "", fmt.Errorf("display mode %d: %w", int(m), ErrInvalidMode)
}

// DoubleToString renders f in the given notation, right-aligned to width with
// precision digits. Formatter errors are returned unchanged.
func DoubleToString(f float64, mode DisplayMode, width, precision uint) (string, error) {
	template, err := Template(mode)
	if err != nil {
		return "", err
	}
	return dprintf.Format(template, dprintf.Int(int64(width)), dprintf.Int(int64(precision)), dprintf.Float(f))
}

// FloatToString widens f to float64 and renders it like DoubleToString.
func FloatToString(f float32, mode DisplayMode, width, precision uint) (string, error) {
	return DoubleToString(float64(f), mode, width, precision)
}
