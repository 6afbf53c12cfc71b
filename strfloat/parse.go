package strfloat

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"
)

var ErrSyntax = errors.New("invalid number")

// Status reports how much of the input a parse matched.
type Status int

const (
	NoMatch Status = iota
	Partial
	Full
)

var statusNames = [...]string{"no match", "partial", "full"}

func (s Status) String() string {
	if s >= 0 && int(s) < len(statusNames) {
		return statusNames[s]
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

// Result is the outcome of parsing a number. Consumed counts bytes from the
// start of the input, leading white space included, and is zero on NoMatch.
// Full means only white space follows the number.
type Result struct {
	Input    string
	Value    float64
	Consumed int
	Status   Status
}

func (r Result) Err() error {
	switch r.Status {
	case Full:
		return nil
	case Partial:
		return fmt.Errorf("%w: unexpected %q after %q", ErrSyntax, r.Input[r.Consumed:], r.Input[:r.Consumed])
	}
	return fmt.Errorf("%w: %q", ErrSyntax, r.Input)
}

// ParseDouble parses the longest prefix of s that forms a decimal, hex, inf
// or nan literal. Out of range values saturate to ±Inf or round to zero.
func ParseDouble(s string) Result {
	r := Result{Input: s}
	start, end := scan(s)
	if end == start {
		return r
	}
	r.Value = value(s[start:end])
	r.Consumed = end
	r.Status = Partial
	if strings.TrimLeft(s[end:], " \t\n\v\f\r") == "" {
		r.Status = Full
	}
	return r
}

// ParseFloat is ParseDouble narrowed to single precision.
func ParseFloat(s string) Result {
	r := ParseDouble(s)
	r.Value = float64(float32(r.Value))
	return r
}

// ParseDoubleStrict fails unless all of s, apart from surrounding white
// space, is a number. The returned value is the parsed prefix either way.
func ParseDoubleStrict(s string) (float64, error) {
	r := ParseDouble(s)
	return r.Value, r.Err()
}

// StringToDouble returns the value of the numeric prefix of s, or 0 when there
// is none. Use ParseDouble to tell the two apart.
func StringToDouble(s string) float64 {
	r := ParseDouble(s)
	if r.Status != Full {
		log.WithFields(log.Fields{
			"input":    s,
			"consumed": r.Consumed,
			"status":   r.Status.String(),
		}).Debug("strfloat: lenient parse")
	}
	return r.Value
}

func StringToFloat(s string) float32 {
	return float32(StringToDouble(s))
}

func value(text string) float64 {
	neg := false
	switch text[0] {
	case '-':
		neg = true
		text = text[1:]
	case '+':
		text = text[1:]
	}

	var v float64
	switch text[0] | 0x20 {
	case 'i':
		v = math.Inf(1)
	case 'n':
		v = math.NaN()
	default:
		if len(text) > 1 && text[1]|0x20 == 'x' && !strings.ContainsAny(text, "pP") {
			// strconv insists on a binary exponent for hex mantissas
			text += "p0"
		}
		// the scanner only passes well formed literals, so the only possible
		// error is a range error and v is already ±Inf or zero
		v, _ = strconv.ParseFloat(text, 64)
	}
	if neg {
		v = -v
	}
	return v
}
