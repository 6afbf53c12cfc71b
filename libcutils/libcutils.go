package libcutils

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

var (
	ErrNoSpecifiers = errors.New("no format specifiers found")
	ErrBadDirective = errors.New("malformed conversion directive")
	ErrUnsupported  = errors.New("unsupported conversion")
)

// SyntaxError reports a template that is not a valid directive sequence.
type SyntaxError struct {
	Offset int
	Text   string
	Err    error
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%v at offset %d: %q", e.Err, e.Offset, e.Text)
}

func (e *SyntaxError) Unwrap() error { return e.Err }

// printfRe matches every component of a printf conversion directive.
// Groups: flags, width, precision part (with the dot), precision, length, conversion.
var printfRe = regexp.MustCompile(`%([-+#0 ]*)(\d+|\*)?(\.(\d*|\*))?(hh|h|ll|l|L|j|z|t)?([diuoxXfFeEgGaAcspn%])`)

// PrintfSpecifier represents the components of a printf format specifier
type PrintfSpecifier struct {
	Original     string // The original specifier string
	Offset       int    // Byte offset of the '%' in the template
	Flags        string // Flags: '-', '+', ' ', '#', and '0'
	Width        string // Width: number or '*'
	Precision    string // Precision: number or '*', empty with HasPrecision means zero
	HasPrecision bool   // A '.' was present
	Length       string // Length modifier: 'h', 'hh', 'l', 'll', 'L', 'j', 'z', 't'
	Specifier    string // Conversion specifier: 'd', 'i', 'o', 'u', 'x', 'X', 'f', 'F', 'e', 'E', 'g', 'G', 'a', 'A', 'c', 's', 'p', 'n', '%'
}

// ParsePrintfFmt parses a libc printf format string.
func ParsePrintfFmt(fmtStr string) ([]PrintfSpecifier, error) {
	matches := printfRe.FindAllStringSubmatchIndex(fmtStr, -1)
	if matches == nil {
		return nil, ErrNoSpecifiers
	}

	specifiers := make([]PrintfSpecifier, 0, len(matches))
	for _, m := range matches {
		specifiers = append(specifiers, newSpecifier(fmtStr, m))
	}
	return specifiers, nil
}

func newSpecifier(s string, m []int) PrintfSpecifier {
	group := func(i int) string {
		if m[2*i] < 0 {
			return ""
		}
		return s[m[2*i]:m[2*i+1]]
	}
	return PrintfSpecifier{
		Original:     group(0),
		Offset:       m[0],
		Flags:        group(1),
		Width:        group(2),
		HasPrecision: m[6] >= 0,
		Precision:    group(4),
		Length:       group(5),
		Specifier:    group(6),
	}
}

// HasFlag reports whether flag c was given.
func (s PrintfSpecifier) HasFlag(c byte) bool {
	return strings.IndexByte(s.Flags, c) >= 0
}

// ArgCount is the number of arguments the directive consumes, counting '*' fields.
func (s PrintfSpecifier) ArgCount() int {
	if s.Specifier == "%" {
		return 0
	}
	n := 1
	if s.Width == "*" {
		n++
	}
	if s.Precision == "*" {
		n++
	}
	return n
}

// Class returns the class of the argument the conversion reads.
func (s PrintfSpecifier) Class() ArgClass {
	return classOf(s.Specifier)
}

// GoVerb returns the fmt verb that renders the conversion the way libc does.
// Length modifiers have no Go counterpart and are dropped.
func (s PrintfSpecifier) GoVerb() byte {
	switch s.Specifier {
	case "d", "i", "u":
		return 'd'
	case "a":
		return 'x'
	case "A":
		return 'X'
	case "p":
		return 'x'
	}
	return s.Specifier[0]
}

// Segment is one piece of a compiled template: literal text or a directive.
type Segment struct {
	Literal   string
	Directive *PrintfSpecifier
}

// Template is a format string split into literal and directive segments.
type Template struct {
	Source   string
	Segments []Segment
}

// Compile splits fmtStr into segments. Every '%' must start a valid directive.
func Compile(fmtStr string) (*Template, error) {
	t := &Template{Source: fmtStr}
	last := 0
	for _, m := range printfRe.FindAllStringSubmatchIndex(fmtStr, -1) {
		if err := t.literal(fmtStr[last:m[0]], last); err != nil {
			return nil, err
		}
		spec := newSpecifier(fmtStr, m)
		if spec.Specifier == "n" {
			return nil, &SyntaxError{Offset: spec.Offset, Text: spec.Original, Err: ErrUnsupported}
		}
		t.Segments = append(t.Segments, Segment{Directive: &spec})
		last = m[1]
	}
	if err := t.literal(fmtStr[last:], last); err != nil {
		return nil, err
	}
	return t, nil
}

func (t *Template) literal(text string, offset int) error {
	if i := strings.IndexByte(text, '%'); i >= 0 {
		return &SyntaxError{Offset: offset + i, Text: text[i:], Err: ErrBadDirective}
	}
	if text != "" {
		t.Segments = append(t.Segments, Segment{Literal: text})
	}
	return nil
}

// Directives returns the directive segments in template order.
func (t *Template) Directives() []PrintfSpecifier {
	var specs []PrintfSpecifier
	for _, seg := range t.Segments {
		if seg.Directive != nil {
			specs = append(specs, *seg.Directive)
		}
	}
	return specs
}

// ArgCount is the total number of arguments the template consumes.
func (t *Template) ArgCount() int {
	n := 0
	for _, seg := range t.Segments {
		if seg.Directive != nil {
			n += seg.Directive.ArgCount()
		}
	}
	return n
}
