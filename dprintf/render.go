package dprintf

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/rgolang/dprintf/libcutils"
)

// maxField is the largest width or precision fmt accepts.
const maxField = 1e6

// render writes tmpl to w, consuming args. On failure it also returns the
// offset of the directive being rendered, or -1.
func render(w io.Writer, tmpl *libcutils.Template, args *Args) (int, int, error) {
	total := 0
	for _, seg := range tmpl.Segments {
		if seg.Directive == nil {
			n, err := io.WriteString(w, seg.Literal)
			total += n
			if err != nil {
				return total, -1, err
			}
			continue
		}
		n, err := directive(w, seg.Directive, args)
		total += n
		if err != nil {
			return total, seg.Directive.Offset, err
		}
	}
	return total, -1, nil
}

// verb is a directive with its '*' fields resolved.
type verb struct {
	spec  *libcutils.PrintfSpecifier
	flags string
	width int
	prec  int // -1 when absent
}

func (v verb) has(c byte) bool { return strings.IndexByte(v.flags, c) >= 0 }
func (v verb) left() bool      { return v.has('-') }

func (v verb) without(flags string) verb {
	v.flags = strings.Map(func(r rune) rune {
		if strings.ContainsRune(flags, r) {
			return -1
		}
		return r
	}, v.flags)
	return v
}

// goFormat builds the fmt format string for the resolved directive.
func (v verb) goFormat(conv byte) string {
	var sb strings.Builder
	sb.WriteByte('%')
	sb.WriteString(v.flags)
	if v.width > 0 {
		sb.WriteString(strconv.Itoa(v.width))
	}
	if v.prec >= 0 {
		sb.WriteByte('.')
		sb.WriteString(strconv.Itoa(v.prec))
	}
	sb.WriteByte(conv)
	return sb.String()
}

func (v verb) sign(neg bool) string {
	switch {
	case neg:
		return "-"
	case v.has('+'):
		return "+"
	case v.has(' '):
		return " "
	}
	return ""
}

func resolve(spec *libcutils.PrintfSpecifier, args *Args) (verb, error) {
	v := verb{spec: spec, flags: spec.Flags, prec: -1}
	width, err := field(spec.Width, args)
	if err != nil {
		return v, err
	}
	if width < 0 {
		// a negative '*' width is a '-' flag
		v.flags += "-"
		width = -width
	}
	v.width = width
	if spec.HasPrecision {
		prec, err := field(spec.Precision, args)
		if err != nil {
			return v, err
		}
		if prec >= 0 {
			v.prec = prec
		}
	}
	return v, nil
}

func field(text string, args *Args) (int, error) {
	var n int64
	switch text {
	case "":
		return 0, nil
	case "*":
		arg, ok := args.Next()
		if !ok {
			return 0, fmt.Errorf("%w for '*'", errMissingArg)
		}
		if n, ok = arg.asInt(); !ok {
			return 0, fmt.Errorf("%w: '*' needs an int, got %s", errArgType, arg.kind)
		}
	default:
		i, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %s", errRange, text)
		}
		n = i
	}
	if n > maxField || n < -maxField {
		return 0, fmt.Errorf("%w: %d", errRange, n)
	}
	return int(n), nil
}

func mismatch(spec *libcutils.PrintfSpecifier, arg Arg) error {
	return fmt.Errorf("%w: %s wants %s, got %s", errArgType, spec.Original, spec.Class(), arg.kind)
}

func directive(w io.Writer, spec *libcutils.PrintfSpecifier, args *Args) (int, error) {
	if spec.Specifier == "%" {
		return io.WriteString(w, "%")
	}
	v, err := resolve(spec, args)
	if err != nil {
		return 0, err
	}
	arg, ok := args.Next()
	if !ok {
		return 0, fmt.Errorf("%w for %s", errMissingArg, spec.Original)
	}

	switch spec.Class() {
	case libcutils.ClassInt:
		i, ok := arg.asInt()
		if !ok {
			return 0, mismatch(spec, arg)
		}
		return fmt.Fprintf(w, v.goFormat('d'), i)
	case libcutils.ClassUint:
		u, ok := arg.asUint()
		if !ok {
			return 0, mismatch(spec, arg)
		}
		// sign flags only apply to signed conversions
		v = v.without("+ ")
		if u == 0 {
			switch spec.Specifier {
			case "x", "X":
				v = v.without("#")
			case "o":
				// the alternate form always prints at least the 0
				if v.has('#') && v.prec == 0 {
					v.prec = -1
				}
			}
		}
		return fmt.Fprintf(w, v.goFormat(spec.GoVerb()), u)
	case libcutils.ClassFloat:
		if arg.kind != KindFloat {
			return 0, mismatch(spec, arg)
		}
		return v.float(w, arg.f)
	case libcutils.ClassChar:
		i, ok := arg.asInt()
		if !ok {
			return 0, mismatch(spec, arg)
		}
		return fmt.Fprintf(w, v.without("+ #").goFormat('c'), rune(i))
	case libcutils.ClassString:
		if arg.kind != KindString {
			return 0, mismatch(spec, arg)
		}
		s := arg.s
		if v.prec >= 0 && v.prec < len(s) {
			s = s[:v.prec]
		}
		return pad(w, s, v.width, v.left())
	case libcutils.ClassPointer:
		if arg.kind != KindPointer {
			return 0, mismatch(spec, arg)
		}
		if arg.u == 0 {
			return pad(w, "(nil)", v.width, v.left())
		}
		v = v.without("+ ")
		v.flags += "#"
		return fmt.Fprintf(w, v.goFormat('x'), arg.u)
	}
	return 0, fmt.Errorf("%w %s", libcutils.ErrUnsupported, spec.Original)
}

func (v verb) float(w io.Writer, f float64) (int, error) {
	conv := v.spec.Specifier[0]
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return v.nonFinite(w, f)
	}
	switch conv {
	case 'a', 'A':
		return v.hexFloat(w, f)
	case 'g', 'G':
		// fmt's default for %g is the shortest representation, libc's is 6
		if v.prec < 0 {
			v.prec = 6
		}
	}
	return fmt.Fprintf(w, v.goFormat(conv), f)
}

func upper(conv byte) bool { return conv >= 'A' && conv <= 'Z' }

func (v verb) nonFinite(w io.Writer, f float64) (int, error) {
	s := "inf"
	if math.IsNaN(f) {
		s = "nan"
	}
	s = v.sign(math.Signbit(f)) + s
	if upper(v.spec.Specifier[0]) {
		s = strings.ToUpper(s)
	}
	return pad(w, s, v.width, v.left())
}

// hexFloat renders %a. fmt pads the binary exponent to two digits; libc does not.
// The mantissa is always normalized to a leading 1: subnormals print as
// 0x1p-1074 rather than glibc's 0x0.0000000000001p-1022, and a rounding carry
// bumps the exponent (%.1a of 1.96875 is 0x1.0p+1, not 0x2.0p+0). Both forms
// denote the same value.
func (v verb) hexFloat(w io.Writer, f float64) (int, error) {
	conv := byte('x')
	if upper(v.spec.Specifier[0]) {
		conv = 'X'
	}
	body := trimExponent(strconv.FormatFloat(math.Abs(f), conv, v.prec, 64))
	if v.has('#') && !strings.Contains(body, ".") {
		i := strings.IndexAny(body, "pP")
		body = body[:i] + "." + body[i:]
	}
	sign := v.sign(math.Signbit(f))
	if v.has('0') && !v.left() {
		if n := v.width - len(sign) - len(body); n > 0 {
			body = body[:2] + strings.Repeat("0", n) + body[2:]
		}
	}
	return pad(w, sign+body, v.width, v.left())
}

func trimExponent(s string) string {
	i := strings.LastIndexAny(s, "pP")
	if i < 0 || i+2 >= len(s) {
		return s
	}
	digits := strings.TrimLeft(s[i+2:], "0")
	if digits == "" {
		digits = "0"
	}
	return s[:i+2] + digits
}

func pad(w io.Writer, s string, width int, left bool) (int, error) {
	n := width - len(s)
	if n <= 0 {
		return io.WriteString(w, s)
	}
	if left {
		return io.WriteString(w, s+strings.Repeat(" ", n))
	}
	return io.WriteString(w, strings.Repeat(" ", n)+s)
}
