// Package dprintf formats printf-style templates into exactly sized output.
//
// Every call makes two passes over the template: a measure pass that counts
// the rendered bytes without storing them, and a render pass into a buffer of
// exactly that size. The caller's accumulator is written only after both
// passes succeed, so a failed call never leaves partial output behind.
package dprintf

import (
	"errors"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/rgolang/dprintf/libcutils"
)

// Formatter renders templates. The zero value is not usable; call New.
// A Formatter holds no per-call state and is safe for concurrent use, but
// concurrent calls must not share an accumulator.
type Formatter struct {
	opts *options
}

func New(opts ...Option) *Formatter {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	return &Formatter{opts: o}
}

var std = New()

// Measure returns the number of bytes template renders to, without rendering.
// args is not consumed.
func (f *Formatter) Measure(template string, args *Args) (int, error) {
	_, n, err := f.measure(template, args.Copy())
	if err != nil {
		return -1, f.fail(err)
	}
	return n, nil
}

func (f *Formatter) measure(template string, args *Args) (*libcutils.Template, int, *Error) {
	tmpl, err := libcutils.Compile(template)
	if err != nil {
		offset := -1
		var serr *libcutils.SyntaxError
		if errors.As(err, &serr) {
			offset = serr.Offset
		}
		return nil, -1, &Error{Kind: KindMeasure, Template: template, Offset: offset, Err: err}
	}
	var c counter
	n, offset, err := render(&c, tmpl, args)
	if err != nil {
		return nil, -1, &Error{Kind: KindMeasure, Template: template, Offset: offset, Err: err}
	}
	return tmpl, n, nil
}

// AppendTo renders template with args and appends the result to acc.
// It returns the number of bytes appended, or -1 and an *Error. On error acc
// is left untouched. args is not consumed.
func (f *Formatter) AppendTo(acc *strings.Builder, template string, args *Args) (int, error) {
	tmpl, n, merr := f.measure(template, args.Copy())
	if merr != nil {
		return -1, f.fail(merr)
	}
	if n > f.opts.maxLength {
		return -1, f.fail(&Error{
			Kind:     KindAlloc,
			Template: template,
			Offset:   -1,
			Err:      fmt.Errorf("%d bytes exceeds the limit of %d", n, f.opts.maxLength),
		})
	}
	buf, err := allocate(n)
	if err != nil {
		return -1, f.fail(&Error{Kind: KindAlloc, Template: template, Offset: -1, Err: err})
	}

	r, _, err := render(buf, tmpl, args.Copy())
	if err != nil || r != n {
		panic(fmt.Sprintf("dprintf: rendered %d bytes of %q after measuring %d: %v", r, template, n, err))
	}

	acc.Grow(n)
	acc.Write(buf.Bytes())
	return n, nil
}

// Appendf is AppendTo with inline arguments.
func (f *Formatter) Appendf(acc *strings.Builder, template string, args ...Arg) (int, error) {
	return f.AppendTo(acc, template, NewArgs(args...))
}

// VFormat renders template into a new string. Failures wrap ErrInvalidArgument
// as well as the underlying *Error.
func (f *Formatter) VFormat(template string, args *Args) (string, error) {
	var sb strings.Builder
	if n, err := f.AppendTo(&sb, template, args); n < 0 {
		return "", fmt.Errorf("dprintf: %w: %w", ErrInvalidArgument, err)
	}
	return sb.String(), nil
}

func (f *Formatter) Format(template string, args ...Arg) (string, error) {
	return f.VFormat(template, NewArgs(args...))
}

// MustFormat is like Format but panics on error.
func (f *Formatter) MustFormat(template string, args ...Arg) string {
	s, err := f.Format(template, args...)
	if err != nil {
		panic(err)
	}
	return s
}

func (f *Formatter) fail(e *Error) error {
	f.opts.logger.WithFields(log.Fields{
		"template": e.Template,
		"kind":     e.Kind.String(),
		"offset":   e.Offset,
	}).WithError(e.Err).Debug("dprintf: format failed")
	return e
}

func Measure(template string, args *Args) (int, error) {
	return std.Measure(template, args)
}

func AppendTo(acc *strings.Builder, template string, args *Args) (int, error) {
	return std.AppendTo(acc, template, args)
}

func Appendf(acc *strings.Builder, template string, args ...Arg) (int, error) {
	return std.Appendf(acc, template, args...)
}

func VFormat(template string, args *Args) (string, error) {
	return std.VFormat(template, args)
}

func Format(template string, args ...Arg) (string, error) {
	return std.Format(template, args...)
}

func MustFormat(template string, args ...Arg) string {
	return std.MustFormat(template, args...)
}
