package dprintf

import (
	"strconv"
)

// ArgKind identifies the Go type carried by an Arg.
type ArgKind uint8

const (
	KindInt ArgKind = iota + 1
	KindUint
	KindFloat
	KindChar
	KindString
	KindPointer
)

var argKindNames = [...]string{"invalid", "int", "uint", "float", "char", "string", "pointer"}

func (k ArgKind) String() string {
	if int(k) < len(argKindNames) {
		return argKindNames[k]
	}
	return "ArgKind(" + strconv.Itoa(int(k)) + ")"
}

// Arg is one typed formatting argument. The zero Arg is invalid.
type Arg struct {
	kind ArgKind
	i    int64
	u    uint64
	f    float64
	s    string
}

func Int(v int64) Arg       { return Arg{kind: KindInt, i: v} }
func Uint(v uint64) Arg     { return Arg{kind: KindUint, u: v} }
func Float(v float64) Arg   { return Arg{kind: KindFloat, f: v} }
func Float32(v float32) Arg { return Float(float64(v)) }
func Char(v rune) Arg       { return Arg{kind: KindChar, i: int64(v)} }
func Str(v string) Arg      { return Arg{kind: KindString, s: v} }
func Ptr(v uintptr) Arg     { return Arg{kind: KindPointer, u: uint64(v)} }

func (a Arg) Kind() ArgKind { return a.kind }

func (a Arg) String() string {
	switch a.kind {
	case KindInt:
		return strconv.FormatInt(a.i, 10)
	case KindUint:
		return strconv.FormatUint(a.u, 10)
	case KindFloat:
		return strconv.FormatFloat(a.f, 'g', -1, 64)
	case KindChar:
		return strconv.QuoteRune(rune(a.i))
	case KindString:
		return strconv.Quote(a.s)
	case KindPointer:
		return "0x" + strconv.FormatUint(a.u, 16)
	}
	return "<invalid>"
}

// Args is a cursor over an argument list. Next consumes arguments, so every
// traversal must work on its own Copy.
type Args struct {
	list []Arg
	pos  int
}

func NewArgs(args ...Arg) *Args {
	return &Args{list: args}
}

// Next returns the next argument and advances the cursor.
func (a *Args) Next() (Arg, bool) {
	if a == nil || a.pos >= len(a.list) {
		return Arg{}, false
	}
	arg := a.list[a.pos]
	a.pos++
	return arg, true
}

// Copy returns an independent cursor at the same position.
func (a *Args) Copy() *Args {
	if a == nil {
		return &Args{}
	}
	return &Args{list: a.list, pos: a.pos}
}

// Remaining is the number of arguments not yet consumed.
func (a *Args) Remaining() int {
	if a == nil {
		return 0
	}
	return len(a.list) - a.pos
}

// asInt reads integral kinds the way a C int conversion would.
func (a Arg) asInt() (int64, bool) {
	switch a.kind {
	case KindInt, KindChar:
		return a.i, true
	case KindUint:
		return int64(a.u), true
	}
	return 0, false
}

func (a Arg) asUint() (uint64, bool) {
	switch a.kind {
	case KindUint:
		return a.u, true
	case KindInt, KindChar:
		return uint64(a.i), true
	}
	return 0, false
}
