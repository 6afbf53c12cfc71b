package llvm

import (
	"fmt"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/enum"
	"github.com/llir/llvm/ir/types"

	"github.com/rgolang/dprintf/omap"
	"github.com/rgolang/dprintf/strfloat"
)

// DefaultTriple is the only target whose va_list layout the emitter knows.
const DefaultTriple = "x86_64-unknown-linux-gnu"

// Return codes of the emitted functions besides the rendered length.
const (
	CodeAlloc       = -1
	CodeInvalidMode = -2
)

var zero = constant.NewInt(types.I32, 0)

type Option func(*options)

type options struct {
	triple string
}

func defaultOptions() *options {
	return &options{triple: DefaultTriple}
}

// WithTriple overrides the module's target triple. The va_list layout stays
// x86-64 SysV.
func WithTriple(triple string) Option {
	return func(o *options) {
		if triple != "" {
			o.triple = triple
		}
	}
}

func GenerateIR(opts ...Option) (string, error) {
	mod, err := ToIR(opts...)
	if err != nil {
		return "", fmt.Errorf("error generating IR: %w", err)
	}
	return mod.String(), nil
}

// ToIR builds a module exporting dprintf_vappend, dprintf_append and
// dformat_real on top of libc.
func ToIR(opts ...Option) (*ir.Module, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	ctx := newContext(o)
	vappend := ctx.declareVAppend()
	appendFn := ctx.declareAppend(vappend)
	if _, err := ctx.declareReal(appendFn); err != nil {
		return nil, fmt.Errorf("error declaring dformat_real: %w", err)
	}
	return ctx.Mod, nil
}

type Context struct {
	Mod     *ir.Module
	externs *omap.Map[string, *ir.Func]
	strs    *omap.Map[string, *constant.ExprGetElementPtr]
	dstring types.Type
	vaList  types.Type
}

func newContext(o *options) *Context {
	mod := ir.NewModule()
	mod.TargetTriple = o.triple
	return &Context{
		Mod:     mod,
		externs: omap.New[string, *ir.Func](),
		strs:    omap.New[string, *constant.ExprGetElementPtr](),
		dstring: mod.NewTypeDef("dstring", types.NewStruct(types.I8Ptr, types.I64)),
		vaList:  mod.NewTypeDef("struct.__va_list_tag", types.NewStruct(types.I32, types.I32, types.I8Ptr, types.I8Ptr)),
	}
}

// Externs lists the libc and intrinsic functions declared so far, in the order
// they were first needed.
func (ctx *Context) Externs() []string {
	return ctx.externs.Keys()
}

func (ctx *Context) libc(name string) *ir.Func {
	if f, ok := ctx.externs.Get(name); ok {
		return f
	}

	mod := ctx.Mod
	var f *ir.Func
	switch name {
	case "vsnprintf":
		f = mod.NewFunc(name, types.I32,
			ir.NewParam("buf", types.I8Ptr),
			ir.NewParam("size", types.I64),
			ir.NewParam("format", types.I8Ptr),
			ir.NewParam("ap", types.I8Ptr),
		)
	case "malloc":
		f = mod.NewFunc(name, types.I8Ptr, ir.NewParam("size", types.I64))
	case "realloc":
		f = mod.NewFunc(name, types.I8Ptr, ir.NewParam("ptr", types.I8Ptr), ir.NewParam("size", types.I64))
	case "free":
		f = mod.NewFunc(name, types.Void, ir.NewParam("ptr", types.I8Ptr))
	case "memcpy":
		f = mod.NewFunc(name, types.I8Ptr,
			ir.NewParam("dst", types.I8Ptr),
			ir.NewParam("src", types.I8Ptr),
			ir.NewParam("n", types.I64),
		)
	case "llvm.va_start", "llvm.va_end":
		f = mod.NewFunc(name, types.Void, ir.NewParam("ap", types.I8Ptr))
	case "llvm.va_copy":
		f = mod.NewFunc(name, types.Void, ir.NewParam("dst", types.I8Ptr), ir.NewParam("src", types.I8Ptr))
	default:
		panic("unknown libc function: " + name)
	}
	ctx.externs.Set(name, f)
	return f
}

func (ctx *Context) declareVAppend() *ir.Func {
	vaCopy, vaEnd := ctx.libc("llvm.va_copy"), ctx.libc("llvm.va_end")
	vsnprintf := ctx.libc("vsnprintf")
	malloc, realloc := ctx.libc("malloc"), ctx.libc("realloc")
	free, memcpy := ctx.libc("free"), ctx.libc("memcpy")

	acc := ir.NewParam("acc", types.NewPointer(ctx.dstring))
	format := ir.NewParam("format", types.I8Ptr)
	ap := ir.NewParam("ap", types.I8Ptr)
	fn := ctx.Mod.NewFunc("dprintf_vappend", types.I32, acc, format, ap)

	entry := fn.NewBlock("entry")
	measureFailed := fn.NewBlock("measure.failed")
	alloc := fn.NewBlock("alloc")
	allocFailed := fn.NewBlock("alloc.failed")
	render := fn.NewBlock("render")
	growFailed := fn.NewBlock("grow.failed")
	commit := fn.NewBlock("commit")

	null := constant.NewNull(types.I8Ptr)
	failure := constant.NewInt(types.I32, CodeAlloc)

	// measuring consumes ap, rendering gets the copy
	cp := entry.NewAlloca(ctx.vaList)
	cpPtr := entry.NewBitCast(cp, types.I8Ptr)
	entry.NewCall(vaCopy, cpPtr, ap)
	n := entry.NewCall(vsnprintf, null, constant.NewInt(types.I64, 0), format, ap)
	entry.NewCondBr(entry.NewICmp(enum.IPredSLT, n, zero), measureFailed, alloc)

	measureFailed.NewCall(vaEnd, cpPtr)
	measureFailed.NewRet(n)

	// n bytes plus the terminator
	size := alloc.NewAdd(alloc.NewSExt(n, types.I64), constant.NewInt(types.I64, 1))
	buf := alloc.NewCall(malloc, size)
	alloc.NewCondBr(alloc.NewICmp(enum.IPredEQ, buf, null), allocFailed, render)

	allocFailed.NewCall(vaEnd, cpPtr)
	allocFailed.NewRet(failure)

	r := render.NewCall(vsnprintf, buf, size, format, cpPtr)
	render.NewCall(vaEnd, cpPtr)
	dataPtr := render.NewGetElementPtr(ctx.dstring, acc, zero, zero)
	lenPtr := render.NewGetElementPtr(ctx.dstring, acc, zero, constant.NewInt(types.I32, 1))
	data := render.NewLoad(types.I8Ptr, dataPtr)
	length := render.NewLoad(types.I64, lenPtr)
	grown := render.NewCall(realloc, data, render.NewAdd(length, size))
	render.NewCondBr(render.NewICmp(enum.IPredEQ, grown, null), growFailed, commit)

	// the accumulator is untouched when it cannot grow
	growFailed.NewCall(free, buf)
	growFailed.NewRet(failure)

	tail := commit.NewGetElementPtr(types.I8, grown, length)
	commit.NewCall(memcpy, tail, buf, size)
	commit.NewStore(grown, dataPtr)
	commit.NewStore(commit.NewAdd(length, commit.NewSExt(n, types.I64)), lenPtr)
	commit.NewCall(free, buf)
	commit.NewRet(r)

	return fn
}

func (ctx *Context) declareAppend(vappend *ir.Func) *ir.Func {
	vaStart, vaEnd := ctx.libc("llvm.va_start"), ctx.libc("llvm.va_end")

	acc := ir.NewParam("acc", types.NewPointer(ctx.dstring))
	format := ir.NewParam("format", types.I8Ptr)
	fn := ctx.Mod.NewFunc("dprintf_append", types.I32, acc, format)
	fn.Sig.Variadic = true

	entry := fn.NewBlock("entry")
	ap := entry.NewAlloca(ctx.vaList)
	apPtr := entry.NewBitCast(ap, types.I8Ptr)
	entry.NewCall(vaStart, apPtr)
	r := entry.NewCall(vappend, acc, format, apPtr)
	entry.NewCall(vaEnd, apPtr)
	entry.NewRet(r)
	return fn
}

func (ctx *Context) declareReal(appendFn *ir.Func) (*ir.Func, error) {
	acc := ir.NewParam("acc", types.NewPointer(ctx.dstring))
	mode := ir.NewParam("mode", types.I32)
	width := ir.NewParam("width", types.I32)
	prec := ir.NewParam("prec", types.I32)
	value := ir.NewParam("value", types.Double)
	fn := ctx.Mod.NewFunc("dformat_real", types.I32, acc, mode, width, prec, value)

	entry := fn.NewBlock("entry")
	invalid := fn.NewBlock("invalid")
	invalid.NewRet(constant.NewInt(types.I32, CodeInvalidMode))

	var cases []*ir.Case
	for _, m := range []strfloat.DisplayMode{strfloat.Fixed, strfloat.Floating, strfloat.Mixed} {
		tmpl, err := strfloat.Template(m)
		if err != nil {
			return nil, err
		}
		block := fn.NewBlock(m.String())
		format := ctx.newConstString("dformat_real."+m.String(), tmpl)
		block.NewRet(block.NewCall(appendFn, acc, format, width, prec, value))
		cases = append(cases, ir.NewCase(constant.NewInt(types.I32, int64(m)), block))
	}
	entry.NewSwitch(mode, invalid, cases...)
	return fn, nil
}

func (ctx *Context) newConstString(name string, value string) *constant.ExprGetElementPtr {
	if c, ok := ctx.strs.Get(value); ok {
		return c
	}
	// null-terminated for libc
	strVal := value + "\x00"
	strType := types.NewArray(uint64(len(strVal)), types.I8)

	constStr := ir.NewGlobalDef(name, constant.NewCharArrayFromString(strVal))
	constStr.Typ = types.NewPointer(strType)
	constStr.Immutable = true
	constStr.Linkage = enum.LinkagePrivate
	constStr.UnnamedAddr = enum.UnnamedAddrUnnamedAddr
	ctx.Mod.Globals = append(ctx.Mod.Globals, constStr)

	c := constant.NewGetElementPtr(constStr.Typ.ElemType, constStr, zero, zero)
	ctx.strs.Set(value, c)
	return c
}
