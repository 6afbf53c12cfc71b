package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"

	log "github.com/sirupsen/logrus"

	"github.com/rgolang/dprintf/dprintf"
	"github.com/rgolang/dprintf/libcutils"
	"github.com/rgolang/dprintf/llvm"
	"github.com/rgolang/dprintf/reader"
	"github.com/rgolang/dprintf/strfloat"
)

const usage = `usage: dprintf [-debug] <command> [args...]

commands:
  ir <name>                                 write <name>.ll with the native formatter
  real <mode> <width> <precision> <value>   format a real number
  parse <text>|-                            parse a real number, or one per line of stdin
  fmt <template> [args...]                  format args with a printf template`

func dfr(cb func() error) {
	if err := cb(); err != nil {
		panic(err)
	}
}

func main() {
	args := os.Args[1:]
	if len(args) > 0 && args[0] == "-debug" {
		log.SetLevel(log.DebugLevel)
		args = args[1:]
	}
	if len(args) == 0 {
		log.Fatal(usage)
	}

	var err error
	switch cmd, rest := args[0], args[1:]; cmd {
	case "ir":
		err = writeIR(rest)
	case "real":
		err = printReal(rest)
	case "parse":
		err = printParse(rest)
	case "fmt":
		err = printFormat(rest)
	default:
		log.Fatalf("unknown command %q\n%s", cmd, usage)
	}
	if err != nil {
		log.Fatalf("%s: %v", args[0], err)
	}
}

func writeIR(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("expected <name>, got %d arguments", len(args))
	}
	name := args[0]

	code, err := llvm.ToIR()
	if err != nil {
		return fmt.Errorf("llvm: %w", err)
	}

	wf, err := os.OpenFile(name+".ll", os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("open dst file: %w", err)
	}
	defer dfr(wf.Close)

	if _, err := code.WriteTo(wf); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	return nil
}

func printReal(args []string) error {
	if len(args) != 4 {
		return fmt.Errorf("expected <mode> <width> <precision> <value>, got %d arguments", len(args))
	}
	mode, err := strfloat.ParseDisplayMode(args[0])
	if err != nil {
		return err
	}
	width, err := strconv.ParseUint(args[1], 10, 0)
	if err != nil {
		return fmt.Errorf("width: %w", err)
	}
	prec, err := strconv.ParseUint(args[2], 10, 0)
	if err != nil {
		return fmt.Errorf("precision: %w", err)
	}
	v, err := strfloat.ParseDoubleStrict(args[3])
	if err != nil {
		return fmt.Errorf("value: %w", err)
	}

	s, err := strfloat.DoubleToString(v, mode, uint(width), uint(prec))
	if err != nil {
		return err
	}
	fmt.Println(s)
	return nil
}

func printParse(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("expected <text>, got %d arguments", len(args))
	}
	if args[0] != "-" {
		r := strfloat.ParseDouble(args[0])
		fmt.Printf("%v\t%d\t%s\n", r.Value, r.Consumed, r.Status)
		return nil
	}
	return parseLines(os.Stdin, os.Stdout)
}

// parseLines parses one number per line and reports where each parse stopped.
func parseLines(in io.Reader, out io.Writer) error {
	lines := reader.New(in)
	for {
		line, pos, err := lines.ReadLine()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read: %w", err)
		}
		r := strfloat.ParseDouble(line)
		stop := pos.Advance(line[:r.Consumed])
		if r.Status != strfloat.Full {
			log.WithFields(log.Fields{
				"pos":    stop.String(),
				"status": r.Status.String(),
			}).Warn("trailing input")
		}
		if _, err := fmt.Fprintf(out, "%s\t%v\t%s\n", stop, r.Value, r.Status); err != nil {
			return err
		}
	}
}

func printFormat(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("expected <template> [args...]")
	}
	tmpl, err := libcutils.Compile(args[0])
	if err != nil {
		return err
	}
	typed, err := typeArgs(tmpl, args[1:])
	if err != nil {
		return err
	}
	s, err := dprintf.Format(args[0], typed...)
	if err != nil {
		return err
	}
	fmt.Println(s)
	return nil
}

// typeArgs converts command line words to the argument each directive reads.
func typeArgs(tmpl *libcutils.Template, words []string) ([]dprintf.Arg, error) {
	if len(words) != tmpl.ArgCount() {
		return nil, fmt.Errorf("template reads %d arguments, got %d", tmpl.ArgCount(), len(words))
	}
	var out []dprintf.Arg
	next := func() string {
		w := words[0]
		words = words[1:]
		return w
	}
	for _, d := range tmpl.Directives() {
		for _, field := range []string{d.Width, d.Precision} {
			if field != "*" {
				continue
			}
			n, err := strconv.ParseInt(next(), 10, 64)
			if err != nil {
				return nil, fmt.Errorf("%s: field: %w", d.Original, err)
			}
			out = append(out, dprintf.Int(n))
		}
		if d.ArgCount() == 0 {
			continue
		}
		arg, err := typeArg(d.Class(), next())
		if err != nil {
			return nil, fmt.Errorf("%s: %w", d.Original, err)
		}
		out = append(out, arg)
	}
	return out, nil
}

func typeArg(class libcutils.ArgClass, w string) (dprintf.Arg, error) {
	switch class {
	case libcutils.ClassInt:
		n, err := strconv.ParseInt(w, 0, 64)
		return dprintf.Int(n), err
	case libcutils.ClassUint:
		if strings.HasPrefix(w, "-") {
			n, err := strconv.ParseInt(w, 0, 64)
			return dprintf.Int(n), err
		}
		n, err := strconv.ParseUint(w, 0, 64)
		return dprintf.Uint(n), err
	case libcutils.ClassFloat:
		f, err := strfloat.ParseDoubleStrict(w)
		return dprintf.Float(f), err
	case libcutils.ClassChar:
		r, size := utf8.DecodeRuneInString(w)
		if size == 0 || size != len(w) {
			return dprintf.Arg{}, fmt.Errorf("expected a single character, got %q", w)
		}
		return dprintf.Char(r), nil
	case libcutils.ClassString:
		return dprintf.Str(w), nil
	case libcutils.ClassPointer:
		n, err := strconv.ParseUint(w, 0, 64)
		return dprintf.Ptr(uintptr(n)), err
	}
	return dprintf.Arg{}, fmt.Errorf("no argument for class %s", class)
}
