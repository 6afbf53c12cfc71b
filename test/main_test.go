package main_test

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rgolang/dprintf/dprintf"
	"github.com/rgolang/dprintf/strfloat"
)

func compile(name string) error {
	commands := []string{
		"go run ../main.go ir " + name,
		"llc -filetype=obj -relocation-model=pic " + name + ".ll",
		"gcc testdata/harness.c " + name + ".o -o ./" + name,
	}
	for _, cmd := range commands {
		cmd := exec.Command("sh", "-c", cmd)
		output, err := cmd.CombinedOutput()
		if err != nil {
			return fmt.Errorf("error running command %q: %s, output: %s", cmd, err, output)
		}
	}

	for _, f := range []string{name + ".ll", name + ".o"} {
		if err := os.Remove(f); err != nil {
			return fmt.Errorf("error removing file %q: %s", f, err)
		}
	}
	return nil
}

func run(command string) (string, error) {
	cmd := exec.Command(command)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("error running command %q: %s, output: %s", cmd, err, output)
	}
	return string(output), nil
}

func compileAndRun(t *testing.T, name string) string {
	t.Helper()
	if runtime.GOARCH != "amd64" || runtime.GOOS != "linux" {
		t.Skipf("native formatter targets x86-64 linux, running on %s/%s", runtime.GOOS, runtime.GOARCH)
	}
	for _, tool := range []string{"llc", "gcc"} {
		if _, err := exec.LookPath(tool); err != nil {
			t.Skipf("%s not found", tool)
		}
	}

	require.NoError(t, compile(name))
	out, err := run("./" + name)
	require.NoError(t, err)
	if err := os.Remove(name); err != nil {
		panic(fmt.Sprintf("error removing file %q: %s", name, err))
	}
	return out
}

func TestNativeMatchesGo(t *testing.T) {
	var want strings.Builder
	for i, m := range []struct {
		mode      strfloat.DisplayMode
		width     uint
		precision uint
	}{
		{strfloat.Fixed, 10, 2},
		{strfloat.Floating, 12, 3},
		{strfloat.Mixed, 10, 4},
	} {
		if i > 0 {
			want.WriteString("|")
		}
		s, err := strfloat.DoubleToString(1234.5, m.mode, m.width, m.precision)
		require.NoError(t, err)
		want.WriteString(s)
	}
	want.WriteString("\n")

	_, err := dprintf.Appendf(&want, "%-6s|%+d|%x|%5.1e|%c\n",
		dprintf.Str("ab"), dprintf.Int(42), dprintf.Uint(255), dprintf.Float(0.5), dprintf.Char('z'))
	require.NoError(t, err)
	_, err = dprintf.Appendf(&want, "%d\n", dprintf.Int(-2))
	require.NoError(t, err)

	require.Equal(t, "   1234.50|   1.234e+03|      1234\nab    |+42|ff|5.0e-01|z\n-2\n", want.String())
	require.Equal(t, want.String(), compileAndRun(t, "dformat"))
}
