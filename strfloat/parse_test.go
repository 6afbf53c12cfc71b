package strfloat

import (
	"math"
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
)

func TestParseDouble(t *testing.T) {
	for _, tc := range []struct {
		in       string
		value    float64
		consumed int
		status   Status
	}{
		{in: "3.14abc", value: 3.14, consumed: 4, status: Partial},
		{in: "abc", value: 0, consumed: 0, status: NoMatch},
		{in: "", value: 0, consumed: 0, status: NoMatch},
		{in: "   ", value: 0, consumed: 0, status: NoMatch},
		{in: "42", value: 42, consumed: 2, status: Full},
		{in: "  -1.5e3  ", value: -1500, consumed: 8, status: Full},
		{in: "\t\n+7", value: 7, consumed: 4, status: Full},
		{in: ".5", value: 0.5, consumed: 2, status: Full},
		{in: "5.", value: 5, consumed: 2, status: Full},
		{in: ".", value: 0, consumed: 0, status: NoMatch},
		{in: "-", value: 0, consumed: 0, status: NoMatch},
		{in: "+.e1", value: 0, consumed: 0, status: NoMatch},
		{in: "- 5", value: 0, consumed: 0, status: NoMatch},
		{in: "1e", value: 1, consumed: 1, status: Partial},
		{in: "1e+", value: 1, consumed: 1, status: Partial},
		{in: "1e+5x", value: 100000, consumed: 4, status: Partial},
		{in: "2E-2", value: 0.02, consumed: 4, status: Full},
		{in: "1,5", value: 1, consumed: 1, status: Partial},
		{in: "0x1.8p1", value: 3, consumed: 7, status: Full},
		{in: "0x1A", value: 26, consumed: 4, status: Full},
		{in: "0X.8", value: 0.5, consumed: 4, status: Full},
		{in: "-0x10p-4", value: -1, consumed: 8, status: Full},
		{in: "0xg", value: 0, consumed: 1, status: Partial},
		{in: "0x1p", value: 1, consumed: 3, status: Partial},
		{in: "1e400", value: math.Inf(1), consumed: 5, status: Full},
		{in: "-1e400", value: math.Inf(-1), consumed: 6, status: Full},
		{in: "1e-400", value: 0, consumed: 6, status: Full},
		{in: "inf", value: math.Inf(1), consumed: 3, status: Full},
		{in: "-Infinity", value: math.Inf(-1), consumed: 9, status: Full},
		{in: "INFINITYx", value: math.Inf(1), consumed: 8, status: Partial},
		{in: "infinit", value: math.Inf(1), consumed: 3, status: Partial},
		{in: "İnf", value: 0, consumed: 0, status: NoMatch},
		{in: "İNFINITY", value: 0, consumed: 0, status: NoMatch},
		{in: "-İnf", value: 0, consumed: 0, status: NoMatch},
		{in: "ınf", value: 0, consumed: 0, status: NoMatch},
	} {
		t.Run(tc.in, func(t *testing.T) {
			r := ParseDouble(tc.in)
			require.Equal(t, tc.value, r.Value)
			require.Equal(t, tc.consumed, r.Consumed)
			require.Equal(t, tc.status, r.Status)
			require.Equal(t, tc.in, r.Input)
		})
	}
}

func TestParseDoubleNaN(t *testing.T) {
	for in, consumed := range map[string]int{
		"nan":      3,
		"NaN(123)": 8,
		"-nan":     4,
		"nan(":     3,
		"nan(x y)": 3,
	} {
		r := ParseDouble(in)
		require.True(t, math.IsNaN(r.Value), in)
		require.Equal(t, consumed, r.Consumed, in)
	}
}

func TestResultErr(t *testing.T) {
	require.NoError(t, ParseDouble(" 1 ").Err())
	require.ErrorIs(t, ParseDouble("1x").Err(), ErrSyntax)
	require.ErrorContains(t, ParseDouble("1x").Err(), `unexpected "x" after "1"`)
	require.ErrorIs(t, ParseDouble("x").Err(), ErrSyntax)
}

func TestParseDoubleStrict(t *testing.T) {
	v, err := ParseDoubleStrict("2.5")
	require.NoError(t, err)
	require.Equal(t, 2.5, v)

	v, err = ParseDoubleStrict("3.14abc")
	require.ErrorIs(t, err, ErrSyntax)
	require.Equal(t, 3.14, v)
}

func TestStringToDouble(t *testing.T) {
	require.Equal(t, 3.14, StringToDouble("3.14abc"))
	require.Equal(t, 0.0, StringToDouble("abc"))
	require.Equal(t, -12.5, StringToDouble(" -12.5"))
}

func TestStringToFloat(t *testing.T) {
	require.Equal(t, float32(3.14), StringToFloat("3.14abc"))
	require.Equal(t, float32(0), StringToFloat("abc"))
	require.True(t, math.IsInf(float64(StringToFloat("1e39")), 1))

	r := ParseFloat("0.1")
	require.Equal(t, float64(float32(0.1)), r.Value)
	require.Equal(t, Full, r.Status)
}

func TestStringToDoubleLogsLenientParse(t *testing.T) {
	hooks := log.StandardLogger().ReplaceHooks(make(log.LevelHooks))
	hook := test.NewGlobal()
	level := log.GetLevel()
	log.SetLevel(log.DebugLevel)
	defer func() {
		log.SetLevel(level)
		log.StandardLogger().ReplaceHooks(hooks)
	}()

	StringToDouble("12")
	require.Empty(t, hook.Entries)

	StringToDouble("12kg")
	require.Len(t, hook.Entries, 1)
	entry := hook.LastEntry()
	require.Equal(t, "strfloat: lenient parse", entry.Message)
	require.Equal(t, 2, entry.Data["consumed"])
	require.Equal(t, "partial", entry.Data["status"])
}
