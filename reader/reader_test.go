package reader

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReader_ReadLineRN(t *testing.T) {
	r := New(strings.NewReader("Hëllo\r\nWörld"))
	req := require.New(t)

	line, pos, err := r.ReadLine()
	req.NoError(err)
	req.Equal("Hëllo", line)
	req.Equal(Pos{Line: 1, Column: 1, Offset: 0}, pos)
	req.Equal(Pos{Line: 2, Column: 1, Offset: 8}, r.Pos()) // 'ë' is 2 bytes in UTF-8

	line, pos, err = r.ReadLine()
	req.NoError(err)
	req.Equal("Wörld", line)
	req.Equal(Pos{Line: 2, Column: 1, Offset: 8}, pos)
	req.Equal(Pos{Line: 2, Column: 6, Offset: 14}, r.Pos())

	_, _, err = r.ReadLine()
	req.ErrorIs(err, io.EOF)
}

func TestReader_ReadLineMixedNewlines(t *testing.T) {
	r := New(strings.NewReader("a\rb\n\nc\r"))
	req := require.New(t)

	var lines []string
	var starts []string
	for {
		line, pos, err := r.ReadLine()
		if err == io.EOF {
			break
		}
		req.NoError(err)
		lines = append(lines, line)
		starts = append(starts, pos.String())
	}
	req.Equal([]string{"a", "b", "", "c"}, lines)
	req.Equal([]string{"1:1", "2:1", "3:1", "4:1"}, starts)
	req.Equal(5, r.Pos().Line)
}

func TestReader_Empty(t *testing.T) {
	_, pos, err := New(strings.NewReader("")).ReadLine()
	require.ErrorIs(t, err, io.EOF)
	require.Equal(t, "1:1", pos.String())
}

func TestPos_Advance(t *testing.T) {
	p := Pos{Line: 3, Column: 2, Offset: 10}.Advance("ün")
	require.Equal(t, Pos{Line: 3, Column: 4, Offset: 13}, p)
}
