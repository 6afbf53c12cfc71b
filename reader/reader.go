// reader splits input into lines, normalizing OS newlines, and keeps track of
// the position of the cursor in terms of bytes, lines and columns.
package reader

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

// Pos is a 1-based line and rune column plus a 0-based byte offset.
type Pos struct {
	Line   int
	Column int
	Offset int
}

func (p Pos) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Advance moves p across s, which must not contain a newline.
func (p Pos) Advance(s string) Pos {
	p.Column += utf8.RuneCountInString(s)
	p.Offset += len(s)
	return p
}

type Reader struct {
	reader *bufio.Reader
	pos    Pos
}

func New(r io.Reader) *Reader {
	return &Reader{
		reader: bufio.NewReader(r),
		pos:    Pos{Line: 1, Column: 1},
	}
}

// ReadLine returns the next line without its terminator and the position of
// its first rune. \r\n, \r and \n all end a line. It returns io.EOF once the
// input is exhausted.
func (r *Reader) ReadLine() (string, Pos, error) {
	start := r.pos
	var sb strings.Builder
	read := false
	for {
		c, size, err := r.reader.ReadRune()
		if err == io.EOF {
			if !read {
				return "", start, io.EOF
			}
			return sb.String(), start, nil
		}
		if err != nil {
			return "", start, err
		}
		read = true
		r.pos.Offset += size

		switch c {
		case '\r':
			// \r\n counts as one line
			next, size, err := r.reader.ReadRune()
			if err == nil {
				if next == '\n' {
					r.pos.Offset += size
				} else if err := r.reader.UnreadRune(); err != nil {
					return "", start, err
				}
			}
			fallthrough
		case '\n':
			r.pos.Line++
			r.pos.Column = 1
			return sb.String(), start, nil
		}
		sb.WriteRune(c)
		r.pos.Column++
	}
}

// Pos is the position of the next unread rune.
func (r *Reader) Pos() Pos {
	return r.pos
}
