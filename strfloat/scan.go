package strfloat

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isHexDigit(c byte) bool {
	return isDigit(c) || (c|0x20 >= 'a' && c|0x20 <= 'f')
}

func isAlnum(c byte) bool {
	return isDigit(c) || (c|0x20 >= 'a' && c|0x20 <= 'z') || c == '_'
}

// scan returns the bounds of the number at the start of s, after leading
// white space. start == end when there is no number.
func scan(s string) (start, end int) {
	i := 0
	for i < len(s) && isSpace(s[i]) {
		i++
	}
	start = i
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	rest := s[i:]
	for _, match := range []func(string) int{special, hexNumber, decimalNumber} {
		if n := match(rest); n > 0 {
			return start, i + n
		}
	}
	return start, start
}

func special(s string) int {
	switch {
	case hasPrefixFold(s, "infinity"):
		return 8
	case hasPrefixFold(s, "inf"):
		return 3
	case hasPrefixFold(s, "nan"):
		// nan(n-char-sequence)
		if len(s) > 3 && s[3] == '(' {
			j := 4
			for j < len(s) && isAlnum(s[j]) {
				j++
			}
			if j < len(s) && s[j] == ')' {
				return j + 1
			}
		}
		return 3
	}
	return 0
}

// hasPrefixFold is strings.HasPrefix with ASCII-only case folding. prefix must
// be lower case letters.
func hasPrefixFold(s, prefix string) bool {
	if len(s) < len(prefix) {
		return false
	}
	for i := 0; i < len(prefix); i++ {
		if s[i]|0x20 != prefix[i] {
			return false
		}
	}
	return true
}

func hexNumber(s string) int {
	if len(s) < 2 || s[0] != '0' || s[1]|0x20 != 'x' {
		return 0
	}
	i, digits := 2, 0
	for i < len(s) && isHexDigit(s[i]) {
		i++
		digits++
	}
	if i < len(s) && s[i] == '.' {
		i++
		for i < len(s) && isHexDigit(s[i]) {
			i++
			digits++
		}
	}
	if digits == 0 {
		// "0x" alone is the number 0 followed by garbage
		return 0
	}
	return i + exponent(s[i:], 'p')
}

func decimalNumber(s string) int {
	i, digits := 0, 0
	for i < len(s) && isDigit(s[i]) {
		i++
		digits++
	}
	if i < len(s) && s[i] == '.' {
		i++
		for i < len(s) && isDigit(s[i]) {
			i++
			digits++
		}
	}
	if digits == 0 {
		return 0
	}
	return i + exponent(s[i:], 'e')
}

// exponent is the length of an exponent suffix introduced by mark, or 0 when
// the suffix has no digits.
func exponent(s string, mark byte) int {
	if len(s) == 0 || s[0]|0x20 != mark {
		return 0
	}
	i := 1
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	j := i
	for j < len(s) && isDigit(s[j]) {
		j++
	}
	if j == i {
		return 0
	}
	return j
}
