package pagetext

import (
	"strconv"
	"strings"
)

// decodeContentText scans a decoded PDF content stream for text-showing
// operators (Tj, ', ", TJ) and reassembles their string operands into plain
// text. Text-positioning operators (Td, TD, T*) become line breaks, which is
// as much layout as the source pipeline needs. Strings are taken at face
// value; CID/composite font encodings are not resolved.
func decodeContentText(content []byte) string {
	var out strings.Builder
	var pending []string

	flush := func() {
		for _, s := range pending {
			out.WriteString(s)
		}
		pending = pending[:0]
	}

	i := 0
	for i < len(content) {
		c := content[i]
		switch {
		case c == '(':
			s, next := readLiteralString(content, i)
			pending = append(pending, s)
			i = next
		case c == '<' && i+1 < len(content) && content[i+1] != '<':
			s, next := readHexString(content, i)
			pending = append(pending, s)
			i = next
		case c == '<': // dictionary start
			i += 2
		case c == '>':
			i++
		case c == '%':
			for i < len(content) && content[i] != '\n' {
				i++
			}
		case c == '[' || c == ']' || c == '/' || isPDFSpace(c):
			i++
		default:
			start := i
			for i < len(content) && !isPDFDelim(content[i]) {
				i++
			}
			switch string(content[start:i]) {
			case "Tj", "TJ":
				flush()
			case "'", "\"":
				out.WriteByte('\n')
				flush()
			case "Td", "TD", "T*", "ET":
				pending = pending[:0]
				out.WriteByte('\n')
			case "BT":
				pending = pending[:0]
			default:
				// Operand strings not consumed by a text operator are dead.
				if len(pending) > 0 && !isOperand(content[start:i]) {
					pending = pending[:0]
				}
			}
		}
	}
	return out.String()
}

// isOperand reports whether a token is a numeric operand rather than an
// operator, so intervening numbers (e.g. TJ kerning values) don't discard
// buffered strings.
func isOperand(token []byte) bool {
	if len(token) == 0 {
		return false
	}
	_, err := strconv.ParseFloat(string(token), 64)
	return err == nil
}

// readLiteralString decodes a (...) string starting at i, returning the text
// and the index just past the closing parenthesis.
func readLiteralString(content []byte, i int) (string, int) {
	var b strings.Builder
	depth := 0
	for ; i < len(content); i++ {
		c := content[i]
		switch c {
		case '\\':
			if i+1 >= len(content) {
				return b.String(), i + 1
			}
			i++
			switch content[i] {
			case 'n':
				b.WriteByte('\n')
			case 'r':
				b.WriteByte('\r')
			case 't':
				b.WriteByte('\t')
			case 'b', 'f':
				// ignored
			case '(', ')', '\\':
				b.WriteByte(content[i])
			case '\n':
				// line continuation
			default:
				if content[i] >= '0' && content[i] <= '7' {
					val := 0
					for n := 0; n < 3 && i < len(content) && content[i] >= '0' && content[i] <= '7'; n++ {
						val = val*8 + int(content[i]-'0')
						i++
					}
					i--
					b.WriteByte(byte(val))
				} else {
					b.WriteByte(content[i])
				}
			}
		case '(':
			if depth > 0 {
				b.WriteByte(c)
			}
			depth++
		case ')':
			depth--
			if depth == 0 {
				return b.String(), i + 1
			}
			b.WriteByte(c)
		default:
			b.WriteByte(c)
		}
	}
	return b.String(), i
}

// readHexString decodes a <...> string starting at i, returning the text and
// the index just past the closing bracket.
func readHexString(content []byte, i int) (string, int) {
	var b strings.Builder
	i++ // skip '<'
	var hi byte
	var haveHi bool
	for ; i < len(content); i++ {
		c := content[i]
		if c == '>' {
			if haveHi {
				b.WriteByte(hexVal(hi) << 4)
			}
			return b.String(), i + 1
		}
		if !isHexDigit(c) {
			continue
		}
		if !haveHi {
			hi = c
			haveHi = true
			continue
		}
		b.WriteByte(hexVal(hi)<<4 | hexVal(c))
		haveHi = false
	}
	return b.String(), i
}

func isPDFSpace(c byte) bool {
	switch c {
	case 0, '\t', '\n', '\f', '\r', ' ':
		return true
	}
	return false
}

func isPDFDelim(c byte) bool {
	if isPDFSpace(c) {
		return true
	}
	switch c {
	case '(', ')', '<', '>', '[', ']', '{', '}', '/', '%':
		return true
	}
	return false
}

func isHexDigit(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

func hexVal(c byte) byte {
	switch {
	case c >= '0' && c <= '9':
		return c - '0'
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10
	default:
		return c - 'A' + 10
	}
}
