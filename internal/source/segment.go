package source

import "strings"

// Segment is the in-progress accumulation of lines believed to belong to one
// output source file. It is created by the boundary detector when a boundary
// line is seen and finalized when the next boundary (or end of input)
// arrives.
type Segment struct {
	// Lines is the ordered body of the segment. A header caption line is
	// not part of the body; a type-opener line is.
	Lines []string
	// Filename is the provisional filename captured from a header caption,
	// empty when the segment was opened by a type opener.
	Filename string
	// TypeName is the identifier of the segment's first top-level type.
	TypeName string
	// Package is the declared package or namespace path, first declaration
	// wins.
	Package string

	namespaceDecl bool // Package came from a PHP namespace statement
	sawPHPTag     bool // a <?php marker appeared in the body
	hasOpener     bool // the segment's own top-level type opener was seen
	depth         int  // brace depth, clamped at zero
	inBlockComment bool
}

// append adds one body line and advances the brace-depth bookkeeping.
func (s *Segment) append(line string) {
	s.Lines = append(s.Lines, line)
	if strings.Contains(line, "<?php") {
		s.sawPHPTag = true
	}
	s.depth += braceDelta(line, &s.inBlockComment)
	if s.depth < 0 {
		s.depth = 0
	}
}

// Body returns the segment's source text with a single trailing newline.
func (s *Segment) Body() string {
	return strings.TrimRight(strings.Join(s.Lines, "\n"), " \t\n") + "\n"
}

// empty reports whether the segment has no meaningful body and must be
// discarded rather than emitted.
func (s *Segment) empty() bool {
	for _, line := range s.Lines {
		if strings.TrimSpace(line) != "" {
			return false
		}
	}
	return true
}

// braceDelta counts the net {/} balance of one line, ignoring braces inside
// string literals, character literals, and comments. Block-comment state
// carries across lines via inBlockComment.
func braceDelta(line string, inBlockComment *bool) int {
	delta := 0
	var inString, inChar bool
	runes := []rune(line)
	for i := 0; i < len(runes); i++ {
		c := runes[i]
		if *inBlockComment {
			if c == '*' && i+1 < len(runes) && runes[i+1] == '/' {
				*inBlockComment = false
				i++
			}
			continue
		}
		if inString {
			switch c {
			case '\\':
				i++
			case '"':
				inString = false
			}
			continue
		}
		if inChar {
			switch c {
			case '\\':
				i++
			case '\'':
				inChar = false
			}
			continue
		}
		switch c {
		case '/':
			if i+1 < len(runes) {
				switch runes[i+1] {
				case '/':
					return delta // line comment, rest of line is dead
				case '*':
					*inBlockComment = true
					i++
				}
			}
		case '#':
			return delta // PHP line comment
		case '"':
			inString = true
		case '\'':
			inChar = true
		case '{':
			delta++
		case '}':
			delta--
		}
	}
	return delta
}
