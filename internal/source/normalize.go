package source

import (
	"regexp"
	"strings"
)

var (
	lineNumberOnlyPattern   = regexp.MustCompile(`^\s*\d+\s*$`)
	lineNumberPrefixPattern = regexp.MustCompile(`^\s*\d+(\s+)(.*)$`)
)

// NormalizePageText strips printed line numbers from a numbered listing
// page. Printers that emit "  12    return x;" per line would otherwise leak
// the numbers into the recovered source. Stripping only happens when the
// majority of the page's non-blank lines carry a numeric prefix; an
// unnumbered page, where a leading digit is real code, passes through
// untouched.
func NormalizePageText(text string) string {
	if text == "" {
		return ""
	}
	lines := strings.Split(text, "\n")

	nonBlank, numbered := 0, 0
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		nonBlank++
		if lineNumberOnlyPattern.MatchString(line) || lineNumberPrefixPattern.MatchString(line) {
			numbered++
		}
	}
	if nonBlank == 0 || numbered*2 <= nonBlank {
		return text
	}

	cleaned := make([]string, 0, len(lines))
	for _, line := range lines {
		switch {
		case lineNumberOnlyPattern.MatchString(line):
			cleaned = append(cleaned, "")
		case lineNumberPrefixPattern.MatchString(line):
			m := lineNumberPrefixPattern.FindStringSubmatch(line)
			spacing, remainder := m[1], m[2]
			// One space separated the number from the code; the rest is
			// the listing's own indentation.
			keep := ""
			if len(spacing) > 1 {
				keep = spacing[1:]
			}
			cleaned = append(cleaned, keep+remainder)
		default:
			cleaned = append(cleaned, line)
		}
	}
	return strings.Join(cleaned, "\n")
}
