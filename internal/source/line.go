package source

import (
	"regexp"
	"strings"
)

// LineKind classifies a single line of recovered page text.
type LineKind int

const (
	// LineOrdinary is any line the classifier has no special reading for.
	LineOrdinary LineKind = iota
	// LineFileHeader is an explicit filename caption preceding a listing.
	LineFileHeader
	// LinePackageDecl is a Java package or PHP namespace declaration.
	LinePackageDecl
	// LineImportDecl is a Java import or PHP use statement.
	LineImportDecl
	// LineTypeOpener starts a top-level class, interface, enum or trait.
	LineTypeOpener
)

// ClassifiedLine carries the original line text, its classification, and the
// token the classifier captured: the filename for a header, the dotted or
// backslashed path for a package declaration, the identifier for a type
// opener. The token is empty for ordinary lines.
type ClassifiedLine struct {
	Text  string
	Kind  LineKind
	Token string
}

var (
	filenameTokenPattern = regexp.MustCompile(`([A-Za-z0-9_][A-Za-z0-9_\-./\\]*\.(?:java|php))\b`)
	javaPackagePattern   = regexp.MustCompile(`^package\s+([A-Za-z_][A-Za-z0-9_.]*)\s*;?\s*$`)
	phpNamespacePattern  = regexp.MustCompile(`^namespace\s+([A-Za-z_][A-Za-z0-9_\\]*)\s*;?\s*$`)
	importDeclPattern    = regexp.MustCompile(`^(?:import|use)\s+[A-Za-z_\\][A-Za-z0-9_.\\]*(?:\s+as\s+[A-Za-z_][A-Za-z0-9_]*)?\s*;`)
	importStaticPattern  = regexp.MustCompile(`^import\s+static\s+[A-Za-z_][A-Za-z0-9_.*]*\s*;`)
	typeOpenerPattern    = regexp.MustCompile(`^(?:(?:public|protected|private|abstract|final|static|sealed|strictfp|readonly)\s+)*(?:class|interface|enum|trait)\s+([A-Za-z_][A-Za-z0-9_]*)`)
)

// codeStatementSuffixes disqualify a line from being a filename caption:
// captions are prose, not statements.
var codeStatementSuffixes = []string{";", "{", "}"}

// ClassifyLine classifies exactly one line. Classification is purely
// line-local; brace-depth bookkeeping for nested-type suppression lives in
// the boundary detector, which knows the state of the open segment.
func ClassifyLine(raw string) ClassifiedLine {
	trimmed := strings.TrimSpace(raw)

	if m := javaPackagePattern.FindStringSubmatch(trimmed); m != nil {
		return ClassifiedLine{Text: raw, Kind: LinePackageDecl, Token: m[1]}
	}
	if m := phpNamespacePattern.FindStringSubmatch(trimmed); m != nil {
		return ClassifiedLine{Text: raw, Kind: LinePackageDecl, Token: m[1]}
	}
	if importStaticPattern.MatchString(trimmed) || importDeclPattern.MatchString(trimmed) {
		return ClassifiedLine{Text: raw, Kind: LineImportDecl, Token: trimmed}
	}
	if token, ok := headerToken(trimmed); ok {
		return ClassifiedLine{Text: raw, Kind: LineFileHeader, Token: token}
	}
	if m := typeOpenerPattern.FindStringSubmatch(trimmed); m != nil {
		return ClassifiedLine{Text: raw, Kind: LineTypeOpener, Token: m[1]}
	}
	return ClassifiedLine{Text: raw, Kind: LineOrdinary}
}

// headerToken reports whether a trimmed line reads as a filename caption and
// returns the captured path token. A caption contains a *.java or *.php
// token, is not itself a code statement, and is not a comment.
func headerToken(trimmed string) (string, bool) {
	if trimmed == "" {
		return "", false
	}
	for _, suffix := range codeStatementSuffixes {
		if strings.HasSuffix(trimmed, suffix) {
			return "", false
		}
	}
	for _, prefix := range []string{"package ", "import ", "use ", "<?php", "//", "/*", "*", "#"} {
		if strings.HasPrefix(trimmed, prefix) {
			return "", false
		}
	}
	m := filenameTokenPattern.FindStringSubmatch(trimmed)
	if m == nil {
		return "", false
	}
	return m[1], true
}
