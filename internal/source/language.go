package source

import "strings"

// Language identifies the source language of a recovered file.
type Language string

const (
	// LanguageJava marks Java sources (.java).
	LanguageJava Language = "java"
	// LanguagePHP marks PHP sources (.php).
	LanguagePHP Language = "php"
)

// Extension returns the filename extension for the language, including the
// leading dot.
func (l Language) Extension() string {
	if l == LanguagePHP {
		return ".php"
	}
	return ".java"
}

// ParseLanguage maps a user-supplied language name to a Language. The empty
// string means "no filter" and is returned as-is.
func ParseLanguage(name string) (Language, bool) {
	switch name {
	case "":
		return "", true
	case "java", "JAVA", "Java":
		return LanguageJava, true
	case "php", "PHP", "Php":
		return LanguagePHP, true
	}
	return "", false
}

// LanguageEvidence states which signal decided a segment's language, so
// callers can tell a declared language from the documented Java fallback.
type LanguageEvidence int

const (
	// EvidenceExtension means the provisional filename's extension decided.
	EvidenceExtension LanguageEvidence = iota
	// EvidenceDeclaration means a language-only declaration decided.
	EvidenceDeclaration
	// EvidenceFallback means nothing decided and Java was assumed.
	EvidenceFallback
)

// DetectLanguage classifies a closed segment as Java or PHP. Resolution
// order: filename extension, then language-only declarations, then the
// documented fallback to Java.
func DetectLanguage(seg *Segment) (Language, LanguageEvidence) {
	switch {
	case strings.HasSuffix(strings.ToLower(seg.Filename), ".java"):
		return LanguageJava, EvidenceExtension
	case strings.HasSuffix(strings.ToLower(seg.Filename), ".php"):
		return LanguagePHP, EvidenceExtension
	}
	if seg.sawPHPTag || seg.namespaceDecl {
		return LanguagePHP, EvidenceDeclaration
	}
	if seg.Package != "" {
		// A package declaration without a <?php marker is Java.
		return LanguageJava, EvidenceDeclaration
	}
	return LanguageJava, EvidenceFallback
}
