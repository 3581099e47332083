package source

import "testing"

func TestNormalizePageText_StripsMajorityNumberedPage(t *testing.T) {
	input := "1 package com.example;\n" +
		"2 public class Animal {\n" +
		"3     int age;\n" +
		"4 }\n" +
		"5"
	want := "package com.example;\n" +
		"public class Animal {\n" +
		"    int age;\n" +
		"}\n" +
		""

	if got := NormalizePageText(input); got != want {
		t.Errorf("NormalizePageText() = %q, want %q", got, want)
	}
}

func TestNormalizePageText_KeepsUnnumberedPage(t *testing.T) {
	input := "package com.example;\n" +
		"public class Animal {\n" +
		"    int legs = 4;\n" +
		"}"

	if got := NormalizePageText(input); got != input {
		t.Errorf("unnumbered page was modified: %q", got)
	}
}

func TestNormalizePageText_MinorityNumbersLeftAlone(t *testing.T) {
	// One leading digit among many plain lines is real code, not a listing
	// number.
	input := "public class Grid {\n" +
		"    int[] row =\n" +
		"3\n" +
		"    ;\n" +
		"}"

	if got := NormalizePageText(input); got != input {
		t.Errorf("minority numeric line triggered stripping: %q", got)
	}
}

func TestNormalizePageText_PreservesListingIndentation(t *testing.T) {
	// One space separates the number from the code; any further spacing is
	// the listing's own indentation.
	input := "10 class A {\n" +
		"11     int x;\n" +
		"12 }"
	want := "class A {\n" +
		"    int x;\n" +
		"}"

	if got := NormalizePageText(input); got != want {
		t.Errorf("NormalizePageText() = %q, want %q", got, want)
	}
}

func TestNormalizePageText_Empty(t *testing.T) {
	if got := NormalizePageText(""); got != "" {
		t.Errorf("NormalizePageText(\"\") = %q, want empty", got)
	}
}
