package source

import "testing"

func TestBraceDelta(t *testing.T) {
	tests := []struct {
		name string
		line string
		want int
	}{
		{name: "open brace", line: "public class A {", want: 1},
		{name: "close brace", line: "}", want: -1},
		{name: "balanced", line: "if (x) { y(); }", want: 0},
		{name: "no braces", line: "return x;", want: 0},
		{name: "brace in string literal", line: `String s = "{";`, want: 0},
		{name: "brace in char literal", line: "char c = '{';", want: 0},
		{name: "escaped quote in string", line: `String s = "\"{" + open;`, want: 0},
		{name: "brace after line comment ignored", line: "int x; // closes with }", want: 0},
		{name: "brace after hash comment ignored", line: "$x = 1; # closes with }", want: 0},
		{name: "brace inside block comment ignored", line: "/* { */ int x;", want: 0},
		{name: "code after inline block comment counts", line: "/* note */ {", want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inBlockComment := false
			if got := braceDelta(tt.line, &inBlockComment); got != tt.want {
				t.Errorf("braceDelta(%q) = %d, want %d", tt.line, got, tt.want)
			}
		})
	}
}

func TestBraceDelta_BlockCommentSpansLines(t *testing.T) {
	inBlockComment := false

	if got := braceDelta("/* start of comment {", &inBlockComment); got != 0 {
		t.Errorf("opening comment line delta = %d, want 0", got)
	}
	if !inBlockComment {
		t.Fatalf("block comment state not carried forward")
	}
	if got := braceDelta("still inside } {", &inBlockComment); got != 0 {
		t.Errorf("inside-comment line delta = %d, want 0", got)
	}
	if got := braceDelta("end */ {", &inBlockComment); got != 1 {
		t.Errorf("closing comment line delta = %d, want 1", got)
	}
	if inBlockComment {
		t.Errorf("block comment state not cleared")
	}
}

func TestSegmentBody(t *testing.T) {
	seg := &Segment{}
	seg.append("public class A {")
	seg.append("}")
	seg.append("")
	seg.append("   ")

	want := "public class A {\n}\n"
	if got := seg.Body(); got != want {
		t.Errorf("Body() = %q, want %q", got, want)
	}
}

func TestSegmentDepthClampedAtZero(t *testing.T) {
	seg := &Segment{}
	seg.append("}")
	seg.append("}")
	if seg.depth != 0 {
		t.Errorf("depth = %d, want 0 (clamped)", seg.depth)
	}
	seg.append("class A {")
	if seg.depth != 1 {
		t.Errorf("depth = %d, want 1", seg.depth)
	}
}
