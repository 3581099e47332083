package source

import "testing"

func TestDeduplicator_Claim(t *testing.T) {
	d := NewDeduplicator()

	if got := d.Claim("com/example/Animal.java"); got != "com/example/Animal.java" {
		t.Errorf("first claim = %q, want unmodified name", got)
	}
	if got := d.Claim("com/example/Animal.java"); got != "com/example/Animal_2.java" {
		t.Errorf("second claim = %q, want com/example/Animal_2.java", got)
	}
	if got := d.Claim("com/example/Animal.java"); got != "com/example/Animal_3.java" {
		t.Errorf("third claim = %q, want com/example/Animal_3.java", got)
	}
}

func TestDeduplicator_SkipsTakenSuffix(t *testing.T) {
	d := NewDeduplicator()
	d.Claim("Animal_2.java")
	d.Claim("Animal.java")

	// _2 is already taken by an honestly named file; the collision moves on.
	if got := d.Claim("Animal.java"); got != "Animal_3.java" {
		t.Errorf("claim = %q, want Animal_3.java", got)
	}
}

func TestDeduplicator_DistinctDirectoriesDoNotCollide(t *testing.T) {
	d := NewDeduplicator()
	if got := d.Claim("com/a/Animal.java"); got != "com/a/Animal.java" {
		t.Errorf("claim = %q", got)
	}
	if got := d.Claim("com/b/Animal.java"); got != "com/b/Animal.java" {
		t.Errorf("same basename in another directory renamed: %q", got)
	}
}

func TestDeduplicator_NoExtension(t *testing.T) {
	d := NewDeduplicator()
	d.Claim("Makefile")
	if got := d.Claim("Makefile"); got != "Makefile_2" {
		t.Errorf("claim = %q, want Makefile_2", got)
	}
}
