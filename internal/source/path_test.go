package source

import (
	"errors"
	"strings"
	"testing"
)

func TestResolvePath(t *testing.T) {
	tests := []struct {
		name string
		seg  *Segment
		lang Language
		want string
	}{
		{
			name: "package dirs from java package",
			seg:  &Segment{Filename: "Animal.java", Package: "com.example"},
			lang: LanguageJava,
			want: "com/example/Animal.java",
		},
		{
			name: "package overrides header directory prefix",
			seg:  &Segment{Filename: "old/location/Animal.java", Package: "com.example"},
			lang: LanguageJava,
			want: "com/example/Animal.java",
		},
		{
			name: "header dirs kept without package",
			seg:  &Segment{Filename: "src/Animal.java"},
			lang: LanguageJava,
			want: "src/Animal.java",
		},
		{
			name: "filename synthesized from type name",
			seg:  &Segment{TypeName: "Animal"},
			lang: LanguageJava,
			want: "Animal.java",
		},
		{
			name: "synthesized php filename",
			seg:  &Segment{TypeName: "User", Package: `App\Models`, namespaceDecl: true},
			lang: LanguagePHP,
			want: "App/Models/User.php",
		},
		{
			name: "backslash separators normalized",
			seg:  &Segment{Filename: `app\Models\User.php`},
			lang: LanguagePHP,
			want: "app/Models/User.php",
		},
		{
			name: "dot and dotdot components stripped",
			seg:  &Segment{Filename: "../secret/./Animal.java"},
			lang: LanguageJava,
			want: "secret/Animal.java",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolvePath(tt.seg, tt.lang)
			if err != nil {
				t.Fatalf("ResolvePath() error: %v", err)
			}
			if got != tt.want {
				t.Errorf("ResolvePath() = %q, want %q", got, tt.want)
			}
			for _, part := range strings.Split(got, "/") {
				if part == "" {
					t.Errorf("ResolvePath() = %q contains an empty component", got)
				}
			}
		})
	}
}

func TestResolvePath_NoFilename(t *testing.T) {
	_, err := ResolvePath(&Segment{Lines: []string{"int x = 1;"}}, LanguageJava)
	if !errors.Is(err, ErrNoFilename) {
		t.Errorf("ResolvePath() error = %v, want ErrNoFilename", err)
	}
}
