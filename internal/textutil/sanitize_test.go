package textutil

import "testing"

func TestSanitizeFileName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"movie.srt", "movie.srt"},
		{"  spaced name.srt  ", "spaced name.srt"},
		{"../../etc/passwd", "passwd"},
		{`C:\subs\show.srt`, "show.srt"},
		{"what?.srt", "what.srt"},
		{"a:b*c.srt", "a-b-c.srt"},
		{"bell\a.srt", "bell.srt"},
		{"..", ""},
		{"", ""},
	}
	for _, tc := range tests {
		if got := SanitizeFileName(tc.in); got != tc.want {
			t.Errorf("SanitizeFileName(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestPlural(t *testing.T) {
	if got := Plural(1, "chunk", "chunks"); got != "1 chunk" {
		t.Fatalf("unexpected singular: %q", got)
	}
	if got := Plural(0, "chunk", "chunks"); got != "0 chunks" {
		t.Fatalf("unexpected zero: %q", got)
	}
	if got := Plural(12, "block", "blocks"); got != "12 blocks" {
		t.Fatalf("unexpected plural: %q", got)
	}
}
