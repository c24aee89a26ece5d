package textutil

import "testing"

func TestSafeTitle(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"plain title", "plain title"},
		{"Mr. Nobody", "Mr, Nobody"},
		{"either/or", "either or"},
		{"  padded  ", "padded"},
		{"dots. and/slashes.", "dots, and slashes,"},
	}
	for _, tc := range cases {
		if got := SafeTitle(tc.in); got != tc.want {
			t.Errorf("SafeTitle(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestAbbreviate(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"never be such thankless work", "nbstw"},
		{"A Single", "as"},
		{"'quoted words here", "qwh"},
		{"2 fast 2 furious", "2f2f"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := Abbreviate(tc.in); got != tc.want {
			t.Errorf("Abbreviate(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestTitleCase(t *testing.T) {
	if got := TitleCase("archive warnings"); got != "Archive Warnings" {
		t.Errorf("TitleCase = %q", got)
	}
}
