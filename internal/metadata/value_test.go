package metadata

import "testing"

func TestValuePlaceholderDetection(t *testing.T) {
	cases := []struct {
		name  string
		value Value
		want  bool
	}{
		{"resolved scalar", Scalar("Explicit"), false},
		{"placeholder scalar", Scalar("__RATING"), true},
		{"list with one placeholder", List("https://example.test", "__URL2"), true},
		{"resolved list", List("https://example.test"), false},
		{"empty list", List(), false},
		{"placeholder pair name", Pairs(Link{URL: "https://example.test", Name: "__TEXT"}), true},
		{"resolved pair", Pairs(Link{URL: "https://example.test", Name: "someone"}), false},
	}
	for _, tc := range cases {
		if got := tc.value.IsPlaceholder(); got != tc.want {
			t.Errorf("%s: IsPlaceholder = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestValueBool(t *testing.T) {
	for value, want := range map[string]bool{
		"true": true, "yes": true, "Yes": true, "false": false, "": false, "1": false,
	} {
		if got := Scalar(value).Bool(); got != want {
			t.Errorf("Scalar(%q).Bool() = %v, want %v", value, got, want)
		}
	}
}

func TestValueLen(t *testing.T) {
	if got := Scalar("").Len(); got != 0 {
		t.Errorf("empty scalar Len = %d", got)
	}
	if got := Scalar("x").Len(); got != 1 {
		t.Errorf("scalar Len = %d", got)
	}
	if got := List("a", "b").Len(); got != 2 {
		t.Errorf("list Len = %d", got)
	}
}
