package validators

import "testing"

func TestSanitizeString(t *testing.T) {
	cases := []struct {
		name   string
		in     string
		maxLen int
		want   string
	}{
		{name: "trims whitespace", in: "  Apex Industries  ", maxLen: 0, want: "Apex Industries"},
		{name: "caps long values", in: "abcdefgh", maxLen: 5, want: "abcde"},
		{name: "trims before capping", in: "   abcdef", maxLen: 4, want: "abcd"},
		{name: "short values pass through", in: "ok", maxLen: 255, want: "ok"},
		{name: "zero cap disables truncation", in: "abcdefgh", maxLen: 0, want: "abcdefgh"},
		{name: "whitespace only becomes empty", in: "   \t\n", maxLen: 10, want: ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := SanitizeString(tc.in, tc.maxLen); got != tc.want {
				t.Fatalf("SanitizeString(%q, %d): expected %q, got %q", tc.in, tc.maxLen, tc.want, got)
			}
		})
	}
}
