package sanitize

import "testing"

func TestClean(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{"plain text", "Hello there", "Hello there"},
		{"html tags", "<b>Hi</b>", "Hi"},
		{"nested tags", "<div><span>Hey</span></div>", "Hey"},
		{"speaker label", "You: Hello", "Hello"},
		{"label stripped once", "You: You: Hello", "You: Hello"},
		{"label after tags", "<p>You: Hi</p>", "Hi"},
		{"surrounding whitespace", "   trimmed   ", "trimmed"},
		{"whitespace then label", "  You: hi  ", "hi"},
		{"empty", "", ""},
		{"only tags", "<br><hr>", ""},
		{"unclosed angle bracket survives", "1 < 2", "1 < 2"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Clean(tc.input); got != tc.want {
				t.Fatalf("Clean(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}
