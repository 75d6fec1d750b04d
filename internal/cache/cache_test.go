package cache

import "testing"

func TestNormalize(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"Hi!", "hi!"},
		{"  hi! ", "hi!"},
		{"HELLO THERE", "hello there"},
		{"", ""},
	}

	for _, tc := range cases {
		if got := Normalize(tc.input); got != tc.want {
			t.Fatalf("Normalize(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}
}

func TestGetSet(t *testing.T) {
	c := New()

	if _, ok := c.Get("hi!"); ok {
		t.Fatal("expected miss on empty cache")
	}

	c.Set(Normalize("Hi!"), "hello")

	reply, ok := c.Get(Normalize("  hi! "))
	if !ok {
		t.Fatal("expected hit for normalized variant of stored key")
	}
	if reply != "hello" {
		t.Fatalf("unexpected reply: %q", reply)
	}
	if c.Len() != 1 {
		t.Fatalf("expected 1 entry, got %d", c.Len())
	}
}

func TestSetOverwrites(t *testing.T) {
	c := New()
	c.Set("hi", "first")
	c.Set("hi", "second")

	reply, _ := c.Get("hi")
	if reply != "second" {
		t.Fatalf("expected last write to win, got %q", reply)
	}
	if c.Len() != 1 {
		t.Fatalf("expected 1 entry, got %d", c.Len())
	}
}
