package config

import (
	"strings"
	"testing"
)

func TestResolver_String(t *testing.T) {
	t.Parallel()

	r := NewResolver(testPair(t, "[S]\nname = global\n", "[S]\nname = local\n"))
	if got := r.String("S", "name", "x"); got != "local" {
		t.Errorf("String(S, name) = %q, want local", got)
	}
	if got := r.String("S", "missing", "x"); got != "x" {
		t.Errorf("String(S, missing) = %q, want x", got)
	}
}

func TestResolver_Int(t *testing.T) {
	t.Parallel()

	r := NewResolver(testPair(t, "[S]\nn = 7\nbad = seven\n", "[S]\nn = 42\n"))

	got, err := r.Int("S", "n", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 42 {
		t.Errorf("Int(S, n) = %d, want 42", got)
	}

	got, err = r.Int("S", "missing", 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 5 {
		t.Errorf("Int(S, missing) = %d, want 5", got)
	}

	_, err = r.Int("S", "bad", 0)
	if err == nil {
		t.Fatal("expected error for non-integer value")
	}
	for _, want := range []string{"S.bad", "global", "app.cfg", "seven"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q should contain %q", err, want)
		}
	}
}

func TestResolver_Bool(t *testing.T) {
	t.Parallel()

	r := NewResolver(testPair(t,
		"[S]\na = yes\nb = Off\nc = maybe\n",
		"[S]\nd = TRUE\n",
	))

	tests := []struct {
		key  string
		def  bool
		want bool
	}{
		{"a", false, true},
		{"b", true, false},
		{"d", false, true},
		{"missing", true, true},
	}
	for _, tt := range tests {
		got, err := r.Bool("S", tt.key, tt.def)
		if err != nil {
			t.Fatalf("Bool(S, %s): unexpected error: %v", tt.key, err)
		}
		if got != tt.want {
			t.Errorf("Bool(S, %s) = %v, want %v", tt.key, got, tt.want)
		}
	}

	_, err := r.Bool("S", "c", false)
	if err == nil {
		t.Fatal("expected error for invalid boolean")
	}
	if !strings.Contains(err.Error(), "S.c") {
		t.Errorf("error %q should name the key", err)
	}
}

func TestParseBool(t *testing.T) {
	t.Parallel()

	for _, w := range []string{"1", "yes", "True", " on "} {
		if got, err := ParseBool(w); err != nil || !got {
			t.Errorf("ParseBool(%q) = %v, %v; want true, nil", w, got, err)
		}
	}
	for _, w := range []string{"0", "NO", "false", "off"} {
		if got, err := ParseBool(w); err != nil || got {
			t.Errorf("ParseBool(%q) = %v, %v; want false, nil", w, got, err)
		}
	}
	if _, err := ParseBool(""); err == nil {
		t.Error("ParseBool(\"\") should fail")
	}
}

func TestFormatOptions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		opts []string
		want string
	}{
		{[]string{"a"}, `"a"`},
		{[]string{"a", "b"}, `"a" or "b"`},
		{[]string{"a", "b", "c"}, `"a", "b", or "c"`},
	}
	for _, tt := range tests {
		if got := formatOptions(tt.opts); got != tt.want {
			t.Errorf("formatOptions(%v) = %s, want %s", tt.opts, got, tt.want)
		}
	}
}
