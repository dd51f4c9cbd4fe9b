package logging

import "testing"

func TestNew_RejectsUnknownFormat(t *testing.T) {
	if _, err := New(Config{Format: "xml"}); err == nil {
		t.Fatalf("expected error for unknown format")
	}
}

func TestNormalizeLevel(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{" WARNING ", "warn"},
		{"debug", "debug"},
		{"bogus", ""},
	}
	for _, tt := range tests {
		got := normalizeLevel(tt.in)
		if tt.want == "" && got != "" {
			t.Errorf("normalizeLevel(%q) = %q, want empty", tt.in, got)
		}
		if tt.want != "" && got == "" {
			t.Errorf("normalizeLevel(%q) = empty, want a level", tt.in)
		}
	}
}

func TestOrNoOp(t *testing.T) {
	l := OrNoOp(nil)
	// não deve entrar em pânico
	l.Warn("ignored", "k", "v")
}
