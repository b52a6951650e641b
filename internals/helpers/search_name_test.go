package helper

import "testing"

func TestFoldSearchName(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Arjun Sharma", "arjun sharma"},
		{"  Priya   PATEL ", "priya patel"},
		{"José Müller", "jose muller"},
		{"Ñandú", "nandu"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := FoldSearchName(tt.in); got != tt.want {
			t.Errorf("FoldSearchName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
