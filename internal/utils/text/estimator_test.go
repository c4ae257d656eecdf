package text

import (
	"strings"
	"testing"
)

func TestEstimateUnits_Empty(t *testing.T) {
	if got := EstimateUnits(""); got != 0 {
		t.Errorf("expected 0 units for empty string, got %d", got)
	}
}

func TestEstimateUnits_ShortTextRoundsUpToOne(t *testing.T) {
	// Anything non-empty must cost at least one unit.
	for _, s := range []string{"a", "ab", "abc"} {
		if got := EstimateUnits(s); got != 1 {
			t.Errorf("EstimateUnits(%q) = %d, want 1", s, got)
		}
	}
}

func TestEstimateUnits_FourBytesPerUnit(t *testing.T) {
	tests := []struct {
		length int
		want   int
	}{
		{4, 1},
		{8, 2},
		{400, 100},
		{4000, 1000},
	}
	for _, tt := range tests {
		s := strings.Repeat("x", tt.length)
		if got := EstimateUnits(s); got != tt.want {
			t.Errorf("EstimateUnits(len=%d) = %d, want %d", tt.length, got, tt.want)
		}
	}
}

func TestEstimateUnits_Monotonic(t *testing.T) {
	// Appending text must never decrease the estimate. The reduce-recursion
	// termination argument depends on this property.
	base := ""
	prev := 0
	for i := 0; i < 1000; i++ {
		base += "word "
		got := EstimateUnits(base)
		if got < prev {
			t.Fatalf("estimate decreased from %d to %d at length %d", prev, got, len(base))
		}
		prev = got
	}
}

func TestEstimateUnits_DoublingNeverDecreases(t *testing.T) {
	s := strings.Repeat("paragraph text ", 10)
	single := EstimateUnits(s)
	double := EstimateUnits(s + s)
	if double < single {
		t.Errorf("doubling input decreased estimate: %d -> %d", single, double)
	}
}

func TestCountRunes(t *testing.T) {
	tests := []struct {
		name string
		text string
		want int
	}{
		{"ascii", "hello", 5},
		{"japanese", "こんにちは", 5},
		{"mixed", "hello世界", 7},
		{"empty", "", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CountRunes(tt.text); got != tt.want {
				t.Errorf("CountRunes(%q) = %d, want %d", tt.text, got, tt.want)
			}
		})
	}
}
