package layout

import (
	"strings"
	"testing"
)

func TestIsTooSmall(t *testing.T) {
	tests := []struct {
		w, h int
		want bool
	}{
		{MinWidth, MinHeight, false},
		{MinWidth - 1, MinHeight, true},
		{MinWidth, MinHeight - 1, true},
		{120, 40, false},
	}
	for _, tt := range tests {
		if got := IsTooSmall(tt.w, tt.h); got != tt.want {
			t.Errorf("IsTooSmall(%d, %d) = %v, want %v", tt.w, tt.h, got, tt.want)
		}
	}
}

func TestRenderHeader_ShowsTally(t *testing.T) {
	out := RenderHeader("Practice", 3, 2, 80)
	for _, want := range []string{"WordMath", "Practice", "✓ 3", "✗ 2", "Σ 5"} {
		if !strings.Contains(out, want) {
			t.Errorf("header missing %q:\n%s", want, out)
		}
	}
}

func TestRenderFooter_JoinsHints(t *testing.T) {
	out := RenderFooter([]KeyHint{
		{Key: "Enter", Description: "Submit"},
		{Key: "Esc", Description: "Dismiss"},
	}, 80)
	for _, want := range []string{"Enter", "Submit", "Esc", "Dismiss"} {
		if !strings.Contains(out, want) {
			t.Errorf("footer missing %q", want)
		}
	}
}
