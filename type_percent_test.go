package royalty

import "testing"

func TestPercent(t *testing.T) {
	if got := Total(33.33333, 33.33333, 33.33334); !got.Equal(100) {
		t.Errorf("Total() = %v, want 100%%", got)
	}
	if Percent(50).Equal(50.1) {
		t.Errorf("50%% should not equal 50.1%%")
	}
	if got := Percent(12.5).String(); got != "12.50%" {
		t.Errorf("String() = %q, want %q", got, "12.50%")
	}
	if got := Percent(25).Fraction().String(); got != "0.25" {
		t.Errorf("Fraction() = %s, want 0.25", got)
	}
}
