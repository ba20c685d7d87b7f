package date

import "testing"

// TestTime assert that the time() is cannonical and gives comparable times.
func TestTime(t *testing.T) {
	d1 := New(2025, 7, 31)
	d2 := New(2025, 7, 31)

	if d1.time() != d2.time() {
		// Note that usually time.Time are not comparable (there is a pointer for the timezone) this
		// tests also checks that the property remain true
		t.Errorf("invalid time() function same day gives two different time")
	}
}

func TestNew(t *testing.T) {
	if got := New(2024, 2, 30).String(); got != "2024-03-01" {
		t.Errorf("New(2024, 2, 30) = %s, want 2024-03-01", got)
	}
}

func TestParseMonthYear(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "032025", want: "03-2025"},
		{in: "122024", want: "12-2024"},
		{in: "132025", wantErr: true},
		{in: "00000", wantErr: true},
		{in: "2025-03", wantErr: true},
	}
	for _, tt := range tests {
		got, err := ParseMonthYear(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseMonthYear(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if err == nil && got.Format(MonthFormat) != tt.want {
			t.Errorf("ParseMonthYear(%q) = %q, want %q", tt.in, got.Format(MonthFormat), tt.want)
		}
	}
}
