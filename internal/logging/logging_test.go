package logging

import (
	"testing"

	"github.com/sirupsen/logrus"
)

func TestSetLevel(t *testing.T) {
	defer Log.SetLevel(logrus.InfoLevel)

	tests := []struct {
		in   string
		want logrus.Level
	}{
		{"debug", logrus.DebugLevel},
		{"WARN", logrus.WarnLevel},
		{"warning", logrus.WarnLevel},
		{"error", logrus.ErrorLevel},
		{"", logrus.InfoLevel},
	}
	for _, tt := range tests {
		if err := SetLevel(tt.in); err != nil {
			t.Fatalf("SetLevel(%q) error = %v", tt.in, err)
		}
		if got := Log.GetLevel(); got != tt.want {
			t.Errorf("SetLevel(%q) level = %v, want %v", tt.in, got, tt.want)
		}
	}
	if err := SetLevel("verbose"); err == nil {
		t.Errorf("SetLevel(%q) want error", "verbose")
	}
}
