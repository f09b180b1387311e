package domain

import (
	"errors"
	"testing"
)

func TestParseTimeframe(t *testing.T) {
	tests := []struct {
		input   string
		want    Timeframe
		wantErr bool
	}{
		{"daily", Daily, false},
		{"weekly", Weekly, false},
		{"monthly", Monthly, false},
		{"yearly", "", true},
		{"Weekly", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseTimeframe(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrUnknownTimeframe) {
					t.Fatalf("ParseTimeframe(%q) error = %v, want ErrUnknownTimeframe", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseTimeframe(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseTimeframe(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestTimeframe_PreviousLabel(t *testing.T) {
	tests := map[Timeframe]string{
		Daily:   "Yesterday",
		Weekly:  "Last Week",
		Monthly: "Last Month",
	}
	for tf, want := range tests {
		if got := tf.PreviousLabel(); got != want {
			t.Errorf("%s.PreviousLabel() = %q, want %q", tf, got, want)
		}
	}
}

func TestTimeframes_AllValid(t *testing.T) {
	if len(Timeframes) != 3 {
		t.Fatalf("expected 3 timeframes, got %d", len(Timeframes))
	}
	for _, tf := range Timeframes {
		if !tf.Valid() {
			t.Errorf("%q should be valid", tf)
		}
		if tf.DisplayName() == "" {
			t.Errorf("%q has no display name", tf)
		}
	}
	if !DefaultTimeframe.Valid() {
		t.Errorf("default timeframe %q is not valid", DefaultTimeframe)
	}
}
