package domain

import (
	"errors"
	"fmt"
)

// Timeframe is the period granularity hours are reported for.
type Timeframe string

const (
	Daily   Timeframe = "daily"
	Weekly  Timeframe = "weekly"
	Monthly Timeframe = "monthly"
)

// DefaultTimeframe is selected when a dashboard is first created.
const DefaultTimeframe = Weekly

// ErrUnknownTimeframe is returned when a candidate is not daily, weekly or monthly.
var ErrUnknownTimeframe = errors.New("unknown timeframe")

// Timeframes lists every valid timeframe in selector order.
var Timeframes = []Timeframe{Daily, Weekly, Monthly}

var previousLabels = map[Timeframe]string{
	Daily:   "Yesterday",
	Weekly:  "Last Week",
	Monthly: "Last Month",
}

var displayNames = map[Timeframe]string{
	Daily:   "Daily",
	Weekly:  "Weekly",
	Monthly: "Monthly",
}

// ParseTimeframe validates s against the fixed set of timeframes.
func ParseTimeframe(s string) (Timeframe, error) {
	tf := Timeframe(s)
	if !tf.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownTimeframe, s)
	}
	return tf, nil
}

func (t Timeframe) Valid() bool {
	_, ok := previousLabels[t]
	return ok
}

// PreviousLabel names the period before the current one, e.g. "Last Week".
func (t Timeframe) PreviousLabel() string {
	return previousLabels[t]
}

// DisplayName is the selector caption.
func (t Timeframe) DisplayName() string {
	return displayNames[t]
}

func (t Timeframe) String() string {
	return string(t)
}
