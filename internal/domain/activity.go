package domain

import (
	"encoding/json"
	"fmt"
)

// Period holds hours for the current and the previous period of one timeframe.
type Period struct {
	Current  float64 `json:"current"`
	Previous float64 `json:"previous"`
}

// ActivityRecord is one category's hours across all timeframes.
type ActivityRecord struct {
	Title      string               `json:"title"`
	Timeframes map[Timeframe]Period `json:"timeframes"`
}

// Period returns the hours recorded for tf, if any.
func (a ActivityRecord) Period(tf Timeframe) (Period, bool) {
	p, ok := a.Timeframes[tf]
	return p, ok
}

// Dataset is the ordered list of activity records loaded for a session.
type Dataset []ActivityRecord

// ParseDataset decodes the activity JSON document.
// Content is not validated beyond being well-formed JSON of the expected shape.
func ParseDataset(data []byte) (Dataset, error) {
	var ds Dataset
	if err := json.Unmarshal(data, &ds); err != nil {
		return nil, fmt.Errorf("decode activity data: %w", err)
	}
	return ds, nil
}

// Clone returns a deep copy so callers cannot mutate a loaded dataset.
func (d Dataset) Clone() Dataset {
	if d == nil {
		return nil
	}
	out := make(Dataset, len(d))
	for i, rec := range d {
		tfs := make(map[Timeframe]Period, len(rec.Timeframes))
		for k, v := range rec.Timeframes {
			tfs[k] = v
		}
		out[i] = ActivityRecord{Title: rec.Title, Timeframes: tfs}
	}
	return out
}

// Activity titles known to the dashboard, in card order.
const (
	TitleWork     = "Work"
	TitlePlay     = "Play"
	TitleStudy    = "Study"
	TitleExercise = "Exercise"
	TitleSocial   = "Social"
	TitleSelfCare = "Self Care"
)

// Titles lists the known activity titles in the order cards are laid out.
var Titles = []string{TitleWork, TitlePlay, TitleStudy, TitleExercise, TitleSocial, TitleSelfCare}

var cardIDs = map[string]string{
	TitleWork:     "work",
	TitlePlay:     "play",
	TitleStudy:    "study",
	TitleExercise: "exercise",
	TitleSocial:   "social",
	TitleSelfCare: "self-care",
}

// CardID maps an activity title to the identifier of its card.
func CardID(title string) (string, bool) {
	id, ok := cardIDs[title]
	return id, ok
}
