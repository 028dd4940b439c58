package engine

import "time"

// Offset is a calendar offset applied with time.AddDate.
type Offset struct {
	Years  int
	Months int
}

// DefaultOffset applies to every frequency not listed in knownFrequencies.
// Most table frequencies ("One-time", "3 doses over 6 months", ...) land here.
// The lookup is an exact phrase match and does not try to interpret the text.
var DefaultOffset = Offset{Months: 6}

var knownFrequencies = map[string]Offset{
	"Annually":                       {Years: 1},
	"Every 2 years":                  {Years: 2},
	"Every 3 years":                  {Years: 3},
	"Every 5 years or based on risk": {Years: 5},
}

// FrequencyOffset returns the projection offset for a frequency phrase and
// whether the phrase is a known one.
func FrequencyOffset(frequency string) (Offset, bool) {
	off, ok := knownFrequencies[frequency]
	if !ok {
		return DefaultOffset, false
	}
	return off, true
}

// ProjectDueDate returns the next due date for an item with the given frequency.
// Overflowing days normalize like time.AddDate (Feb 29 + 1 year is Mar 1).
func ProjectDueDate(frequency string, today time.Time) time.Time {
	off, _ := FrequencyOffset(frequency)
	return today.AddDate(off.Years, off.Months, 0)
}
