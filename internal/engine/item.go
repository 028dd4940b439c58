package engine

import (
	"time"

	"github.com/tartampluch/go-screening/internal/config"
)

// Kind tells which reference table an Item was declared in.
type Kind int

const (
	KindScreening Kind = iota
	KindVaccine
)

// Criterion is the optional demographic gate applied on top of the age range.
type Criterion int

const (
	CriterionNone Criterion = iota
	CriterionFemale
	CriterionSmoker
	CriterionMaleSmoker
)

// String returns the tag used in the reference tables.
func (c Criterion) String() string {
	switch c {
	case CriterionNone:
		return ""
	case CriterionFemale:
		return "female"
	case CriterionSmoker:
		return "smoker"
	case CriterionMaleSmoker:
		return "male_smoker"
	}
	return "unknown"
}

// AgeRange is an inclusive age interval in years.
// Min may be fractional (six months is 0.5). When Unbounded is set, Max is ignored.
type AgeRange struct {
	Min       float64
	Max       float64
	Unbounded bool
}

// Item is one row of a reference table.
type Item struct {
	Name      string
	Test      string // Empty for vaccines.
	AgeRange  AgeRange
	Criterion Criterion
	Frequency string
	Kind      Kind
}

// IsVaccine reports whether the item names no diagnostic test.
func (i Item) IsVaccine() bool {
	return i.Test == ""
}

// Label returns the test name, or "Vaccine" when there is none.
func (i Item) Label() string {
	if i.IsVaccine() {
		return config.VaccineTest
	}
	return i.Test
}

// Recommendation is an Item with its projected due date.
type Recommendation struct {
	Item
	DueDate time.Time
}

// DueDateText formats the due date for display.
func (r Recommendation) DueDateText() string {
	return r.DueDate.Format(config.DateFormatDisplay)
}
