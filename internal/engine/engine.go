package engine

import (
	"log/slog"
	"sort"
	"time"

	"github.com/tartampluch/go-screening/internal/config"
)

// Generator assembles the recommendation checklist for a profile.
type Generator struct {
	Clock Clock // Interface for time mocking.
}

// NewGenerator returns a Generator using the real clock.
func NewGenerator() *Generator {
	return &Generator{Clock: RealClock{}}
}

// Generate computes the checklist for p as of the clock's current day.
//
// Screenings are filtered before vaccines, each in declaration order, and the
// concatenation is stably sorted by due date so ties keep that order. An empty
// result is not an error. An incomplete birth date fails with ErrInvalidDate
// before any table is consulted.
func (g *Generator) Generate(p Profile) ([]Recommendation, error) {
	today := g.today()

	birth, err := ParseBirthDate(p.BirthMonth, p.BirthDay, p.BirthYear, today.Location())
	if err != nil {
		return nil, err
	}
	age := CalculateAge(birth, today)

	matchedScreenings := Filter(Screenings(), age, p.Sex, p.Smoker)
	matchedVaccines := Filter(Vaccines(), age, p.Sex, p.Smoker)

	recs := make([]Recommendation, 0, len(matchedScreenings)+len(matchedVaccines))
	for _, item := range append(matchedScreenings, matchedVaccines...) {
		recs = append(recs, Recommendation{
			Item:    item,
			DueDate: ProjectDueDate(item.Frequency, today),
		})
	}

	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].DueDate.Before(recs[j].DueDate)
	})

	slog.Debug(config.MsgGenerated,
		config.LogKeyComponent, config.CompEngine,
		config.LogKeyAge, age,
		config.LogKeySex, p.Sex.String(),
		config.LogKeySmoker, p.Smoker.String(),
		slog.Group(config.LogKeyStats,
			slog.Int(config.LogKeyScreening, len(matchedScreenings)),
			slog.Int(config.LogKeyVaccine, len(matchedVaccines)),
		),
	)
	return recs, nil
}

// today returns the start of the current local day.
func (g *Generator) today() time.Time {
	var clock Clock = RealClock{}
	if g.Clock != nil {
		clock = g.Clock
	}
	now := clock.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}

// Split separates the "Up next" recommendations from the rest.
// The returned slices share the backing array of recs.
func Split(recs []Recommendation) (next, later []Recommendation) {
	n := config.UpNextCount
	if len(recs) < n {
		n = len(recs)
	}
	return recs[:n], recs[n:]
}
