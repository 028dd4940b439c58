package engine

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/tartampluch/go-screening/internal/config"
)

// ErrInvalidDate is returned when the birth date is incomplete or cannot be parsed.
// Callers must not compute recommendations after receiving it.
var ErrInvalidDate = errors.New(config.ErrInvalidDate)

// ParseBirthDate builds a birth date from the form fields.
// The month accepts short ("Jan") or full ("January") English names in any case.
// Day overflow is normalized the way time.Date does; use ValidateBirthDate to reject it.
func ParseBirthDate(month, day, year string, loc *time.Location) (time.Time, error) {
	month, day, year = strings.TrimSpace(month), strings.TrimSpace(day), strings.TrimSpace(year)
	if month == "" || day == "" || year == "" {
		return time.Time{}, fmt.Errorf("%w: %s", ErrInvalidDate, config.ErrMissingDateField)
	}

	m, ok := parseMonth(month)
	if !ok {
		return time.Time{}, fmt.Errorf("%w: %s %q", ErrInvalidDate, config.ErrUnknownMonth, month)
	}

	d, err := strconv.Atoi(day)
	if err != nil || d < 1 {
		return time.Time{}, fmt.Errorf("%w: %s", ErrInvalidDate, config.ErrDayNotNumber)
	}

	y, err := strconv.Atoi(year)
	if err != nil || y < 0 {
		return time.Time{}, fmt.Errorf("%w: %s", ErrInvalidDate, config.ErrYearNotNumber)
	}

	if loc == nil {
		loc = time.Local
	}
	return time.Date(y, m, d, 0, 0, 0, 0, loc), nil
}

// ValidateBirthDate is the strict check run by the form before Generate.
// It rejects dates that do not exist in the calendar (Feb 30), dates in the future
// and years before config.MinBirthYear.
func ValidateBirthDate(month, day, year string, now time.Time) error {
	birth, err := ParseBirthDate(month, day, year, now.Location())
	if err != nil {
		return err
	}

	// time.Date normalized an impossible day into the following month.
	m, _ := parseMonth(strings.TrimSpace(month))
	d, _ := strconv.Atoi(strings.TrimSpace(day))
	if birth.Month() != m || birth.Day() != d {
		return fmt.Errorf("%w: %s", ErrInvalidDate, config.ErrDateNotExist)
	}

	if birth.Year() < config.MinBirthYear {
		return fmt.Errorf("%w: %s", ErrInvalidDate, config.ErrYearTooEarly)
	}

	if birth.After(now) {
		return fmt.Errorf("%w: %s", ErrInvalidDate, config.ErrDateInFuture)
	}
	return nil
}

// CalculateAge returns the age in whole years on the calendar day of now.
func CalculateAge(birth, now time.Time) int {
	age := now.Year() - birth.Year()

	// Birthday not reached yet this year.
	if now.Month() < birth.Month() || (now.Month() == birth.Month() && now.Day() < birth.Day()) {
		age--
	}
	return age
}

func parseMonth(value string) (time.Month, bool) {
	for m := time.January; m <= time.December; m++ {
		name := m.String()
		if strings.EqualFold(value, name) || strings.EqualFold(value, name[:3]) {
			return m, true
		}
	}
	return 0, false
}
