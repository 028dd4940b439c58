package engine

import (
	"fmt"
	"strings"

	"github.com/tartampluch/go-screening/internal/config"
)

// Sex is the sex selected on the form.
type Sex int

const (
	SexUnset Sex = iota
	SexMale
	SexFemale
)

func (s Sex) String() string {
	switch s {
	case SexMale:
		return config.SexMale
	case SexFemale:
		return config.SexFemale
	}
	return ""
}

// SmokerStatus is the smoking status selected on the form.
type SmokerStatus int

const (
	SmokerUnset SmokerStatus = iota
	SmokerYes
	SmokerNo
)

func (s SmokerStatus) String() string {
	switch s {
	case SmokerYes:
		return config.SmokerYes
	case SmokerNo:
		return config.SmokerNo
	}
	return ""
}

// Profile is the transient form input. It is consumed by Generate and never stored.
// Birth date parts are kept as typed so that missing fields can be reported.
type Profile struct {
	BirthMonth string
	BirthDay   string
	BirthYear  string
	Sex        Sex
	Smoker     SmokerStatus
}

// ParseSex maps a form value to a Sex. The empty string is SexUnset.
func ParseSex(value string) (Sex, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "":
		return SexUnset, nil
	case config.SexMale:
		return SexMale, nil
	case config.SexFemale:
		return SexFemale, nil
	}
	return SexUnset, fmt.Errorf("%s: %q", config.ErrUnknownSex, value)
}

// ParseSmoker maps a form value to a SmokerStatus. The empty string is SmokerUnset.
func ParseSmoker(value string) (SmokerStatus, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "":
		return SmokerUnset, nil
	case config.SmokerYes:
		return SmokerYes, nil
	case config.SmokerNo:
		return SmokerNo, nil
	}
	return SmokerUnset, fmt.Errorf("%s: %q", config.ErrUnknownSmoker, value)
}
