package engine

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/emersion/go-vcard"
	"github.com/tartampluch/go-screening/internal/config"
)

// ImportProfile pre-fills a Profile from the first contact card in r that has a
// full birth date. GENDER "M"/"F" sets the sex; smoking status is never in a card
// and stays unset.
func ImportProfile(r io.Reader) (Profile, error) {
	decoder := vcard.NewDecoder(r)

	for {
		card, err := decoder.Decode()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			// A broken card in a multi-card export should not hide the next one.
			slog.Warn(config.MsgSkippedCard,
				config.LogKeyComponent, config.CompEngine,
				config.LogKeyError, err)
			continue
		}

		bday := card.Get(config.VCardBDAY)
		if bday == nil || bday.Value == "" {
			continue
		}

		birth, err := parseCardDate(bday.Value)
		if err != nil {
			slog.Debug(config.MsgSkippedCard,
				config.LogKeyComponent, config.CompEngine,
				config.LogKeyValue, bday.Value)
			continue
		}

		p := Profile{
			BirthMonth: birth.Month().String()[:3],
			BirthDay:   strconv.Itoa(birth.Day()),
			BirthYear:  strconv.Itoa(birth.Year()),
		}
		if gender := card.Get(config.VCardGender); gender != nil {
			p.Sex = parseCardGender(gender.Value)
		}

		slog.Info(config.MsgProfileLoaded,
			config.LogKeyComponent, config.CompEngine,
			config.LogKeySex, p.Sex.String())
		return p, nil
	}

	return Profile{}, fmt.Errorf("%w: %s", ErrInvalidDate, config.ErrNoBirthday)
}

// parseCardDate accepts the vCard BDAY forms that carry a year.
// Truncated dates (--MM-DD) are useless for age computation and are rejected.
func parseCardDate(value string) (time.Time, error) {
	formats := []string{
		config.DateFormatFullDash,
		config.DateFormatFullBasic,
		config.DateFormatRFC3339,
		config.DateFormatFullT,
	}

	for _, f := range formats {
		if t, err := time.Parse(f, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, ErrInvalidDate
}

// parseCardGender reads the sex component of a GENDER value ("F", "M;he/him").
func parseCardGender(value string) Sex {
	sex, _, _ := strings.Cut(value, ";")
	switch strings.ToUpper(strings.TrimSpace(sex)) {
	case config.VCardMale:
		return SexMale
	case config.VCardFemale:
		return SexFemale
	}
	return SexUnset
}
