package engine

import (
	"bytes"
	"crypto/sha256"
	"fmt"
	"time"

	"github.com/emersion/go-ical"
	"github.com/tartampluch/go-screening/internal/config"
)

// RenderCalendar encodes the checklist as an iCalendar feed with one all-day
// event per recommendation on its due date.
func RenderCalendar(recs []Recommendation, now time.Time) ([]byte, error) {
	if len(recs) == 0 {
		// A stub keeps subscribed clients from flagging the feed as invalid.
		return []byte(config.StubVCalendar), nil
	}

	cal := ical.NewCalendar()
	cal.Props.SetText(config.PropVersion, config.ICalVersion)
	cal.Props.SetText(config.PropProdid, config.ICalProdid)
	cal.Props.SetText(config.PropXWRCalName, config.ICalCalName)
	cal.Props.SetText(config.PropCalScale, config.ICalScale)
	cal.Props.SetText(config.PropMethod, config.ICalMethod)

	refreshProp := ical.NewProp(config.PropRefresh)
	refreshProp.SetDuration(config.DefaultICalRefresh)
	cal.Props.Set(refreshProp)

	dtStampProp := ical.NewProp(config.PropDTStamp)
	dtStampProp.SetDateTime(now.UTC())

	for _, rec := range recs {
		event := ical.NewEvent()
		event.Props.SetText(config.PropUID, eventUID(rec))
		event.Props.SetText(config.PropSummary, fmt.Sprintf(config.SummaryFormat, rec.Name, rec.Label()))
		event.Props.SetText(config.PropDescription, rec.Frequency)

		category := config.CategoryScreening
		if rec.Kind == KindVaccine {
			category = config.CategoryVaccine
		}
		event.Props.SetText(config.PropCategories, category)

		dtStartProp := ical.NewProp(config.PropDTStart)
		dtStartProp.SetDate(rec.DueDate)
		event.Props.Set(dtStartProp)
		event.Props.Set(dtStampProp)

		cal.Children = append(cal.Children, event.Component)
	}

	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(cal); err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrICalEncode, err)
	}
	return buf.Bytes(), nil
}

// eventUID is stable for a given item and due date so that re-generating on the
// same day does not duplicate events in subscribed calendars.
func eventUID(rec Recommendation) string {
	input := fmt.Sprintf(config.FormatHashInput, rec.Name, rec.DueDate.Format(config.DateFormatISO), config.UIDSalt)
	hash := sha256.Sum256([]byte(input))
	return fmt.Sprintf(config.FormatUID, fmt.Sprintf("%x", hash[:config.UIDHashLength]), config.ICalDomain)
}
