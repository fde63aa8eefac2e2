package out

import (
	"fmt"
	"io"
	"time"

	"github.com/emersion/go-ical"
	"github.com/teambition/rrule-go"

	"holoalarm/internal/modules/alarm/domain"
	alarmout "holoalarm/internal/modules/alarm/port/out"
)

const (
	productID      = "-//holoalarm//alarms//EN"
	floatingLayout = "20060102T150405"
)

// ICSExporter renders alarms as daily-recurring events, each carrying a
// display alarm at its start. Start times are floating so they stay on the
// same wall-clock minute across time zones and DST.
type ICSExporter struct{}

func NewICSExporter() alarmout.Exporter {
	return ICSExporter{}
}

func (ICSExporter) Export(w io.Writer, alarms []domain.Alarm, now time.Time) error {
	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Props.SetText(ical.PropProductID, productID)

	for _, a := range alarms {
		hm, err := time.Parse(domain.TimeLayout, a.Time)
		if err != nil {
			return fmt.Errorf("parse alarm time %q: %w", a.Time, err)
		}
		start := time.Date(now.Year(), now.Month(), now.Day(), hm.Hour(), hm.Minute(), 0, 0, time.UTC)

		event := ical.NewEvent()
		event.Props.SetText(ical.PropUID, a.ID+"@holoalarm")
		event.Props.SetDateTime(ical.PropDateTimeStamp, now.UTC())
		dtstart := ical.NewProp(ical.PropDateTimeStart)
		dtstart.Value = start.Format(floatingLayout)
		event.Props.Set(dtstart)
		event.Props.SetText(ical.PropSummary, a.Label)
		event.Props.SetRecurrenceRule(&rrule.ROption{Freq: rrule.DAILY})

		valarm := ical.NewComponent(ical.CompAlarm)
		valarm.Props.SetText(ical.PropAction, "DISPLAY")
		valarm.Props.SetText(ical.PropDescription, a.Label)
		trigger := ical.NewProp(ical.PropTrigger)
		trigger.Value = "PT0S"
		valarm.Props.Set(trigger)
		event.Children = append(event.Children, valarm)

		cal.Children = append(cal.Children, event.Component)
	}

	if err := ical.NewEncoder(w).Encode(cal); err != nil {
		return fmt.Errorf("encode calendar: %w", err)
	}
	return nil
}
