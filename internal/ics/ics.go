// Package ics renders a game snapshot as an iCalendar document so the
// activity windows can be imported into any calendar app.
package ics

import (
	"fmt"
	"io"

	"github.com/emersion/go-ical"

	"actcal/internal/anntext"
	"actcal/internal/model"
	"actcal/internal/timefmt"
)

const productID = "-//actcal//EN"

// Write encodes every event of the snapshot, plus its version window when
// one was resolved, as VEVENT components. Times are rendered in UTC. The
// snapshot's fetch instant doubles as the DTSTAMP so output is reproducible
// for a given snapshot.
func Write(w io.Writer, snap *model.Snapshot) error {
	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Props.SetText(ical.PropProductID, productID)

	for _, ev := range snap.Events {
		ve, err := eventComponent(snap, ev)
		if err != nil {
			return err
		}
		cal.Children = append(cal.Children, ve)
	}
	if ver := snap.Version; ver != nil {
		vv, err := versionComponent(snap, ver)
		if err != nil {
			return err
		}
		cal.Children = append(cal.Children, vv)
	}

	if err := ical.NewEncoder(w).Encode(cal); err != nil {
		return fmt.Errorf("encode calendar: %w", err)
	}
	return nil
}

func eventComponent(snap *model.Snapshot, ev model.CalendarEvent) (*ical.Component, error) {
	start, err := timefmt.ParseISO(ev.StartTime)
	if err != nil {
		return nil, fmt.Errorf("event %s start: %w", ev.ID, err)
	}
	end, err := timefmt.ParseISO(ev.EndTime)
	if err != nil {
		return nil, fmt.Errorf("event %s end: %w", ev.ID, err)
	}

	ve := ical.NewComponent(ical.CompEvent)
	ve.Props.SetText(ical.PropUID, fmt.Sprintf("%s@%s.actcal", ev.ID, snap.Game))
	ve.Props.SetText(ical.PropSummary, ev.Title)
	ve.Props.SetDateTime(ical.PropDateTimeStamp, snap.FetchedAt.UTC())
	ve.Props.SetDateTime(ical.PropDateTimeStart, start.UTC())
	ve.Props.SetDateTime(ical.PropDateTimeEnd, end.UTC())
	if ev.IsGacha {
		ve.Props.SetText(ical.PropCategories, "GACHA")
	}
	if desc := anntext.StripHTML(ev.Content); desc != "" {
		ve.Props.SetText(ical.PropDescription, desc)
	}
	if ev.Banner != "" {
		ve.Props.SetText(ical.PropURL, ev.Banner)
	}
	return ve, nil
}

func versionComponent(snap *model.Snapshot, ver *model.GameVersionInfo) (*ical.Component, error) {
	start, err := timefmt.ParseISO(ver.StartTime)
	if err != nil {
		return nil, fmt.Errorf("version start: %w", err)
	}
	end, err := timefmt.ParseISO(ver.EndTime)
	if err != nil {
		return nil, fmt.Errorf("version end: %w", err)
	}

	summary := ver.Title
	if summary == "" {
		summary = fmt.Sprintf("%s %s", snap.Game.DisplayName(), ver.Version)
	}
	vv := ical.NewComponent(ical.CompEvent)
	vv.Props.SetText(ical.PropUID, fmt.Sprintf("version@%s.actcal", snap.Game))
	vv.Props.SetText(ical.PropSummary, summary)
	vv.Props.SetDateTime(ical.PropDateTimeStamp, snap.FetchedAt.UTC())
	vv.Props.SetDateTime(ical.PropDateTimeStart, start.UTC())
	vv.Props.SetDateTime(ical.PropDateTimeEnd, end.UTC())
	vv.Props.SetText(ical.PropCategories, "VERSION")
	return vv, nil
}
