// Copyright (c) 2025-2026 Fedele Penna
// SPDX-License-Identifier: GPL-3.0-or-later

// Package calendar exports events as iCalendar files and Google Calendar
// links so visitors can add them to their own calendars.
package calendar

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"

	"github.com/pennaFedele/gambarie-summer-events/internal/model"
)

// DefaultDuration is assumed for events, which only carry a start time.
const DefaultDuration = 2 * time.Hour

const prodID = "-//Gambarie Eventi//IT"

// eventTimes resolves an event's start and end instants. Dates and times
// are stored as local wall clock; exports treat them as UTC the same way
// the site always has, which keeps the two export paths consistent.
func eventTimes(e model.Event) (time.Time, time.Time, error) {
	start, err := time.Parse(model.DateLayout+"T"+model.TimeLayout, e.EventDate+"T"+e.EventTime)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("parsing event datetime: %w", err)
	}
	return start, start.Add(DefaultDuration), nil
}

func description(e model.Event, lang string) string {
	desc := model.LocalizeNull(lang, e.Description.String, e.DescriptionEn)
	organizer := model.Localize(lang, e.Organizer, e.OrganizerEn.String)
	return desc + " - Organizzato da: " + organizer
}

// ICS renders one event as an iCalendar file.
func ICS(e model.Event, lang string) (string, error) {
	start, end, err := eventTimes(e)
	if err != nil {
		return "", err
	}

	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(prodID)

	ve := cal.AddEvent(e.ID + "@gambarie-eventi.com")
	ve.SetStartAt(start)
	ve.SetEndAt(end)
	ve.SetSummary(model.Localize(lang, e.Title, e.TitleEn.String))
	ve.SetDescription(description(e, lang))
	ve.SetLocation(model.Localize(lang, e.Location, e.LocationEn.String))
	ve.SetStatus(ical.ObjectStatusConfirmed)
	ve.SetDtStampTime(time.Now().UTC())

	return cal.Serialize(), nil
}

// Filename builds a safe download name for an event's ICS file.
func Filename(e model.Event, lang string) string {
	title := strings.ToLower(model.Localize(lang, e.Title, e.TitleEn.String))
	var b strings.Builder
	for _, r := range title {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		} else {
			b.WriteByte('_')
		}
	}
	return b.String() + ".ics"
}

// GoogleCalendarURL builds a prefilled Google Calendar event link.
func GoogleCalendarURL(e model.Event, lang string) (string, error) {
	start, end, err := eventTimes(e)
	if err != nil {
		return "", err
	}

	const stamp = "20060102T150405Z"
	params := url.Values{}
	params.Set("action", "TEMPLATE")
	params.Set("text", model.Localize(lang, e.Title, e.TitleEn.String))
	params.Set("dates", start.UTC().Format(stamp)+"/"+end.UTC().Format(stamp))
	params.Set("details", description(e, lang))
	params.Set("location", model.Localize(lang, e.Location, e.LocationEn.String))

	return "https://calendar.google.com/calendar/render?" + params.Encode(), nil
}
