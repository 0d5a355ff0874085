// Package icalfeed renders lectures and deadlines as an iCalendar feed.
package icalfeed

import (
	"io"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/dalemusser/wuwapi/internal/domain/models"
	"github.com/dalemusser/wuwapi/internal/domain/schedule"
)

// ContentType is the media type of a serialized feed.
const ContentType = "text/calendar; charset=utf-8"

const (
	productID   = "-//wuwapi//schedule//EN"
	lectureUID  = "@lectures.wuwapi"
	deadlineUID = "@deadlines.wuwapi"
	colorProp   = ical.ComponentProperty("COLOR")
)

// Build assembles a calendar named name. stamp becomes every event's
// DTSTAMP so repeated builds of the same data are identical.
func Build(name string, lectures []models.Lecture, deadlines []schedule.DeadlineView, stamp time.Time) *ical.Calendar {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(productID)
	cal.SetXWRCalName(name)

	for _, l := range lectures {
		ev := cal.AddEvent(l.ID.Hex() + lectureUID)
		ev.SetDtStampTime(stamp)
		ev.SetStartAt(l.StartTime)
		ev.SetEndAt(l.EndTime)
		ev.SetSummary(l.LectureName)
		if len(l.Rooms) > 0 {
			ev.SetLocation(strings.Join(l.Rooms, ", "))
		}
		if len(l.Docents) > 0 {
			ev.SetDescription(strings.Join(l.Docents, ", "))
		}
		if len(l.Groups) > 0 {
			ev.SetProperty(ical.ComponentPropertyCategories, strings.Join(l.Groups, ","))
		}
	}

	for _, d := range deadlines {
		ev := cal.AddEvent(d.ID.Hex() + deadlineUID)
		ev.SetDtStampTime(stamp)
		ev.SetStartAt(d.Deadline.Deadline)
		ev.SetEndAt(d.Deadline.Deadline)
		ev.SetSummary(deadlineSummary(d))
		ev.SetDescription(d.Info)
		if g := d.GroupName(); g != "" {
			ev.SetProperty(ical.ComponentPropertyCategories, g)
		}
		ev.SetProperty(colorProp, d.Color)
	}
	return cal
}

func deadlineSummary(d schedule.DeadlineView) string {
	if d.ShortLectureName != nil {
		return "Deadline " + *d.ShortLectureName + ": " + d.Info
	}
	return "Deadline: " + d.Info
}

// Write serializes cal to w.
func Write(w io.Writer, cal *ical.Calendar) error {
	_, err := io.WriteString(w, cal.Serialize())
	return err
}
