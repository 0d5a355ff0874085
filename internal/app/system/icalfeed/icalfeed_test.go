package icalfeed_test

import (
	"bytes"
	"strings"
	"testing"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/dalemusser/wuwapi/internal/app/system/icalfeed"
	"github.com/dalemusser/wuwapi/internal/domain/models"
	"github.com/dalemusser/wuwapi/internal/domain/schedule"
	"github.com/dalemusser/wuwapi/internal/testutil"
)

func TestBuild_RoundTrip(t *testing.T) {
	lecture := testutil.Lecture("Algorithms", testutil.At(9, 0), testutil.At(10, 0), []string{"A", "B"}, []string{"inf1"})
	short := "ALG"
	d := testutil.Deadline("Exercise sheet 3", time.Date(2024, time.January, 12, 23, 59, 0, 0, time.UTC), "inf1")
	d.ShortLectureName = &short

	cal := icalfeed.Build("inf1", []models.Lecture{lecture}, []schedule.DeadlineView{schedule.ViewOf(d)}, testutil.ReferenceTime())

	var buf bytes.Buffer
	if err := icalfeed.Write(&buf, cal); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	parsed, err := ical.ParseCalendar(strings.NewReader(buf.String()))
	if err != nil {
		t.Fatalf("ParseCalendar failed: %v", err)
	}
	events := parsed.Events()
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}

	start, err := events[0].GetStartAt()
	if err != nil {
		t.Fatalf("GetStartAt failed: %v", err)
	}
	if !start.Equal(lecture.StartTime) {
		t.Errorf("lecture start = %v, want %v", start, lecture.StartTime)
	}
	if p := events[0].GetProperty(ical.ComponentPropertyLocation); p == nil || p.Value != "A, B" {
		t.Errorf("lecture location = %+v", p)
	}
	if p := events[1].GetProperty(ical.ComponentPropertySummary); p == nil || p.Value != "Deadline ALG: Exercise sheet 3" {
		t.Errorf("deadline summary = %+v", p)
	}
	if !strings.Contains(buf.String(), "COLOR:"+schedule.ColorOf("inf1")) {
		t.Error("deadline color missing from feed")
	}
}

func TestBuild_Empty(t *testing.T) {
	cal := icalfeed.Build("empty", nil, nil, testutil.ReferenceTime())
	if n := len(cal.Events()); n != 0 {
		t.Errorf("expected no events, got %d", n)
	}
	if !strings.HasPrefix(cal.Serialize(), "BEGIN:VCALENDAR") {
		t.Error("expected a VCALENDAR document")
	}
}
