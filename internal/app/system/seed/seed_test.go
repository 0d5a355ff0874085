package seed_test

import (
	"strings"
	"testing"
	"time"

	deadlinestore "github.com/dalemusser/wuwapi/internal/app/store/deadlines"
	lecturestore "github.com/dalemusser/wuwapi/internal/app/store/lectures"
	"github.com/dalemusser/wuwapi/internal/app/system/seed"
	"github.com/dalemusser/wuwapi/internal/testutil"
)

const sample = `
lectures:
  - lectureName: Algorithms
    shortName: ALG
    startTime: 2024-01-10T09:00:00Z
    endTime: 2024-01-10T10:30:00Z
    rooms: [A-101, A-102]
    groups: [inf1]
  - lectureName: Networks
    startTime: 2024-01-10T11:00:00Z
    endTime: 2024-01-10T12:30:00Z
    rooms: [B-201]
    groups: [inf1, inf2]
deadlines:
  - info: Exercise sheet 3
    deadline: 2024-01-12T23:59:00Z
    group: inf1
    shortLectureName: ALG
`

func TestLoad(t *testing.T) {
	f, err := seed.Load(strings.NewReader(sample))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(f.Lectures) != 2 || len(f.Deadlines) != 1 {
		t.Fatalf("unexpected counts: %d lectures, %d deadlines", len(f.Lectures), len(f.Deadlines))
	}
	want := time.Date(2024, time.January, 10, 9, 0, 0, 0, time.UTC)
	if !f.Lectures[0].StartTime.Equal(want) {
		t.Errorf("startTime = %v, want %v", f.Lectures[0].StartTime, want)
	}
	if f.Deadlines[0].Group != "inf1" {
		t.Errorf("group = %q", f.Deadlines[0].Group)
	}
}

func TestLoad_Empty(t *testing.T) {
	f, err := seed.Load(strings.NewReader(""))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(f.Lectures) != 0 || len(f.Deadlines) != 0 {
		t.Errorf("expected empty file, got %+v", f)
	}
}

func TestLoad_ReportsEveryProblem(t *testing.T) {
	doc := `
lectures:
  - lectureName: ""
    startTime: 2024-01-10T11:00:00Z
    endTime: 2024-01-10T10:00:00Z
deadlines:
  - group: inf1
`
	_, err := seed.Load(strings.NewReader(doc))
	if err == nil {
		t.Fatal("expected an error")
	}
	for _, want := range []string{"lectureName is required", "endTime is before startTime", "info is required", "deadline is required"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q does not mention %q", err, want)
		}
	}
}

func TestLoad_UnknownField(t *testing.T) {
	if _, err := seed.Load(strings.NewReader("lectures:\n  - title: x\n")); err == nil {
		t.Error("expected unknown field to be rejected")
	}
}

func TestApply(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	f, err := seed.Load(strings.NewReader(sample))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	res, err := seed.Apply(ctx, db, f, false, testutil.ReferenceTime(), nil)
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if res.LecturesAdded != 2 || res.DeadlinesAdded != 1 {
		t.Errorf("unexpected result %+v", res)
	}

	// Replacing must not duplicate.
	res, err = seed.Apply(ctx, db, f, true, testutil.ReferenceTime(), nil)
	if err != nil {
		t.Fatalf("second Apply failed: %v", err)
	}
	if res.LecturesRemoved != 2 || res.DeadlinesRemoved != 1 {
		t.Errorf("unexpected removal counts %+v", res)
	}

	lectures, err := lecturestore.New(db).ListAll(ctx)
	if err != nil {
		t.Fatalf("ListAll failed: %v", err)
	}
	if len(lectures) != 2 {
		t.Errorf("expected 2 lectures, got %d", len(lectures))
	}
	n, err := deadlinestore.New(db).Count(ctx)
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if n != 1 {
		t.Errorf("expected 1 deadline, got %d", n)
	}
}
