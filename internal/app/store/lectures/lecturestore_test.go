package lecturestore_test

import (
	"errors"
	"reflect"
	"testing"

	lecturestore "github.com/dalemusser/wuwapi/internal/app/store/lectures"
	"github.com/dalemusser/wuwapi/internal/domain/models"
	"github.com/dalemusser/wuwapi/internal/domain/schedule"
	"github.com/dalemusser/wuwapi/internal/testutil"
)

func TestStore_GetByID(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := lecturestore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	l := fixtures.CreateLecture(ctx, "Algorithms", testutil.At(9, 0), testutil.At(10, 0), []string{"A"}, []string{"inf1"})

	got, err := store.GetByID(ctx, l.ID.Hex())
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.LectureName != "Algorithms" || !got.StartTime.Equal(l.StartTime) {
		t.Errorf("GetByID returned %+v", got)
	}

	for _, id := range []string{"65a000000000000000000000", "not-hex", ""} {
		if _, err := store.GetByID(ctx, id); !errors.Is(err, schedule.ErrNotFound) {
			t.Errorf("GetByID(%q): expected ErrNotFound, got %v", id, err)
		}
	}
}

func TestStore_Queries(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := lecturestore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fixtures.CreateLecture(ctx, "Networks", testutil.At(9, 30), testutil.At(10, 30), []string{"B", "C"}, []string{"inf1", "inf2"})
	fixtures.CreateLecture(ctx, "Algorithms", testutil.At(9, 0), testutil.At(10, 0), []string{"A", "B"}, []string{"inf1"})
	fixtures.CreateLecture(ctx, "Statistics", testutil.At(14, 0), testutil.At(15, 0), []string{"D"}, []string{"wi1"})

	all, err := store.ListAll(ctx)
	if err != nil {
		t.Fatalf("ListAll failed: %v", err)
	}
	if len(all) != 3 || all[0].LectureName != "Algorithms" {
		t.Errorf("ListAll should be sorted by start time, got %d items starting %q", len(all), all[0].LectureName)
	}

	ending, err := store.ListEndingFrom(ctx, testutil.At(10, 15))
	if err != nil {
		t.Fatalf("ListEndingFrom failed: %v", err)
	}
	if len(ending) != 2 {
		t.Errorf("ListEndingFrom: expected 2, got %d", len(ending))
	}

	byGroup, err := store.ListByGroups(ctx, []string{"wi1"})
	if err != nil {
		t.Fatalf("ListByGroups failed: %v", err)
	}
	if len(byGroup) != 1 || byGroup[0].LectureName != "Statistics" {
		t.Errorf("ListByGroups returned %+v", byGroup)
	}

	current, err := store.ListCurrent(ctx, testutil.At(9, 45))
	if err != nil {
		t.Fatalf("ListCurrent failed: %v", err)
	}
	if len(current) != 2 {
		t.Errorf("ListCurrent: expected 2, got %d", len(current))
	}
}

func TestStore_AggregationsMatchFold(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := lecturestore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fixtures.CreateLecture(ctx, "Algorithms", testutil.At(9, 0), testutil.At(10, 0), []string{"A", "B"}, []string{"inf1"})
	fixtures.CreateLecture(ctx, "Networks", testutil.At(9, 30), testutil.At(10, 30), []string{"B", "C"}, []string{"inf1", "inf2"})
	fixtures.CreateLecture(ctx, "Statistics", testutil.At(14, 0), testutil.At(15, 0), []string{"D"}, []string{"wi1"})

	all, err := store.ListAll(ctx)
	if err != nil {
		t.Fatalf("ListAll failed: %v", err)
	}

	rooms, err := store.RoomSet(ctx)
	if err != nil {
		t.Fatalf("RoomSet failed: %v", err)
	}
	if got, want := schedule.NormalizeSet(rooms), schedule.DistinctRooms(all); !reflect.DeepEqual(got, want) {
		t.Errorf("RoomSet = %v, want %v", got, want)
	}

	busy, err := store.BusyRoomSet(ctx, testutil.At(9, 45))
	if err != nil {
		t.Fatalf("BusyRoomSet failed: %v", err)
	}
	if got, want := schedule.NormalizeSet(busy), []string{"A", "B", "C"}; !reflect.DeepEqual(got, want) {
		t.Errorf("BusyRoomSet = %v, want %v", got, want)
	}

	groups, err := store.GroupSet(ctx)
	if err != nil {
		t.Fatalf("GroupSet failed: %v", err)
	}
	if got, want := schedule.NormalizeSet(groups), schedule.DistinctGroups(all); !reflect.DeepEqual(got, want) {
		t.Errorf("GroupSet = %v, want %v", got, want)
	}

	rows, err := store.GroupLectureSets(ctx)
	if err != nil {
		t.Fatalf("GroupLectureSets failed: %v", err)
	}
	if got, want := schedule.NormalizeGroupLectures(rows), schedule.LecturesByGroup(all); !reflect.DeepEqual(got, want) {
		t.Errorf("GroupLectureSets = %+v, want %+v", got, want)
	}
}

func TestStore_AggregationsEmpty(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := lecturestore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	rooms, err := store.RoomSet(ctx)
	if err != nil {
		t.Fatalf("RoomSet failed: %v", err)
	}
	if len(rooms) != 0 {
		t.Errorf("expected no rooms, got %v", rooms)
	}

	rows, err := store.GroupLectureSets(ctx)
	if err != nil {
		t.Fatalf("GroupLectureSets failed: %v", err)
	}
	if len(rows) != 0 {
		t.Errorf("expected no rows, got %v", rows)
	}
}

func TestStore_ImportAndClear(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := lecturestore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	n, err := store.Import(ctx, []models.Lecture{
		{LectureName: "Algorithms", StartTime: testutil.At(9, 0), EndTime: testutil.At(10, 0), Rooms: []string{"A"}, Groups: []string{"inf1"}},
		{LectureName: "Networks", StartTime: testutil.At(11, 0), EndTime: testutil.At(12, 0), Rooms: []string{"B"}, Groups: []string{"inf2"}},
	})
	if err != nil {
		t.Fatalf("Import failed: %v", err)
	}
	if n != 2 {
		t.Errorf("Import count = %d, want 2", n)
	}

	all, err := store.ListAll(ctx)
	if err != nil {
		t.Fatalf("ListAll failed: %v", err)
	}
	for _, l := range all {
		if l.ID.IsZero() {
			t.Error("imported lecture has no id")
		}
	}

	deleted, err := store.Clear(ctx)
	if err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	if deleted != 2 {
		t.Errorf("Clear deleted %d, want 2", deleted)
	}
}
