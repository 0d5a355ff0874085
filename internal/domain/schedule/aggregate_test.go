package schedule_test

import (
	"reflect"
	"testing"

	"github.com/dalemusser/wuwapi/internal/domain/models"
	"github.com/dalemusser/wuwapi/internal/domain/schedule"
	"github.com/dalemusser/wuwapi/internal/testutil"
)

func TestDistinctRoomsAndGroups(t *testing.T) {
	lectures := []models.Lecture{
		testutil.Lecture("Math", testutil.At(8, 0), testutil.At(9, 0), []string{"B", "A"}, []string{"inf1", "inf2"}),
		testutil.Lecture("Physics", testutil.At(9, 0), testutil.At(10, 0), []string{"C", "B"}, []string{"inf2"}),
		testutil.Lecture("Lab", testutil.At(9, 0), testutil.At(10, 0), nil, nil),
	}

	if got, want := schedule.DistinctRooms(lectures), []string{"A", "B", "C"}; !reflect.DeepEqual(got, want) {
		t.Errorf("DistinctRooms = %v, want %v", got, want)
	}
	if got, want := schedule.DistinctGroups(lectures), []string{"inf1", "inf2"}; !reflect.DeepEqual(got, want) {
		t.Errorf("DistinctGroups = %v, want %v", got, want)
	}
}

func TestAggregates_EmptyInput(t *testing.T) {
	if got := schedule.DistinctRooms(nil); got == nil || len(got) != 0 {
		t.Errorf("DistinctRooms(nil) = %#v, want empty non-nil", got)
	}
	if got := schedule.DistinctGroups(nil); got == nil || len(got) != 0 {
		t.Errorf("DistinctGroups(nil) = %#v, want empty non-nil", got)
	}
	if got := schedule.LecturesByGroup(nil); got == nil || len(got) != 0 {
		t.Errorf("LecturesByGroup(nil) = %#v, want empty non-nil", got)
	}
}

func TestLecturesByGroup(t *testing.T) {
	lectures := []models.Lecture{
		testutil.Lecture("Math", testutil.At(8, 0), testutil.At(9, 0), nil, []string{"inf2", "inf1"}),
		testutil.Lecture("Math", testutil.At(10, 0), testutil.At(11, 0), nil, []string{"inf1"}),
		testutil.Lecture("Databases", testutil.At(12, 0), testutil.At(13, 0), nil, []string{"inf1"}),
	}

	got := schedule.LecturesByGroup(lectures)
	want := []schedule.GroupLectures{
		{Group: "inf1", Lectures: []string{"Databases", "Math"}},
		{Group: "inf2", Lectures: []string{"Math"}},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("LecturesByGroup = %+v, want %+v", got, want)
	}
}

func TestNormalizeGroupLectures_MatchesFold(t *testing.T) {
	lectures := []models.Lecture{
		testutil.Lecture("Math", testutil.At(8, 0), testutil.At(9, 0), nil, []string{"b", "a"}),
		testutil.Lecture("Art", testutil.At(9, 0), testutil.At(10, 0), nil, []string{"a"}),
		testutil.Lecture("Math", testutil.At(11, 0), testutil.At(12, 0), nil, []string{"a"}),
	}
	rows := []schedule.GroupLectures{
		{Group: "b", Lectures: []string{"Math"}},
		{Group: "a", Lectures: []string{"Math", "Art"}},
		{Group: "a", Lectures: []string{"Math"}},
	}

	if got, want := schedule.NormalizeGroupLectures(rows), schedule.LecturesByGroup(lectures); !reflect.DeepEqual(got, want) {
		t.Errorf("NormalizeGroupLectures = %+v, want %+v", got, want)
	}
}

func TestDifference(t *testing.T) {
	got := schedule.Difference([]string{"D", "A", "B", "A"}, []string{"B", "X"})
	if want := []string{"A", "D"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Difference = %v, want %v", got, want)
	}
}
