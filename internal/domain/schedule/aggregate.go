package schedule

import (
	"sort"

	"github.com/dalemusser/wuwapi/internal/domain/models"
)

// GroupLectures is one row of the group -> lecture names view.
type GroupLectures struct {
	Group    string   `bson:"_id" json:"group"`
	Lectures []string `bson:"lectures" json:"lectures"`
}

// DistinctRooms returns the union of every lecture's rooms, sorted ascending.
func DistinctRooms(lectures []models.Lecture) []string {
	seen := make(map[string]struct{})
	for _, l := range lectures {
		for _, r := range l.Rooms {
			seen[r] = struct{}{}
		}
	}
	return sortedKeys(seen)
}

// DistinctGroups returns the union of every lecture's groups, sorted ascending.
func DistinctGroups(lectures []models.Lecture) []string {
	seen := make(map[string]struct{})
	for _, l := range lectures {
		for _, g := range l.Groups {
			seen[g] = struct{}{}
		}
	}
	return sortedKeys(seen)
}

// LecturesByGroup folds the lectures into one entry per group holding the
// distinct lecture names that serve it. Entries are sorted by group and the
// names inside each entry are sorted too.
func LecturesByGroup(lectures []models.Lecture) []GroupLectures {
	byGroup := make(map[string]map[string]struct{})
	for _, l := range lectures {
		for _, g := range l.Groups {
			names, ok := byGroup[g]
			if !ok {
				names = make(map[string]struct{})
				byGroup[g] = names
			}
			names[l.LectureName] = struct{}{}
		}
	}

	out := make([]GroupLectures, 0, len(byGroup))
	for g, names := range byGroup {
		out = append(out, GroupLectures{Group: g, Lectures: sortedKeys(names)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Group < out[j].Group })
	return out
}

// NormalizeSet deduplicates values and sorts them ascending. Results of
// store-side aggregation go through it so both strategies return the same
// shape. The result is never nil.
func NormalizeSet(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		seen[v] = struct{}{}
	}
	return sortedKeys(seen)
}

// NormalizeGroupLectures applies NormalizeSet to every entry, merges
// duplicate groups and sorts entries by group.
func NormalizeGroupLectures(rows []GroupLectures) []GroupLectures {
	merged := make(map[string][]string, len(rows))
	for _, row := range rows {
		merged[row.Group] = append(merged[row.Group], row.Lectures...)
	}
	out := make([]GroupLectures, 0, len(merged))
	for g, names := range merged {
		out = append(out, GroupLectures{Group: g, Lectures: NormalizeSet(names)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Group < out[j].Group })
	return out
}

// Difference returns the values of all that are not in remove, sorted.
func Difference(all, remove []string) []string {
	drop := make(map[string]struct{}, len(remove))
	for _, r := range remove {
		drop[r] = struct{}{}
	}
	keep := make(map[string]struct{}, len(all))
	for _, a := range all {
		if _, gone := drop[a]; !gone {
			keep[a] = struct{}{}
		}
	}
	return sortedKeys(keep)
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
