// Package seed loads lectures and deadlines from a YAML document into the
// database. It backs the wuwseed command used for local development.
package seed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	deadlinestore "github.com/dalemusser/wuwapi/internal/app/store/deadlines"
	lecturestore "github.com/dalemusser/wuwapi/internal/app/store/lectures"
	"github.com/dalemusser/wuwapi/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// File is the YAML document layout.
//
//	lectures:
//	  - lectureName: Algorithms
//	    startTime: 2024-01-10T09:00:00Z
//	    endTime: 2024-01-10T10:30:00Z
//	    rooms: [A-101]
//	    groups: [inf1]
//	deadlines:
//	  - info: Exercise sheet 3
//	    deadline: 2024-01-12T23:59:00Z
//	    group: inf1
type File struct {
	Lectures  []Lecture  `yaml:"lectures"`
	Deadlines []Deadline `yaml:"deadlines"`
}

type Lecture struct {
	LectureName string    `yaml:"lectureName"`
	ShortName   string    `yaml:"shortName"`
	StartTime   time.Time `yaml:"startTime"`
	EndTime     time.Time `yaml:"endTime"`
	Rooms       []string  `yaml:"rooms"`
	Groups      []string  `yaml:"groups"`
	Docents     []string  `yaml:"docents"`
}

type Deadline struct {
	Info             string    `yaml:"info"`
	Deadline         time.Time `yaml:"deadline"`
	ShortLectureName string    `yaml:"shortLectureName"`
	Group            string    `yaml:"group"`
	CreatedBy        string    `yaml:"createdBy"`
}

// Load decodes and checks a seed document. Every problem is reported, not
// just the first.
func Load(r io.Reader) (File, error) {
	var f File
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return File{}, fmt.Errorf("parse seed file: %w", err)
	}

	var problems []string
	for i, l := range f.Lectures {
		if strings.TrimSpace(l.LectureName) == "" {
			problems = append(problems, fmt.Sprintf("lectures[%d]: lectureName is required", i))
		}
		if l.StartTime.IsZero() || l.EndTime.IsZero() {
			problems = append(problems, fmt.Sprintf("lectures[%d]: startTime and endTime are required", i))
		} else if l.EndTime.Before(l.StartTime) {
			problems = append(problems, fmt.Sprintf("lectures[%d]: endTime is before startTime", i))
		}
	}
	for i, d := range f.Deadlines {
		if strings.TrimSpace(d.Info) == "" {
			problems = append(problems, fmt.Sprintf("deadlines[%d]: info is required", i))
		}
		if d.Deadline.IsZero() {
			problems = append(problems, fmt.Sprintf("deadlines[%d]: deadline is required", i))
		}
	}
	if len(problems) > 0 {
		return File{}, errors.New(strings.Join(problems, "; "))
	}
	return f, nil
}

// Result counts what Apply did.
type Result struct {
	LecturesRemoved  int64
	DeadlinesRemoved int64
	LecturesAdded    int
	DeadlinesAdded   int
}

// Apply writes f into db. With replace set, both collections are emptied
// first.
func Apply(ctx context.Context, db *mongo.Database, f File, replace bool, now time.Time, log *zap.Logger) (Result, error) {
	if log == nil {
		log = zap.NewNop()
	}
	lectures := lecturestore.New(db)
	deadlines := deadlinestore.New(db)
	var res Result

	if replace {
		var err error
		if res.LecturesRemoved, err = lectures.Clear(ctx); err != nil {
			return res, fmt.Errorf("clear lectures: %w", err)
		}
		if res.DeadlinesRemoved, err = deadlines.Clear(ctx); err != nil {
			return res, fmt.Errorf("clear deadlines: %w", err)
		}
		log.Info("cleared collections",
			zap.Int64("lectures", res.LecturesRemoved),
			zap.Int64("deadlines", res.DeadlinesRemoved))
	}

	n, err := lectures.Import(ctx, toLectures(f.Lectures))
	if err != nil {
		return res, fmt.Errorf("import lectures: %w", err)
	}
	res.LecturesAdded = n

	now = now.UTC()
	for _, d := range f.Deadlines {
		if _, err := deadlines.Create(ctx, toDeadline(d, now)); err != nil {
			return res, fmt.Errorf("create deadline %q: %w", d.Info, err)
		}
		res.DeadlinesAdded++
	}

	log.Info("seed applied",
		zap.Int("lectures", res.LecturesAdded),
		zap.Int("deadlines", res.DeadlinesAdded))
	return res, nil
}

func toLectures(in []Lecture) []models.Lecture {
	out := make([]models.Lecture, 0, len(in))
	for _, l := range in {
		out = append(out, models.Lecture{
			LectureName: strings.TrimSpace(l.LectureName),
			ShortName:   strings.TrimSpace(l.ShortName),
			StartTime:   l.StartTime.UTC(),
			EndTime:     l.EndTime.UTC(),
			Rooms:       nonNil(l.Rooms),
			Groups:      nonNil(l.Groups),
			Docents:     l.Docents,
		})
	}
	return out
}

func toDeadline(d Deadline, now time.Time) models.Deadline {
	return models.Deadline{
		Info:             strings.TrimSpace(d.Info),
		Deadline:         d.Deadline.UTC(),
		ShortLectureName: optional(d.ShortLectureName),
		Group:            optional(d.Group),
		CreatedBy:        optional(d.CreatedBy),
		CreatedAt:        now,
		UpdatedAt:        now,
	}
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
