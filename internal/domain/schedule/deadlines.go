package schedule

import (
	"context"
	"strings"
	"time"

	"github.com/dalemusser/wuwapi/internal/domain/models"
	"go.uber.org/zap"
)

// DeadlineInput is the payload accepted when creating a deadline.
// Deadline stays textual so malformed dates can be reported per field.
// Malformed holds fields the caller could not read at all (for example a
// number where text was expected), keyed by field name with a message;
// they are reported alongside every other failing field.
type DeadlineInput struct {
	Deadline         string
	Info             string
	ShortLectureName *string
	Group            *string
	CreatedBy        *string
	Malformed        map[string]string
}

// DeadlineUpdate carries the only fields an update may change.
type DeadlineUpdate struct {
	Deadline         string
	ShortLectureName *string
	Group            *string
	Malformed        map[string]string
}

// DeadlineView is a deadline together with its derived display color.
type DeadlineView struct {
	models.Deadline
	Color string `json:"color"`
}

// ViewOf attaches the derived color to d.
func ViewOf(d models.Deadline) DeadlineView {
	return DeadlineView{Deadline: d, Color: ColorOf(d.GroupName())}
}

// ViewsOf maps ViewOf over deadlines. The result is never nil.
func ViewsOf(deadlines []models.Deadline) []DeadlineView {
	out := make([]DeadlineView, 0, len(deadlines))
	for _, d := range deadlines {
		out = append(out, ViewOf(d))
	}
	return out
}

// DeadlineService validates and persists deadline writes and serves the
// active-deadline listing.
type DeadlineService struct {
	repo  DeadlineRepository
	now   func() time.Time
	clean func(string) string
	log   *zap.Logger
}

// DeadlineOption customises a DeadlineService.
type DeadlineOption func(*DeadlineService)

// WithClock sets the source of CreatedAt/UpdatedAt timestamps.
func WithClock(now func() time.Time) DeadlineOption {
	return func(s *DeadlineService) {
		if now != nil {
			s.now = now
		}
	}
}

// WithSanitizer sets the function applied to free-text fields before they
// are stored.
func WithSanitizer(fn func(string) string) DeadlineOption {
	return func(s *DeadlineService) {
		if fn != nil {
			s.clean = fn
		}
	}
}

// NewDeadlineService constructs a DeadlineService over repo.
func NewDeadlineService(repo DeadlineRepository, logger *zap.Logger, opts ...DeadlineOption) *DeadlineService {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &DeadlineService{
		repo:  repo,
		now:   time.Now,
		clean: func(s string) string { return s },
		log:   logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Get returns one deadline or ErrNotFound.
func (s *DeadlineService) Get(ctx context.Context, id string) (DeadlineView, error) {
	d, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return DeadlineView{}, repoErr("get deadline", err)
	}
	return ViewOf(d), nil
}

// ListActive returns the deadlines active at now, sorted by deadline.
func (s *DeadlineService) ListActive(ctx context.Context, now time.Time) ([]DeadlineView, error) {
	list, err := s.repo.ListFrom(ctx, ActiveCutoff(now))
	if err != nil {
		return nil, repoErr("list deadlines", err)
	}
	return ViewsOf(ActiveDeadlines(list, now)), nil
}

// Create validates in and stores a new deadline. Every failing field is
// reported in a single *ValidationError.
func (s *DeadlineService) Create(ctx context.Context, in DeadlineInput) (view DeadlineView, err error) {
	defer func() {
		var id string
		if !view.ID.IsZero() {
			id = view.ID.Hex()
		}
		s.logResult("deadline created", "create", id, err)
	}()

	var vErr ValidationError
	addMalformed(&vErr, in.Malformed)
	due := s.checkDate(&vErr, in.Deadline)
	info := s.clean(strings.TrimSpace(in.Info))
	if strings.TrimSpace(info) == "" {
		vErr.add("info", "info must not be empty")
	}
	if vErr.HasErrors() {
		return DeadlineView{}, &vErr
	}

	now := s.now().UTC()
	d := models.Deadline{
		Info:             info,
		Deadline:         due,
		ShortLectureName: s.cleanOpt(in.ShortLectureName),
		Group:            s.cleanOpt(in.Group),
		CreatedBy:        s.cleanOpt(in.CreatedBy),
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	created, err := s.repo.Create(ctx, d)
	if err != nil {
		return DeadlineView{}, repoErr("create deadline", err)
	}
	return ViewOf(created), nil
}

// Update overwrites Deadline, ShortLectureName and Group of an existing
// deadline. The date is validated exactly as on create; Info and CreatedBy
// are left untouched. Concurrent updates resolve as last write wins.
func (s *DeadlineService) Update(ctx context.Context, id string, in DeadlineUpdate) (view DeadlineView, err error) {
	defer func() { s.logResult("deadline updated", "update", id, err) }()

	var vErr ValidationError
	addMalformed(&vErr, in.Malformed)
	due := s.checkDate(&vErr, in.Deadline)
	if vErr.HasErrors() {
		return DeadlineView{}, &vErr
	}

	d, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return DeadlineView{}, repoErr("get deadline", err)
	}
	d.Deadline = due
	d.ShortLectureName = s.cleanOpt(in.ShortLectureName)
	d.Group = s.cleanOpt(in.Group)
	d.UpdatedAt = s.now().UTC()

	if err := s.repo.Replace(ctx, d); err != nil {
		return DeadlineView{}, repoErr("update deadline", err)
	}
	return ViewOf(d), nil
}

// Delete removes the deadline. Deleting an id that does not exist succeeds;
// callers only need the end state.
func (s *DeadlineService) Delete(ctx context.Context, id string) (err error) {
	defer func() { s.logResult("deadline deleted", "delete", id, err) }()

	if err := s.repo.Delete(ctx, id); err != nil {
		return repoErr("delete deadline", err)
	}
	return nil
}

func addMalformed(vErr *ValidationError, fields map[string]string) {
	for field, msg := range fields {
		vErr.add(field, msg)
	}
}

func (s *DeadlineService) checkDate(vErr *ValidationError, raw string) time.Time {
	if strings.TrimSpace(raw) == "" {
		vErr.add("deadline", "deadline must not be empty")
		return time.Time{}
	}
	due, ok := ParseDate(raw)
	if !ok {
		vErr.add("deadline", "deadline must be a valid date")
	}
	return due
}

// cleanOpt sanitises an optional text field; blank values become absent.
func (s *DeadlineService) cleanOpt(p *string) *string {
	if p == nil {
		return nil
	}
	v := strings.TrimSpace(s.clean(strings.TrimSpace(*p)))
	if v == "" {
		return nil
	}
	return &v
}

// logResult logs one line per write. An empty id (a create that never
// reached the store) is left out.
func (s *DeadlineService) logResult(msg, op, id string, err error) {
	var idField []zap.Field
	if id != "" {
		idField = append(idField, zap.String("deadline_id", id))
	}
	if err != nil {
		kind := ErrorKind(err)
		fields := append([]zap.Field{zap.String("op", op)}, idField...)
		fields = append(fields, zap.String("error_kind", kind), zap.Error(err))
		if kind == KindRepository || kind == KindInternal {
			s.log.Error("deadline "+op+" failed", fields...)
			return
		}
		s.log.Info("deadline "+op+" rejected", fields...)
		return
	}
	s.log.Info(msg, idField...)
}
