package seasons

import (
	"context"
	"errors"
	"math"
	"strings"
	"time"

	"bookingengine/internal/domain/shared/daterange"
	"bookingengine/internal/domain/shared/events"
)

var (
	ErrSeasonNotFound     = errors.New("seasons: not found")
	ErrNameRequired       = errors.New("seasons: name required")
	ErrInvalidRange       = errors.New("seasons: end date must not precede start date")
	ErrInvalidCoefficient = errors.New("seasons: coefficient must be positive and finite")
)

type SeasonID string

// Season is a pricing rule: an inclusive calendar date range whose
// coefficient multiplies a room's base nightly price. Ranges of different
// seasons may overlap.
type Season struct {
	ID          SeasonID
	Name        string
	Start       time.Time
	End         time.Time
	Coefficient float64
	CreatedAt   time.Time
	UpdatedAt   time.Time
	events.EventRecorder
}

type Repository interface {
	ByID(ctx context.Context, id SeasonID) (*Season, error)
	All(ctx context.Context) ([]*Season, error)
	Save(ctx context.Context, season *Season) error
	Delete(ctx context.Context, id SeasonID) error
}

type CreateParams struct {
	ID          SeasonID
	Name        string
	Start       time.Time
	End         time.Time
	Coefficient float64
	Now         time.Time
}

func NewSeason(params CreateParams) (*Season, error) {
	name := strings.TrimSpace(params.Name)
	if name == "" {
		return nil, ErrNameRequired
	}
	start := daterange.Day(params.Start)
	end := daterange.Day(params.End)
	if start.IsZero() || end.IsZero() || end.Before(start) {
		return nil, ErrInvalidRange
	}
	if err := validateCoefficient(params.Coefficient); err != nil {
		return nil, err
	}
	now := params.Now.UTC()
	s := &Season{
		ID:          params.ID,
		Name:        name,
		Start:       start,
		End:         end,
		Coefficient: params.Coefficient,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	s.Record(SeasonCreated{SeasonID: s.ID, Name: s.Name, Coefficient: s.Coefficient, At: now})
	return s, nil
}

type UpdateParams struct {
	Name        string
	Start       time.Time
	End         time.Time
	Coefficient float64
}

func (s *Season) Update(params UpdateParams, now time.Time) error {
	name := strings.TrimSpace(params.Name)
	if name == "" {
		return ErrNameRequired
	}
	start := daterange.Day(params.Start)
	end := daterange.Day(params.End)
	if start.IsZero() || end.IsZero() || end.Before(start) {
		return ErrInvalidRange
	}
	if err := validateCoefficient(params.Coefficient); err != nil {
		return err
	}
	s.Name = name
	s.Start = start
	s.End = end
	s.Coefficient = params.Coefficient
	s.UpdatedAt = now.UTC()
	s.Record(SeasonUpdated{SeasonID: s.ID, At: s.UpdatedAt})
	return nil
}

// Covers reports whether the date falls inside the inclusive [Start, End] range.
func (s *Season) Covers(d time.Time) bool {
	d = daterange.Day(d)
	return !d.Before(s.Start) && !d.After(s.End)
}

// ForDate picks the season applicable to a date. When several seasons cover
// the same date the highest coefficient wins; coefficient ties resolve to the
// lowest season ID so the selection stays reproducible regardless of input
// order. Returns nil when no season covers the date.
func ForDate(all []*Season, d time.Time) *Season {
	var picked *Season
	for _, candidate := range all {
		if candidate == nil || !candidate.Covers(d) {
			continue
		}
		if picked == nil {
			picked = candidate
			continue
		}
		if candidate.Coefficient > picked.Coefficient {
			picked = candidate
			continue
		}
		if candidate.Coefficient == picked.Coefficient && candidate.ID < picked.ID {
			picked = candidate
		}
	}
	return picked
}

func validateCoefficient(c float64) error {
	if c <= 0 || math.IsNaN(c) || math.IsInf(c, 0) {
		return ErrInvalidCoefficient
	}
	return nil
}
