package rooms

import (
	"context"
	"errors"
	"strings"
	"time"

	"bookingengine/internal/domain/shared/events"
	"bookingengine/internal/domain/shared/money"
)

var (
	ErrRoomNotFound     = errors.New("rooms: not found")
	ErrNumberRequired   = errors.New("rooms: room number required")
	ErrInvalidCategory  = errors.New("rooms: unknown room category")
	ErrInvalidBasePrice = errors.New("rooms: base nightly price must be positive")
	ErrInvalidCapacity  = errors.New("rooms: capacity must be positive")
)

type RoomID string

type Category string

const (
	CategorySingle Category = "SINGLE"
	CategoryDouble Category = "DOUBLE"
	CategorySuite  Category = "SUITE"
	CategoryFamily Category = "FAMILY"
	CategoryDeluxe Category = "DELUXE"
)

func ParseCategory(raw string) (Category, error) {
	switch Category(strings.ToUpper(strings.TrimSpace(raw))) {
	case CategorySingle:
		return CategorySingle, nil
	case CategoryDouble:
		return CategoryDouble, nil
	case CategorySuite:
		return CategorySuite, nil
	case CategoryFamily:
		return CategoryFamily, nil
	case CategoryDeluxe:
		return CategoryDeluxe, nil
	default:
		return "", ErrInvalidCategory
	}
}

// Room is the bookable unit. Available is the administrative flag (room in
// service or not) and is independent of date-based availability.
type Room struct {
	ID          RoomID
	Number      string
	Category    Category
	BaseNightly money.Money
	Capacity    int
	Description string
	Available   bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
	events.EventRecorder
}

type Repository interface {
	ByID(ctx context.Context, id RoomID) (*Room, error)
	All(ctx context.Context) ([]*Room, error)
	Save(ctx context.Context, room *Room) error
	Delete(ctx context.Context, id RoomID) error
}

type CreateParams struct {
	ID          RoomID
	Number      string
	Category    Category
	BaseNightly money.Money
	Capacity    int
	Description string
	Now         time.Time
}

func NewRoom(params CreateParams) (*Room, error) {
	number := strings.TrimSpace(params.Number)
	if number == "" {
		return nil, ErrNumberRequired
	}
	if _, err := ParseCategory(string(params.Category)); err != nil {
		return nil, err
	}
	if params.BaseNightly.Amount <= 0 || params.BaseNightly.Currency == "" {
		return nil, ErrInvalidBasePrice
	}
	if params.Capacity <= 0 {
		return nil, ErrInvalidCapacity
	}
	now := params.Now.UTC()
	r := &Room{
		ID:          params.ID,
		Number:      number,
		Category:    params.Category,
		BaseNightly: params.BaseNightly,
		Capacity:    params.Capacity,
		Description: strings.TrimSpace(params.Description),
		Available:   true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	r.Record(RoomCreated{RoomID: r.ID, Number: r.Number, Category: r.Category, At: now})
	return r, nil
}

type UpdateParams struct {
	Number      string
	Category    Category
	BaseNightly money.Money
	Capacity    int
	Description string
}

func (r *Room) Update(params UpdateParams, now time.Time) error {
	number := strings.TrimSpace(params.Number)
	if number == "" {
		return ErrNumberRequired
	}
	if _, err := ParseCategory(string(params.Category)); err != nil {
		return err
	}
	if params.BaseNightly.Amount <= 0 || params.BaseNightly.Currency == "" {
		return ErrInvalidBasePrice
	}
	if params.Capacity <= 0 {
		return ErrInvalidCapacity
	}
	r.Number = number
	r.Category = params.Category
	r.BaseNightly = params.BaseNightly
	r.Capacity = params.Capacity
	r.Description = strings.TrimSpace(params.Description)
	r.UpdatedAt = now.UTC()
	r.Record(RoomUpdated{RoomID: r.ID, At: r.UpdatedAt})
	return nil
}

// SetAvailability flips the administrative in-service flag.
func (r *Room) SetAvailability(available bool, now time.Time) {
	if r.Available == available {
		return
	}
	r.Available = available
	r.UpdatedAt = now.UTC()
	r.Record(RoomUpdated{RoomID: r.ID, At: r.UpdatedAt})
}
