package reservation

import (
	"context"
	"errors"
	"time"

	"bookingengine/internal/domain/rooms"
	"bookingengine/internal/domain/shared/daterange"
	"bookingengine/internal/domain/shared/events"
	"bookingengine/internal/domain/shared/money"
)

var (
	ErrNotFound        = errors.New("reservation: not found")
	ErrGuestRequired   = errors.New("reservation: guest id required")
	ErrInvalidState    = errors.New("reservation: invalid state transition")
	ErrVersionConflict = errors.New("reservation: concurrent modification")
)

type ReservationID string

type Status string

const (
	StatusPending   Status = "PENDING"
	StatusConfirmed Status = "CONFIRMED"
	StatusCancelled Status = "CANCELLED"
	StatusCompleted Status = "COMPLETED"
)

// Blocks reports whether a reservation in this status occupies its nights.
// Cancelled and completed stays release the room.
func (s Status) Blocks() bool {
	return s == StatusPending || s == StatusConfirmed
}

type Reservation struct {
	ID          ReservationID
	RoomID      rooms.RoomID
	GuestID     string
	Stay        daterange.StayInterval
	Status      Status
	QuotedTotal money.Money
	CreatedAt   time.Time
	UpdatedAt   time.Time
	CancelledAt time.Time
	Version     int64
	events.EventRecorder
}

type Repository interface {
	ByID(ctx context.Context, id ReservationID) (*Reservation, error)
	ByRoom(ctx context.Context, roomID rooms.RoomID) ([]*Reservation, error)
	ByGuest(ctx context.Context, guestID string) ([]*Reservation, error)
	ByStatus(ctx context.Context, status Status) ([]*Reservation, error)
	Save(ctx context.Context, r *Reservation) error
}

type CreateParams struct {
	ID          ReservationID
	RoomID      rooms.RoomID
	GuestID     string
	Stay        daterange.StayInterval
	QuotedTotal money.Money
	CreatedAt   time.Time
}

func NewReservation(params CreateParams) (*Reservation, error) {
	if params.GuestID == "" {
		return nil, ErrGuestRequired
	}
	if err := params.Stay.Validate(); err != nil {
		return nil, err
	}
	now := params.CreatedAt.UTC()
	r := &Reservation{
		ID:          params.ID,
		RoomID:      params.RoomID,
		GuestID:     params.GuestID,
		Stay:        params.Stay,
		Status:      StatusPending,
		QuotedTotal: params.QuotedTotal,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	r.Record(ReservationCreated{
		ReservationID: r.ID,
		RoomID:        r.RoomID,
		GuestID:       r.GuestID,
		Stay:          r.Stay,
		QuotedTotal:   r.QuotedTotal,
		At:            now,
	})
	return r, nil
}

// Confirm moves a pending reservation to CONFIRMED, typically after its
// payment settles.
func (r *Reservation) Confirm(now time.Time) error {
	if r.Status != StatusPending {
		return ErrInvalidState
	}
	r.Status = StatusConfirmed
	r.UpdatedAt = now.UTC()
	r.Record(ReservationConfirmed{ReservationID: r.ID, RoomID: r.RoomID, At: r.UpdatedAt})
	return nil
}

func (r *Reservation) Cancel(reason string, now time.Time) error {
	switch r.Status {
	case StatusPending, StatusConfirmed:
	default:
		return ErrInvalidState
	}
	r.Status = StatusCancelled
	r.UpdatedAt = now.UTC()
	r.CancelledAt = r.UpdatedAt
	r.Record(ReservationCancelled{ReservationID: r.ID, RoomID: r.RoomID, Reason: reason, At: r.UpdatedAt})
	return nil
}

// Complete marks a confirmed stay as checked out; the nights no longer block.
func (r *Reservation) Complete(now time.Time) error {
	if r.Status != StatusConfirmed {
		return ErrInvalidState
	}
	r.Status = StatusCompleted
	r.UpdatedAt = now.UTC()
	r.Record(ReservationCompleted{ReservationID: r.ID, RoomID: r.RoomID, At: r.UpdatedAt})
	return nil
}

// Reschedule replaces the stay interval and restamps the quoted total after
// the caller has re-checked availability and repriced the new dates.
func (r *Reservation) Reschedule(stay daterange.StayInterval, quotedTotal money.Money, now time.Time) error {
	switch r.Status {
	case StatusPending, StatusConfirmed:
	default:
		return ErrInvalidState
	}
	if err := stay.Validate(); err != nil {
		return err
	}
	r.Stay = stay
	r.QuotedTotal = quotedTotal
	r.UpdatedAt = now.UTC()
	r.Record(ReservationRescheduled{
		ReservationID: r.ID,
		RoomID:        r.RoomID,
		Stay:          r.Stay,
		QuotedTotal:   r.QuotedTotal,
		At:            r.UpdatedAt,
	})
	return nil
}
