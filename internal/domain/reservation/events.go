package reservation

import (
	"time"

	"bookingengine/internal/domain/rooms"
	"bookingengine/internal/domain/shared/daterange"
	"bookingengine/internal/domain/shared/money"
)

type ReservationCreated struct {
	ReservationID ReservationID
	RoomID        rooms.RoomID
	GuestID       string
	Stay          daterange.StayInterval
	QuotedTotal   money.Money
	At            time.Time
}

func (e ReservationCreated) EventName() string     { return "reservation.created" }
func (e ReservationCreated) AggregateID() string   { return string(e.ReservationID) }
func (e ReservationCreated) OccurredAt() time.Time { return e.At }

type ReservationConfirmed struct {
	ReservationID ReservationID
	RoomID        rooms.RoomID
	At            time.Time
}

func (e ReservationConfirmed) EventName() string     { return "reservation.confirmed" }
func (e ReservationConfirmed) AggregateID() string   { return string(e.ReservationID) }
func (e ReservationConfirmed) OccurredAt() time.Time { return e.At }

type ReservationCancelled struct {
	ReservationID ReservationID
	RoomID        rooms.RoomID
	Reason        string
	At            time.Time
}

func (e ReservationCancelled) EventName() string     { return "reservation.cancelled" }
func (e ReservationCancelled) AggregateID() string   { return string(e.ReservationID) }
func (e ReservationCancelled) OccurredAt() time.Time { return e.At }

type ReservationRescheduled struct {
	ReservationID ReservationID
	RoomID        rooms.RoomID
	Stay          daterange.StayInterval
	QuotedTotal   money.Money
	At            time.Time
}

func (e ReservationRescheduled) EventName() string     { return "reservation.rescheduled" }
func (e ReservationRescheduled) AggregateID() string   { return string(e.ReservationID) }
func (e ReservationRescheduled) OccurredAt() time.Time { return e.At }

type ReservationCompleted struct {
	ReservationID ReservationID
	RoomID        rooms.RoomID
	At            time.Time
}

func (e ReservationCompleted) EventName() string     { return "reservation.completed" }
func (e ReservationCompleted) AggregateID() string   { return string(e.ReservationID) }
func (e ReservationCompleted) OccurredAt() time.Time { return e.At }
