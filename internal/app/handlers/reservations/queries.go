package reservations

import (
	"context"

	"bookingengine/internal/app/dto"
	"bookingengine/internal/app/queries"
	"bookingengine/internal/app/uow"
	domainreservation "bookingengine/internal/domain/reservation"
	domainrooms "bookingengine/internal/domain/rooms"
)

const (
	getReservationKey   = "reservations.get"
	listReservationsKey = "reservations.list"
)

type GetReservationQuery struct {
	ReservationID string
}

func (q GetReservationQuery) Key() string { return getReservationKey }

type GetReservationHandler struct {
	UoWFactory uow.UoWFactory
}

func (h *GetReservationHandler) Handle(ctx context.Context, q GetReservationQuery) (dto.Reservation, error) {
	unit, ok := uow.FromContext(ctx)
	if !ok {
		if h.UoWFactory == nil {
			return dto.Reservation{}, uow.ErrUnitOfWorkMissing
		}
		var err error
		unit, err = h.UoWFactory.Begin(ctx, uow.TxOptions{ReadOnly: true})
		if err != nil {
			return dto.Reservation{}, err
		}
		ctx = uow.ContextWithUnitOfWork(ctx, unit)
		defer unit.Rollback(ctx)
	}

	res, err := unit.Reservations().ByID(ctx, domainreservation.ReservationID(q.ReservationID))
	if err != nil {
		return dto.Reservation{}, err
	}
	return dto.MapReservation(res), nil
}

// ListReservationsQuery filters by room, guest or status. Filters are
// combined with AND; empty fields match everything.
type ListReservationsQuery struct {
	RoomID  string
	GuestID string
	Status  string
}

func (q ListReservationsQuery) Key() string { return listReservationsKey }

type ListReservationsHandler struct {
	UoWFactory uow.UoWFactory
}

func (h *ListReservationsHandler) Handle(ctx context.Context, q ListReservationsQuery) ([]dto.Reservation, error) {
	unit, ok := uow.FromContext(ctx)
	if !ok {
		if h.UoWFactory == nil {
			return nil, uow.ErrUnitOfWorkMissing
		}
		var err error
		unit, err = h.UoWFactory.Begin(ctx, uow.TxOptions{ReadOnly: true})
		if err != nil {
			return nil, err
		}
		ctx = uow.ContextWithUnitOfWork(ctx, unit)
		defer unit.Rollback(ctx)
	}

	var (
		items []*domainreservation.Reservation
		err   error
	)
	switch {
	case q.RoomID != "":
		items, err = unit.Reservations().ByRoom(ctx, domainrooms.RoomID(q.RoomID))
	case q.GuestID != "":
		items, err = unit.Reservations().ByGuest(ctx, q.GuestID)
	default:
		items, err = unit.Reservations().ByStatus(ctx, domainreservation.Status(q.Status))
	}
	if err != nil {
		return nil, err
	}

	filtered := items[:0:0]
	for _, r := range items {
		if q.GuestID != "" && r.GuestID != q.GuestID {
			continue
		}
		if q.Status != "" && string(r.Status) != q.Status {
			continue
		}
		filtered = append(filtered, r)
	}
	return dto.MapReservations(filtered), nil
}

var _ queries.Handler[GetReservationQuery, dto.Reservation] = (*GetReservationHandler)(nil)
var _ queries.Handler[ListReservationsQuery, []dto.Reservation] = (*ListReservationsHandler)(nil)
