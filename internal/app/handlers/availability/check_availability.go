package availability

import (
	"context"
	"time"

	"bookingengine/internal/app/dto"
	"bookingengine/internal/app/queries"
	"bookingengine/internal/app/uow"
	domainavailability "bookingengine/internal/domain/availability"
	domainrooms "bookingengine/internal/domain/rooms"
	domainrange "bookingengine/internal/domain/shared/daterange"
)

const checkAvailabilityKey = "availability.check"

// CheckAvailabilityQuery asks whether a room is free for a candidate stay.
type CheckAvailabilityQuery struct {
	RoomID   string
	CheckIn  time.Time
	CheckOut time.Time
}

func (q CheckAvailabilityQuery) Key() string { return checkAvailabilityKey }

type CheckAvailabilityHandler struct {
	UoWFactory uow.UoWFactory
}

func (h *CheckAvailabilityHandler) Handle(ctx context.Context, q CheckAvailabilityQuery) (dto.Availability, error) {
	unit, ok := uow.FromContext(ctx)
	if !ok {
		if h.UoWFactory == nil {
			return dto.Availability{}, uow.ErrUnitOfWorkMissing
		}
		var err error
		unit, err = h.UoWFactory.Begin(ctx, uow.TxOptions{ReadOnly: true})
		if err != nil {
			return dto.Availability{}, err
		}
		ctx = uow.ContextWithUnitOfWork(ctx, unit)
		defer unit.Rollback(ctx)
	}

	stay, err := domainrange.New(q.CheckIn, q.CheckOut)
	if err != nil {
		return dto.Availability{}, err
	}

	if _, err := unit.Rooms().ByID(ctx, domainrooms.RoomID(q.RoomID)); err != nil {
		return dto.Availability{}, err
	}
	existing, err := unit.Reservations().ByRoom(ctx, domainrooms.RoomID(q.RoomID))
	if err != nil {
		return dto.Availability{}, err
	}

	conflicts := domainavailability.Conflicts(stay, existing)
	return dto.Availability{
		RoomID:    q.RoomID,
		CheckIn:   stay.CheckIn,
		CheckOut:  stay.CheckOut,
		Available: len(conflicts) == 0,
		Conflicts: dto.MapConflicts(conflicts),
	}, nil
}

var _ queries.Handler[CheckAvailabilityQuery, dto.Availability] = (*CheckAvailabilityHandler)(nil)
