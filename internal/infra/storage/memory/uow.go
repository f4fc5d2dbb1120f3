package memory

import (
	"context"
	"errors"

	"bookingengine/internal/app/uow"
	domainpayment "bookingengine/internal/domain/payment"
	domainreservation "bookingengine/internal/domain/reservation"
	domainrooms "bookingengine/internal/domain/rooms"
	domainseasons "bookingengine/internal/domain/seasons"
)

// ErrFactoryMisconfigured indicates missing repositories.
var ErrFactoryMisconfigured = errors.New("memory: unit of work factory misconfigured")

// Factory wires in-memory repositories into a unit-of-work boundary.
type Factory struct {
	RoomsRepo        domainrooms.Repository
	SeasonsRepo      domainseasons.Repository
	ReservationsRepo domainreservation.Repository
	PaymentsRepo     domainpayment.Repository
}

// NewFactory builds a factory backed by fresh empty repositories.
func NewFactory() Factory {
	return Factory{
		RoomsRepo:        NewRoomRepository(),
		SeasonsRepo:      NewSeasonRepository(),
		ReservationsRepo: NewReservationRepository(),
		PaymentsRepo:     NewPaymentRepository(),
	}
}

// Begin starts a lightweight transaction boundary. No isolation is provided but
// the abstraction matches the application ports.
func (f Factory) Begin(ctx context.Context, opts uow.TxOptions) (uow.UnitOfWork, error) {
	if f.RoomsRepo == nil || f.SeasonsRepo == nil || f.ReservationsRepo == nil || f.PaymentsRepo == nil {
		return nil, ErrFactoryMisconfigured
	}
	return &Unit{
		rooms:        f.RoomsRepo,
		seasons:      f.SeasonsRepo,
		reservations: f.ReservationsRepo,
		payments:     f.PaymentsRepo,
	}, nil
}

// Unit is a lightweight uow.UnitOfWork backed by in-memory stores.
type Unit struct {
	rooms        domainrooms.Repository
	seasons      domainseasons.Repository
	reservations domainreservation.Repository
	payments     domainpayment.Repository
}

func (u *Unit) Rooms() domainrooms.Repository { return u.rooms }

func (u *Unit) Seasons() domainseasons.Repository { return u.seasons }

func (u *Unit) Reservations() domainreservation.Repository { return u.reservations }

func (u *Unit) Payments() domainpayment.Repository { return u.payments }

func (u *Unit) Commit(ctx context.Context) error { return nil }

func (u *Unit) Rollback(ctx context.Context) error { return nil }

var (
	_ uow.UoWFactory = Factory{}
	_ uow.UnitOfWork = (*Unit)(nil)
)
