package uow

import (
	"context"

	domainpayment "bookingengine/internal/domain/payment"
	domainreservation "bookingengine/internal/domain/reservation"
	domainrooms "bookingengine/internal/domain/rooms"
	domainseasons "bookingengine/internal/domain/seasons"
)

// UnitOfWork coordinates repositories inside a transaction boundary.
type UnitOfWork interface {
	Rooms() domainrooms.Repository
	Seasons() domainseasons.Repository
	Reservations() domainreservation.Repository
	Payments() domainpayment.Repository

	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// UoWFactory starts unit of work instances.
type UoWFactory interface {
	Begin(ctx context.Context, opts TxOptions) (UnitOfWork, error)
}

// TxOptions configure transaction boundaries.
type TxOptions struct {
	ReadOnly bool
}
