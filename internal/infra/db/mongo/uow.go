package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"bookingengine/internal/app/uow"
	domainpayment "bookingengine/internal/domain/payment"
	domainreservation "bookingengine/internal/domain/reservation"
	domainrooms "bookingengine/internal/domain/rooms"
	domainseasons "bookingengine/internal/domain/seasons"
)

var ErrUnitOfWorkNotConfigured = errors.New("mongo: unit of work factory missing database")

// Factory wires Mongo transactions into the generic UnitOfWork interface.
type Factory struct {
	DB *mongo.Database

	RoomsRepo        domainrooms.Repository
	SeasonsRepo      domainseasons.Repository
	ReservationsRepo domainreservation.Repository
	PaymentsRepo     domainpayment.Repository
}

// Begin starts a MongoDB session/transaction.
func (f Factory) Begin(ctx context.Context, opts uow.TxOptions) (uow.UnitOfWork, error) {
	if f.DB == nil {
		return nil, ErrUnitOfWorkNotConfigured
	}
	session, err := f.DB.Client().StartSession()
	if err != nil {
		return nil, err
	}
	txnOpts := options.Transaction().SetReadConcern(f.DB.ReadConcern()).SetWriteConcern(f.DB.WriteConcern())
	if err := session.StartTransaction(txnOpts); err != nil {
		session.EndSession(ctx)
		return nil, err
	}
	return &Unit{
		db:           f.DB,
		session:      session,
		rooms:        f.RoomsRepo,
		seasons:      f.SeasonsRepo,
		reservations: f.ReservationsRepo,
		payments:     f.PaymentsRepo,
	}, nil
}

type Unit struct {
	db      *mongo.Database
	session mongo.Session

	rooms        domainrooms.Repository
	seasons      domainseasons.Repository
	reservations domainreservation.Repository
	payments     domainpayment.Repository
}

func (u *Unit) Rooms() domainrooms.Repository { return u.rooms }

func (u *Unit) Seasons() domainseasons.Repository { return u.seasons }

func (u *Unit) Reservations() domainreservation.Repository { return u.reservations }

func (u *Unit) Payments() domainpayment.Repository { return u.payments }

func (u *Unit) Commit(ctx context.Context) error {
	defer u.session.EndSession(ctx)
	return u.session.CommitTransaction(ctx)
}

func (u *Unit) Rollback(ctx context.Context) error {
	defer u.session.EndSession(ctx)
	return u.session.AbortTransaction(ctx)
}

// InjectContext ensures Mongo session is available in context for downstream repos.
func (u *Unit) InjectContext(ctx context.Context) context.Context {
	return mongo.NewSessionContext(ctx, u.session)
}
