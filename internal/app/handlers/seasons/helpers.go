package seasons

import (
	"context"

	"bookingengine/internal/app/outbox"
	"bookingengine/internal/app/uow"
	"bookingengine/internal/domain/shared/events"
)

type tx struct {
	unit      uow.UnitOfWork
	managed   bool
	committed bool
}

func beginWrite(ctx context.Context, factory uow.UoWFactory) (context.Context, *tx, error) {
	if unit, ok := uow.FromContext(ctx); ok {
		return ctx, &tx{unit: unit}, nil
	}
	if factory == nil {
		return ctx, nil, ErrUnitOfWorkNeeded
	}
	unit, err := factory.Begin(ctx, uow.TxOptions{})
	if err != nil {
		return ctx, nil, err
	}
	return uow.ContextWithUnitOfWork(ctx, unit), &tx{unit: unit, managed: true}, nil
}

func (t *tx) finish(ctx context.Context) {
	if t.managed && !t.committed {
		_ = t.unit.Rollback(ctx)
	}
}

func (t *tx) commit(ctx context.Context) error {
	if !t.managed {
		return nil
	}
	if err := t.unit.Commit(ctx); err != nil {
		return err
	}
	t.committed = true
	return nil
}

func drainEvents(ctx context.Context, box outbox.Outbox, enc outbox.EventEncoder, src interface {
	PendingEvents() []events.DomainEvent
	ClearEvents()
}) error {
	pending := src.PendingEvents()
	src.ClearEvents()
	if enc == nil {
		enc = outbox.JSONEventEncoder{}
	}
	return outbox.RecordDomainEvents(ctx, box, enc, pending)
}
