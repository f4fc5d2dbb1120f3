package reports

import (
	"context"
	"time"

	"bookingengine/internal/app/dto"
	"bookingengine/internal/app/queries"
	"bookingengine/internal/app/uow"
	domainpayment "bookingengine/internal/domain/payment"
)

const revenueKey = "reports.revenue"

// RevenueQuery totals confirmed payments, optionally restricted to a
// PaidAt window. From is inclusive, To exclusive; zero values disable
// the corresponding bound.
type RevenueQuery struct {
	From time.Time
	To   time.Time
}

func (q RevenueQuery) Key() string { return revenueKey }

type RevenueHandler struct {
	UoWFactory uow.UoWFactory
}

func (h *RevenueHandler) Handle(ctx context.Context, q RevenueQuery) (dto.Revenue, error) {
	unit, ok := uow.FromContext(ctx)
	if !ok {
		if h.UoWFactory == nil {
			return dto.Revenue{}, uow.ErrUnitOfWorkMissing
		}
		var err error
		unit, err = h.UoWFactory.Begin(ctx, uow.TxOptions{ReadOnly: true})
		if err != nil {
			return dto.Revenue{}, err
		}
		ctx = uow.ContextWithUnitOfWork(ctx, unit)
		defer unit.Rollback(ctx)
	}

	confirmed, err := unit.Payments().ByStatus(ctx, domainpayment.StatusConfirmed)
	if err != nil {
		return dto.Revenue{}, err
	}

	var out dto.Revenue
	for _, p := range confirmed {
		if !q.From.IsZero() && p.PaidAt.Before(q.From) {
			continue
		}
		if !q.To.IsZero() && !p.PaidAt.Before(q.To) {
			continue
		}
		out.TotalCents += p.Amount.Amount
		if out.Currency == "" {
			out.Currency = p.Amount.Currency
		}
		out.Payments++
	}
	return out, nil
}

var _ queries.Handler[RevenueQuery, dto.Revenue] = (*RevenueHandler)(nil)
