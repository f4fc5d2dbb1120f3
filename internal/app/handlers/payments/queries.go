package payments

import (
	"context"

	"bookingengine/internal/app/dto"
	"bookingengine/internal/app/queries"
	"bookingengine/internal/app/uow"
	domainpayment "bookingengine/internal/domain/payment"
	domainreservation "bookingengine/internal/domain/reservation"
)

const (
	getPaymentKey   = "payments.get"
	listPaymentsKey = "payments.list"
)

type GetPaymentQuery struct {
	PaymentID string
}

func (q GetPaymentQuery) Key() string { return getPaymentKey }

type GetPaymentHandler struct {
	UoWFactory uow.UoWFactory
}

func (h *GetPaymentHandler) Handle(ctx context.Context, q GetPaymentQuery) (dto.Payment, error) {
	unit, ok := uow.FromContext(ctx)
	if !ok {
		if h.UoWFactory == nil {
			return dto.Payment{}, uow.ErrUnitOfWorkMissing
		}
		var err error
		unit, err = h.UoWFactory.Begin(ctx, uow.TxOptions{ReadOnly: true})
		if err != nil {
			return dto.Payment{}, err
		}
		ctx = uow.ContextWithUnitOfWork(ctx, unit)
		defer unit.Rollback(ctx)
	}

	pay, err := unit.Payments().ByID(ctx, domainpayment.PaymentID(q.PaymentID))
	if err != nil {
		return dto.Payment{}, err
	}
	return dto.MapPayment(pay), nil
}

type ListPaymentsQuery struct {
	ReservationID string
	Status        string
}

func (q ListPaymentsQuery) Key() string { return listPaymentsKey }

type ListPaymentsHandler struct {
	UoWFactory uow.UoWFactory
}

func (h *ListPaymentsHandler) Handle(ctx context.Context, q ListPaymentsQuery) ([]dto.Payment, error) {
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
		items []*domainpayment.Payment
		err   error
	)
	switch {
	case q.ReservationID != "":
		items, err = unit.Payments().ByReservation(ctx, domainreservation.ReservationID(q.ReservationID))
	case q.Status != "":
		items, err = unit.Payments().ByStatus(ctx, domainpayment.Status(q.Status))
	default:
		items, err = unit.Payments().All(ctx)
	}
	if err != nil {
		return nil, err
	}
	if q.ReservationID != "" && q.Status != "" {
		kept := items[:0:0]
		for _, p := range items {
			if string(p.Status) == q.Status {
				kept = append(kept, p)
			}
		}
		items = kept
	}
	return dto.MapPayments(items), nil
}

var _ queries.Handler[GetPaymentQuery, dto.Payment] = (*GetPaymentHandler)(nil)
var _ queries.Handler[ListPaymentsQuery, []dto.Payment] = (*ListPaymentsHandler)(nil)
