package quotes

import (
	"context"
	"time"

	"bookingengine/internal/app/dto"
	"bookingengine/internal/app/queries"
	"bookingengine/internal/app/uow"
	domainpricing "bookingengine/internal/domain/pricing"
	domainrooms "bookingengine/internal/domain/rooms"
	domainrange "bookingengine/internal/domain/shared/daterange"
)

const computeQuoteKey = "quotes.compute"

// ComputeQuoteQuery prices a stay in a room, night by night.
type ComputeQuoteQuery struct {
	RoomID   string
	CheckIn  time.Time
	CheckOut time.Time
}

func (q ComputeQuoteQuery) Key() string { return computeQuoteKey }

type ComputeQuoteHandler struct {
	UoWFactory uow.UoWFactory
	Calculator domainpricing.Calculator
}

func (h *ComputeQuoteHandler) Handle(ctx context.Context, q ComputeQuoteQuery) (dto.PriceQuote, error) {
	unit, ok := uow.FromContext(ctx)
	if !ok {
		if h.UoWFactory == nil {
			return dto.PriceQuote{}, uow.ErrUnitOfWorkMissing
		}
		var err error
		unit, err = h.UoWFactory.Begin(ctx, uow.TxOptions{ReadOnly: true})
		if err != nil {
			return dto.PriceQuote{}, err
		}
		ctx = uow.ContextWithUnitOfWork(ctx, unit)
		defer unit.Rollback(ctx)
	}

	stay, err := domainrange.New(q.CheckIn, q.CheckOut)
	if err != nil {
		return dto.PriceQuote{}, domainpricing.ErrInvalidInterval
	}

	room, err := unit.Rooms().ByID(ctx, domainrooms.RoomID(q.RoomID))
	if err != nil {
		return dto.PriceQuote{}, err
	}
	catalog, err := unit.Seasons().All(ctx)
	if err != nil {
		return dto.PriceQuote{}, err
	}

	calc := h.Calculator
	if calc == nil {
		calc = domainpricing.SeasonalCalculator{}
	}
	quote, err := calc.ComputeQuote(ctx, room, stay, catalog)
	if err != nil {
		return dto.PriceQuote{}, err
	}
	return dto.MapPriceQuote(quote), nil
}

var _ queries.Handler[ComputeQuoteQuery, dto.PriceQuote] = (*ComputeQuoteHandler)(nil)
