package seasons

import (
	"context"
	"time"

	"bookingengine/internal/app/dto"
	"bookingengine/internal/app/queries"
	"bookingengine/internal/app/uow"
	domainseasons "bookingengine/internal/domain/seasons"
)

const (
	getSeasonKey     = "seasons.get"
	listSeasonsKey   = "seasons.list"
	seasonForDateKey = "seasons.for_date"
)

type GetSeasonQuery struct {
	SeasonID string
}

func (q GetSeasonQuery) Key() string { return getSeasonKey }

type GetSeasonHandler struct {
	UoWFactory uow.UoWFactory
}

func (h *GetSeasonHandler) Handle(ctx context.Context, q GetSeasonQuery) (dto.Season, error) {
	unit, ok := uow.FromContext(ctx)
	if !ok {
		if h.UoWFactory == nil {
			return dto.Season{}, uow.ErrUnitOfWorkMissing
		}
		var err error
		unit, err = h.UoWFactory.Begin(ctx, uow.TxOptions{ReadOnly: true})
		if err != nil {
			return dto.Season{}, err
		}
		ctx = uow.ContextWithUnitOfWork(ctx, unit)
		defer unit.Rollback(ctx)
	}

	season, err := unit.Seasons().ByID(ctx, domainseasons.SeasonID(q.SeasonID))
	if err != nil {
		return dto.Season{}, err
	}
	return dto.MapSeason(season), nil
}

type ListSeasonsQuery struct{}

func (q ListSeasonsQuery) Key() string { return listSeasonsKey }

type ListSeasonsHandler struct {
	UoWFactory uow.UoWFactory
}

func (h *ListSeasonsHandler) Handle(ctx context.Context, q ListSeasonsQuery) ([]dto.Season, error) {
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

	all, err := unit.Seasons().All(ctx)
	if err != nil {
		return nil, err
	}
	return dto.MapSeasons(all), nil
}

// SeasonForDateQuery resolves which season (if any) prices a given night.
type SeasonForDateQuery struct {
	Date time.Time
}

func (q SeasonForDateQuery) Key() string { return seasonForDateKey }

type SeasonForDateHandler struct {
	UoWFactory uow.UoWFactory
}

func (h *SeasonForDateHandler) Handle(ctx context.Context, q SeasonForDateQuery) (dto.Season, error) {
	unit, ok := uow.FromContext(ctx)
	if !ok {
		if h.UoWFactory == nil {
			return dto.Season{}, uow.ErrUnitOfWorkMissing
		}
		var err error
		unit, err = h.UoWFactory.Begin(ctx, uow.TxOptions{ReadOnly: true})
		if err != nil {
			return dto.Season{}, err
		}
		ctx = uow.ContextWithUnitOfWork(ctx, unit)
		defer unit.Rollback(ctx)
	}

	all, err := unit.Seasons().All(ctx)
	if err != nil {
		return dto.Season{}, err
	}
	picked := domainseasons.ForDate(all, q.Date)
	if picked == nil {
		return dto.Season{}, domainseasons.ErrSeasonNotFound
	}
	return dto.MapSeason(picked), nil
}

var (
	_ queries.Handler[GetSeasonQuery, dto.Season]     = (*GetSeasonHandler)(nil)
	_ queries.Handler[ListSeasonsQuery, []dto.Season] = (*ListSeasonsHandler)(nil)
	_ queries.Handler[SeasonForDateQuery, dto.Season] = (*SeasonForDateHandler)(nil)
)
