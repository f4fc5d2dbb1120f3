package seasons

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"bookingengine/internal/app/commands"
	"bookingengine/internal/app/outbox"
	"bookingengine/internal/app/uow"
	domainseasons "bookingengine/internal/domain/seasons"
)

const (
	createSeasonKey = "seasons.create"
	updateSeasonKey = "seasons.update"
	deleteSeasonKey = "seasons.delete"
)

var ErrUnitOfWorkNeeded = errors.New("seasons: unit of work required")

type CreateSeasonCommand struct {
	SeasonID    string
	Name        string
	Start       time.Time
	End         time.Time
	Coefficient float64
}

func (c CreateSeasonCommand) Key() string { return createSeasonKey }

type CreateSeasonResult struct {
	SeasonID string `json:"season_id"`
}

type CreateSeasonHandler struct {
	UoWFactory uow.UoWFactory
	Outbox     outbox.Outbox
	Encoder    outbox.EventEncoder
}

func (h *CreateSeasonHandler) Handle(ctx context.Context, cmd CreateSeasonCommand) (*CreateSeasonResult, error) {
	ctx, t, err := beginWrite(ctx, h.UoWFactory)
	if err != nil {
		return nil, err
	}
	defer t.finish(ctx)

	id := cmd.SeasonID
	if id == "" {
		id = uuid.NewString()
	}
	season, err := domainseasons.NewSeason(domainseasons.CreateParams{
		ID:          domainseasons.SeasonID(id),
		Name:        cmd.Name,
		Start:       cmd.Start,
		End:         cmd.End,
		Coefficient: cmd.Coefficient,
		Now:         time.Now().UTC(),
	})
	if err != nil {
		return nil, err
	}
	if err := t.unit.Seasons().Save(ctx, season); err != nil {
		return nil, err
	}
	if err := drainEvents(ctx, h.Outbox, h.Encoder, season); err != nil {
		return nil, err
	}
	if err := t.commit(ctx); err != nil {
		return nil, err
	}
	return &CreateSeasonResult{SeasonID: string(season.ID)}, nil
}

type UpdateSeasonCommand struct {
	SeasonID    string
	Name        string
	Start       time.Time
	End         time.Time
	Coefficient float64
}

func (c UpdateSeasonCommand) Key() string { return updateSeasonKey }

type UpdateSeasonHandler struct {
	UoWFactory uow.UoWFactory
	Outbox     outbox.Outbox
	Encoder    outbox.EventEncoder
}

func (h *UpdateSeasonHandler) Handle(ctx context.Context, cmd UpdateSeasonCommand) (struct{}, error) {
	ctx, t, err := beginWrite(ctx, h.UoWFactory)
	if err != nil {
		return struct{}{}, err
	}
	defer t.finish(ctx)

	season, err := t.unit.Seasons().ByID(ctx, domainseasons.SeasonID(cmd.SeasonID))
	if err != nil {
		return struct{}{}, err
	}
	if err := season.Update(domainseasons.UpdateParams{
		Name:        cmd.Name,
		Start:       cmd.Start,
		End:         cmd.End,
		Coefficient: cmd.Coefficient,
	}, time.Now().UTC()); err != nil {
		return struct{}{}, err
	}
	if err := t.unit.Seasons().Save(ctx, season); err != nil {
		return struct{}{}, err
	}
	if err := drainEvents(ctx, h.Outbox, h.Encoder, season); err != nil {
		return struct{}{}, err
	}
	return struct{}{}, t.commit(ctx)
}

type DeleteSeasonCommand struct {
	SeasonID string
}

func (c DeleteSeasonCommand) Key() string { return deleteSeasonKey }

type DeleteSeasonHandler struct {
	UoWFactory uow.UoWFactory
}

func (h *DeleteSeasonHandler) Handle(ctx context.Context, cmd DeleteSeasonCommand) (struct{}, error) {
	ctx, t, err := beginWrite(ctx, h.UoWFactory)
	if err != nil {
		return struct{}{}, err
	}
	defer t.finish(ctx)

	if err := t.unit.Seasons().Delete(ctx, domainseasons.SeasonID(cmd.SeasonID)); err != nil {
		return struct{}{}, err
	}
	return struct{}{}, t.commit(ctx)
}

var (
	_ commands.Handler[CreateSeasonCommand, *CreateSeasonResult] = (*CreateSeasonHandler)(nil)
	_ commands.Handler[UpdateSeasonCommand, struct{}]            = (*UpdateSeasonHandler)(nil)
	_ commands.Handler[DeleteSeasonCommand, struct{}]            = (*DeleteSeasonHandler)(nil)
)
