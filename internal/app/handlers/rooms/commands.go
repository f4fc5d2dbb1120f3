package rooms

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"bookingengine/internal/app/commands"
	"bookingengine/internal/app/outbox"
	"bookingengine/internal/app/uow"
	domainrooms "bookingengine/internal/domain/rooms"
	"bookingengine/internal/domain/shared/money"
)

const (
	createRoomKey      = "rooms.create"
	updateRoomKey      = "rooms.update"
	setAvailabilityKey = "rooms.set_availability"
	deleteRoomKey      = "rooms.delete"
)

var ErrUnitOfWorkNeeded = errors.New("rooms: unit of work required")

type CreateRoomCommand struct {
	RoomID           string
	Number           string
	Category         string
	BaseNightlyCents int64
	Currency         string
	Capacity         int
	Description      string
}

func (c CreateRoomCommand) Key() string { return createRoomKey }

type CreateRoomResult struct {
	RoomID string `json:"room_id"`
}

type CreateRoomHandler struct {
	UoWFactory uow.UoWFactory
	Outbox     outbox.Outbox
	Encoder    outbox.EventEncoder
}

func (h *CreateRoomHandler) Handle(ctx context.Context, cmd CreateRoomCommand) (*CreateRoomResult, error) {
	ctx, t, err := beginWrite(ctx, h.UoWFactory)
	if err != nil {
		return nil, err
	}
	defer t.finish(ctx)

	category, err := domainrooms.ParseCategory(cmd.Category)
	if err != nil {
		return nil, err
	}
	base, err := money.New(cmd.BaseNightlyCents, cmd.Currency)
	if err != nil {
		return nil, err
	}
	id := cmd.RoomID
	if id == "" {
		id = uuid.NewString()
	}
	room, err := domainrooms.NewRoom(domainrooms.CreateParams{
		ID:          domainrooms.RoomID(id),
		Number:      cmd.Number,
		Category:    category,
		BaseNightly: base,
		Capacity:    cmd.Capacity,
		Description: cmd.Description,
		Now:         time.Now().UTC(),
	})
	if err != nil {
		return nil, err
	}
	if err := t.unit.Rooms().Save(ctx, room); err != nil {
		return nil, err
	}
	if err := drainEvents(ctx, h.Outbox, h.Encoder, room); err != nil {
		return nil, err
	}
	if err := t.commit(ctx); err != nil {
		return nil, err
	}
	return &CreateRoomResult{RoomID: string(room.ID)}, nil
}

type UpdateRoomCommand struct {
	RoomID           string
	Number           string
	Category         string
	BaseNightlyCents int64
	Currency         string
	Capacity         int
	Description      string
}

func (c UpdateRoomCommand) Key() string { return updateRoomKey }

type UpdateRoomHandler struct {
	UoWFactory uow.UoWFactory
	Outbox     outbox.Outbox
	Encoder    outbox.EventEncoder
}

func (h *UpdateRoomHandler) Handle(ctx context.Context, cmd UpdateRoomCommand) (struct{}, error) {
	ctx, t, err := beginWrite(ctx, h.UoWFactory)
	if err != nil {
		return struct{}{}, err
	}
	defer t.finish(ctx)

	room, err := t.unit.Rooms().ByID(ctx, domainrooms.RoomID(cmd.RoomID))
	if err != nil {
		return struct{}{}, err
	}
	category, err := domainrooms.ParseCategory(cmd.Category)
	if err != nil {
		return struct{}{}, err
	}
	base, err := money.New(cmd.BaseNightlyCents, cmd.Currency)
	if err != nil {
		return struct{}{}, err
	}
	if err := room.Update(domainrooms.UpdateParams{
		Number:      cmd.Number,
		Category:    category,
		BaseNightly: base,
		Capacity:    cmd.Capacity,
		Description: cmd.Description,
	}, time.Now().UTC()); err != nil {
		return struct{}{}, err
	}
	if err := t.unit.Rooms().Save(ctx, room); err != nil {
		return struct{}{}, err
	}
	if err := drainEvents(ctx, h.Outbox, h.Encoder, room); err != nil {
		return struct{}{}, err
	}
	return struct{}{}, t.commit(ctx)
}

type SetRoomAvailabilityCommand struct {
	RoomID    string
	Available bool
}

func (c SetRoomAvailabilityCommand) Key() string { return setAvailabilityKey }

type SetRoomAvailabilityHandler struct {
	UoWFactory uow.UoWFactory
	Outbox     outbox.Outbox
	Encoder    outbox.EventEncoder
}

func (h *SetRoomAvailabilityHandler) Handle(ctx context.Context, cmd SetRoomAvailabilityCommand) (struct{}, error) {
	ctx, t, err := beginWrite(ctx, h.UoWFactory)
	if err != nil {
		return struct{}{}, err
	}
	defer t.finish(ctx)

	room, err := t.unit.Rooms().ByID(ctx, domainrooms.RoomID(cmd.RoomID))
	if err != nil {
		return struct{}{}, err
	}
	room.SetAvailability(cmd.Available, time.Now().UTC())
	if err := t.unit.Rooms().Save(ctx, room); err != nil {
		return struct{}{}, err
	}
	if err := drainEvents(ctx, h.Outbox, h.Encoder, room); err != nil {
		return struct{}{}, err
	}
	return struct{}{}, t.commit(ctx)
}

type DeleteRoomCommand struct {
	RoomID string
}

func (c DeleteRoomCommand) Key() string { return deleteRoomKey }

type DeleteRoomHandler struct {
	UoWFactory uow.UoWFactory
}

func (h *DeleteRoomHandler) Handle(ctx context.Context, cmd DeleteRoomCommand) (struct{}, error) {
	ctx, t, err := beginWrite(ctx, h.UoWFactory)
	if err != nil {
		return struct{}{}, err
	}
	defer t.finish(ctx)

	if err := t.unit.Rooms().Delete(ctx, domainrooms.RoomID(cmd.RoomID)); err != nil {
		return struct{}{}, err
	}
	return struct{}{}, t.commit(ctx)
}

var (
	_ commands.Handler[CreateRoomCommand, *CreateRoomResult] = (*CreateRoomHandler)(nil)
	_ commands.Handler[UpdateRoomCommand, struct{}]          = (*UpdateRoomHandler)(nil)
	_ commands.Handler[SetRoomAvailabilityCommand, struct{}] = (*SetRoomAvailabilityHandler)(nil)
	_ commands.Handler[DeleteRoomCommand, struct{}]          = (*DeleteRoomHandler)(nil)
)
