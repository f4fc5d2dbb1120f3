package rooms

import (
	"context"

	"bookingengine/internal/app/dto"
	"bookingengine/internal/app/queries"
	"bookingengine/internal/app/uow"
	domainrooms "bookingengine/internal/domain/rooms"
)

const (
	getRoomKey   = "rooms.get"
	listRoomsKey = "rooms.list"
)

type GetRoomQuery struct {
	RoomID string
}

func (q GetRoomQuery) Key() string { return getRoomKey }

type GetRoomHandler struct {
	UoWFactory uow.UoWFactory
}

func (h *GetRoomHandler) Handle(ctx context.Context, q GetRoomQuery) (dto.Room, error) {
	unit, ok := uow.FromContext(ctx)
	if !ok {
		if h.UoWFactory == nil {
			return dto.Room{}, uow.ErrUnitOfWorkMissing
		}
		var err error
		unit, err = h.UoWFactory.Begin(ctx, uow.TxOptions{ReadOnly: true})
		if err != nil {
			return dto.Room{}, err
		}
		ctx = uow.ContextWithUnitOfWork(ctx, unit)
		defer unit.Rollback(ctx)
	}

	room, err := unit.Rooms().ByID(ctx, domainrooms.RoomID(q.RoomID))
	if err != nil {
		return dto.Room{}, err
	}
	return dto.MapRoom(room), nil
}

type ListRoomsQuery struct {
	OnlyAvailable bool
	Category      string
}

func (q ListRoomsQuery) Key() string { return listRoomsKey }

type ListRoomsHandler struct {
	UoWFactory uow.UoWFactory
}

func (h *ListRoomsHandler) Handle(ctx context.Context, q ListRoomsQuery) ([]dto.Room, error) {
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

	all, err := unit.Rooms().All(ctx)
	if err != nil {
		return nil, err
	}
	kept := all[:0:0]
	for _, r := range all {
		if q.OnlyAvailable && !r.Available {
			continue
		}
		if q.Category != "" && string(r.Category) != q.Category {
			continue
		}
		kept = append(kept, r)
	}
	return dto.MapRooms(kept), nil
}

var (
	_ queries.Handler[GetRoomQuery, dto.Room]     = (*GetRoomHandler)(nil)
	_ queries.Handler[ListRoomsQuery, []dto.Room] = (*ListRoomsHandler)(nil)
)
