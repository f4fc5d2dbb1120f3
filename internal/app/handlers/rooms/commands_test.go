package rooms_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"bookingengine/internal/app/handlers/rooms"
	domainrooms "bookingengine/internal/domain/rooms"
	"bookingengine/internal/domain/shared/money"
	"bookingengine/internal/infra/storage/memory"
)

func TestCreateRoom(t *testing.T) {
	factory := memory.NewFactory()
	box := memory.NewOutbox()
	handler := &rooms.CreateRoomHandler{UoWFactory: factory, Outbox: box}

	res, err := handler.Handle(context.Background(), rooms.CreateRoomCommand{
		RoomID:           "room-1",
		Number:           "101",
		Category:         "double",
		BaseNightlyCents: 10000,
		Currency:         "eur",
		Capacity:         2,
		Description:      "garden view",
	})
	require.NoError(t, err)
	require.Equal(t, "room-1", res.RoomID)

	room, err := factory.RoomsRepo.ByID(context.Background(), "room-1")
	require.NoError(t, err)
	require.Equal(t, domainrooms.CategoryDouble, room.Category)
	require.Equal(t, "EUR", room.BaseNightly.Currency)
	require.True(t, room.Available)
	require.Empty(t, room.PendingEvents())

	records := box.Pending()
	require.Len(t, records, 1)
	require.Equal(t, "room.created", records[0].Name)
}

func TestCreateRoom_Validation(t *testing.T) {
	handler := &rooms.CreateRoomHandler{UoWFactory: memory.NewFactory(), Outbox: memory.NewOutbox()}

	_, err := handler.Handle(context.Background(), rooms.CreateRoomCommand{
		Number: "101", Category: "penthouse", BaseNightlyCents: 100, Currency: "EUR", Capacity: 1,
	})
	require.ErrorIs(t, err, domainrooms.ErrInvalidCategory)

	_, err = handler.Handle(context.Background(), rooms.CreateRoomCommand{
		Number: "101", Category: "double", BaseNightlyCents: 100, Currency: "euros", Capacity: 1,
	})
	require.ErrorIs(t, err, money.ErrInvalidCurrency)

	_, err = handler.Handle(context.Background(), rooms.CreateRoomCommand{
		Number: "101", Category: "double", BaseNightlyCents: 100, Currency: "EUR",
	})
	require.ErrorIs(t, err, domainrooms.ErrInvalidCapacity)
}

func TestUpdateRoom(t *testing.T) {
	factory := memory.NewFactory()
	box := memory.NewOutbox()
	create := &rooms.CreateRoomHandler{UoWFactory: factory, Outbox: box}
	_, err := create.Handle(context.Background(), rooms.CreateRoomCommand{
		RoomID: "room-1", Number: "101", Category: "double", BaseNightlyCents: 10000, Currency: "EUR", Capacity: 2,
	})
	require.NoError(t, err)

	update := &rooms.UpdateRoomHandler{UoWFactory: factory, Outbox: box}
	_, err = update.Handle(context.Background(), rooms.UpdateRoomCommand{
		RoomID: "room-1", Number: "101A", Category: "suite", BaseNightlyCents: 15000, Currency: "EUR", Capacity: 3,
	})
	require.NoError(t, err)

	room, err := factory.RoomsRepo.ByID(context.Background(), "room-1")
	require.NoError(t, err)
	require.Equal(t, "101A", room.Number)
	require.Equal(t, domainrooms.CategorySuite, room.Category)
	require.Equal(t, int64(15000), room.BaseNightly.Amount)

	_, err = update.Handle(context.Background(), rooms.UpdateRoomCommand{
		RoomID: "missing", Number: "1", Category: "double", BaseNightlyCents: 100, Currency: "EUR", Capacity: 1,
	})
	require.ErrorIs(t, err, domainrooms.ErrRoomNotFound)
}

func TestSetRoomAvailabilityAndDelete(t *testing.T) {
	factory := memory.NewFactory()
	box := memory.NewOutbox()
	create := &rooms.CreateRoomHandler{UoWFactory: factory, Outbox: box}
	_, err := create.Handle(context.Background(), rooms.CreateRoomCommand{
		RoomID: "room-1", Number: "101", Category: "double", BaseNightlyCents: 10000, Currency: "EUR", Capacity: 2,
	})
	require.NoError(t, err)

	setAvail := &rooms.SetRoomAvailabilityHandler{UoWFactory: factory, Outbox: box}
	_, err = setAvail.Handle(context.Background(), rooms.SetRoomAvailabilityCommand{RoomID: "room-1", Available: false})
	require.NoError(t, err)

	room, err := factory.RoomsRepo.ByID(context.Background(), "room-1")
	require.NoError(t, err)
	require.False(t, room.Available)

	del := &rooms.DeleteRoomHandler{UoWFactory: factory}
	_, err = del.Handle(context.Background(), rooms.DeleteRoomCommand{RoomID: "room-1"})
	require.NoError(t, err)

	_, err = factory.RoomsRepo.ByID(context.Background(), "room-1")
	require.ErrorIs(t, err, domainrooms.ErrRoomNotFound)
}
