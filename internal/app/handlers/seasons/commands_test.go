package seasons_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"bookingengine/internal/app/handlers/seasons"
	domainseasons "bookingengine/internal/domain/seasons"
	"bookingengine/internal/infra/storage/memory"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestSeasonLifecycle(t *testing.T) {
	factory := memory.NewFactory()
	box := memory.NewOutbox()
	ctx := context.Background()

	create := &seasons.CreateSeasonHandler{UoWFactory: factory, Outbox: box}
	res, err := create.Handle(ctx, seasons.CreateSeasonCommand{
		SeasonID:    "high",
		Name:        "High season",
		Start:       date(2026, 7, 1),
		End:         date(2026, 8, 31),
		Coefficient: 1.5,
	})
	require.NoError(t, err)
	require.Equal(t, "high", res.SeasonID)

	update := &seasons.UpdateSeasonHandler{UoWFactory: factory, Outbox: box}
	_, err = update.Handle(ctx, seasons.UpdateSeasonCommand{
		SeasonID:    "high",
		Name:        "High season",
		Start:       date(2026, 6, 15),
		End:         date(2026, 9, 15),
		Coefficient: 1.6,
	})
	require.NoError(t, err)

	stored, err := factory.SeasonsRepo.ByID(ctx, "high")
	require.NoError(t, err)
	require.Equal(t, 1.6, stored.Coefficient)
	require.Equal(t, date(2026, 6, 15), stored.Start)

	del := &seasons.DeleteSeasonHandler{UoWFactory: factory}
	_, err = del.Handle(ctx, seasons.DeleteSeasonCommand{SeasonID: "high"})
	require.NoError(t, err)
	_, err = factory.SeasonsRepo.ByID(ctx, "high")
	require.ErrorIs(t, err, domainseasons.ErrSeasonNotFound)
}

func TestCreateSeason_Validation(t *testing.T) {
	create := &seasons.CreateSeasonHandler{UoWFactory: memory.NewFactory(), Outbox: memory.NewOutbox()}

	_, err := create.Handle(context.Background(), seasons.CreateSeasonCommand{
		SeasonID: "bad", Name: "Backwards", Start: date(2026, 8, 1), End: date(2026, 7, 1), Coefficient: 1.2,
	})
	require.ErrorIs(t, err, domainseasons.ErrInvalidRange)

	_, err = create.Handle(context.Background(), seasons.CreateSeasonCommand{
		SeasonID: "bad", Name: "Free", Start: date(2026, 7, 1), End: date(2026, 8, 1), Coefficient: -1,
	})
	require.ErrorIs(t, err, domainseasons.ErrInvalidCoefficient)
}

func TestSeasonForDate(t *testing.T) {
	factory := memory.NewFactory()
	box := memory.NewOutbox()
	ctx := context.Background()

	create := &seasons.CreateSeasonHandler{UoWFactory: factory, Outbox: box}
	for _, fixture := range []seasons.CreateSeasonCommand{
		{SeasonID: "low", Name: "Low", Start: date(2026, 1, 1), End: date(2026, 12, 31), Coefficient: 0.8},
		{SeasonID: "high", Name: "High", Start: date(2026, 7, 1), End: date(2026, 8, 31), Coefficient: 1.5},
	} {
		_, err := create.Handle(ctx, fixture)
		require.NoError(t, err)
	}

	forDate := &seasons.SeasonForDateHandler{UoWFactory: factory}
	picked, err := forDate.Handle(ctx, seasons.SeasonForDateQuery{Date: date(2026, 7, 15)})
	require.NoError(t, err)
	require.Equal(t, "high", picked.ID)

	picked, err = forDate.Handle(ctx, seasons.SeasonForDateQuery{Date: date(2026, 2, 1)})
	require.NoError(t, err)
	require.Equal(t, "low", picked.ID)

	_, err = forDate.Handle(ctx, seasons.SeasonForDateQuery{Date: date(2030, 1, 1)})
	require.ErrorIs(t, err, domainseasons.ErrSeasonNotFound)
}
