package memory_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	appoutbox "bookingengine/internal/app/outbox"
	domainreservation "bookingengine/internal/domain/reservation"
	domainrooms "bookingengine/internal/domain/rooms"
	"bookingengine/internal/domain/shared/daterange"
	"bookingengine/internal/domain/shared/money"
	"bookingengine/internal/infra/storage/memory"
)

func newReservation(t *testing.T, id string, guest string) *domainreservation.Reservation {
	t.Helper()
	stay, err := daterange.New(
		time.Date(2026, 7, 10, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 7, 15, 0, 0, 0, 0, time.UTC),
	)
	require.NoError(t, err)
	res, err := domainreservation.NewReservation(domainreservation.CreateParams{
		ID:          domainreservation.ReservationID(id),
		RoomID:      "room-1",
		GuestID:     guest,
		Stay:        stay,
		QuotedTotal: money.Must(50000, "EUR"),
		CreatedAt:   time.Now(),
	})
	require.NoError(t, err)
	res.ClearEvents()
	return res
}

func TestReservationRepository_SaveBumpsVersion(t *testing.T) {
	repo := memory.NewReservationRepository()
	ctx := context.Background()

	res := newReservation(t, "res-1", "guest-1")
	require.NoError(t, repo.Save(ctx, res))
	require.Equal(t, int64(1), res.Version)

	require.NoError(t, repo.Save(ctx, res))
	require.Equal(t, int64(2), res.Version)
}

func TestReservationRepository_StaleWriteRejected(t *testing.T) {
	repo := memory.NewReservationRepository()
	ctx := context.Background()

	res := newReservation(t, "res-1", "guest-1")
	require.NoError(t, repo.Save(ctx, res))

	stale := newReservation(t, "res-1", "guest-1")
	stale.Version = 0
	require.ErrorIs(t, repo.Save(ctx, stale), domainreservation.ErrVersionConflict)
}

func TestReservationRepository_SecondaryLookups(t *testing.T) {
	repo := memory.NewReservationRepository()
	ctx := context.Background()

	first := newReservation(t, "res-1", "guest-1")
	second := newReservation(t, "res-2", "guest-2")
	require.NoError(t, second.Cancel("changed plans", time.Now()))
	second.ClearEvents()
	require.NoError(t, repo.Save(ctx, first))
	require.NoError(t, repo.Save(ctx, second))

	byRoom, err := repo.ByRoom(ctx, "room-1")
	require.NoError(t, err)
	require.Len(t, byRoom, 2)

	byGuest, err := repo.ByGuest(ctx, "guest-2")
	require.NoError(t, err)
	require.Len(t, byGuest, 1)
	require.Equal(t, domainreservation.ReservationID("res-2"), byGuest[0].ID)

	cancelled, err := repo.ByStatus(ctx, domainreservation.StatusCancelled)
	require.NoError(t, err)
	require.Len(t, cancelled, 1)

	all, err := repo.ByStatus(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 2)
}

func TestRoomRepository_AllSortedByNumber(t *testing.T) {
	repo := memory.NewRoomRepository()
	ctx := context.Background()

	for _, number := range []string{"301", "101", "201"} {
		room, err := domainrooms.NewRoom(domainrooms.CreateParams{
			ID:          domainrooms.RoomID("room-" + number),
			Number:      number,
			Category:    domainrooms.CategoryDouble,
			BaseNightly: money.Must(10000, "EUR"),
			Capacity:    2,
			Now:         time.Now(),
		})
		require.NoError(t, err)
		room.ClearEvents()
		require.NoError(t, repo.Save(ctx, room))
	}

	all, err := repo.All(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	require.Equal(t, "101", all[0].Number)
	require.Equal(t, "201", all[1].Number)
	require.Equal(t, "301", all[2].Number)

	require.NoError(t, repo.Delete(ctx, "room-201"))
	require.ErrorIs(t, repo.Delete(ctx, "room-201"), domainrooms.ErrRoomNotFound)
	_, err = repo.ByID(ctx, "room-201")
	require.ErrorIs(t, err, domainrooms.ErrRoomNotFound)
}

func TestOutbox_ClaimAndAcknowledge(t *testing.T) {
	box := memory.NewOutbox()
	ctx := context.Background()

	require.NoError(t, box.Add(ctx, appoutbox.EventRecord{ID: "evt-1", Name: "reservation.created", Payload: []byte(`{}`)}))
	require.NoError(t, box.Add(ctx, appoutbox.EventRecord{ID: "evt-2", Name: "payment.created", Payload: []byte(`{}`)}))
	require.Len(t, box.Pending(), 2)

	doc, err := box.Claim(ctx, "w1")
	require.NoError(t, err)
	require.NotNil(t, doc)
	require.Equal(t, "evt-1", doc.ID)

	// a claimed entry is not handed out twice
	next, err := box.Claim(ctx, "w2")
	require.NoError(t, err)
	require.NotNil(t, next)
	require.Equal(t, "evt-2", next.ID)

	require.NoError(t, box.MarkSent(ctx, "evt-1"))
	require.Len(t, box.Pending(), 1)

	// failed entries come back once their retry time passes
	require.NoError(t, box.MarkFailed(ctx, "evt-2", time.Now().Add(-time.Second), "broker down"))
	retry, err := box.Claim(ctx, "w1")
	require.NoError(t, err)
	require.NotNil(t, retry)
	require.Equal(t, "evt-2", retry.ID)
	require.Equal(t, 1, retry.Attempts)
}
