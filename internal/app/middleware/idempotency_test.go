package middleware_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"bookingengine/internal/app/commands"
	"bookingengine/internal/app/middleware"
	"bookingengine/internal/app/uow"
	"bookingengine/internal/infra/storage/memory"
)

type bookCommand struct {
	ID   string
	Keyv string
	Fail bool
}

func (c bookCommand) Key() string            { return "test.book" }
func (c bookCommand) IdempotencyKey() string { return c.Keyv }
func (c bookCommand) ResultPrototype() any   { return &bookResult{} }

type bookResult struct {
	ID string `json:"id"`
}

type bookHandler struct {
	calls int
}

func (h *bookHandler) Handle(ctx context.Context, cmd bookCommand) (*bookResult, error) {
	h.calls++
	if cmd.Fail {
		return nil, errors.New("room gone")
	}
	return &bookResult{ID: cmd.ID}, nil
}

func newBus(handler *bookHandler) commands.Bus {
	bus := commands.NewInMemoryBus()
	commands.RegisterHandler(bus, bookCommand{}.Key(), handler)
	return middleware.ChainCommands(bus, middleware.Idempotency(memory.NewIdempotencyStore(), nil))
}

func TestIdempotency_ReplaysStoredResult(t *testing.T) {
	handler := &bookHandler{}
	bus := newBus(handler)

	first, err := commands.Dispatch[bookCommand, *bookResult](context.Background(), bus, bookCommand{ID: "r1", Keyv: "key-1"})
	require.NoError(t, err)
	require.Equal(t, "r1", first.ID)
	require.Equal(t, 1, handler.calls)

	replay, err := commands.Dispatch[bookCommand, *bookResult](context.Background(), bus, bookCommand{ID: "different", Keyv: "key-1"})
	require.NoError(t, err)
	require.Equal(t, "r1", replay.ID)
	require.Equal(t, 1, handler.calls)
}

func TestIdempotency_DistinctKeysExecuteSeparately(t *testing.T) {
	handler := &bookHandler{}
	bus := newBus(handler)

	_, err := commands.Dispatch[bookCommand, *bookResult](context.Background(), bus, bookCommand{ID: "r1", Keyv: "key-1"})
	require.NoError(t, err)
	_, err = commands.Dispatch[bookCommand, *bookResult](context.Background(), bus, bookCommand{ID: "r2", Keyv: "key-2"})
	require.NoError(t, err)
	require.Equal(t, 2, handler.calls)
}

func TestIdempotency_EmptyKeySkipsStore(t *testing.T) {
	handler := &bookHandler{}
	bus := newBus(handler)

	for i := 0; i < 2; i++ {
		_, err := commands.Dispatch[bookCommand, *bookResult](context.Background(), bus, bookCommand{ID: "r1"})
		require.NoError(t, err)
	}
	require.Equal(t, 2, handler.calls)
}

func TestIdempotency_ReplaysFailuresToo(t *testing.T) {
	handler := &bookHandler{}
	bus := newBus(handler)

	_, err := commands.Dispatch[bookCommand, *bookResult](context.Background(), bus, bookCommand{ID: "r1", Keyv: "key-1", Fail: true})
	require.Error(t, err)
	require.Equal(t, 1, handler.calls)

	_, err = commands.Dispatch[bookCommand, *bookResult](context.Background(), bus, bookCommand{ID: "r1", Keyv: "key-1"})
	require.Error(t, err)
	require.EqualError(t, err, "room gone")
	require.Equal(t, 1, handler.calls)
}

type uowProbeCommand struct{}

func (uowProbeCommand) Key() string { return "test.probe" }

type uowProbeHandler struct {
	sawUnit bool
}

func (h *uowProbeHandler) Handle(ctx context.Context, cmd uowProbeCommand) (struct{}, error) {
	_, h.sawUnit = uow.FromContext(ctx)
	return struct{}{}, nil
}

func TestTransaction_InjectsUnitOfWork(t *testing.T) {
	handler := &uowProbeHandler{}
	bus := commands.NewInMemoryBus()
	commands.RegisterHandler(bus, uowProbeCommand{}.Key(), handler)

	wrapped := middleware.ChainCommands(bus, middleware.Transaction(memory.NewFactory(), nil))
	_, err := commands.Dispatch[uowProbeCommand, struct{}](context.Background(), wrapped, uowProbeCommand{})
	require.NoError(t, err)
	require.True(t, handler.sawUnit)
}
