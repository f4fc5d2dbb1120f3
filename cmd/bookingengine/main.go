package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/google/uuid"

	"bookingengine/internal/app/commands"
	availabilityapp "bookingengine/internal/app/handlers/availability"
	paymentsapp "bookingengine/internal/app/handlers/payments"
	quotesapp "bookingengine/internal/app/handlers/quotes"
	reportsapp "bookingengine/internal/app/handlers/reports"
	reservationsapp "bookingengine/internal/app/handlers/reservations"
	roomsapp "bookingengine/internal/app/handlers/rooms"
	seasonsapp "bookingengine/internal/app/handlers/seasons"
	"bookingengine/internal/app/middleware"
	appoutbox "bookingengine/internal/app/outbox"
	"bookingengine/internal/app/queries"
	authsvc "bookingengine/internal/app/services/auth"
	"bookingengine/internal/app/uow"
	domainpricing "bookingengine/internal/domain/pricing"
	domainrooms "bookingengine/internal/domain/rooms"
	domainseasons "bookingengine/internal/domain/seasons"
	domainuser "bookingengine/internal/domain/user"
	"bookingengine/internal/domain/shared/money"
	"bookingengine/internal/infra/broker/kafka"
	rediscache "bookingengine/internal/infra/cache/redis"
	"bookingengine/internal/infra/config"
	mongodb "bookingengine/internal/infra/db/mongo"
	ginserver "bookingengine/internal/infra/http/gin"
	"bookingengine/internal/infra/obs"
	infraoutbox "bookingengine/internal/infra/outbox"
	"bookingengine/internal/infra/security"
	"bookingengine/internal/infra/storage/memory"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	env := getenv("APP_ENV", "dev")
	logger := obs.NewLogger(env)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("configuration invalid", "error", err)
		os.Exit(1)
	}

	app, err := buildApplication(ctx, cfg, logger)
	if err != nil {
		logger.Error("application wiring failed", "error", err)
		os.Exit(1)
	}
	defer app.close()

	server := ginserver.NewServer(cfg, obs.Middleware{Logger: logger}, obs.HealthHandlers{
		Ready: app.ready,
	}, app.handlers)

	fixturesPath := getenv("BOOKING_FIXTURES", "")
	if fixturesPath == "" {
		fixturesPath = defaultFixturesPath()
	}
	if err := app.loadFixtures(ctx, fixturesPath, logger); err != nil {
		logger.Warn("fixtures load failed", "error", err, "path", fixturesPath)
	}

	if app.worker != nil {
		go func() {
			if err := app.worker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				logger.Error("outbox worker stopped", "error", err)
			}
		}()
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("http shutdown failed", "error", err)
		}
	}()

	logger.Info("HTTP server starting", "addr", cfg.HTTPAddr, "storage", cfg.StorageMode)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("http server failed", "error", err)
		os.Exit(1)
	}
	logger.Info("HTTP server stopped")
}

type application struct {
	handlers ginserver.Handlers
	worker   *infraoutbox.Worker
	ready    func() error
	close    func()

	rooms   domainrooms.Repository
	seasons domainseasons.Repository

	currency string
}

func buildApplication(ctx context.Context, cfg config.Config, logger *slog.Logger) (*application, error) {
	var (
		uowFactory uow.UoWFactory
		outboxSink appoutbox.Outbox
		eventStore infraoutbox.EventStore
		idStore    middleware.IdempotencyStore
		roomsRepo  domainrooms.Repository
		seasonRepo domainseasons.Repository
		usersRepo  domainuser.Repository
		ready      = func() error { return nil }
		cleanup    []func()
	)

	switch cfg.StorageMode {
	case "mongo":
		client, err := mongodb.New(cfg.MongoURI, cfg.MongoDB)
		if err != nil {
			return nil, fmt.Errorf("mongo connect: %w", err)
		}
		cleanup = append(cleanup, func() {
			disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = client.DB.Client().Disconnect(disconnectCtx)
		})
		factory := mongodb.Factory{
			DB:               client.DB,
			RoomsRepo:        mongodb.NewRoomRepository(client.DB),
			SeasonsRepo:      mongodb.NewSeasonRepository(client.DB),
			ReservationsRepo: mongodb.NewReservationRepository(client.DB),
			PaymentsRepo:     mongodb.NewPaymentRepository(client.DB),
		}
		store := infraoutbox.NewStore(client.DB)
		uowFactory = factory
		outboxSink = store
		eventStore = store
		idStore = mongodb.NewIdempotencyStore(client.DB, cfg.IdempotencyTTL)
		roomsRepo = factory.RoomsRepo
		seasonRepo = factory.SeasonsRepo
		usersRepo = mongodb.NewUserRepository(client.DB)
		ready = func() error {
			pingCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			return client.Ping(pingCtx)
		}
	default:
		factory := memory.NewFactory()
		box := memory.NewOutbox()
		uowFactory = factory
		outboxSink = box
		eventStore = box
		idStore = memory.NewIdempotencyStore()
		roomsRepo = factory.RoomsRepo
		seasonRepo = factory.SeasonsRepo
		usersRepo = memory.NewUserRepository()
	}

	calculator := domainpricing.SeasonalCalculator{}
	encoder := appoutbox.JSONEventEncoder{IDGenerator: uuid.NewString}

	commandBus := commands.NewInMemoryBus()
	commands.RegisterHandler(commandBus, reservationsapp.CreateReservationCommand{}.Key(), &reservationsapp.CreateReservationHandler{
		UoWFactory: uowFactory,
		Calculator: calculator,
		Outbox:     outboxSink,
		Encoder:    encoder,
		IDs:        uuid.NewString,
	})
	commands.RegisterHandler(commandBus, reservationsapp.RescheduleReservationCommand{}.Key(), &reservationsapp.RescheduleReservationHandler{
		UoWFactory: uowFactory,
		Calculator: calculator,
		Outbox:     outboxSink,
		Encoder:    encoder,
	})
	commands.RegisterHandler(commandBus, reservationsapp.CancelReservationCommand{}.Key(), &reservationsapp.CancelReservationHandler{
		UoWFactory: uowFactory,
		Outbox:     outboxSink,
		Encoder:    encoder,
	})
	commands.RegisterHandler(commandBus, paymentsapp.CreatePaymentCommand{}.Key(), &paymentsapp.CreatePaymentHandler{
		UoWFactory: uowFactory,
		Outbox:     outboxSink,
		Encoder:    encoder,
	})
	commands.RegisterHandler(commandBus, paymentsapp.UpdatePaymentStatusCommand{}.Key(), &paymentsapp.UpdatePaymentStatusHandler{
		UoWFactory: uowFactory,
		Outbox:     outboxSink,
		Encoder:    encoder,
	})
	commands.RegisterHandler(commandBus, roomsapp.CreateRoomCommand{}.Key(), &roomsapp.CreateRoomHandler{
		UoWFactory: uowFactory,
		Outbox:     outboxSink,
		Encoder:    encoder,
	})
	commands.RegisterHandler(commandBus, roomsapp.UpdateRoomCommand{}.Key(), &roomsapp.UpdateRoomHandler{
		UoWFactory: uowFactory,
		Outbox:     outboxSink,
		Encoder:    encoder,
	})
	commands.RegisterHandler(commandBus, roomsapp.SetRoomAvailabilityCommand{}.Key(), &roomsapp.SetRoomAvailabilityHandler{
		UoWFactory: uowFactory,
		Outbox:     outboxSink,
		Encoder:    encoder,
	})
	commands.RegisterHandler(commandBus, roomsapp.DeleteRoomCommand{}.Key(), &roomsapp.DeleteRoomHandler{
		UoWFactory: uowFactory,
	})
	commands.RegisterHandler(commandBus, seasonsapp.CreateSeasonCommand{}.Key(), &seasonsapp.CreateSeasonHandler{
		UoWFactory: uowFactory,
		Outbox:     outboxSink,
		Encoder:    encoder,
	})
	commands.RegisterHandler(commandBus, seasonsapp.UpdateSeasonCommand{}.Key(), &seasonsapp.UpdateSeasonHandler{
		UoWFactory: uowFactory,
		Outbox:     outboxSink,
		Encoder:    encoder,
	})
	commands.RegisterHandler(commandBus, seasonsapp.DeleteSeasonCommand{}.Key(), &seasonsapp.DeleteSeasonHandler{
		UoWFactory: uowFactory,
	})

	queryBus := queries.NewInMemoryBus()
	queries.RegisterHandler(queryBus, quotesapp.ComputeQuoteQuery{}.Key(), &quotesapp.ComputeQuoteHandler{
		UoWFactory: uowFactory,
		Calculator: calculator,
	})
	queries.RegisterHandler(queryBus, availabilityapp.CheckAvailabilityQuery{}.Key(), &availabilityapp.CheckAvailabilityHandler{
		UoWFactory: uowFactory,
	})
	queries.RegisterHandler(queryBus, reservationsapp.GetReservationQuery{}.Key(), &reservationsapp.GetReservationHandler{
		UoWFactory: uowFactory,
	})
	queries.RegisterHandler(queryBus, reservationsapp.ListReservationsQuery{}.Key(), &reservationsapp.ListReservationsHandler{
		UoWFactory: uowFactory,
	})
	queries.RegisterHandler(queryBus, paymentsapp.GetPaymentQuery{}.Key(), &paymentsapp.GetPaymentHandler{
		UoWFactory: uowFactory,
	})
	queries.RegisterHandler(queryBus, paymentsapp.ListPaymentsQuery{}.Key(), &paymentsapp.ListPaymentsHandler{
		UoWFactory: uowFactory,
	})
	queries.RegisterHandler(queryBus, roomsapp.GetRoomQuery{}.Key(), &roomsapp.GetRoomHandler{
		UoWFactory: uowFactory,
	})
	queries.RegisterHandler(queryBus, roomsapp.ListRoomsQuery{}.Key(), &roomsapp.ListRoomsHandler{
		UoWFactory: uowFactory,
	})
	queries.RegisterHandler(queryBus, seasonsapp.GetSeasonQuery{}.Key(), &seasonsapp.GetSeasonHandler{
		UoWFactory: uowFactory,
	})
	queries.RegisterHandler(queryBus, seasonsapp.ListSeasonsQuery{}.Key(), &seasonsapp.ListSeasonsHandler{
		UoWFactory: uowFactory,
	})
	queries.RegisterHandler(queryBus, seasonsapp.SeasonForDateQuery{}.Key(), &seasonsapp.SeasonForDateHandler{
		UoWFactory: uowFactory,
	})
	queries.RegisterHandler(queryBus, reportsapp.RevenueQuery{}.Key(), &reportsapp.RevenueHandler{
		UoWFactory: uowFactory,
	})

	commandBusWithMiddleware := middleware.ChainCommands(
		commandBus,
		middleware.Idempotency(idStore, nil),
		middleware.Transaction(uowFactory, nil),
		middleware.OutboxFlush(outboxSink),
	)
	queryBusWithMiddleware := middleware.ChainQueries(queryBus)

	authService := &authsvc.Service{
		Users:      usersRepo,
		Sessions:   memory.NewSessionStore(),
		Passwords:  security.BcryptHasher{},
		Tokens:     security.RandomTokenGenerator{},
		SessionTTL: cfg.SessionTTL,
		Logger:     logger,
	}

	var quoteCache ginserver.QuoteCache
	if cfg.RedisAddr != "" {
		quoteCache = rediscache.NewQuoteCache(cfg.RedisAddr, cfg.QuoteCacheTTL, logger)
	}

	var worker *infraoutbox.Worker
	if len(cfg.KafkaBrokers) > 0 {
		producer, err := kafka.NewProducer(cfg.KafkaBrokers, nil)
		if err != nil {
			return nil, fmt.Errorf("kafka connect: %w", err)
		}
		cleanup = append(cleanup, func() { _ = producer.Close() })
		worker = &infraoutbox.Worker{
			Store:       eventStore,
			Producer:    producer,
			Interval:    cfg.OutboxPollInterval,
			TopicPrefix: cfg.KafkaTopicPrefix,
			Backoff:     cfg.RetryBackoff,
		}
	}

	app := &application{
		handlers: ginserver.Handlers{
			Quote: ginserver.QuoteHandler{
				Queries: queryBusWithMiddleware,
				Cache:   quoteCache,
			},
			Availability: ginserver.AvailabilityHandler{
				Queries: queryBusWithMiddleware,
			},
			Reservation: ginserver.ReservationHandler{
				Commands: commandBusWithMiddleware,
				Queries:  queryBusWithMiddleware,
			},
			Payment: ginserver.PaymentHandler{
				Commands: commandBusWithMiddleware,
				Queries:  queryBusWithMiddleware,
			},
			Room: ginserver.RoomHandler{
				Commands: commandBusWithMiddleware,
				Queries:  queryBusWithMiddleware,
				Cache:    quoteCache,
			},
			Season: ginserver.SeasonHandler{
				Commands: commandBusWithMiddleware,
				Queries:  queryBusWithMiddleware,
				Cache:    quoteCache,
			},
			Report: ginserver.ReportHandler{
				Queries: queryBusWithMiddleware,
			},
			Auth: &ginserver.AuthHandler{
				Service: authService,
				Logger:  logger,
			},
			AuthMiddleware: ginserver.AuthMiddleware{
				Service: authService,
				Logger:  logger,
			}.Handle,
		},
		worker: worker,
		ready:  ready,
		close: func() {
			for _, fn := range cleanup {
				fn()
			}
		},
		rooms:    roomsRepo,
		seasons:  seasonRepo,
		currency: cfg.Currency,
	}
	return app, nil
}

type roomFixture struct {
	ID               string `json:"id"`
	Number           string `json:"number"`
	Category         string `json:"category"`
	BaseNightlyCents int64  `json:"base_nightly_cents"`
	Currency         string `json:"currency"`
	Capacity         int    `json:"capacity"`
	Description      string `json:"description"`
}

type seasonFixture struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Start       string  `json:"start"`
	End         string  `json:"end"`
	Coefficient float64 `json:"coefficient"`
}

type fixtureFile struct {
	Rooms   []roomFixture   `json:"rooms"`
	Seasons []seasonFixture `json:"seasons"`
}

func (a *application) loadFixtures(ctx context.Context, path string, logger *slog.Logger) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logger.Info("fixtures file not found, skipping", "path", path)
			return nil
		}
		return fmt.Errorf("read fixtures: %w", err)
	}
	if len(data) == 0 {
		logger.Warn("fixtures file empty", "path", path)
		return nil
	}

	var fixtures fixtureFile
	if err := json.Unmarshal(data, &fixtures); err != nil {
		return fmt.Errorf("decode fixtures: %w", err)
	}

	now := time.Now()
	for _, fx := range fixtures.Rooms {
		currency := fx.Currency
		if currency == "" {
			currency = a.currency
		}
		price, err := money.New(fx.BaseNightlyCents, currency)
		if err != nil {
			logger.Error("fixture room price invalid", "room", fx.Number, "error", err)
			continue
		}
		room, err := domainrooms.NewRoom(domainrooms.CreateParams{
			ID:          domainrooms.RoomID(fixtureID(fx.ID)),
			Number:      fx.Number,
			Category:    domainrooms.Category(fx.Category),
			BaseNightly: price,
			Capacity:    fx.Capacity,
			Description: fx.Description,
			Now:         now,
		})
		if err != nil {
			logger.Error("fixture room invalid", "room", fx.Number, "error", err)
			continue
		}
		if err := a.rooms.Save(ctx, room); err != nil {
			logger.Error("cannot store fixture room", "room", fx.Number, "error", err)
			continue
		}
		logger.Info("room fixture imported", "room_id", room.ID, "number", room.Number)
	}

	for _, fx := range fixtures.Seasons {
		start, err := parseFixtureDate(fx.Start)
		if err != nil {
			logger.Error("fixture season start invalid", "season", fx.Name, "error", err)
			continue
		}
		end, err := parseFixtureDate(fx.End)
		if err != nil {
			logger.Error("fixture season end invalid", "season", fx.Name, "error", err)
			continue
		}
		season, err := domainseasons.NewSeason(domainseasons.CreateParams{
			ID:          domainseasons.SeasonID(fixtureID(fx.ID)),
			Name:        fx.Name,
			Start:       start,
			End:         end,
			Coefficient: fx.Coefficient,
			Now:         now,
		})
		if err != nil {
			logger.Error("fixture season invalid", "season", fx.Name, "error", err)
			continue
		}
		if err := a.seasons.Save(ctx, season); err != nil {
			logger.Error("cannot store fixture season", "season", fx.Name, "error", err)
			continue
		}
		logger.Info("season fixture imported", "season_id", season.ID, "name", season.Name)
	}
	return nil
}

func fixtureID(raw string) string {
	if raw != "" {
		return raw
	}
	return uuid.NewString()
}

func parseFixtureDate(raw string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, raw)
}

func defaultFixturesPath() string {
	return filepath.Join("data", "fixtures.json")
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
