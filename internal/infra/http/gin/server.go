package ginserver

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	gin "github.com/gin-gonic/gin"

	"bookingengine/internal/infra/config"
	"bookingengine/internal/infra/obs"
)

type Handlers struct {
	Quote          QuoteHTTP
	Availability   AvailabilityHTTP
	Reservation    ReservationHTTP
	Payment        PaymentHTTP
	Room           RoomHTTP
	Season         SeasonHTTP
	Report         ReportHTTP
	Auth           AuthHTTP
	AuthMiddleware gin.HandlerFunc
}

func NewServer(cfg config.Config, obsMW obs.Middleware, health obs.HealthHandlers, h Handlers) *http.Server {
	mode := configureGinMode(cfg.Env)
	if obsMW.Logger != nil {
		obsMW.Logger.Info("gin initialized", "mode", mode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(obsMW.RequestID())
	router.Use(obsMW.LoggerMiddleware())
	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept", "Authorization", "Idempotency-Key"},
		ExposeHeaders: []string{
			"Content-Length",
			"Content-Type",
			"X-Request-ID",
		},
		MaxAge: 12 * time.Hour,
	}))
	if h.AuthMiddleware != nil {
		router.Use(h.AuthMiddleware)
	}

	router.GET("/livez", health.Livez)
	router.GET("/readyz", health.Readyz)

	api := router.Group("/api/v1")
	if h.Auth != nil {
		api.POST("/auth/register", h.Auth.Register)
		api.POST("/auth/login", h.Auth.Login)
		api.POST("/auth/logout", h.Auth.Logout)
		api.GET("/auth/me", h.Auth.Me)
	}
	if h.Room != nil {
		api.GET("/rooms", h.Room.List)
		api.GET("/rooms/:id", h.Room.Get)
		api.POST("/rooms", h.Room.Create)
		api.PUT("/rooms/:id", h.Room.Update)
		api.PATCH("/rooms/:id/availability", h.Room.SetAvailability)
		api.DELETE("/rooms/:id", h.Room.Delete)
	}
	if h.Quote != nil {
		api.GET("/rooms/:id/quote", h.Quote.Quote)
	}
	if h.Availability != nil {
		api.GET("/rooms/:id/availability", h.Availability.Check)
	}
	if h.Season != nil {
		api.GET("/seasons", h.Season.List)
		api.GET("/seasons/for-date", h.Season.ForDate)
		api.GET("/seasons/:id", h.Season.Get)
		api.POST("/seasons", h.Season.Create)
		api.PUT("/seasons/:id", h.Season.Update)
		api.DELETE("/seasons/:id", h.Season.Delete)
	}
	if h.Reservation != nil {
		api.POST("/reservations", h.Reservation.Create)
		api.PUT("/reservations/:id", h.Reservation.Reschedule)
		api.POST("/reservations/:id/cancel", h.Reservation.Cancel)
		api.DELETE("/reservations/:id", h.Reservation.Cancel)
		api.GET("/reservations/:id", h.Reservation.Get)
		api.GET("/reservations", h.Reservation.List)
		api.GET("/me/reservations", h.Reservation.ListMine)
	}
	if h.Payment != nil {
		api.POST("/payments", h.Payment.Create)
		api.POST("/payments/:id/status", h.Payment.UpdateStatus)
		api.GET("/payments/:id", h.Payment.Get)
		api.GET("/payments", h.Payment.List)
	}
	if h.Report != nil {
		api.GET("/reports/revenue", h.Report.Revenue)
	}

	return &http.Server{Addr: cfg.HTTPAddr, Handler: router}
}

func configureGinMode(env string) string {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "debug":
		gin.SetMode(gin.DebugMode)
		return gin.DebugMode
	case "test", "testing":
		gin.SetMode(gin.TestMode)
		return gin.TestMode
	default:
		gin.SetMode(gin.ReleaseMode)
		return gin.ReleaseMode
	}
}
