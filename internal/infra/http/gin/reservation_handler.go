package ginserver

import (
	"errors"
	"net/http"
	"time"

	gin "github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"bookingengine/internal/app/commands"
	"bookingengine/internal/app/dto"
	reservationsapp "bookingengine/internal/app/handlers/reservations"
	"bookingengine/internal/app/queries"
	domainreservation "bookingengine/internal/domain/reservation"
	domainrooms "bookingengine/internal/domain/rooms"
	domainrange "bookingengine/internal/domain/shared/daterange"
)

type ReservationHTTP interface {
	Create(c *gin.Context)
	Reschedule(c *gin.Context)
	Cancel(c *gin.Context)
	Get(c *gin.Context)
	List(c *gin.Context)
	ListMine(c *gin.Context)
}

type ReservationHandler struct {
	Commands commands.Bus
	Queries  queries.Bus
}

type createReservationRequest struct {
	RoomID        string    `json:"room_id"`
	CheckIn       time.Time `json:"check_in"`
	CheckOut      time.Time `json:"check_out"`
	PaymentMethod string    `json:"payment_method"`
}

func (h ReservationHandler) Create(c *gin.Context) {
	user, ok := requireRole(c, "")
	if !ok {
		return
	}
	if h.Commands == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "commands unavailable"})
		return
	}
	var req createReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	cmd := reservationsapp.CreateReservationCommand{
		CommandID:       uuid.NewString(),
		RoomID:          req.RoomID,
		GuestID:         user.ID,
		CheckIn:         req.CheckIn,
		CheckOut:        req.CheckOut,
		PaymentMethod:   req.PaymentMethod,
		IdempotencyKeyV: c.GetHeader("Idempotency-Key"),
	}
	result, err := commands.Dispatch[reservationsapp.CreateReservationCommand, *reservationsapp.CreateReservationResult](c.Request.Context(), h.Commands, cmd)
	if err != nil {
		respondReservationError(c, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

type rescheduleReservationRequest struct {
	CheckIn  time.Time `json:"check_in"`
	CheckOut time.Time `json:"check_out"`
}

func (h ReservationHandler) Reschedule(c *gin.Context) {
	if _, ok := requireRole(c, ""); !ok {
		return
	}
	if h.Commands == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "commands unavailable"})
		return
	}
	var req rescheduleReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	result, err := commands.Dispatch[reservationsapp.RescheduleReservationCommand, *reservationsapp.RescheduleReservationResult](c.Request.Context(), h.Commands, reservationsapp.RescheduleReservationCommand{
		ReservationID: c.Param("id"),
		CheckIn:       req.CheckIn,
		CheckOut:      req.CheckOut,
	})
	if err != nil {
		respondReservationError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

type cancelReservationRequest struct {
	Reason string `json:"reason"`
}

func (h ReservationHandler) Cancel(c *gin.Context) {
	if _, ok := requireRole(c, ""); !ok {
		return
	}
	if h.Commands == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "commands unavailable"})
		return
	}
	var req cancelReservationRequest
	_ = c.ShouldBindJSON(&req)
	_, err := commands.Dispatch[reservationsapp.CancelReservationCommand, struct{}](c.Request.Context(), h.Commands, reservationsapp.CancelReservationCommand{
		ReservationID: c.Param("id"),
		Reason:        req.Reason,
	})
	if err != nil {
		respondReservationError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h ReservationHandler) Get(c *gin.Context) {
	if _, ok := requireRole(c, ""); !ok {
		return
	}
	if h.Queries == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "queries unavailable"})
		return
	}
	result, err := queries.Ask[reservationsapp.GetReservationQuery, dto.Reservation](c.Request.Context(), h.Queries, reservationsapp.GetReservationQuery{
		ReservationID: c.Param("id"),
	})
	if err != nil {
		respondReservationError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h ReservationHandler) List(c *gin.Context) {
	if _, ok := requireRole(c, "admin"); !ok {
		return
	}
	if h.Queries == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "queries unavailable"})
		return
	}
	result, err := queries.Ask[reservationsapp.ListReservationsQuery, []dto.Reservation](c.Request.Context(), h.Queries, reservationsapp.ListReservationsQuery{
		RoomID:  c.Query("room_id"),
		GuestID: c.Query("guest_id"),
		Status:  c.Query("status"),
	})
	if err != nil {
		respondReservationError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h ReservationHandler) ListMine(c *gin.Context) {
	user, ok := requireRole(c, "")
	if !ok {
		return
	}
	if h.Queries == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "queries unavailable"})
		return
	}
	result, err := queries.Ask[reservationsapp.ListReservationsQuery, []dto.Reservation](c.Request.Context(), h.Queries, reservationsapp.ListReservationsQuery{
		GuestID: user.ID,
		Status:  c.Query("status"),
	})
	if err != nil {
		respondReservationError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func respondReservationError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domainrooms.ErrRoomNotFound),
		errors.Is(err, domainreservation.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, reservationsapp.ErrRoomAlreadyBooked):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, reservationsapp.ErrRoomOutOfService),
		errors.Is(err, domainrange.ErrInvalidInterval),
		errors.Is(err, domainreservation.ErrInvalidState),
		errors.Is(err, domainreservation.ErrGuestRequired):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

var _ ReservationHTTP = ReservationHandler{}
