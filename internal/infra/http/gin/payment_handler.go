package ginserver

import (
	"errors"
	"net/http"

	gin "github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"bookingengine/internal/app/commands"
	"bookingengine/internal/app/dto"
	paymentsapp "bookingengine/internal/app/handlers/payments"
	"bookingengine/internal/app/queries"
	domainpayment "bookingengine/internal/domain/payment"
	domainreservation "bookingengine/internal/domain/reservation"
)

type PaymentHTTP interface {
	Create(c *gin.Context)
	UpdateStatus(c *gin.Context)
	Get(c *gin.Context)
	List(c *gin.Context)
}

type PaymentHandler struct {
	Commands commands.Bus
	Queries  queries.Bus
}

type createPaymentRequest struct {
	ReservationID string `json:"reservation_id"`
	AmountCents   int64  `json:"amount_cents"`
	Currency      string `json:"currency"`
	Method        string `json:"method"`
}

func (h PaymentHandler) Create(c *gin.Context) {
	if _, ok := requireRole(c, ""); !ok {
		return
	}
	if h.Commands == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "commands unavailable"})
		return
	}
	var req createPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	cmd := paymentsapp.CreatePaymentCommand{
		PaymentID:       uuid.NewString(),
		ReservationID:   req.ReservationID,
		AmountCents:     req.AmountCents,
		Currency:        req.Currency,
		Method:          req.Method,
		IdempotencyKeyV: c.GetHeader("Idempotency-Key"),
	}
	result, err := commands.Dispatch[paymentsapp.CreatePaymentCommand, *paymentsapp.CreatePaymentResult](c.Request.Context(), h.Commands, cmd)
	if err != nil {
		respondPaymentError(c, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

type updatePaymentStatusRequest struct {
	Status string `json:"status"`
}

func (h PaymentHandler) UpdateStatus(c *gin.Context) {
	if _, ok := requireRole(c, "admin"); !ok {
		return
	}
	if h.Commands == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "commands unavailable"})
		return
	}
	var req updatePaymentStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	_, err := commands.Dispatch[paymentsapp.UpdatePaymentStatusCommand, struct{}](c.Request.Context(), h.Commands, paymentsapp.UpdatePaymentStatusCommand{
		PaymentID: c.Param("id"),
		Status:    req.Status,
	})
	if err != nil {
		respondPaymentError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h PaymentHandler) Get(c *gin.Context) {
	if _, ok := requireRole(c, ""); !ok {
		return
	}
	if h.Queries == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "queries unavailable"})
		return
	}
	result, err := queries.Ask[paymentsapp.GetPaymentQuery, dto.Payment](c.Request.Context(), h.Queries, paymentsapp.GetPaymentQuery{
		PaymentID: c.Param("id"),
	})
	if err != nil {
		respondPaymentError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h PaymentHandler) List(c *gin.Context) {
	if _, ok := requireRole(c, "admin"); !ok {
		return
	}
	if h.Queries == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "queries unavailable"})
		return
	}
	result, err := queries.Ask[paymentsapp.ListPaymentsQuery, []dto.Payment](c.Request.Context(), h.Queries, paymentsapp.ListPaymentsQuery{
		ReservationID: c.Query("reservation_id"),
		Status:        c.Query("status"),
	})
	if err != nil {
		respondPaymentError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func respondPaymentError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domainpayment.ErrNotFound),
		errors.Is(err, domainreservation.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, domainpayment.ErrAlreadySettled):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, domainpayment.ErrInvalidStatus),
		errors.Is(err, domainpayment.ErrInvalidAmount),
		errors.Is(err, domainreservation.ErrInvalidState):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

var _ PaymentHTTP = PaymentHandler{}
