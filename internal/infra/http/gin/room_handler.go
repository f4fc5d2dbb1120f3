package ginserver

import (
	"errors"
	"net/http"

	gin "github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"bookingengine/internal/app/commands"
	"bookingengine/internal/app/dto"
	roomsapp "bookingengine/internal/app/handlers/rooms"
	"bookingengine/internal/app/queries"
	domainrooms "bookingengine/internal/domain/rooms"
	"bookingengine/internal/domain/shared/money"
)

type RoomHTTP interface {
	List(c *gin.Context)
	Get(c *gin.Context)
	Create(c *gin.Context)
	Update(c *gin.Context)
	SetAvailability(c *gin.Context)
	Delete(c *gin.Context)
}

type RoomHandler struct {
	Commands commands.Bus
	Queries  queries.Bus
	Cache    QuoteCache
}

func (h RoomHandler) invalidateQuotes(c *gin.Context, roomID string) {
	if h.Cache != nil {
		h.Cache.Invalidate(c.Request.Context(), roomID)
	}
}

func (h RoomHandler) List(c *gin.Context) {
	if h.Queries == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "queries unavailable"})
		return
	}
	result, err := queries.Ask[roomsapp.ListRoomsQuery, []dto.Room](c.Request.Context(), h.Queries, roomsapp.ListRoomsQuery{
		OnlyAvailable: c.Query("available") == "true",
		Category:      c.Query("category"),
	})
	if err != nil {
		respondRoomError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h RoomHandler) Get(c *gin.Context) {
	if h.Queries == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "queries unavailable"})
		return
	}
	result, err := queries.Ask[roomsapp.GetRoomQuery, dto.Room](c.Request.Context(), h.Queries, roomsapp.GetRoomQuery{RoomID: c.Param("id")})
	if err != nil {
		respondRoomError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

type roomRequest struct {
	Number           string `json:"number"`
	Category         string `json:"category"`
	BaseNightlyCents int64  `json:"base_nightly_cents"`
	Currency         string `json:"currency"`
	Capacity         int    `json:"capacity"`
	Description      string `json:"description"`
}

func (h RoomHandler) Create(c *gin.Context) {
	if _, ok := requireRole(c, "admin"); !ok {
		return
	}
	if h.Commands == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "commands unavailable"})
		return
	}
	var req roomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	result, err := commands.Dispatch[roomsapp.CreateRoomCommand, *roomsapp.CreateRoomResult](c.Request.Context(), h.Commands, roomsapp.CreateRoomCommand{
		RoomID:           uuid.NewString(),
		Number:           req.Number,
		Category:         req.Category,
		BaseNightlyCents: req.BaseNightlyCents,
		Currency:         req.Currency,
		Capacity:         req.Capacity,
		Description:      req.Description,
	})
	if err != nil {
		respondRoomError(c, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

func (h RoomHandler) Update(c *gin.Context) {
	if _, ok := requireRole(c, "admin"); !ok {
		return
	}
	if h.Commands == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "commands unavailable"})
		return
	}
	var req roomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	_, err := commands.Dispatch[roomsapp.UpdateRoomCommand, struct{}](c.Request.Context(), h.Commands, roomsapp.UpdateRoomCommand{
		RoomID:           c.Param("id"),
		Number:           req.Number,
		Category:         req.Category,
		BaseNightlyCents: req.BaseNightlyCents,
		Currency:         req.Currency,
		Capacity:         req.Capacity,
		Description:      req.Description,
	})
	if err != nil {
		respondRoomError(c, err)
		return
	}
	h.invalidateQuotes(c, c.Param("id"))
	c.Status(http.StatusNoContent)
}

type roomAvailabilityRequest struct {
	Available bool `json:"available"`
}

func (h RoomHandler) SetAvailability(c *gin.Context) {
	if _, ok := requireRole(c, "admin"); !ok {
		return
	}
	if h.Commands == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "commands unavailable"})
		return
	}
	var req roomAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	_, err := commands.Dispatch[roomsapp.SetRoomAvailabilityCommand, struct{}](c.Request.Context(), h.Commands, roomsapp.SetRoomAvailabilityCommand{
		RoomID:    c.Param("id"),
		Available: req.Available,
	})
	if err != nil {
		respondRoomError(c, err)
		return
	}
	h.invalidateQuotes(c, c.Param("id"))
	c.Status(http.StatusNoContent)
}

func (h RoomHandler) Delete(c *gin.Context) {
	if _, ok := requireRole(c, "admin"); !ok {
		return
	}
	if h.Commands == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "commands unavailable"})
		return
	}
	_, err := commands.Dispatch[roomsapp.DeleteRoomCommand, struct{}](c.Request.Context(), h.Commands, roomsapp.DeleteRoomCommand{RoomID: c.Param("id")})
	if err != nil {
		respondRoomError(c, err)
		return
	}
	h.invalidateQuotes(c, c.Param("id"))
	c.Status(http.StatusNoContent)
}

func respondRoomError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domainrooms.ErrRoomNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "room not found"})
	case errors.Is(err, domainrooms.ErrNumberRequired),
		errors.Is(err, domainrooms.ErrInvalidCategory),
		errors.Is(err, domainrooms.ErrInvalidBasePrice),
		errors.Is(err, domainrooms.ErrInvalidCapacity),
		errors.Is(err, money.ErrInvalidCurrency):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

var _ RoomHTTP = RoomHandler{}
