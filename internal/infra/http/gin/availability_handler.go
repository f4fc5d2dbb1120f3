package ginserver

import (
	"errors"
	"net/http"

	gin "github.com/gin-gonic/gin"

	"bookingengine/internal/app/dto"
	availabilityapp "bookingengine/internal/app/handlers/availability"
	"bookingengine/internal/app/queries"
	domainrooms "bookingengine/internal/domain/rooms"
	domainrange "bookingengine/internal/domain/shared/daterange"
)

type AvailabilityHTTP interface {
	Check(c *gin.Context)
}

type AvailabilityHandler struct {
	Queries queries.Bus
}

func (h AvailabilityHandler) Check(c *gin.Context) {
	if h.Queries == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "queries unavailable"})
		return
	}
	checkIn, checkOut, ok := parseStayParams(c)
	if !ok {
		return
	}
	result, err := queries.Ask[availabilityapp.CheckAvailabilityQuery, dto.Availability](c.Request.Context(), h.Queries, availabilityapp.CheckAvailabilityQuery{
		RoomID:   c.Param("id"),
		CheckIn:  checkIn,
		CheckOut: checkOut,
	})
	if err != nil {
		switch {
		case errors.Is(err, domainrooms.ErrRoomNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "room not found"})
		case errors.Is(err, domainrange.ErrInvalidInterval):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		}
		return
	}
	c.JSON(http.StatusOK, result)
}

var _ AvailabilityHTTP = AvailabilityHandler{}
