package ginserver

import (
	"context"
	"errors"
	"net/http"
	"time"

	gin "github.com/gin-gonic/gin"

	"bookingengine/internal/app/dto"
	quotesapp "bookingengine/internal/app/handlers/quotes"
	"bookingengine/internal/app/queries"
	domainpricing "bookingengine/internal/domain/pricing"
	domainrooms "bookingengine/internal/domain/rooms"
	domainrange "bookingengine/internal/domain/shared/daterange"
)

type QuoteHTTP interface {
	Quote(c *gin.Context)
}

// QuoteCache is an optional read-through cache in front of the pricing query.
// Invalidate with an empty roomID drops every room's quotes.
type QuoteCache interface {
	Get(ctx context.Context, roomID string, checkIn, checkOut time.Time) (dto.PriceQuote, bool)
	Set(ctx context.Context, roomID string, checkIn, checkOut time.Time, quote dto.PriceQuote)
	Invalidate(ctx context.Context, roomID string)
}

type QuoteHandler struct {
	Queries queries.Bus
	Cache   QuoteCache
}

func (h QuoteHandler) Quote(c *gin.Context) {
	if h.Queries == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "queries unavailable"})
		return
	}
	roomID := c.Param("id")
	checkIn, checkOut, ok := parseStayParams(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	if h.Cache != nil {
		if quote, hit := h.Cache.Get(ctx, roomID, checkIn, checkOut); hit {
			c.JSON(http.StatusOK, quote)
			return
		}
	}

	quote, err := queries.Ask[quotesapp.ComputeQuoteQuery, dto.PriceQuote](ctx, h.Queries, quotesapp.ComputeQuoteQuery{
		RoomID:   roomID,
		CheckIn:  checkIn,
		CheckOut: checkOut,
	})
	if err != nil {
		respondQuoteError(c, err)
		return
	}
	if h.Cache != nil {
		h.Cache.Set(ctx, roomID, checkIn, checkOut, quote)
	}
	c.JSON(http.StatusOK, quote)
}

func respondQuoteError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domainrooms.ErrRoomNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "room not found"})
	case errors.Is(err, domainpricing.ErrInvalidInterval),
		errors.Is(err, domainpricing.ErrInvalidInput),
		errors.Is(err, domainrange.ErrInvalidInterval):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func parseStayParams(c *gin.Context) (time.Time, time.Time, bool) {
	checkIn, err := parseDateParam(c.Query("check_in"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid check_in date"})
		return time.Time{}, time.Time{}, false
	}
	checkOut, err := parseDateParam(c.Query("check_out"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid check_out date"})
		return time.Time{}, time.Time{}, false
	}
	return checkIn, checkOut, true
}

var _ QuoteHTTP = QuoteHandler{}

func parseDateParam(raw string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, raw)
}
