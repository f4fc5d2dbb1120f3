package ginserver

import (
	"errors"
	"net/http"
	"time"

	gin "github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"bookingengine/internal/app/commands"
	"bookingengine/internal/app/dto"
	seasonsapp "bookingengine/internal/app/handlers/seasons"
	"bookingengine/internal/app/queries"
	domainseasons "bookingengine/internal/domain/seasons"
)

type SeasonHTTP interface {
	List(c *gin.Context)
	Get(c *gin.Context)
	ForDate(c *gin.Context)
	Create(c *gin.Context)
	Update(c *gin.Context)
	Delete(c *gin.Context)
}

type SeasonHandler struct {
	Commands commands.Bus
	Queries  queries.Bus
	Cache    QuoteCache
}

// season changes shift prices for every room, so the whole quote cache goes
func (h SeasonHandler) invalidateQuotes(c *gin.Context) {
	if h.Cache != nil {
		h.Cache.Invalidate(c.Request.Context(), "")
	}
}

func (h SeasonHandler) List(c *gin.Context) {
	if h.Queries == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "queries unavailable"})
		return
	}
	result, err := queries.Ask[seasonsapp.ListSeasonsQuery, []dto.Season](c.Request.Context(), h.Queries, seasonsapp.ListSeasonsQuery{})
	if err != nil {
		respondSeasonError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h SeasonHandler) Get(c *gin.Context) {
	if h.Queries == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "queries unavailable"})
		return
	}
	result, err := queries.Ask[seasonsapp.GetSeasonQuery, dto.Season](c.Request.Context(), h.Queries, seasonsapp.GetSeasonQuery{SeasonID: c.Param("id")})
	if err != nil {
		respondSeasonError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h SeasonHandler) ForDate(c *gin.Context) {
	if h.Queries == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "queries unavailable"})
		return
	}
	date, err := parseDateParam(c.Query("date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date"})
		return
	}
	result, err := queries.Ask[seasonsapp.SeasonForDateQuery, dto.Season](c.Request.Context(), h.Queries, seasonsapp.SeasonForDateQuery{Date: date})
	if err != nil {
		respondSeasonError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

type seasonRequest struct {
	Name        string  `json:"name"`
	Start       string  `json:"start"`
	End         string  `json:"end"`
	Coefficient float64 `json:"coefficient"`
}

func (h SeasonHandler) Create(c *gin.Context) {
	if _, ok := requireRole(c, "admin"); !ok {
		return
	}
	if h.Commands == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "commands unavailable"})
		return
	}
	req, ok := bindSeasonRequest(c)
	if !ok {
		return
	}
	start, end, ok := parseSeasonRange(c, req)
	if !ok {
		return
	}
	result, err := commands.Dispatch[seasonsapp.CreateSeasonCommand, *seasonsapp.CreateSeasonResult](c.Request.Context(), h.Commands, seasonsapp.CreateSeasonCommand{
		SeasonID:    uuid.NewString(),
		Name:        req.Name,
		Start:       start,
		End:         end,
		Coefficient: req.Coefficient,
	})
	if err != nil {
		respondSeasonError(c, err)
		return
	}
	h.invalidateQuotes(c)
	c.JSON(http.StatusCreated, result)
}

func (h SeasonHandler) Update(c *gin.Context) {
	if _, ok := requireRole(c, "admin"); !ok {
		return
	}
	if h.Commands == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "commands unavailable"})
		return
	}
	req, ok := bindSeasonRequest(c)
	if !ok {
		return
	}
	start, end, ok := parseSeasonRange(c, req)
	if !ok {
		return
	}
	_, err := commands.Dispatch[seasonsapp.UpdateSeasonCommand, struct{}](c.Request.Context(), h.Commands, seasonsapp.UpdateSeasonCommand{
		SeasonID:    c.Param("id"),
		Name:        req.Name,
		Start:       start,
		End:         end,
		Coefficient: req.Coefficient,
	})
	if err != nil {
		respondSeasonError(c, err)
		return
	}
	h.invalidateQuotes(c)
	c.Status(http.StatusNoContent)
}

func (h SeasonHandler) Delete(c *gin.Context) {
	if _, ok := requireRole(c, "admin"); !ok {
		return
	}
	if h.Commands == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "commands unavailable"})
		return
	}
	_, err := commands.Dispatch[seasonsapp.DeleteSeasonCommand, struct{}](c.Request.Context(), h.Commands, seasonsapp.DeleteSeasonCommand{SeasonID: c.Param("id")})
	if err != nil {
		respondSeasonError(c, err)
		return
	}
	h.invalidateQuotes(c)
	c.Status(http.StatusNoContent)
}

func bindSeasonRequest(c *gin.Context) (seasonRequest, bool) {
	var req seasonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return seasonRequest{}, false
	}
	return req, true
}

func parseSeasonRange(c *gin.Context, req seasonRequest) (time.Time, time.Time, bool) {
	start, err := parseDateParam(req.Start)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid start date"})
		return time.Time{}, time.Time{}, false
	}
	end, err := parseDateParam(req.End)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid end date"})
		return time.Time{}, time.Time{}, false
	}
	return start, end, true
}

func respondSeasonError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domainseasons.ErrSeasonNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "season not found"})
	case errors.Is(err, domainseasons.ErrNameRequired),
		errors.Is(err, domainseasons.ErrInvalidRange),
		errors.Is(err, domainseasons.ErrInvalidCoefficient):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

var _ SeasonHTTP = SeasonHandler{}
