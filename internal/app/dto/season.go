package dto

import (
	"time"

	"bookingengine/internal/domain/seasons"
)

type Season struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Start       string    `json:"start"`
	End         string    `json:"end"`
	Coefficient float64   `json:"coefficient"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func MapSeason(s *seasons.Season) Season {
	if s == nil {
		return Season{}
	}
	return Season{
		ID:          string(s.ID),
		Name:        s.Name,
		Start:       s.Start.Format("2006-01-02"),
		End:         s.End.Format("2006-01-02"),
		Coefficient: s.Coefficient,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

func MapSeasons(items []*seasons.Season) []Season {
	out := make([]Season, 0, len(items))
	for _, s := range items {
		out = append(out, MapSeason(s))
	}
	return out
}
