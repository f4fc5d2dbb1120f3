package dto

import (
	"time"

	"bookingengine/internal/domain/rooms"
)

type Room struct {
	ID               string    `json:"id"`
	Number           string    `json:"number"`
	Category         string    `json:"category"`
	BaseNightlyCents int64     `json:"base_nightly_cents"`
	Currency         string    `json:"currency"`
	Capacity         int       `json:"capacity"`
	Description      string    `json:"description,omitempty"`
	Available        bool      `json:"available"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

func MapRoom(r *rooms.Room) Room {
	if r == nil {
		return Room{}
	}
	return Room{
		ID:               string(r.ID),
		Number:           r.Number,
		Category:         string(r.Category),
		BaseNightlyCents: r.BaseNightly.Amount,
		Currency:         r.BaseNightly.Currency,
		Capacity:         r.Capacity,
		Description:      r.Description,
		Available:        r.Available,
		CreatedAt:        r.CreatedAt,
		UpdatedAt:        r.UpdatedAt,
	}
}

func MapRooms(items []*rooms.Room) []Room {
	out := make([]Room, 0, len(items))
	for _, r := range items {
		out = append(out, MapRoom(r))
	}
	return out
}
