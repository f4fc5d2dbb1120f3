package dto

import (
	"time"

	"bookingengine/internal/domain/reservation"
)

type ConflictingStay struct {
	ReservationID string    `json:"reservation_id"`
	CheckIn       time.Time `json:"check_in"`
	CheckOut      time.Time `json:"check_out"`
	Status        string    `json:"status"`
}

type Availability struct {
	RoomID    string            `json:"room_id"`
	CheckIn   time.Time         `json:"check_in"`
	CheckOut  time.Time         `json:"check_out"`
	Available bool              `json:"available"`
	Conflicts []ConflictingStay `json:"conflicts,omitempty"`
}

func MapConflicts(conflicts []*reservation.Reservation) []ConflictingStay {
	out := make([]ConflictingStay, 0, len(conflicts))
	for _, r := range conflicts {
		out = append(out, ConflictingStay{
			ReservationID: string(r.ID),
			CheckIn:       r.Stay.CheckIn,
			CheckOut:      r.Stay.CheckOut,
			Status:        string(r.Status),
		})
	}
	return out
}
