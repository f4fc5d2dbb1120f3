package rooms

import "time"

type RoomCreated struct {
	RoomID   RoomID
	Number   string
	Category Category
	At       time.Time
}

func (e RoomCreated) EventName() string     { return "room.created" }
func (e RoomCreated) AggregateID() string   { return string(e.RoomID) }
func (e RoomCreated) OccurredAt() time.Time { return e.At }

type RoomUpdated struct {
	RoomID RoomID
	At     time.Time
}

func (e RoomUpdated) EventName() string     { return "room.updated" }
func (e RoomUpdated) AggregateID() string   { return string(e.RoomID) }
func (e RoomUpdated) OccurredAt() time.Time { return e.At }
