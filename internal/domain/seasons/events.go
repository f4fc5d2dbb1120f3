package seasons

import "time"

type SeasonCreated struct {
	SeasonID    SeasonID
	Name        string
	Coefficient float64
	At          time.Time
}

func (e SeasonCreated) EventName() string     { return "season.created" }
func (e SeasonCreated) AggregateID() string   { return string(e.SeasonID) }
func (e SeasonCreated) OccurredAt() time.Time { return e.At }

type SeasonUpdated struct {
	SeasonID SeasonID
	At       time.Time
}

func (e SeasonUpdated) EventName() string     { return "season.updated" }
func (e SeasonUpdated) AggregateID() string   { return string(e.SeasonID) }
func (e SeasonUpdated) OccurredAt() time.Time { return e.At }
