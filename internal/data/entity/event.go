package entity

import (
	"time"
)

type EventType string

const (
	EventTypeRegular    EventType = "REGULAR"
	EventTypeMatinee    EventType = "MATINEE"
	EventTypeCareHeroes EventType = "CARE_HEROES"
	EventTypeRequest    EventType = "REQUEST"
)

// DayType selects which price-table row applies to an event.
type DayType string

const (
	DayTypeWeekday    DayType = "weekday"
	DayTypeWeekend    DayType = "weekend"
	DayTypeMatinee    DayType = "matinee"
	DayTypeCareHeroes DayType = "care_heroes"
)

type Arrangement string

const (
	ArrangementBWF  Arrangement = "BWF"
	ArrangementBWFM Arrangement = "BWFM"
)

type Event struct {
	Base
	Date                time.Time               `db:"date"`
	Type                EventType               `db:"type"`
	Capacity            int                     `db:"capacity"`
	RemainingCapacity   int                     `db:"remaining_capacity"`
	AllowedArrangements []Arrangement           `db:"allowed_arrangements"`
	CustomPricing       map[Arrangement]float64 `db:"custom_pricing"`
	DoorsOpen           string                  `db:"doors_open"`
	StartsAt            string                  `db:"starts_at"`
	EndsAt              string                  `db:"ends_at"`
	IsActive            bool                    `db:"is_active"`
	WaitlistActive      bool                    `db:"waitlist_active"`
}

// AllowsArrangement reports whether the arrangement is bookable for this event.
// An empty allowed set means every arrangement is allowed.
func (e *Event) AllowsArrangement(arrangement Arrangement) bool {
	if len(e.AllowedArrangements) == 0 {
		return true
	}
	for _, a := range e.AllowedArrangements {
		if a == arrangement {
			return true
		}
	}
	return false
}
