package entity

import (
	"errors"
)

var (
	// ErrConfigurationMissing means no price-table entry exists for a resolved
	// day type and arrangement. The booking must not proceed with a zero price.
	ErrConfigurationMissing = errors.New("pricing configuration missing")

	// ErrCapacityExceeded means the requested seats cannot be satisfied by the
	// event's remaining capacity.
	ErrCapacityExceeded = errors.New("capacity exceeded")

	// ErrArrangementNotAllowed means the requested arrangement is not in the
	// event's allowed set.
	ErrArrangementNotAllowed = errors.New("arrangement not allowed for event")

	// ErrEventNotBookable means the event is inactive or otherwise closed for
	// bookings.
	ErrEventNotBookable = errors.New("event not bookable")
)
