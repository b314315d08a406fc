package service

import (
	"time"

	"github.com/rafaelleal24/smartpantry/internal/core/domain"
)

// Calendar answers "what day is it" in the deployment's reference timezone.
type Calendar struct {
	location *time.Location
	now      func() time.Time
}

func NewCalendar(location *time.Location) *Calendar {
	if location == nil {
		location = time.UTC
	}
	return &Calendar{location: location, now: time.Now}
}

func (c *Calendar) Today() time.Time {
	return domain.DateOf(c.now().In(c.location))
}

func (c *Calendar) Now() time.Time {
	return c.now()
}

func (c *Calendar) Location() *time.Location {
	return c.location
}
