package domain

import (
	"strings"
	"time"
)

// WarningWindowDays is the number of days after today that still classify as YELLOW.
const WarningWindowDays = 7

const DateLayout = "2006-01-02"

type ExpiryStatus string

const (
	ExpiryStatusGreen  ExpiryStatus = "GREEN"
	ExpiryStatusYellow ExpiryStatus = "YELLOW"
	ExpiryStatusRed    ExpiryStatus = "RED"
)

func (s ExpiryStatus) IsValid() bool {
	return s == ExpiryStatusGreen || s == ExpiryStatusYellow || s == ExpiryStatusRed
}

func ParseExpiryStatus(value string) (ExpiryStatus, bool) {
	status := ExpiryStatus(strings.ToUpper(strings.TrimSpace(value)))
	return status, status.IsValid()
}

type Freshness struct {
	Status        ExpiryStatus
	DaysRemaining int
}

// DateOf returns the civil date of t in t's own location, as midnight UTC.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func ParseDate(value string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, err
	}
	return DateOf(t), nil
}

const secondsPerDay = 24 * 60 * 60

// DaysBetween counts whole calendar days from `from` to `to`; negative when to
// is earlier. It works on Unix seconds since time.Duration overflows past ~292 years.
func DaysBetween(from, to time.Time) int {
	return int((DateOf(to).Unix() - DateOf(from).Unix()) / secondsPerDay)
}

// Classify maps an expiration date to its freshness relative to referenceDate.
// Both ends of the warning window are YELLOW: expiring today and expiring in
// exactly WarningWindowDays days.
func Classify(expirationDate, referenceDate time.Time) Freshness {
	days := DaysBetween(referenceDate, expirationDate)

	status := ExpiryStatusGreen
	switch {
	case days < 0:
		status = ExpiryStatusRed
	case days <= WarningWindowDays:
		status = ExpiryStatusYellow
	}

	return Freshness{Status: status, DaysRemaining: days}
}

// ExpiryWindow returns the inclusive range of expiration dates that Classify
// maps to status for the given day. A nil bound is open.
func ExpiryWindow(status ExpiryStatus, today time.Time) (from, to *time.Time) {
	today = DateOf(today)
	lastWarningDay := today.AddDate(0, 0, WarningWindowDays)

	switch status {
	case ExpiryStatusRed:
		yesterday := today.AddDate(0, 0, -1)
		return nil, &yesterday
	case ExpiryStatusYellow:
		return &today, &lastWarningDay
	case ExpiryStatusGreen:
		firstGreenDay := lastWarningDay.AddDate(0, 0, 1)
		return &firstGreenDay, nil
	}
	return nil, nil
}
