package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// NewID returns an opaque unique identifier for any stored row
func NewID() string {
	return uuid.NewString()
}

// DateLayout is the wire format for calendar dates (dob, doj, holidays)
const DateLayout = "2006-01-02"

// ParseDate accepts a calendar date or a full RFC 3339 timestamp and
// returns the UTC calendar day.
func ParseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if t, err := time.Parse(DateLayout, value); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, err
	}
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
}
