package domain

import (
	"strconv"
	"strings"
)

// RailSegment is one leg of the itinerary. Segments are immutable inputs;
// engines never mutate them, regeneration returns fresh copies.
type RailSegment struct {
	ID            string `json:"id"`
	FromPlace     string `json:"fromPlace"`
	ToPlace       string `json:"toPlace"`
	FromCountry   string `json:"fromCountry"`
	ToCountry     string `json:"toCountry"`
	DepartureDate string `json:"departureDate"` // YYYY-MM-DD, the unit of day accounting

	DepartureTimeFrom string `json:"departureTimeFrom,omitempty"` // HH:MM window start
	DepartureTimeTo   string `json:"departureTimeTo,omitempty"`   // HH:MM window end
	ArriveBy          string `json:"arriveBy,omitempty"`          // HH:MM deadline

	IsNightTrain    bool `json:"isNightTrain"`
	IsHighSpeed     bool `json:"isHighSpeed"`
	IsInternational bool `json:"isInternational"`
	// CrossesMidnight is supplied by the caller, never derived here.
	CrossesMidnight bool `json:"crossesMidnight"`

	Operator string `json:"operator,omitempty"`
}

// Validate fails fast on segments no engine could reason about.
func (s RailSegment) Validate() error {
	if strings.TrimSpace(s.FromCountry) == "" || strings.TrimSpace(s.ToCountry) == "" {
		return ValidationError{Field: "country", Msg: "origin and destination country codes required"}
	}
	if _, err := ParseDay(s.DepartureDate); err != nil {
		return ValidationError{Field: "departureDate", Msg: "expected YYYY-MM-DD", Err: err}
	}
	return nil
}

// ValidateSegments checks a whole itinerary up front.
func ValidateSegments(segments []RailSegment) error {
	for i, s := range segments {
		if err := s.Validate(); err != nil {
			return ValidationError{Field: "segments", Msg: "segment " + strconv.Itoa(i) + ": " + err.Error(), Err: err}
		}
	}
	return nil
}
