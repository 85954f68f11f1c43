package domain

import (
	"strings"
	"time"
)

// PassProfile describes the purchased (or candidate) pass for one traveler.
// travelDaysTotal only means something under flexible validity.
type PassProfile struct {
	ResidencyCountry string       `json:"residencyCountry"`
	Family           PassFamily   `json:"family"`
	Scope            PassScope    `json:"scope"`
	CountryCode      string       `json:"countryCode,omitempty"` // set for single-country scope
	ValidityMode     ValidityMode `json:"validityMode"`
	TravelDaysTotal  int          `json:"travelDaysTotal,omitempty"`
	ValidityStart    string       `json:"validityStart"` // YYYY-MM-DD
	ValidityEnd      string       `json:"validityEnd"`   // YYYY-MM-DD
	Class            ClassLevel   `json:"class"`
	Medium           TicketMedium `json:"medium,omitempty"`

	// Home-country usage counters, each capped at 1 for the resident family.
	HomeOutboundUsed int `json:"homeOutboundUsed"`
	HomeInboundUsed  int `json:"homeInboundUsed"`
}

const dateLayout = "2006-01-02"

// ParseDay parses a YYYY-MM-DD calendar date.
func ParseDay(s string) (time.Time, error) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, ValidationError{Field: "date", Msg: "expected YYYY-MM-DD", Err: err}
	}
	return t, nil
}

// Validate fails fast on structurally broken profiles. Missing medium and a
// missing flexible day budget are tolerated; callers record them in
// missingInfo and continue with safe defaults.
func (p PassProfile) Validate() error {
	if strings.TrimSpace(p.ResidencyCountry) == "" {
		return ValidationError{Field: "residencyCountry", Msg: "required"}
	}
	if p.Family != FamilyResident && p.Family != FamilyVisitor {
		return ValidationError{Field: "family", Msg: "unknown pass family"}
	}
	if p.Scope == ScopeSingleCountry && strings.TrimSpace(p.CountryCode) == "" {
		return ValidationError{Field: "countryCode", Msg: "required for single-country scope"}
	}
	if p.ValidityMode != ValidityFlexible && p.ValidityMode != ValidityContinuous {
		return ValidationError{Field: "validityMode", Msg: "unknown validity mode"}
	}
	start, err := ParseDay(p.ValidityStart)
	if err != nil {
		return ValidationError{Field: "validityStart", Msg: "expected YYYY-MM-DD", Err: err}
	}
	end, err := ParseDay(p.ValidityEnd)
	if err != nil {
		return ValidationError{Field: "validityEnd", Msg: "expected YYYY-MM-DD", Err: err}
	}
	if end.Before(start) {
		return ValidationError{Field: "validityEnd", Msg: "before validityStart"}
	}
	if p.ValidityMode == ValidityContinuous && p.TravelDaysTotal != 0 {
		return ValidationError{Field: "travelDaysTotal", Msg: "meaningless under continuous validity"}
	}
	return nil
}

// MissingInfo lists tolerated gaps a report should surface to the user.
func (p PassProfile) MissingInfo() []string {
	var missing []string
	if p.Medium == "" {
		missing = append(missing, "ticketMedium")
	}
	if p.ValidityMode == ValidityFlexible && p.TravelDaysTotal <= 0 {
		missing = append(missing, "travelDaysTotal")
	}
	return missing
}

// WithinValidity reports whether a YYYY-MM-DD date sits inside the pass window.
func (p PassProfile) WithinValidity(date string) (bool, error) {
	d, err := ParseDay(date)
	if err != nil {
		return false, err
	}
	start, err := ParseDay(p.ValidityStart)
	if err != nil {
		return false, err
	}
	end, err := ParseDay(p.ValidityEnd)
	if err != nil {
		return false, err
	}
	return !d.Before(start) && !d.After(end), nil
}
