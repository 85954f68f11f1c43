package engine

import (
	"strings"
	"testing"

	"railpass/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newValidator() ComplianceValidator {
	cfg := DefaultConfig()
	return ComplianceValidator{
		Eligibility: EligibilityEngine{Config: cfg},
		Calculator:  TravelDayCalculator{},
	}
}

func TestCompliantItinerary(t *testing.T) {
	v := newValidator()
	segments := []domain.RailSegment{
		{ID: "s1", FromCountry: "DE", ToCountry: "FR", DepartureDate: "2026-07-02"},
		{ID: "s2", FromCountry: "FR", ToCountry: "ES", DepartureDate: "2026-07-04"},
	}

	res, err := v.Validate(segments, flexProfile(7), nil)
	require.NoError(t, err)
	assert.True(t, res.Valid)
	assert.Empty(t, res.Violations)
	assert.Equal(t, "Itinerary complies with all pass rules.", res.Explanation)
}

func TestValidityWindowViolation(t *testing.T) {
	v := newValidator()
	segments := []domain.RailSegment{
		{ID: "s1", FromCountry: "DE", ToCountry: "FR", DepartureDate: "2026-08-02"},
	}

	res, err := v.Validate(segments, flexProfile(7), nil)
	require.NoError(t, err)
	assert.False(t, res.Valid)
	require.Len(t, res.Violations, 1)
	assert.Equal(t, "OUTSIDE_VALIDITY_WINDOW", res.Violations[0].Code)
	assert.Equal(t, "s1", res.Violations[0].SegmentID)
	assert.NotEmpty(t, res.Violations[0].Suggestions)
}

func TestPendingReservationsAreWarningsNotErrors(t *testing.T) {
	v := newValidator()
	segments := []domain.RailSegment{
		{ID: "s1", FromCountry: "DE", ToCountry: "IT", DepartureDate: "2026-07-02"},
	}
	tasks := []domain.ReservationTask{
		{ID: "t1", SegmentID: "s1", Status: domain.TaskNeeded},
		{ID: "t2", SegmentID: "s2", Status: domain.TaskBooked},
	}

	res, err := v.Validate(segments, flexProfile(7), tasks)
	require.NoError(t, err)
	assert.True(t, res.Valid, "pending tasks must not fail compliance")
	require.Len(t, res.Warnings, 1)
	assert.Equal(t, "RESERVATIONS_PENDING", res.Warnings[0].Code)
	assert.Contains(t, res.Warnings[0].Message, "1 reservation task(s)")
}

func TestExplanationOrdersErrorsBeforeWarnings(t *testing.T) {
	v := newValidator()
	// day budget blown and a pending task at the same time
	segments := []domain.RailSegment{
		{ID: "s1", FromCountry: "DE", ToCountry: "FR", DepartureDate: "2026-07-02"},
		{ID: "s2", FromCountry: "FR", ToCountry: "ES", DepartureDate: "2026-07-04"},
	}
	tasks := []domain.ReservationTask{
		{ID: "t1", SegmentID: "s2", Status: domain.TaskPlanned},
	}

	res, err := v.Validate(segments, flexProfile(1), tasks)
	require.NoError(t, err)
	assert.False(t, res.Valid)

	errIdx := strings.Index(res.Explanation, "Errors:")
	warnIdx := strings.Index(res.Explanation, "Warnings:")
	require.GreaterOrEqual(t, errIdx, 0)
	require.Greater(t, warnIdx, errIdx)
	assert.Contains(t, res.Explanation, "1. ")
}

func TestValidateRejectsInvalidProfile(t *testing.T) {
	v := newValidator()
	bad := flexProfile(7)
	bad.ValidityStart = ""

	_, err := v.Validate(nil, bad, nil)
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))
}
