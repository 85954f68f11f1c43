package engine

import (
	"testing"

	"railpass/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newExecService() ExecutabilityCheckService {
	cfg := DefaultConfig()
	coverage := CoverageChecker{Config: cfg}
	eligibility := EligibilityEngine{Config: cfg}
	decision := ReservationDecisionEngine{Config: cfg}
	calc := TravelDayCalculator{}
	return ExecutabilityCheckService{
		Config:     cfg,
		Coverage:   coverage,
		Decision:   decision,
		Calculator: calc,
		Constraints: ConstraintsService{
			Config:      cfg,
			Coverage:    coverage,
			Eligibility: eligibility,
			Decision:    decision,
			Calculator:  calc,
		},
		Compliance: ComplianceValidator{Eligibility: eligibility, Calculator: calc},
	}
}

func TestItineraryReportTiers(t *testing.T) {
	svc := newExecService()
	profile := flexProfile(7)
	profile.Medium = domain.MediumMobile

	segments := []domain.RailSegment{
		// covered operator, no reservation: executable
		{ID: "s1", FromCountry: "DE", ToCountry: "DE", DepartureDate: "2026-07-02", Operator: "DB Regio"},
		// unknown operator: needs confirmation
		{ID: "s2", FromCountry: "DE", ToCountry: "AT", DepartureDate: "2026-07-03", Operator: "Alpenbahn Heritage"},
		// midnight-crossing night train: reservation needed, extra day spill
		{ID: "s3", FromCountry: "AT", ToCountry: "IT", DepartureDate: "2026-07-04", IsNightTrain: true, CrossesMidnight: true},
	}

	report, err := svc.CheckItinerary(segments, profile, nil)
	require.NoError(t, err)
	require.Len(t, report.Cards, 3)

	assert.Equal(t, 1, report.ExecutableCount)
	assert.Equal(t, 2, report.NeedConfirmationCount)
	assert.Zero(t, report.HighRiskCount)

	s1 := report.Cards[0]
	assert.Equal(t, domain.CoverageCovered, s1.CoverageStatus)
	assert.True(t, s1.ConsumesTravelDay)
	assert.False(t, s1.ExtraDaySpill)
	assert.False(t, s1.ReservationNeeded)
	require.NotEmpty(t, s1.MediumReminders)
	assert.NotEmpty(t, s1.SeasonWarnings, "July departures warn about peak season")

	s2 := report.Cards[1]
	assert.Equal(t, domain.CoverageUnknown, s2.CoverageStatus)
	require.NotEmpty(t, s2.KeySuggestions)
	assert.Contains(t, s2.KeySuggestions[0], "confirm operator coverage")

	s3 := report.Cards[2]
	assert.True(t, s3.ExtraDaySpill)
	assert.True(t, s3.ReservationNeeded)
	assert.NotEmpty(t, s3.RuleExplanations)
}

func TestMissingInfoSurfacedOnReport(t *testing.T) {
	svc := newExecService()
	profile := flexProfile(7) // medium left empty

	segments := []domain.RailSegment{
		{ID: "s1", FromCountry: "DE", ToCountry: "DE", DepartureDate: "2026-07-02", Operator: "DB Regio"},
	}

	report, err := svc.CheckItinerary(segments, profile, nil)
	require.NoError(t, err)
	assert.Contains(t, report.MissingInfo, "ticketMedium")
}

func TestKeySuggestionsCappedAtTwo(t *testing.T) {
	cov := CoverageResult{Status: domain.CoverageNotCovered}
	req := domain.ReservationRequirement{Required: true, QuotaRisk: domain.RiskHigh}

	got := keySuggestions(cov, req)
	assert.LessOrEqual(t, len(got), 2)
	assert.Contains(t, got[0], "separate ticket")
}

func TestHighRiskAlertsRankAlternatives(t *testing.T) {
	svc := newExecService()
	segments := []domain.RailSegment{
		{ID: "s1", FromCountry: "DE", ToCountry: "IT", DepartureDate: "2026-08-02", IsNightTrain: true},
	}
	compliance := ComplianceResult{
		Violations: []domain.Violation{
			{Code: "OUTSIDE_VALIDITY_WINDOW", Severity: domain.SeverityError, SegmentID: "s1", Message: "outside validity"},
			{Code: "RESERVATIONS_PENDING", Severity: domain.SeverityWarning, Message: "pending"},
		},
	}

	alerts := svc.GenerateHighRiskAlerts(segments, compliance)
	require.Len(t, alerts, 1, "warnings never become alerts")
	alert := alerts[0]
	assert.Equal(t, "OUTSIDE_VALIDITY_WINDOW", alert.Type)
	require.NotEmpty(t, alert.Alternatives)

	for i, alt := range alert.Alternatives {
		assert.Equal(t, i+1, alt.Rank)
		if i > 0 {
			prev := alert.Alternatives[i-1]
			if prev.DayDelta == alt.DayDelta {
				assert.LessOrEqual(t, prev.CostDelta, alt.CostDelta)
			} else {
				assert.Less(t, prev.DayDelta, alt.DayDelta)
			}
		}
	}
}

func TestBudgetAlertWithoutSegmentGetsGenericAlternatives(t *testing.T) {
	svc := newExecService()
	compliance := ComplianceResult{
		Violations: []domain.Violation{
			{Code: "TRAVEL_DAYS_EXCEEDED", Severity: domain.SeverityError, Message: "over budget"},
		},
	}

	alerts := svc.GenerateHighRiskAlerts(nil, compliance)
	require.Len(t, alerts, 1)
	require.Len(t, alerts[0].Alternatives, 2)
	assert.Contains(t, alerts[0].Alternatives[0].Action, "shorten the itinerary")
}
