package services

import (
	"strings"
	"testing"

	"railpass/internal/domain"
	"railpass/internal/engine"
)

func testProfile() domain.PassProfile {
	return domain.PassProfile{
		ResidencyCountry: "DE",
		Family:           domain.FamilyResident,
		Scope:            domain.ScopeNetwork,
		ValidityMode:     domain.ValidityFlexible,
		TravelDaysTotal:  7,
		ValidityStart:    "2026-07-01",
		ValidityEnd:      "2026-07-31",
		Class:            domain.ClassSecond,
		Medium:           domain.MediumMobile,
	}
}

func testTripPackService() TripPackService {
	cfg := engine.DefaultConfig()
	coverage := engine.CoverageChecker{Config: cfg}
	eligibility := engine.EligibilityEngine{Config: cfg}
	decision := engine.ReservationDecisionEngine{Config: cfg}
	calc := engine.TravelDayCalculator{}
	constraints := engine.ConstraintsService{
		Config: cfg, Coverage: coverage, Eligibility: eligibility,
		Decision: decision, Calculator: calc,
	}
	compliance := engine.ComplianceValidator{Eligibility: eligibility, Calculator: calc}
	return TripPackService{
		Compliance: compliance,
		Executable: engine.ExecutabilityCheckService{
			Config: cfg, Coverage: coverage, Decision: decision,
			Calculator: calc, Constraints: constraints, Compliance: compliance,
		},
	}
}

func TestGenerateTripPack(t *testing.T) {
	svc := testTripPackService()

	segments := []domain.RailSegment{
		{ID: "s1", FromPlace: "Berlin", ToPlace: "Munich", FromCountry: "DE", ToCountry: "DE", DepartureDate: "2026-07-02", Operator: "DB Fernverkehr"},
		{ID: "s2", FromPlace: "Munich", ToPlace: "Rome", FromCountry: "DE", ToCountry: "IT", DepartureDate: "2026-07-03", IsNightTrain: true, CrossesMidnight: true},
	}
	tasks := []domain.ReservationTask{
		{
			ID: "t1", SegmentID: "s2", Status: domain.TaskNeeded, TravelDate: "2026-07-03",
			Requirement: domain.ReservationRequirement{
				SegmentID: "s2", Required: true, Reason: domain.ReasonNightTrain,
				FeeEstimate: &domain.FeeEstimate{Min: 20, Max: 150, Currency: "EUR"},
			},
		},
	}

	pdf, filename, err := svc.GenerateTripPack("summer trip/2026", segments, testProfile(), tasks)
	if err != nil {
		t.Fatalf("GenerateTripPack returned error: %v", err)
	}
	if len(pdf) == 0 {
		t.Fatalf("GenerateTripPack returned empty data")
	}
	if filename != "TRIPPACK_summer_trip-2026.pdf" {
		t.Fatalf("unexpected filename %q", filename)
	}
	if !strings.HasPrefix(string(pdf[:5]), "%PDF-") {
		t.Fatalf("output is not a PDF, starts with %q", pdf[:5])
	}
}

func TestGenerateTripPackWithoutTasks(t *testing.T) {
	svc := testTripPackService()

	segments := []domain.RailSegment{
		{ID: "s1", FromPlace: "Vienna", ToPlace: "Graz", FromCountry: "AT", ToCountry: "AT", DepartureDate: "2026-07-05", Operator: "ÖBB"},
	}
	profile := testProfile()
	profile.ResidencyCountry = "AT"

	pdf, filename, err := svc.GenerateTripPack("at-1", segments, profile, nil)
	if err != nil {
		t.Fatalf("GenerateTripPack returned error: %v", err)
	}
	if len(pdf) == 0 || filename == "" {
		t.Fatalf("GenerateTripPack returned empty data")
	}
}

func TestGenerateTripPackRejectsBrokenProfile(t *testing.T) {
	svc := testTripPackService()
	profile := testProfile()
	profile.Family = ""

	if _, _, err := svc.GenerateTripPack("x", nil, profile, nil); err == nil {
		t.Fatalf("broken profile should be rejected before rendering")
	}
}
