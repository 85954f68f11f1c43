package domain

import "testing"

func validProfile() PassProfile {
	return PassProfile{
		ResidencyCountry: "DE",
		Family:           FamilyResident,
		Scope:            ScopeNetwork,
		ValidityMode:     ValidityFlexible,
		TravelDaysTotal:  7,
		ValidityStart:    "2026-07-01",
		ValidityEnd:      "2026-07-31",
		Class:            ClassSecond,
	}
}

func TestProfileValidate(t *testing.T) {
	if err := validProfile().Validate(); err != nil {
		t.Fatalf("valid profile rejected: %v", err)
	}

	p := validProfile()
	p.ValidityMode = ValidityContinuous
	if err := p.Validate(); err == nil {
		t.Fatalf("travelDaysTotal under continuous validity should be rejected")
	}
	p.TravelDaysTotal = 0
	if err := p.Validate(); err != nil {
		t.Fatalf("continuous profile without day budget rejected: %v", err)
	}

	p = validProfile()
	p.Scope = ScopeSingleCountry
	if err := p.Validate(); err == nil {
		t.Fatalf("single-country scope without countryCode should be rejected")
	}

	p = validProfile()
	p.ValidityEnd = "2026-06-01"
	if err := p.Validate(); err == nil {
		t.Fatalf("validity window ending before start should be rejected")
	}
}

func TestMissingInfoToleratedGaps(t *testing.T) {
	p := validProfile()
	if got := p.MissingInfo(); len(got) != 1 || got[0] != "ticketMedium" {
		t.Fatalf("expected missing ticketMedium, got %v", got)
	}

	p.Medium = MediumMobile
	p.TravelDaysTotal = 0
	got := p.MissingInfo()
	if len(got) != 1 || got[0] != "travelDaysTotal" {
		t.Fatalf("expected missing travelDaysTotal, got %v", got)
	}
}

func TestWithinValidity(t *testing.T) {
	p := validProfile()
	cases := []struct {
		date string
		want bool
	}{
		{"2026-07-01", true},
		{"2026-07-31", true},
		{"2026-06-30", false},
		{"2026-08-01", false},
	}
	for _, tc := range cases {
		got, err := p.WithinValidity(tc.date)
		if err != nil {
			t.Fatalf("WithinValidity(%s) returned error: %v", tc.date, err)
		}
		if got != tc.want {
			t.Fatalf("WithinValidity(%s) = %t, want %t", tc.date, got, tc.want)
		}
	}

	if _, err := p.WithinValidity("31/07/2026"); err == nil {
		t.Fatalf("malformed date should error")
	}
}
