package engine

import (
	"testing"

	"railpass/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResidencyDecidesFamily(t *testing.T) {
	eng := EligibilityEngine{Config: DefaultConfig()}

	assert.Equal(t, domain.FamilyResident, eng.DetermineFamily("DE"))
	assert.Equal(t, domain.FamilyResident, eng.DetermineFamily("fr"))
	assert.Equal(t, domain.FamilyVisitor, eng.DetermineFamily("US"))
	assert.Equal(t, domain.FamilyVisitor, eng.DetermineFamily("JP"))
}

func TestHomeRulesAttachedOnlyWhenHomeRailUsed(t *testing.T) {
	eng := EligibilityEngine{Config: DefaultConfig()}

	res, err := eng.CheckEligibility("DE", []string{"FR", "IT"}, "2026-07-01")
	require.NoError(t, err)
	assert.Nil(t, res.HomeRules)

	res, err = eng.CheckEligibility("DE", []string{"DE", "FR"}, "2026-07-01")
	require.NoError(t, err)
	require.NotNil(t, res.HomeRules)
	assert.Equal(t, 1, res.HomeRules.OutboundMax)
	assert.Equal(t, 1, res.HomeRules.InboundMax)
}

func TestHomeQuotaViolationOnlyForResidentFamily(t *testing.T) {
	eng := EligibilityEngine{Config: DefaultConfig()}

	resident := domain.PassProfile{Family: domain.FamilyResident}
	violations := eng.ValidateHomeCountryUsage(resident, 2, 1)
	require.Len(t, violations, 1)
	assert.Equal(t, "HOME_OUTBOUND_EXCEEDED", violations[0].Code)

	violations = eng.ValidateHomeCountryUsage(resident, 2, 2)
	assert.Len(t, violations, 2)

	visitor := domain.PassProfile{Family: domain.FamilyVisitor}
	assert.Empty(t, eng.ValidateHomeCountryUsage(visitor, 3, 3))
}

func TestSameDayHomeTransfersCountOnce(t *testing.T) {
	eng := EligibilityEngine{Config: DefaultConfig()}

	// two home legs on the same date toward the border, one foreign leg,
	// then one home leg back
	segments := []domain.RailSegment{
		{ID: "s1", FromCountry: "DE", ToCountry: "DE", DepartureDate: "2026-07-01"},
		{ID: "s2", FromCountry: "DE", ToCountry: "DE", DepartureDate: "2026-07-01"},
		{ID: "s3", FromCountry: "DE", ToCountry: "FR", DepartureDate: "2026-07-01"},
		{ID: "s4", FromCountry: "DE", ToCountry: "DE", DepartureDate: "2026-07-09"},
	}

	out, in := eng.CountHomeUsage(segments, "DE")
	assert.Equal(t, 1, out)
	assert.Equal(t, 1, in)
}

func TestHomeUsageAcrossDatesCountsSeparately(t *testing.T) {
	eng := EligibilityEngine{Config: DefaultConfig()}

	segments := []domain.RailSegment{
		{ID: "s1", FromCountry: "DE", ToCountry: "DE", DepartureDate: "2026-07-01"},
		{ID: "s2", FromCountry: "DE", ToCountry: "DE", DepartureDate: "2026-07-02"},
		{ID: "s3", FromCountry: "DE", ToCountry: "FR", DepartureDate: "2026-07-03"},
	}

	out, in := eng.CountHomeUsage(segments, "DE")
	assert.Equal(t, 2, out)
	assert.Equal(t, 0, in)
}
