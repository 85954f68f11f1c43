package engine

import (
	"testing"

	"railpass/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScopeFollowsBorderCrossings(t *testing.T) {
	eng := PassSelectionEngine{Calculator: TravelDayCalculator{}}

	rec, err := eng.Recommend(TripShape{SegmentCount: 6, CrossCountry: 3})
	require.NoError(t, err)
	assert.Equal(t, domain.ScopeNetwork, rec.Scope)

	rec, err = eng.Recommend(TripShape{SegmentCount: 6, CrossCountry: 1, SingleCountry: "IT"})
	require.NoError(t, err)
	assert.Equal(t, domain.ScopeSingleCountry, rec.Scope)
}

func TestDailyTravelGetsContinuousMode(t *testing.T) {
	eng := PassSelectionEngine{Calculator: TravelDayCalculator{}}

	rec, err := eng.Recommend(TripShape{SegmentCount: 20, CrossCountry: 4, DailyTravel: true})
	require.NoError(t, err)
	assert.Equal(t, domain.ValidityContinuous, rec.ValidityMode)
	assert.Zero(t, rec.TravelDaysTotal)
}

func TestDayBudgetRoundsToFiveDayTiers(t *testing.T) {
	eng := PassSelectionEngine{Calculator: TravelDayCalculator{}}

	// ceil(6 / 2.5) = 3, floored up to the 5-day tier
	rec, err := eng.Recommend(TripShape{SegmentCount: 6, CrossCountry: 2})
	require.NoError(t, err)
	assert.Equal(t, 5, rec.TravelDaysTotal)

	// ceil(16 / 2.5) = 7, next tier is 10
	rec, err = eng.Recommend(TripShape{SegmentCount: 16, CrossCountry: 2})
	require.NoError(t, err)
	assert.Equal(t, 10, rec.TravelDaysTotal)
}

func TestDayBudgetFromSampleSimulation(t *testing.T) {
	eng := PassSelectionEngine{Calculator: TravelDayCalculator{}}

	shape := TripShape{
		SegmentCount: 2,
		CrossCountry: 2,
		SampleSegments: []domain.RailSegment{
			{ID: "s1", FromCountry: "DE", ToCountry: "AT", DepartureDate: "2026-07-02"},
			{ID: "s2", FromCountry: "AT", ToCountry: "IT", DepartureDate: "2026-07-04", IsNightTrain: true, CrossesMidnight: true},
		},
	}
	rec, err := eng.Recommend(shape)
	require.NoError(t, err)
	// simulation counts 3 calendar days, tiered up to 5
	assert.Equal(t, 5, rec.TravelDaysTotal)
}

func TestClassAndMediumPreferences(t *testing.T) {
	eng := PassSelectionEngine{Calculator: TravelDayCalculator{}}

	rec, err := eng.Recommend(TripShape{SegmentCount: 4, CrossCountry: 2, PreferFirst: true})
	require.NoError(t, err)
	assert.Equal(t, domain.ClassFirst, rec.Class)

	rec, err = eng.Recommend(TripShape{SegmentCount: 4, CrossCountry: 2, PreferFirst: true, BudgetSensitive: true})
	require.NoError(t, err)
	assert.Equal(t, domain.ClassSecond, rec.Class)

	rec, err = eng.Recommend(TripShape{SegmentCount: 4, CrossCountry: 2, PreferPaper: true})
	require.NoError(t, err)
	assert.Equal(t, domain.MediumPaper, rec.Medium)
	assert.Empty(t, rec.Reminders)

	rec, err = eng.Recommend(TripShape{SegmentCount: 4, CrossCountry: 2})
	require.NoError(t, err)
	assert.Equal(t, domain.MediumMobile, rec.Medium)
	require.NotEmpty(t, rec.Reminders)
	assert.Contains(t, rec.Reminders[0], "re-validation")
}
