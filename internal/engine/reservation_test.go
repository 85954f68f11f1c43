package engine

import (
	"testing"
	"time"

	"railpass/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNightTrainRequiresReservation(t *testing.T) {
	eng := ReservationDecisionEngine{Config: DefaultConfig()}
	seg := domain.RailSegment{
		ID: "s1", FromCountry: "DE", ToCountry: "IT",
		DepartureDate: "2026-03-10", IsNightTrain: true,
	}

	req, err := eng.CheckReservation(seg)
	require.NoError(t, err)
	assert.True(t, req.Required)
	assert.Equal(t, domain.ReasonNightTrain, req.Reason)
	require.NotNil(t, req.FeeEstimate)
	assert.Equal(t, "EUR", req.FeeEstimate.Currency)
	assert.LessOrEqual(t, req.FeeEstimate.Min, req.FeeEstimate.Max)
}

func TestReasonResolutionOrder(t *testing.T) {
	eng := ReservationDecisionEngine{Config: DefaultConfig()}

	cases := []struct {
		name string
		seg  domain.RailSegment
		want domain.MandatoryReason
	}{
		{
			name: "night train wins over everything",
			seg:  domain.RailSegment{ID: "a", FromCountry: "DE", ToCountry: "FR", DepartureDate: "2026-03-10", IsNightTrain: true, IsHighSpeed: true, IsInternational: true},
			want: domain.ReasonNightTrain,
		},
		{
			name: "high speed before international",
			seg:  domain.RailSegment{ID: "b", FromCountry: "DE", ToCountry: "FR", DepartureDate: "2026-03-10", IsHighSpeed: true, IsInternational: true},
			want: domain.ReasonHighSpeed,
		},
		{
			name: "international alone",
			seg:  domain.RailSegment{ID: "c", FromCountry: "DE", ToCountry: "FR", DepartureDate: "2026-03-10", IsInternational: true},
			want: domain.ReasonInternational,
		},
		{
			name: "operator policy",
			seg:  domain.RailSegment{ID: "d", FromCountry: "FR", ToCountry: "FR", DepartureDate: "2026-03-10", Operator: "TGV inOui"},
			want: domain.ReasonOperatorPolicy,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req, err := eng.CheckReservation(tc.seg)
			require.NoError(t, err)
			assert.True(t, req.Required)
			assert.Equal(t, tc.want, req.Reason)
		})
	}
}

func TestCheckReservationIsPure(t *testing.T) {
	eng := ReservationDecisionEngine{
		Config: DefaultConfig(),
		Now:    time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC),
	}
	seg := domain.RailSegment{
		ID: "s1", FromCountry: "DE", ToCountry: "IT",
		DepartureDate: "2026-07-02", IsNightTrain: true, CrossesMidnight: true,
	}

	first, err := eng.CheckReservation(seg)
	require.NoError(t, err)
	second, err := eng.CheckReservation(seg)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestQuotaRiskScoring(t *testing.T) {
	now := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
	eng := ReservationDecisionEngine{Config: DefaultConfig(), Now: now}

	// night train (+2), peak month (+1), imminent departure (+2) => high
	hot := domain.RailSegment{
		ID: "hot", FromCountry: "DE", ToCountry: "IT",
		DepartureDate: "2026-07-02", IsNightTrain: true,
	}
	req, err := eng.CheckReservation(hot)
	require.NoError(t, err)
	assert.Equal(t, domain.RiskHigh, req.QuotaRisk)

	// plain regional leg in the off season => low
	calm := domain.RailSegment{
		ID: "calm", FromCountry: "DE", ToCountry: "DE",
		DepartureDate: "2026-10-20",
	}
	req, err = eng.CheckReservation(calm)
	require.NoError(t, err)
	assert.Equal(t, domain.RiskLow, req.QuotaRisk)
	assert.False(t, req.Required)
}

func TestFallbackOptionsSuperset(t *testing.T) {
	eng := ReservationDecisionEngine{Config: DefaultConfig()}

	kinds := func(opts []domain.FallbackOption) map[domain.FallbackKind]bool {
		m := map[domain.FallbackKind]bool{}
		for _, o := range opts {
			m[o.Kind] = true
		}
		return m
	}

	plain := domain.RailSegment{ID: "p", FromCountry: "DE", ToCountry: "FR", DepartureDate: "2026-03-10"}
	got := kinds(eng.GenerateFallbackOptions(plain))
	assert.True(t, got[domain.FallbackShiftTime])
	assert.True(t, got[domain.FallbackChangeRoute])
	assert.True(t, got[domain.FallbackFlight])
	assert.True(t, got[domain.FallbackBus])
	assert.False(t, got[domain.FallbackSlowTrain])
	assert.False(t, got[domain.FallbackSplitNight])

	fast := plain
	fast.ID = "f"
	fast.IsHighSpeed = true
	assert.True(t, kinds(eng.GenerateFallbackOptions(fast))[domain.FallbackSlowTrain])

	night := plain
	night.ID = "n"
	night.IsNightTrain = true
	assert.True(t, kinds(eng.GenerateFallbackOptions(night))[domain.FallbackSplitNight])
}
