package engine

import (
	"fmt"
	"strings"

	"railpass/internal/domain"
)

// CoverageChecker decides whether a leg sits inside the purchased network.
type CoverageChecker struct {
	Config Config
}

// CoverageResult is the checker's verdict for one segment. Unknown is a real
// answer; downstream aggregation must not treat it as covered.
type CoverageResult struct {
	SegmentID    string                  `json:"segmentId"`
	Covered      bool                    `json:"covered"`
	Status       domain.CoverageStatus   `json:"status"`
	Explanation  string                  `json:"explanation"`
	Alternatives []domain.FallbackOption `json:"alternatives,omitempty"`
}

// CheckCoverage evaluates one segment against the pass scope and the operator
// lists. Order matters: scope first, then city transit, then the allow-list.
func (c CoverageChecker) CheckCoverage(seg domain.RailSegment, profile domain.PassProfile) (CoverageResult, error) {
	if err := seg.Validate(); err != nil {
		return CoverageResult{}, err
	}

	if profile.Scope == domain.ScopeSingleCountry {
		if !strings.EqualFold(seg.FromCountry, seg.ToCountry) {
			return CoverageResult{
				SegmentID: seg.ID,
				Covered:   false,
				Status:    domain.CoverageNotCovered,
				Explanation: fmt.Sprintf("single-country pass (%s) does not cover %s-%s",
					profile.CountryCode, seg.FromCountry, seg.ToCountry),
				Alternatives: cityTransitAlternatives(),
			}, nil
		}
		if profile.CountryCode != "" && !strings.EqualFold(seg.FromCountry, profile.CountryCode) {
			return CoverageResult{
				SegmentID: seg.ID,
				Covered:   false,
				Status:    domain.CoverageNotCovered,
				Explanation: fmt.Sprintf("pass is valid in %s only, segment runs in %s",
					profile.CountryCode, seg.FromCountry),
			}, nil
		}
	}

	if c.IsCityTransit(seg) {
		return CoverageResult{
			SegmentID:    seg.ID,
			Covered:      false,
			Status:       domain.CoverageNotCovered,
			Explanation:  fmt.Sprintf("operator %q is city transit, never covered by a rail pass", seg.Operator),
			Alternatives: cityTransitAlternatives(),
		}, nil
	}

	if matchesAny(seg.Operator, c.Config.CoveredOperators) {
		return CoverageResult{
			SegmentID:   seg.ID,
			Covered:     true,
			Status:      domain.CoverageCovered,
			Explanation: fmt.Sprintf("operator %q is in the covered network", seg.Operator),
		}, nil
	}

	return CoverageResult{
		SegmentID:   seg.ID,
		Covered:     false,
		Status:      domain.CoverageUnknown,
		Explanation: "operator not recognized; confirm coverage before travel",
	}, nil
}

// IsCityTransit reports whether the leg looks like urban transit.
func (c CoverageChecker) IsCityTransit(seg domain.RailSegment) bool {
	return matchesAny(seg.Operator, c.Config.CityTransitOperators)
}

func cityTransitAlternatives() []domain.FallbackOption {
	return []domain.FallbackOption{
		{ID: "alt-metro", Kind: domain.FallbackBus, Description: "metro or urban rail", TimeDeltaMin: 0, CostDelta: 3},
		{ID: "alt-bus", Kind: domain.FallbackBus, Description: "local bus", TimeDeltaMin: 15, CostDelta: 2.5},
		{ID: "alt-taxi", Kind: domain.FallbackBus, Description: "taxi or rideshare", TimeDeltaMin: -5, CostDelta: 18},
		{ID: "alt-walk", Kind: domain.FallbackBus, Description: "walk if under 2 km", TimeDeltaMin: 25, CostDelta: 0},
	}
}
