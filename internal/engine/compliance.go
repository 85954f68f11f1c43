package engine

import (
	"fmt"
	"strings"

	"railpass/internal/domain"
)

// ComplianceValidator composes the leaf checks into one verdict.
type ComplianceValidator struct {
	Eligibility EligibilityEngine
	Calculator  TravelDayCalculator
}

// ComplianceResult is the single pass/fail answer plus its evidence.
type ComplianceResult struct {
	Valid       bool               `json:"valid"`
	Violations  []domain.Violation `json:"violations"`
	Warnings    []domain.Violation `json:"warnings"`
	Explanation string             `json:"explanation"`
}

// Validate runs home-quota, day-budget, validity-window and pending-task
// checks and renders a deterministic numbered explanation.
func (v ComplianceValidator) Validate(
	segments []domain.RailSegment,
	profile domain.PassProfile,
	tasks []domain.ReservationTask,
) (ComplianceResult, error) {
	if err := profile.Validate(); err != nil {
		return ComplianceResult{}, err
	}
	if err := domain.ValidateSegments(segments); err != nil {
		return ComplianceResult{}, err
	}

	var violations, warnings []domain.Violation

	out, in := v.Eligibility.CountHomeUsage(segments, profile.ResidencyCountry)
	violations = append(violations, v.Eligibility.ValidateHomeCountryUsage(
		profile, profile.HomeOutboundUsed+out, profile.HomeInboundUsed+in)...)

	days, err := v.Calculator.Calculate(segments, profile)
	if err != nil {
		return ComplianceResult{}, err
	}
	violations = append(violations, days.Violations...)

	for _, seg := range segments {
		inside, err := profile.WithinValidity(seg.DepartureDate)
		if err != nil {
			return ComplianceResult{}, err
		}
		if !inside {
			violations = append(violations, domain.Violation{
				Code:      "OUTSIDE_VALIDITY_WINDOW",
				Severity:  domain.SeverityError,
				Message:   fmt.Sprintf("segment departs %s, outside pass validity %s..%s", seg.DepartureDate, profile.ValidityStart, profile.ValidityEnd),
				SegmentID: seg.ID,
				Suggestions: []string{
					"move the segment inside the validity window",
					"extend the pass validity",
				},
			})
		}
	}

	if pending := PendingTasks(tasks); len(pending) > 0 {
		ids := make([]string, 0, len(pending))
		for _, t := range pending {
			ids = append(ids, t.SegmentID)
		}
		warnings = append(warnings, domain.Violation{
			Code:     "RESERVATIONS_PENDING",
			Severity: domain.SeverityWarning,
			Message:  fmt.Sprintf("%d reservation task(s) not yet booked", len(pending)),
			Details:  map[string]any{"segmentIds": ids},
			Suggestions: []string{
				"book pending reservations before departure",
			},
		})
	}

	res := ComplianceResult{
		Valid:      len(violations) == 0,
		Violations: violations,
		Warnings:   warnings,
	}
	res.Explanation = renderExplanation(violations, warnings)
	return res, nil
}

// renderExplanation is deterministic: errors first, numbered, then warnings.
func renderExplanation(violations, warnings []domain.Violation) string {
	if len(violations) == 0 && len(warnings) == 0 {
		return "Itinerary complies with all pass rules."
	}
	var b strings.Builder
	if len(violations) > 0 {
		b.WriteString("Errors:\n")
		for i, v := range violations {
			fmt.Fprintf(&b, "%d. %s\n", i+1, v.Message)
		}
	}
	if len(warnings) > 0 {
		b.WriteString("Warnings:\n")
		for i, w := range warnings {
			fmt.Fprintf(&b, "%d. %s\n", i+1, w.Message)
		}
	}
	return strings.TrimRight(b.String(), "\n")
}
