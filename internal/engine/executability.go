package engine

import (
	"fmt"
	"sort"

	"railpass/internal/domain"
)

// ExecutabilityCheckService builds the layered, UI-consumable report: one
// three-tier card per segment plus an itinerary tally and ranked alerts.
type ExecutabilityCheckService struct {
	Config      Config
	Coverage    CoverageChecker
	Decision    ReservationDecisionEngine
	Calculator  TravelDayCalculator
	Constraints ConstraintsService
	Compliance  ComplianceValidator
}

// SegmentCard is the per-segment report. Tier 1 is always shown, tier 2 on
// expansion, tier 3 is collapsible detail.
type SegmentCard struct {
	SegmentID string `json:"segmentId"`

	// Tier 1
	CoverageStatus    domain.CoverageStatus `json:"coverageStatus"`
	ConsumesTravelDay bool                  `json:"consumesTravelDay"`
	ExtraDaySpill     bool                  `json:"extraDaySpill"`
	ReservationNeeded bool                  `json:"reservationNeeded"`

	// Tier 2
	RiskLevel      domain.RiskLevel `json:"riskLevel"`
	KeySuggestions []string         `json:"keySuggestions,omitempty"` // at most 2

	// Tier 3
	RuleExplanations []string `json:"ruleExplanations,omitempty"`
	MediumReminders  []string `json:"mediumReminders,omitempty"`
	SeasonWarnings   []string `json:"seasonWarnings,omitempty"`
}

// ItineraryReport is the full executability answer.
type ItineraryReport struct {
	Cards                 []SegmentCard   `json:"cards"`
	ExecutableCount       int             `json:"executableCount"`
	NeedConfirmationCount int             `json:"needConfirmationCount"`
	HighRiskCount         int             `json:"highRiskCount"`
	MissingInfo           []string        `json:"missingInfo,omitempty"`
	Alerts                []HighRiskAlert `json:"alerts,omitempty"`
}

// HighRiskAlert names one error-severity violation with ranked alternatives.
type HighRiskAlert struct {
	Type         string              `json:"type"`
	SegmentID    string              `json:"segmentId,omitempty"`
	Message      string              `json:"message"`
	Alternatives []AlertAlternative  `json:"alternatives"`
}

// AlertAlternative is one ranked way out, with its estimated deltas.
type AlertAlternative struct {
	Rank         int     `json:"rank"`
	Action       string  `json:"action"`
	TimeDeltaMin int     `json:"timeDeltaMin"`
	CostDelta    float64 `json:"costDelta"`
	DayDelta     int     `json:"dayDelta"`
}

// CheckItinerary composes coverage, day accounting, reservation status and
// rule output into the layered report.
func (s ExecutabilityCheckService) CheckItinerary(
	segments []domain.RailSegment,
	profile domain.PassProfile,
	tasks []domain.ReservationTask,
) (ItineraryReport, error) {
	if err := profile.Validate(); err != nil {
		return ItineraryReport{}, err
	}
	if err := domain.ValidateSegments(segments); err != nil {
		return ItineraryReport{}, err
	}

	days, err := s.Calculator.Calculate(segments, profile)
	if err != nil {
		return ItineraryReport{}, err
	}
	eval, err := s.Constraints.EvaluateRules(segments, profile, tasks, &days)
	if err != nil {
		return ItineraryReport{}, err
	}
	compliance, err := s.Compliance.Validate(segments, profile, tasks)
	if err != nil {
		return ItineraryReport{}, err
	}

	rulesBySegment := map[string][]domain.TriggeredRule{}
	for _, t := range eval.Triggered {
		rulesBySegment[t.SegmentID] = append(rulesBySegment[t.SegmentID], t)
	}

	report := ItineraryReport{MissingInfo: profile.MissingInfo()}
	for _, seg := range segments {
		cov, err := s.Coverage.CheckCoverage(seg, profile)
		if err != nil {
			return ItineraryReport{}, err
		}
		req, err := s.Decision.CheckReservation(seg)
		if err != nil {
			return ItineraryReport{}, err
		}

		card := SegmentCard{
			SegmentID:         seg.ID,
			CoverageStatus:    cov.Status,
			ConsumesTravelDay: profile.ValidityMode == domain.ValidityFlexible,
			ExtraDaySpill:     seg.IsNightTrain && seg.CrossesMidnight,
			ReservationNeeded: req.Required,
			RiskLevel:         req.QuotaRisk,
		}

		for _, tr := range rulesBySegment[seg.ID] {
			card.RuleExplanations = append(card.RuleExplanations, tr.Message)
		}
		card.KeySuggestions = keySuggestions(cov, req)
		if profile.Medium == domain.MediumMobile {
			card.MediumReminders = append(card.MediumReminders,
				"re-validate the mobile pass while online before this leg")
		}
		if dep, err := domain.ParseDay(seg.DepartureDate); err == nil && s.Config.PeakMonths[int(dep.Month())] {
			card.SeasonWarnings = append(card.SeasonWarnings,
				fmt.Sprintf("%s departure falls in peak season; book early", seg.DepartureDate))
		}

		segErr := false
		for _, tr := range rulesBySegment[seg.ID] {
			if tr.Severity == domain.SeverityError {
				segErr = true
			}
		}
		switch {
		case segErr || card.RiskLevel == domain.RiskHigh:
			report.HighRiskCount++
		case cov.Status == domain.CoverageUnknown || req.Required:
			report.NeedConfirmationCount++
		default:
			report.ExecutableCount++
		}
		report.Cards = append(report.Cards, card)
	}

	report.Alerts = s.GenerateHighRiskAlerts(segments, compliance)
	return report, nil
}

// keySuggestions keeps at most two, most actionable first.
func keySuggestions(cov CoverageResult, req domain.ReservationRequirement) []string {
	var out []string
	if cov.Status == domain.CoverageUnknown {
		out = append(out, "confirm operator coverage before travel")
	}
	if cov.Status == domain.CoverageNotCovered {
		out = append(out, "plan a separate ticket for this leg")
	}
	if req.Required && req.QuotaRisk != domain.RiskLow {
		out = append(out, "book the reservation as early as possible")
	} else if req.Required {
		out = append(out, "reserve a seat before boarding")
	}
	if len(out) > 2 {
		out = out[:2]
	}
	return out
}

// GenerateHighRiskAlerts converts error violations into named alerts with
// ranked alternatives. Ranking is by day savings, then cost.
func (s ExecutabilityCheckService) GenerateHighRiskAlerts(
	segments []domain.RailSegment,
	compliance ComplianceResult,
) []HighRiskAlert {
	segByID := map[string]domain.RailSegment{}
	for _, seg := range segments {
		segByID[seg.ID] = seg
	}

	var alerts []HighRiskAlert
	for _, v := range compliance.Violations {
		if v.Severity != domain.SeverityError {
			continue
		}
		alert := HighRiskAlert{
			Type:      v.Code,
			SegmentID: v.SegmentID,
			Message:   v.Message,
		}
		var alts []AlertAlternative
		if seg, ok := segByID[v.SegmentID]; ok {
			for _, fb := range s.Decision.GenerateFallbackOptions(seg) {
				dayDelta := 0
				if fb.Kind == domain.FallbackSplitNight || fb.Kind == domain.FallbackShiftTime {
					dayDelta = -1
				}
				alts = append(alts, AlertAlternative{
					Action:       fb.Description,
					TimeDeltaMin: fb.TimeDeltaMin,
					CostDelta:    fb.CostDelta,
					DayDelta:     dayDelta,
				})
			}
		} else {
			alts = append(alts,
				AlertAlternative{Action: "shorten the itinerary to fit the budget", DayDelta: -1},
				AlertAlternative{Action: "upgrade to a larger pass configuration", CostDelta: 50},
			)
		}
		sort.SliceStable(alts, func(i, j int) bool {
			if alts[i].DayDelta != alts[j].DayDelta {
				return alts[i].DayDelta < alts[j].DayDelta
			}
			return alts[i].CostDelta < alts[j].CostDelta
		})
		for i := range alts {
			alts[i].Rank = i + 1
		}
		alert.Alternatives = alts
		alerts = append(alerts, alert)
	}
	return alerts
}
