package engine

import (
	"fmt"

	"railpass/internal/domain"
)

// ConstraintsService evaluates the declarative rule set over a whole
// itinerary. Rules are data; the evaluator here is the only place conditions
// are interpreted, so the set can be serialized and audited.
type ConstraintsService struct {
	Config      Config
	Coverage    CoverageChecker
	Eligibility EligibilityEngine
	Decision    ReservationDecisionEngine
	Calculator  TravelDayCalculator
	// Rules defaults to DefaultRules() when empty.
	Rules []domain.Rule
}

// DefaultRules is the shipped rule set, ordered. Evaluation is union: every
// applicable rule fires, nothing short-circuits.
func DefaultRules() []domain.Rule {
	return []domain.Rule{
		{
			ID:        "coverage-not-covered",
			Condition: domain.CondCoverageNotCovered,
			Effect:    domain.EffectHardConstraint,
			Severity:  domain.SeverityError,
			Message:   "segment is outside the pass network",
			Evidence:  "pass conditions of use, network coverage annex",
		},
		{
			ID:        "city-transport-not-covered",
			Condition: domain.CondCityTransit,
			Effect:    domain.EffectBudgetImpact,
			Severity:  domain.SeverityInfo,
			Message:   "city transit is never covered; budget a local ticket",
			Evidence:  "pass conditions of use, urban transport exclusion",
		},
		{
			ID:        "home-country-quota",
			Condition: domain.CondHomeQuotaExceeded,
			Effect:    domain.EffectHardConstraint,
			Severity:  domain.SeverityError,
			Message:   "home-country outbound/inbound quota exceeded",
			Evidence:  "resident pass terms, home-country usage rule",
		},
		{
			ID:        "midnight-transfer-consumption",
			Condition: domain.CondMidnightCrossing,
			Effect:    domain.EffectDayConsumption,
			Severity:  domain.SeverityWarning,
			Message:   "midnight-crossing night train consumes an extra travel day",
			Evidence:  "travel day definition, calendar-day accounting",
		},
		{
			ID:        "last-day-night-train",
			Condition: domain.CondLastDayNightTrain,
			Effect:    domain.EffectHardConstraint,
			Severity:  domain.SeverityError,
			Message:   "pass validity ends at 23:59; a midnight-crossing night train on the last valid day rides uncovered after midnight",
			Evidence:  "pass validity window, last-day rule",
		},
		{
			ID:        "reservation-mandatory",
			Condition: domain.CondReservationNeeded,
			Effect:    domain.EffectFallbackNeeded,
			Severity:  domain.SeverityWarning,
			Message:   "segment requires a paid reservation before boarding",
			Evidence:  "operator reservation policy",
		},
		{
			ID:        "reservation-quota-risk",
			Condition: domain.CondReservationRisk,
			Effect:    domain.EffectRiskLevel,
			Severity:  domain.SeverityWarning,
			RiskLevel: domain.RiskHigh,
			Message:   "reservation quota for this segment is likely to sell out",
			Evidence:  "pass-holder quota heuristics",
		},
		{
			ID:        "travel-day-budget",
			Condition: domain.CondBudgetExceeded,
			Effect:    domain.EffectBudgetImpact,
			Severity:  domain.SeverityError,
			Message:   "itinerary exceeds the pass's travel-day budget",
			Evidence:  "flexible pass day budget",
		},
	}
}

// evalContext bundles everything a condition may look at.
type evalContext struct {
	segment     domain.RailSegment
	profile     domain.PassProfile
	allSegments []domain.RailSegment
	tasks       []domain.ReservationTask
	travelDays  *TravelDayResult
	isLastDay   bool
	coverage    CoverageResult
	requirement domain.ReservationRequirement
	homeOut     int
	homeIn      int
}

// EvaluateRules runs every (segment x rule) pair. tasks and travelDays are
// optional; pass nil when the caller has not computed them.
func (s ConstraintsService) EvaluateRules(
	segments []domain.RailSegment,
	profile domain.PassProfile,
	tasks []domain.ReservationTask,
	travelDays *TravelDayResult,
) (domain.RuleEvaluation, error) {
	if err := profile.Validate(); err != nil {
		return domain.RuleEvaluation{}, err
	}
	if err := domain.ValidateSegments(segments); err != nil {
		return domain.RuleEvaluation{}, err
	}

	rules := s.Rules
	if len(rules) == 0 {
		rules = DefaultRules()
	}

	homeOut, homeIn := s.Eligibility.CountHomeUsage(segments, profile.ResidencyCountry)
	homeOut += profile.HomeOutboundUsed
	homeIn += profile.HomeInboundUsed

	eval := domain.RuleEvaluation{OverallRisk: domain.RiskLow}
	for _, seg := range segments {
		cov, err := s.Coverage.CheckCoverage(seg, profile)
		if err != nil {
			return domain.RuleEvaluation{}, err
		}
		req, err := s.Decision.CheckReservation(seg)
		if err != nil {
			return domain.RuleEvaluation{}, err
		}
		lastDay, err := s.Calculator.IsLastValidDay(seg.DepartureDate, profile)
		if err != nil {
			return domain.RuleEvaluation{}, err
		}
		ctx := evalContext{
			segment:     seg,
			profile:     profile,
			allSegments: segments,
			tasks:       tasks,
			travelDays:  travelDays,
			isLastDay:   lastDay,
			coverage:    cov,
			requirement: req,
			homeOut:     homeOut,
			homeIn:      homeIn,
		}
		for _, rule := range rules {
			hit, detail := s.matches(rule.Condition, ctx)
			if !hit {
				continue
			}
			msg := rule.Message
			if detail != "" {
				msg = fmt.Sprintf("%s (%s)", msg, detail)
			}
			eval.Triggered = append(eval.Triggered, domain.TriggeredRule{
				RuleID:    rule.ID,
				SegmentID: seg.ID,
				Severity:  rule.Severity,
				Effect:    rule.Effect,
				RiskLevel: rule.RiskLevel,
				Message:   msg,
				Evidence:  rule.Evidence,
			})
		}
	}

	for _, t := range eval.Triggered {
		if t.Severity == domain.SeverityError {
			eval.HasErrors = true
		}
		if t.Effect == domain.EffectRiskLevel {
			eval.OverallRisk = domain.MaxRisk(eval.OverallRisk, t.RiskLevel)
		}
	}
	if eval.HasErrors {
		eval.OverallRisk = domain.RiskHigh
	}
	return eval, nil
}

// matches is the central evaluator for rule conditions. Adding a condition
// kind means one more case here and nothing else.
func (s ConstraintsService) matches(kind domain.ConditionKind, ctx evalContext) (bool, string) {
	switch kind {
	case domain.CondCoverageNotCovered:
		if ctx.coverage.Status == domain.CoverageNotCovered && !s.Coverage.IsCityTransit(ctx.segment) {
			return true, ctx.coverage.Explanation
		}
		return false, ""
	case domain.CondCityTransit:
		if s.Coverage.IsCityTransit(ctx.segment) {
			return true, fmt.Sprintf("operator %q", ctx.segment.Operator)
		}
		return false, ""
	case domain.CondHomeQuotaExceeded:
		if ctx.profile.Family != domain.FamilyResident {
			return false, ""
		}
		home := ctx.segment.FromCountry == ctx.profile.ResidencyCountry && ctx.segment.ToCountry == ctx.profile.ResidencyCountry
		if home && (ctx.homeOut > 1 || ctx.homeIn > 1) {
			return true, fmt.Sprintf("outbound=%d inbound=%d", ctx.homeOut, ctx.homeIn)
		}
		return false, ""
	case domain.CondMidnightCrossing:
		return ctx.segment.IsNightTrain && ctx.segment.CrossesMidnight, ""
	case domain.CondLastDayNightTrain:
		return ctx.isLastDay && ctx.segment.IsNightTrain && ctx.segment.CrossesMidnight, ""
	case domain.CondReservationNeeded:
		if ctx.requirement.Required {
			return true, string(ctx.requirement.Reason)
		}
		return false, ""
	case domain.CondReservationRisk:
		return ctx.requirement.Required && ctx.requirement.QuotaRisk == domain.RiskHigh, ""
	case domain.CondBudgetExceeded:
		if ctx.travelDays == nil {
			return false, ""
		}
		budget := ctx.profile.TravelDaysTotal
		if ctx.profile.ValidityMode == domain.ValidityFlexible && budget > 0 && ctx.travelDays.TotalDaysUsed > budget {
			// fire once, on the first segment only
			if len(ctx.allSegments) > 0 && ctx.allSegments[0].ID == ctx.segment.ID {
				return true, fmt.Sprintf("used=%d budget=%d", ctx.travelDays.TotalDaysUsed, budget)
			}
		}
		return false, ""
	default:
		return false, ""
	}
}
