package engine

import (
	"fmt"

	"railpass/internal/domain"
)

// PlanRegenerationService mutates a violating itinerary under a named
// strategy. Input slices are never modified; every strategy returns fresh
// copies. No strategy fails when nothing improves; it explains instead.
type PlanRegenerationService struct {
	Config       Config
	Decision     ReservationDecisionEngine
	Calculator   TravelDayCalculator
	Orchestrator ReservationOrchestrator
}

// PlanChange documents one applied mutation.
type PlanChange struct {
	SegmentID   string              `json:"segmentId"`
	Kind        domain.FallbackKind `json:"kind,omitempty"`
	Description string              `json:"description"`
}

// RegenMetrics quantifies the before/after difference.
type RegenMetrics struct {
	DaysBefore    int     `json:"daysBefore"`
	DaysAfter     int     `json:"daysAfter"`
	FeeMaxBefore  float64 `json:"feeMaxBefore"`
	FeeMaxAfter   float64 `json:"feeMaxAfter"`
	CostDeltaEUR  float64 `json:"costDeltaEur"`
	ChangedCount  int     `json:"changedCount"`
	DroppedCount  int     `json:"droppedCount"`
}

// RegenResult is a full regenerated plan.
type RegenResult struct {
	Strategy    domain.Strategy          `json:"strategy"`
	Segments    []domain.RailSegment     `json:"segments"`
	Tasks       []domain.ReservationTask `json:"tasks"`
	Changes     []PlanChange             `json:"changes"`
	Metrics     RegenMetrics             `json:"metrics"`
	Explanation string                   `json:"explanation"`
}

// CustomOptions selects which sub-strategies Custom composes.
type CustomOptions struct {
	Stability     bool    `json:"stability"`
	Economy       bool    `json:"economy"`
	Affordability bool    `json:"affordability"`
	// FeeCeiling drops any segment whose reservation fee ceiling exceeds it.
	// Zero disables the filter.
	FeeCeiling float64 `json:"feeCeiling"`
}

// Regenerate dispatches by strategy name.
func (s PlanRegenerationService) Regenerate(
	strategy domain.Strategy,
	segments []domain.RailSegment,
	profile domain.PassProfile,
	tasks []domain.ReservationTask,
	custom *CustomOptions,
) (RegenResult, error) {
	if err := domain.ValidateSegments(segments); err != nil {
		return RegenResult{}, err
	}
	switch strategy {
	case domain.StrategyStability:
		return s.stability(segments, profile)
	case domain.StrategyEconomy:
		return s.economy(segments, profile)
	case domain.StrategyAffordability:
		return s.affordability(segments, profile)
	case domain.StrategyCustom:
		if custom == nil {
			custom = &CustomOptions{Stability: true}
		}
		return s.custom(segments, profile, *custom)
	default:
		return RegenResult{}, domain.ValidationError{Field: "strategy", Msg: "unknown strategy"}
	}
}

// stability replaces mandatory+high-risk segments with their slow-train
// fallback when offered, else shifts the departure window.
func (s PlanRegenerationService) stability(segments []domain.RailSegment, profile domain.PassProfile) (RegenResult, error) {
	out := make([]domain.RailSegment, len(segments))
	copy(out, segments)
	var changes []PlanChange

	for i, seg := range out {
		req, err := s.Decision.CheckReservation(seg)
		if err != nil {
			return RegenResult{}, err
		}
		if !req.Required || req.QuotaRisk != domain.RiskHigh {
			continue
		}
		if seg.IsHighSpeed {
			out[i].IsHighSpeed = false
			out[i].Operator = ""
			changes = append(changes, PlanChange{
				SegmentID:   seg.ID,
				Kind:        domain.FallbackSlowTrain,
				Description: "swapped to a regional train without compulsory reservation",
			})
			continue
		}
		out[i].DepartureTimeFrom, out[i].DepartureTimeTo = shiftWindow(
			seg.DepartureTimeFrom, seg.DepartureTimeTo, s.Config.ShiftIntervalMin)
		changes = append(changes, PlanChange{
			SegmentID:   seg.ID,
			Kind:        domain.FallbackShiftTime,
			Description: fmt.Sprintf("shifted departure window by %d minutes", s.Config.ShiftIntervalMin),
		})
	}

	return s.finish(domain.StrategyStability, segments, out, profile, changes,
		"replaced or re-timed every mandatory high-risk reservation")
}

// economy removes the second consumed day of midnight-crossing night trains
// by converting them to day trains. Flexible passes only.
func (s PlanRegenerationService) economy(segments []domain.RailSegment, profile domain.PassProfile) (RegenResult, error) {
	if profile.ValidityMode != domain.ValidityFlexible {
		tasks, err := s.Orchestrator.PlanReservations(segments)
		if err != nil {
			return RegenResult{}, err
		}
		return RegenResult{
			Strategy:    domain.StrategyEconomy,
			Segments:    segments,
			Tasks:       tasks.Tasks,
			Explanation: "economy strategy only applies to flexible passes; continuous passes consume no travel days",
		}, nil
	}

	out := make([]domain.RailSegment, len(segments))
	copy(out, segments)
	var changes []PlanChange
	for i, seg := range out {
		if seg.IsNightTrain && seg.CrossesMidnight {
			out[i].IsNightTrain = false
			out[i].CrossesMidnight = false
			changes = append(changes, PlanChange{
				SegmentID:   seg.ID,
				Kind:        domain.FallbackSplitNight,
				Description: "replaced midnight-crossing night train with a day-train equivalent",
			})
		}
	}

	return s.finish(domain.StrategyEconomy, segments, out, profile, changes,
		"converted midnight-crossing night trains to day trains to reclaim travel days")
}

// affordability drops segments from pass planning when a direct ticket beats
// the estimated reservation fee ceiling.
func (s PlanRegenerationService) affordability(segments []domain.RailSegment, profile domain.PassProfile) (RegenResult, error) {
	var out []domain.RailSegment
	var changes []PlanChange
	dropped := 0

	for _, seg := range segments {
		req, err := s.Decision.CheckReservation(seg)
		if err != nil {
			return RegenResult{}, err
		}
		if req.Required && req.FeeEstimate != nil && req.FeeEstimate.Max > s.Config.AffordabilityFee {
			direct := s.directTicketEstimate(seg)
			if direct < req.FeeEstimate.Max {
				dropped++
				changes = append(changes, PlanChange{
					SegmentID: seg.ID,
					Description: fmt.Sprintf(
						"dropped from pass planning: direct ticket ~%.0f %s beats reservation fee ceiling %.0f %s",
						direct, s.Config.Currency, req.FeeEstimate.Max, s.Config.Currency),
				})
				continue
			}
		}
		out = append(out, seg)
	}

	res, err := s.finish(domain.StrategyAffordability, segments, out, profile, changes,
		"moved expensive-to-reserve segments onto direct tickets")
	if err != nil {
		return RegenResult{}, err
	}
	res.Metrics.DroppedCount = dropped
	return res, nil
}

func (s PlanRegenerationService) custom(segments []domain.RailSegment, profile domain.PassProfile, opts CustomOptions) (RegenResult, error) {
	cur := segments
	var changes []PlanChange

	apply := func(fn func([]domain.RailSegment, domain.PassProfile) (RegenResult, error)) error {
		res, err := fn(cur, profile)
		if err != nil {
			return err
		}
		cur = res.Segments
		changes = append(changes, res.Changes...)
		return nil
	}

	if opts.Stability {
		if err := apply(s.stability); err != nil {
			return RegenResult{}, err
		}
	}
	if opts.Economy {
		if err := apply(s.economy); err != nil {
			return RegenResult{}, err
		}
	}
	if opts.Affordability {
		if err := apply(s.affordability); err != nil {
			return RegenResult{}, err
		}
	}
	if opts.FeeCeiling > 0 {
		var kept []domain.RailSegment
		for _, seg := range cur {
			req, err := s.Decision.CheckReservation(seg)
			if err != nil {
				return RegenResult{}, err
			}
			if req.Required && req.FeeEstimate != nil && req.FeeEstimate.Max > opts.FeeCeiling {
				changes = append(changes, PlanChange{
					SegmentID:   seg.ID,
					Description: fmt.Sprintf("dropped: reservation fee ceiling exceeds the hard limit of %.0f %s", opts.FeeCeiling, s.Config.Currency),
				})
				continue
			}
			kept = append(kept, seg)
		}
		cur = kept
	}

	return s.finish(domain.StrategyCustom, segments, cur, profile, changes,
		"applied the selected sub-strategies in order")
}

// finish recomputes tasks and metrics and writes the no-change explanation
// when nothing moved.
func (s PlanRegenerationService) finish(
	strategy domain.Strategy,
	before, after []domain.RailSegment,
	profile domain.PassProfile,
	changes []PlanChange,
	explanation string,
) (RegenResult, error) {
	daysBefore, err := s.Calculator.Calculate(before, profile)
	if err != nil {
		return RegenResult{}, err
	}
	daysAfter, err := s.Calculator.Calculate(after, profile)
	if err != nil {
		return RegenResult{}, err
	}
	planBefore, err := s.Orchestrator.PlanReservations(before)
	if err != nil {
		return RegenResult{}, err
	}
	planAfter, err := s.Orchestrator.PlanReservations(after)
	if err != nil {
		return RegenResult{}, err
	}

	res := RegenResult{
		Strategy: strategy,
		Segments: after,
		Tasks:    planAfter.Tasks,
		Changes:  changes,
		Metrics: RegenMetrics{
			DaysBefore:   daysBefore.TotalDaysUsed,
			DaysAfter:    daysAfter.TotalDaysUsed,
			FeeMaxBefore: planBefore.FeeMaxTotal,
			FeeMaxAfter:  planAfter.FeeMaxTotal,
			CostDeltaEUR: planAfter.FeeMaxTotal - planBefore.FeeMaxTotal,
			ChangedCount: len(changes),
		},
		Explanation: explanation,
	}
	if len(changes) == 0 {
		res.Explanation = "no improvement found; plan returned unchanged"
	}
	return res, nil
}

func (s PlanRegenerationService) directTicketEstimate(seg domain.RailSegment) float64 {
	price := s.Config.DirectTicketBase
	if seg.IsHighSpeed {
		price *= s.Config.HighSpeedFactor
	}
	if seg.IsInternational {
		price *= s.Config.InternationalFact
	}
	if seg.IsNightTrain {
		price *= s.Config.NightTrainFactor
	}
	return price
}

func shiftWindow(from, to string, minutes int) (string, string) {
	return shiftClock(from, minutes), shiftClock(to, minutes)
}

// shiftClock moves an HH:MM value forward, wrapping within the day. Empty
// input stays empty.
func shiftClock(hhmm string, minutes int) string {
	if len(hhmm) != 5 || hhmm[2] != ':' {
		return hhmm
	}
	h := int(hhmm[0]-'0')*10 + int(hhmm[1]-'0')
	m := int(hhmm[3]-'0')*10 + int(hhmm[4]-'0')
	total := (h*60 + m + minutes) % (24 * 60)
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}
