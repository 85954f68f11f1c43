package engine

import (
	"github.com/google/uuid"

	"railpass/internal/domain"
)

// ReservationOrchestrator turns per-segment requirements into stateful tasks
// and aggregates totals. It is the sole writer of initial task state; every
// later transition is applied by the caller.
type ReservationOrchestrator struct {
	Decision ReservationDecisionEngine
	// NewID is injectable for deterministic tests; defaults to uuid.
	NewID func() string
}

// PlanResult carries the freshly minted tasks plus itinerary-level totals.
type PlanResult struct {
	Tasks       []domain.ReservationTask `json:"tasks"`
	FeeMinTotal float64                  `json:"feeMinTotal"`
	FeeMaxTotal float64                  `json:"feeMaxTotal"`
	Currency    string                   `json:"currency"`
	OverallRisk domain.RiskLevel         `json:"overallRisk"`
	NeededCount int                      `json:"neededCount"`
}

// PlanReservations creates one task per segment that needs a reservation.
// Task ids are fresh each call, which is why the action registry marks this
// operation non-cacheable.
func (o ReservationOrchestrator) PlanReservations(segments []domain.RailSegment) (PlanResult, error) {
	newID := o.NewID
	if newID == nil {
		newID = uuid.NewString
	}

	res := PlanResult{
		Currency:    o.Decision.Config.Currency,
		OverallRisk: domain.RiskLow,
	}
	for _, seg := range segments {
		req, err := o.Decision.CheckReservation(seg)
		if err != nil {
			return PlanResult{}, err
		}
		if !req.Required {
			continue
		}
		res.Tasks = append(res.Tasks, domain.ReservationTask{
			ID:          newID(),
			SegmentID:   seg.ID,
			Status:      domain.TaskNeeded,
			Requirement: req,
			TravelDate:  seg.DepartureDate,
		})
		res.FeeMinTotal += req.FeeEstimate.Min
		res.FeeMaxTotal += req.FeeEstimate.Max
		res.OverallRisk = domain.MaxRisk(res.OverallRisk, req.QuotaRisk)
		res.NeededCount++
	}
	return res, nil
}

// PendingTasks filters tasks still waiting on a booking outcome.
func PendingTasks(tasks []domain.ReservationTask) []domain.ReservationTask {
	var pending []domain.ReservationTask
	for _, t := range tasks {
		if t.Status == domain.TaskNeeded || t.Status == domain.TaskPlanned {
			pending = append(pending, t)
		}
	}
	return pending
}
