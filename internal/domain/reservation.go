package domain

// FeeEstimate is a heuristic price band, never a live quote.
type FeeEstimate struct {
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
	Currency string  `json:"currency"`
}

// ReservationRequirement is the pure result of checking one segment.
// It is never persisted; ReservationTask wraps it when planning.
type ReservationRequirement struct {
	SegmentID   string           `json:"segmentId"`
	Required    bool             `json:"required"`
	Reason      MandatoryReason  `json:"reason,omitempty"`
	FeeEstimate *FeeEstimate     `json:"feeEstimate,omitempty"`
	QuotaRisk   RiskLevel        `json:"quotaRisk"`
	Channels    []BookingChannel `json:"channels,omitempty"`
	RiskFactors []string         `json:"riskFactors,omitempty"`
}

// ReservationTask is the one stateful entity in the subsystem. The
// orchestrator writes the initial state; downstream transitions come from the
// caller and must follow CanTransition.
type ReservationTask struct {
	ID          string                 `json:"id"`
	SegmentID   string                 `json:"segmentId"`
	Status      TaskStatus             `json:"status"`
	Requirement ReservationRequirement `json:"requirement"`
	TravelDate  string                 `json:"travelDate"` // YYYY-MM-DD

	BookingRef    string  `json:"bookingRef,omitempty"`
	RealizedCost  float64 `json:"realizedCost,omitempty"`
	FailureReason string  `json:"failureReason,omitempty"`
	FallbackID    string  `json:"fallbackId,omitempty"`
}

// FallbackOption is a candidate remediation offered to the caller. The engine
// proposes, the caller chooses.
type FallbackOption struct {
	ID           string       `json:"id"`
	Kind         FallbackKind `json:"kind"`
	Description  string       `json:"description"`
	TimeDeltaMin int          `json:"timeDeltaMin"` // minutes, positive = slower
	CostDelta    float64      `json:"costDelta"`    // EUR, negative = cheaper
}
