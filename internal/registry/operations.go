package registry

import (
	"context"
	"encoding/json"

	"railpass/internal/domain"
	"railpass/internal/engine"
)

// Engines bundles everything the registered operations call into.
type Engines struct {
	Coverage     engine.CoverageChecker
	Eligibility  engine.EligibilityEngine
	Decision     engine.ReservationDecisionEngine
	Calculator   engine.TravelDayCalculator
	Orchestrator engine.ReservationOrchestrator
	Constraints  engine.ConstraintsService
	Compliance   engine.ComplianceValidator
	Selection    engine.PassSelectionEngine
	Executable   engine.ExecutabilityCheckService
	Regeneration engine.PlanRegenerationService
}

type itineraryInput struct {
	Profile  domain.PassProfile       `json:"profile"`
	Segments []domain.RailSegment     `json:"segments"`
	Tasks    []domain.ReservationTask `json:"tasks,omitempty"`
}

type segmentInput struct {
	Segment domain.RailSegment `json:"segment"`
	Profile domain.PassProfile `json:"profile,omitempty"`
}

type eligibilityInput struct {
	ResidencyCountry string   `json:"residencyCountry"`
	TravelCountries  []string `json:"travelCountries"`
	DepartureDate    string   `json:"departureDate,omitempty"`
}

type regenerateInput struct {
	Strategy domain.Strategy          `json:"strategy"`
	Profile  domain.PassProfile       `json:"profile"`
	Segments []domain.RailSegment     `json:"segments"`
	Tasks    []domain.ReservationTask `json:"tasks,omitempty"`
	Custom   *engine.CustomOptions    `json:"custom,omitempty"`
}

// RegisterAll wires every engine operation with its declared contract.
// planReservations is side-effect-free but not cacheable: it mints fresh task
// ids each call.
func RegisterAll(r *Registry, e Engines) {
	r.Register(Operation{
		Name:         "checkReservation",
		Description:  "decide mandatory-reservation status, fee band and quota risk for one segment",
		InputSchema:  schema(`{"type":"object","required":["segment"],"properties":{"segment":{"$ref":"#/defs/railSegment"}}}`),
		OutputSchema: schema(`{"type":"object","properties":{"required":{"type":"boolean"},"reason":{"type":"string"},"feeEstimate":{"type":"object"},"quotaRisk":{"type":"string"}}}`),
		Metadata:     Metadata{SideEffectFree: true, Cost: CostLow, Idempotent: true, Cacheable: true},
		Handler: func(_ context.Context, input json.RawMessage) (any, error) {
			var in segmentInput
			if err := json.Unmarshal(input, &in); err != nil {
				return nil, domain.ValidationError{Field: "input", Msg: "invalid JSON", Err: err}
			}
			return e.Decision.CheckReservation(in.Segment)
		},
	})

	r.Register(Operation{
		Name:         "generateFallbackOptions",
		Description:  "list candidate remediations for one segment with cost/time deltas",
		InputSchema:  schema(`{"type":"object","required":["segment"],"properties":{"segment":{"$ref":"#/defs/railSegment"}}}`),
		OutputSchema: schema(`{"type":"array","items":{"type":"object"}}`),
		Metadata:     Metadata{SideEffectFree: true, Cost: CostLow, Idempotent: true, Cacheable: true},
		Handler: func(_ context.Context, input json.RawMessage) (any, error) {
			var in segmentInput
			if err := json.Unmarshal(input, &in); err != nil {
				return nil, domain.ValidationError{Field: "input", Msg: "invalid JSON", Err: err}
			}
			return e.Decision.GenerateFallbackOptions(in.Segment), nil
		},
	})

	r.Register(Operation{
		Name:         "checkCoverage",
		Description:  "decide whether a segment lies inside the pass network",
		InputSchema:  schema(`{"type":"object","required":["segment","profile"],"properties":{"segment":{"$ref":"#/defs/railSegment"},"profile":{"$ref":"#/defs/passProfile"}}}`),
		OutputSchema: schema(`{"type":"object","properties":{"covered":{"type":"boolean"},"status":{"type":"string"},"explanation":{"type":"string"}}}`),
		Metadata:     Metadata{SideEffectFree: true, Cost: CostLow, Idempotent: true, Cacheable: true},
		Handler: func(_ context.Context, input json.RawMessage) (any, error) {
			var in segmentInput
			if err := json.Unmarshal(input, &in); err != nil {
				return nil, domain.ValidationError{Field: "input", Msg: "invalid JSON", Err: err}
			}
			return e.Coverage.CheckCoverage(in.Segment, in.Profile)
		},
	})

	r.Register(Operation{
		Name:         "checkEligibility",
		Description:  "map residency to a pass family and attach home-country rules",
		InputSchema:  schema(`{"type":"object","required":["residencyCountry"],"properties":{"residencyCountry":{"type":"string"},"travelCountries":{"type":"array","items":{"type":"string"}},"departureDate":{"type":"string"}}}`),
		OutputSchema: schema(`{"type":"object","properties":{"family":{"type":"string"},"homeRules":{"type":"object"}}}`),
		Metadata:     Metadata{SideEffectFree: true, Cost: CostLow, Idempotent: true, Cacheable: true},
		Handler: func(_ context.Context, input json.RawMessage) (any, error) {
			var in eligibilityInput
			if err := json.Unmarshal(input, &in); err != nil {
				return nil, domain.ValidationError{Field: "input", Msg: "invalid JSON", Err: err}
			}
			return e.Eligibility.CheckEligibility(in.ResidencyCountry, in.TravelCountries, in.DepartureDate)
		},
	})

	r.Register(Operation{
		Name:         "calculateTravelDays",
		Description:  "compute calendar-day consumption under a flexible pass",
		InputSchema:  schema(`{"type":"object","required":["profile","segments"],"properties":{"profile":{"$ref":"#/defs/passProfile"},"segments":{"type":"array"}}}`),
		OutputSchema: schema(`{"type":"object","properties":{"totalDaysUsed":{"type":"integer"},"remainingDays":{"type":"integer"},"days":{"type":"array"}}}`),
		Metadata:     Metadata{SideEffectFree: true, Cost: CostLow, Idempotent: true, Cacheable: true},
		Handler: func(_ context.Context, input json.RawMessage) (any, error) {
			var in itineraryInput
			if err := json.Unmarshal(input, &in); err != nil {
				return nil, domain.ValidationError{Field: "input", Msg: "invalid JSON", Err: err}
			}
			return e.Calculator.Calculate(in.Segments, in.Profile)
		},
	})

	r.Register(Operation{
		Name:         "planReservations",
		Description:  "wrap each mandatory reservation into a fresh task and total the fees",
		InputSchema:  schema(`{"type":"object","required":["segments"],"properties":{"segments":{"type":"array"}}}`),
		OutputSchema: schema(`{"type":"object","properties":{"tasks":{"type":"array"},"feeMinTotal":{"type":"number"},"feeMaxTotal":{"type":"number"}}}`),
		Metadata:     Metadata{SideEffectFree: true, Cost: CostLow, Idempotent: false, Cacheable: false},
		Handler: func(_ context.Context, input json.RawMessage) (any, error) {
			var in itineraryInput
			if err := json.Unmarshal(input, &in); err != nil {
				return nil, domain.ValidationError{Field: "input", Msg: "invalid JSON", Err: err}
			}
			return e.Orchestrator.PlanReservations(in.Segments)
		},
	})

	r.Register(Operation{
		Name:         "evaluateRules",
		Description:  "fire every applicable compliance rule over the itinerary",
		InputSchema:  schema(`{"type":"object","required":["profile","segments"],"properties":{"profile":{"$ref":"#/defs/passProfile"},"segments":{"type":"array"},"tasks":{"type":"array"}}}`),
		OutputSchema: schema(`{"type":"object","properties":{"triggered":{"type":"array"},"hasErrors":{"type":"boolean"},"overallRisk":{"type":"string"}}}`),
		Metadata:     Metadata{SideEffectFree: true, Cost: CostMedium, Idempotent: true, Cacheable: true},
		Handler: func(_ context.Context, input json.RawMessage) (any, error) {
			var in itineraryInput
			if err := json.Unmarshal(input, &in); err != nil {
				return nil, domain.ValidationError{Field: "input", Msg: "invalid JSON", Err: err}
			}
			days, err := e.Calculator.Calculate(in.Segments, in.Profile)
			if err != nil {
				return nil, err
			}
			return e.Constraints.EvaluateRules(in.Segments, in.Profile, in.Tasks, &days)
		},
	})

	r.Register(Operation{
		Name:         "validateCompliance",
		Description:  "single pass/fail verdict with numbered explanation",
		InputSchema:  schema(`{"type":"object","required":["profile","segments"],"properties":{"profile":{"$ref":"#/defs/passProfile"},"segments":{"type":"array"},"tasks":{"type":"array"}}}`),
		OutputSchema: schema(`{"type":"object","properties":{"valid":{"type":"boolean"},"violations":{"type":"array"},"warnings":{"type":"array"},"explanation":{"type":"string"}}}`),
		Metadata:     Metadata{SideEffectFree: true, Cost: CostMedium, Idempotent: true, Cacheable: true},
		Handler: func(_ context.Context, input json.RawMessage) (any, error) {
			var in itineraryInput
			if err := json.Unmarshal(input, &in); err != nil {
				return nil, domain.ValidationError{Field: "input", Msg: "invalid JSON", Err: err}
			}
			return e.Compliance.Validate(in.Segments, in.Profile, in.Tasks)
		},
	})

	r.Register(Operation{
		Name:         "recommendPass",
		Description:  "recommend a pass configuration from trip shape",
		InputSchema:  schema(`{"type":"object","properties":{"segmentCount":{"type":"integer"},"crossCountry":{"type":"integer"},"dailyTravel":{"type":"boolean"}}}`),
		OutputSchema: schema(`{"type":"object","properties":{"scope":{"type":"string"},"validityMode":{"type":"string"},"travelDaysTotal":{"type":"integer"}}}`),
		Metadata:     Metadata{SideEffectFree: true, Cost: CostLow, Idempotent: true, Cacheable: true},
		Handler: func(_ context.Context, input json.RawMessage) (any, error) {
			var shape engine.TripShape
			if err := json.Unmarshal(input, &shape); err != nil {
				return nil, domain.ValidationError{Field: "input", Msg: "invalid JSON", Err: err}
			}
			return e.Selection.Recommend(shape)
		},
	})

	r.Register(Operation{
		Name:         "checkExecutability",
		Description:  "layered per-segment report plus itinerary tally and alerts",
		InputSchema:  schema(`{"type":"object","required":["profile","segments"],"properties":{"profile":{"$ref":"#/defs/passProfile"},"segments":{"type":"array"},"tasks":{"type":"array"}}}`),
		OutputSchema: schema(`{"type":"object","properties":{"cards":{"type":"array"},"executableCount":{"type":"integer"},"alerts":{"type":"array"}}}`),
		Metadata:     Metadata{SideEffectFree: true, Cost: CostMedium, Idempotent: true, Cacheable: true},
		Handler: func(_ context.Context, input json.RawMessage) (any, error) {
			var in itineraryInput
			if err := json.Unmarshal(input, &in); err != nil {
				return nil, domain.ValidationError{Field: "input", Msg: "invalid JSON", Err: err}
			}
			return e.Executable.CheckItinerary(in.Segments, in.Profile, in.Tasks)
		},
	})

	r.Register(Operation{
		Name:         "regeneratePlan",
		Description:  "mutate a violating itinerary under a named strategy",
		InputSchema:  schema(`{"type":"object","required":["strategy","profile","segments"],"properties":{"strategy":{"type":"string"},"profile":{"$ref":"#/defs/passProfile"},"segments":{"type":"array"},"custom":{"type":"object"}}}`),
		OutputSchema: schema(`{"type":"object","properties":{"segments":{"type":"array"},"tasks":{"type":"array"},"changes":{"type":"array"},"metrics":{"type":"object"},"explanation":{"type":"string"}}}`),
		Metadata:     Metadata{SideEffectFree: true, Cost: CostMedium, Idempotent: false, Cacheable: false},
		Handler: func(_ context.Context, input json.RawMessage) (any, error) {
			var in regenerateInput
			if err := json.Unmarshal(input, &in); err != nil {
				return nil, domain.ValidationError{Field: "input", Msg: "invalid JSON", Err: err}
			}
			return e.Regeneration.Regenerate(in.Strategy, in.Segments, in.Profile, in.Tasks, in.Custom)
		},
	})
}

func schema(s string) json.RawMessage {
	return json.RawMessage(s)
}
