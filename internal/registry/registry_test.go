package registry

import (
	"context"
	"encoding/json"
	"testing"

	"railpass/internal/cache"
	"railpass/internal/domain"
	"railpass/internal/engine"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testEngines() Engines {
	cfg := engine.DefaultConfig()
	coverage := engine.CoverageChecker{Config: cfg}
	eligibility := engine.EligibilityEngine{Config: cfg}
	decision := engine.ReservationDecisionEngine{Config: cfg}
	calc := engine.TravelDayCalculator{}
	orch := engine.ReservationOrchestrator{Decision: decision}
	constraints := engine.ConstraintsService{
		Config: cfg, Coverage: coverage, Eligibility: eligibility,
		Decision: decision, Calculator: calc,
	}
	compliance := engine.ComplianceValidator{Eligibility: eligibility, Calculator: calc}
	return Engines{
		Coverage:     coverage,
		Eligibility:  eligibility,
		Decision:     decision,
		Calculator:   calc,
		Orchestrator: orch,
		Constraints:  constraints,
		Compliance:   compliance,
		Selection:    engine.PassSelectionEngine{Calculator: calc},
		Executable: engine.ExecutabilityCheckService{
			Config: cfg, Coverage: coverage, Decision: decision,
			Calculator: calc, Constraints: constraints, Compliance: compliance,
		},
		Regeneration: engine.PlanRegenerationService{
			Config: cfg, Decision: decision, Calculator: calc, Orchestrator: orch,
		},
	}
}

func TestRegisterAllContracts(t *testing.T) {
	r := New(cache.ResultCache{})
	RegisterAll(r, testEngines())

	want := []string{
		"checkReservation", "generateFallbackOptions", "checkCoverage",
		"checkEligibility", "calculateTravelDays", "planReservations",
		"evaluateRules", "validateCompliance", "recommendPass",
		"checkExecutability", "regeneratePlan",
	}
	for _, name := range want {
		op, ok := r.Get(name)
		require.True(t, ok, "operation %s missing", name)
		assert.NotEmpty(t, op.Description)
		assert.NotEmpty(t, op.InputSchema)
		assert.NotEmpty(t, op.OutputSchema)
	}
	assert.Len(t, r.List(), len(want))

	// planReservations mints fresh ids, so its contract must forbid caching
	plan, _ := r.Get("planReservations")
	assert.False(t, plan.Metadata.Cacheable)
	assert.False(t, plan.Metadata.Idempotent)
	assert.True(t, plan.Metadata.SideEffectFree)

	check, _ := r.Get("checkReservation")
	assert.True(t, check.Metadata.Cacheable)
	assert.True(t, check.Metadata.Idempotent)
}

func TestInvokeDispatchesByName(t *testing.T) {
	r := New(cache.ResultCache{})
	RegisterAll(r, testEngines())

	input := json.RawMessage(`{"segment":{"id":"s1","fromCountry":"DE","toCountry":"IT","departureDate":"2026-03-10","isNightTrain":true}}`)
	raw, err := r.Invoke(context.Background(), "checkReservation", input)
	require.NoError(t, err)

	var req domain.ReservationRequirement
	require.NoError(t, json.Unmarshal(raw, &req))
	assert.True(t, req.Required)
	assert.Equal(t, domain.ReasonNightTrain, req.Reason)
}

func TestInvokeUnknownOperation(t *testing.T) {
	r := New(cache.ResultCache{})
	RegisterAll(r, testEngines())

	_, err := r.Invoke(context.Background(), "teleport", nil)
	require.Error(t, err)
	assert.True(t, domain.IsNotFound(err))
}

func TestDuplicateRegistrationPanics(t *testing.T) {
	r := New(cache.ResultCache{})
	r.Register(Operation{Name: "x"})
	assert.Panics(t, func() {
		r.Register(Operation{Name: "x"})
	})
}

func TestNamesSorted(t *testing.T) {
	r := New(cache.ResultCache{})
	r.Register(Operation{Name: "zeta"})
	r.Register(Operation{Name: "alpha"})
	assert.Equal(t, []string{"alpha", "zeta"}, r.Names())
}
