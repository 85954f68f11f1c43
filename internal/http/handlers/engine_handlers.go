package handlers

import (
	"railpass/internal/domain"
	"railpass/internal/engine"
	"railpass/internal/http/middleware"
	"railpass/internal/utils"

	"github.com/gin-gonic/gin"
)

// EngineHandlers exposes every pure operation over the envelope layer.
type EngineHandlers struct {
	Coverage     engine.CoverageChecker
	Eligibility  engine.EligibilityEngine
	Decision     engine.ReservationDecisionEngine
	Calculator   engine.TravelDayCalculator
	Constraints  engine.ConstraintsService
	Compliance   engine.ComplianceValidator
	Selection    engine.PassSelectionEngine
	Executable   engine.ExecutabilityCheckService
	Regeneration engine.PlanRegenerationService
}

type itineraryRequest struct {
	Profile  domain.PassProfile       `json:"profile"`
	Segments []domain.RailSegment     `json:"segments"`
	Tasks    []domain.ReservationTask `json:"tasks,omitempty"`
}

type segmentRequest struct {
	Segment domain.RailSegment `json:"segment"`
	Profile domain.PassProfile `json:"profile,omitempty"`
}

// POST /api/reservations/check
func (h EngineHandlers) CheckReservation(c *gin.Context) {
	var req segmentRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	res, err := h.Decision.CheckReservation(req.Segment)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, res)
}

// POST /api/reservations/fallbacks
func (h EngineHandlers) GenerateFallbacks(c *gin.Context) {
	var req segmentRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	if err := req.Segment.Validate(); err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, h.Decision.GenerateFallbackOptions(req.Segment))
}

// POST /api/coverage/check
func (h EngineHandlers) CheckCoverage(c *gin.Context) {
	var req segmentRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	res, err := h.Coverage.CheckCoverage(req.Segment, req.Profile)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, res)
}

type eligibilityRequest struct {
	ResidencyCountry string   `json:"residencyCountry"`
	TravelCountries  []string `json:"travelCountries"`
	DepartureDate    string   `json:"departureDate,omitempty"`
}

// POST /api/eligibility/check
func (h EngineHandlers) CheckEligibility(c *gin.Context) {
	var req eligibilityRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	res, err := h.Eligibility.CheckEligibility(req.ResidencyCountry, req.TravelCountries, req.DepartureDate)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, res)
}

// POST /api/travel-days/calculate
func (h EngineHandlers) CalculateTravelDays(c *gin.Context) {
	var req itineraryRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	res, err := h.Calculator.Calculate(req.Segments, req.Profile)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, res)
}

// POST /api/rules/evaluate
func (h EngineHandlers) EvaluateRules(c *gin.Context) {
	var req itineraryRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	days, err := h.Calculator.Calculate(req.Segments, req.Profile)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	res, err := h.Constraints.EvaluateRules(req.Segments, req.Profile, req.Tasks, &days)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, res)
}

// POST /api/compliance/validate
func (h EngineHandlers) ValidateCompliance(c *gin.Context) {
	var req itineraryRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	res, err := h.Compliance.Validate(req.Segments, req.Profile, req.Tasks)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	utils.LogEvent(middleware.GetRequestID(c), "compliance", "validate",
		"valid="+boolStr(res.Valid))
	RespondOK(c, res)
}

// POST /api/passes/recommend
func (h EngineHandlers) RecommendPass(c *gin.Context) {
	var shape engine.TripShape
	if !BindJSONOrError(c, &shape) {
		return
	}
	res, err := h.Selection.Recommend(shape)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, res)
}

// POST /api/executability/check
func (h EngineHandlers) CheckExecutability(c *gin.Context) {
	var req itineraryRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	res, err := h.Executable.CheckItinerary(req.Segments, req.Profile, req.Tasks)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, res)
}

type regenerateRequest struct {
	Strategy domain.Strategy          `json:"strategy"`
	Profile  domain.PassProfile       `json:"profile"`
	Segments []domain.RailSegment     `json:"segments"`
	Tasks    []domain.ReservationTask `json:"tasks,omitempty"`
	Custom   *engine.CustomOptions    `json:"custom,omitempty"`
}

// POST /api/plans/regenerate
func (h EngineHandlers) RegeneratePlan(c *gin.Context) {
	var req regenerateRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	res, err := h.Regeneration.Regenerate(req.Strategy, req.Segments, req.Profile, req.Tasks, req.Custom)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, res)
}

func boolStr(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
