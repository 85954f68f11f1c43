package domain

// PassFamily is the product line a traveler is eligible for.
// Exactly one applies, decided by residency.
type PassFamily string

const (
	// FamilyResident is the residency-restricted family sold to travelers
	// living inside the covered network region.
	FamilyResident PassFamily = "RESIDENT"
	// FamilyVisitor is sold to everyone else and carries no home-country quota.
	FamilyVisitor PassFamily = "VISITOR"
)

// PassScope distinguishes network-wide passes from single-country ones.
type PassScope string

const (
	ScopeNetwork       PassScope = "NETWORK"
	ScopeSingleCountry PassScope = "SINGLE_COUNTRY"
)

// ValidityMode is how the pass meters usage.
type ValidityMode string

const (
	// ValidityFlexible budgets a fixed number of travel days inside a window.
	ValidityFlexible ValidityMode = "FLEXIBLE"
	// ValidityContinuous allows travel on every day of the window.
	ValidityContinuous ValidityMode = "CONTINUOUS"
)

// ClassLevel is the carriage class of the pass.
type ClassLevel string

const (
	ClassFirst  ClassLevel = "FIRST"
	ClassSecond ClassLevel = "SECOND"
)

// TicketMedium is how the pass is carried.
type TicketMedium string

const (
	MediumMobile TicketMedium = "MOBILE"
	MediumPaper  TicketMedium = "PAPER"
)

// TaskStatus is the reservation task lifecycle.
// Transitions are monotonic: NEEDED -> PLANNED -> BOOKED | FAILED -> FALLBACK_APPLIED.
type TaskStatus string

const (
	TaskNeeded          TaskStatus = "NEEDED"
	TaskPlanned         TaskStatus = "PLANNED"
	TaskBooked          TaskStatus = "BOOKED"
	TaskFailed          TaskStatus = "FAILED"
	TaskFallbackApplied TaskStatus = "FALLBACK_APPLIED"
)

// CoverageStatus reports whether a leg is inside the purchased network.
// Unknown is a real outcome and must never be folded into Covered.
type CoverageStatus string

const (
	CoverageCovered    CoverageStatus = "COVERED"
	CoverageNotCovered CoverageStatus = "NOT_COVERED"
	CoveragePartial    CoverageStatus = "PARTIAL"
	CoverageUnknown    CoverageStatus = "UNKNOWN"
)

// RiskLevel grades the likelihood a mandatory reservation sells out.
type RiskLevel string

const (
	RiskLow    RiskLevel = "LOW"
	RiskMedium RiskLevel = "MEDIUM"
	RiskHigh   RiskLevel = "HIGH"
)

// Severity classifies a violation. Only errors block executability.
type Severity string

const (
	SeverityError   Severity = "ERROR"
	SeverityWarning Severity = "WARNING"
	SeverityInfo    Severity = "INFO"
)

// MandatoryReason explains why a reservation is required.
type MandatoryReason string

const (
	ReasonNightTrain     MandatoryReason = "NIGHT_TRAIN"
	ReasonHighSpeed      MandatoryReason = "HIGH_SPEED"
	ReasonInternational  MandatoryReason = "INTERNATIONAL"
	ReasonOperatorPolicy MandatoryReason = "OPERATOR_POLICY"
)

// FallbackKind is a candidate remediation for a troubled segment.
type FallbackKind string

const (
	FallbackSlowTrain   FallbackKind = "SLOW_TRAIN"
	FallbackChangeRoute FallbackKind = "CHANGE_ROUTE"
	FallbackShiftTime   FallbackKind = "SHIFT_TIME"
	FallbackSplitNight  FallbackKind = "SPLIT_NIGHT_TRAIN"
	FallbackFlight      FallbackKind = "FLIGHT"
	FallbackBus         FallbackKind = "BUS"
)

// BookingChannel is where a reservation can be purchased.
type BookingChannel string

const (
	ChannelOfficialApp    BookingChannel = "OFFICIAL_APP"
	ChannelOperatorSite   BookingChannel = "OPERATOR_SITE"
	ChannelStationCounter BookingChannel = "STATION_COUNTER"
	ChannelThirdParty     BookingChannel = "THIRD_PARTY"
)

// ConditionKind tags a rule condition so the rule set stays plain data.
type ConditionKind string

const (
	CondCoverageNotCovered ConditionKind = "COVERAGE_NOT_COVERED"
	CondHomeQuotaExceeded  ConditionKind = "HOME_QUOTA_EXCEEDED"
	CondMidnightCrossing   ConditionKind = "MIDNIGHT_CROSSING"
	CondLastDayNightTrain  ConditionKind = "LAST_DAY_NIGHT_TRAIN"
	CondReservationNeeded  ConditionKind = "RESERVATION_NEEDED"
	CondReservationRisk    ConditionKind = "RESERVATION_RISK"
	CondCityTransit        ConditionKind = "CITY_TRANSIT"
	CondBudgetExceeded     ConditionKind = "BUDGET_EXCEEDED"
)

// EffectKind is what a triggered rule means for the itinerary.
type EffectKind string

const (
	EffectDayConsumption EffectKind = "DAY_CONSUMPTION"
	EffectBudgetImpact   EffectKind = "BUDGET_IMPACT"
	EffectHardConstraint EffectKind = "HARD_CONSTRAINT"
	EffectRiskLevel      EffectKind = "RISK_LEVEL"
	EffectFallbackNeeded EffectKind = "FALLBACK_NEEDED"
)

// Strategy names a plan regeneration approach.
type Strategy string

const (
	StrategyStability     Strategy = "STABILITY"
	StrategyEconomy       Strategy = "ECONOMY"
	StrategyAffordability Strategy = "AFFORDABILITY"
	StrategyCustom        Strategy = "CUSTOM"
)

// riskRank orders risk levels for max() style aggregation.
var riskRank = map[RiskLevel]int{RiskLow: 0, RiskMedium: 1, RiskHigh: 2}

// MaxRisk returns the higher of two risk levels.
func MaxRisk(a, b RiskLevel) RiskLevel {
	if riskRank[b] > riskRank[a] {
		return b
	}
	return a
}

// CanTransition reports whether a task status change follows the lifecycle.
// Same-status writes are allowed so callers can re-apply idempotently.
func CanTransition(from, to TaskStatus) bool {
	if from == to {
		return true
	}
	switch from {
	case TaskNeeded:
		return to == TaskPlanned || to == TaskBooked || to == TaskFailed
	case TaskPlanned:
		return to == TaskBooked || to == TaskFailed
	case TaskFailed:
		return to == TaskFallbackApplied
	default:
		return false
	}
}

// LegalNextStates lists the statuses reachable from the given one.
func LegalNextStates(from TaskStatus) []TaskStatus {
	switch from {
	case TaskNeeded:
		return []TaskStatus{TaskPlanned, TaskBooked, TaskFailed}
	case TaskPlanned:
		return []TaskStatus{TaskBooked, TaskFailed}
	case TaskFailed:
		return []TaskStatus{TaskFallbackApplied}
	default:
		return nil
	}
}
