package domain

// Rule is a declarative compliance unit. The condition is data (a kind plus
// parameters) matched by the engine's evaluator, so the rule set can be
// serialized and audited without host-language closures.
type Rule struct {
	ID        string        `json:"id"`
	Condition ConditionKind `json:"condition"`
	Effect    EffectKind    `json:"effect"`
	Severity  Severity      `json:"severity"`
	// RiskLevel applies when Effect is RISK_LEVEL.
	RiskLevel RiskLevel `json:"riskLevel,omitempty"`
	Message   string    `json:"message"`
	Evidence  string    `json:"evidence"`
}

// TriggeredRule records one rule firing against one segment.
type TriggeredRule struct {
	RuleID    string     `json:"ruleId"`
	SegmentID string     `json:"segmentId,omitempty"`
	Severity  Severity   `json:"severity"`
	Effect    EffectKind `json:"effect"`
	RiskLevel RiskLevel  `json:"riskLevel,omitempty"`
	Message   string     `json:"message"`
	Evidence  string     `json:"evidence"`
}

// RuleEvaluation aggregates every rule firing over the itinerary. Rules
// compose by union; nothing short-circuits.
type RuleEvaluation struct {
	Triggered   []TriggeredRule `json:"triggered"`
	HasErrors   bool            `json:"hasErrors"`
	OverallRisk RiskLevel       `json:"overallRisk"`
}
