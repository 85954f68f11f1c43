package engine

import (
	"math"

	"railpass/internal/domain"
)

// PassSelectionEngine recommends a concrete pass configuration from trip
// shape. Heuristic only; consumption is simulated through the calculator
// when sample segments exist.
type PassSelectionEngine struct {
	Calculator TravelDayCalculator
}

// TripShape is the caller-supplied summary of the planned trip.
type TripShape struct {
	SegmentCount    int      `json:"segmentCount"`
	CrossCountry    int      `json:"crossCountry"` // distinct country-pair crossings
	DailyTravel     bool     `json:"dailyTravel"`
	StayMode        string   `json:"stayMode,omitempty"` // e.g. "hotel-hopping", "base-city"
	BudgetSensitive bool     `json:"budgetSensitive"`
	PreferFirst     bool     `json:"preferFirst"`
	PreferPaper     bool     `json:"preferPaper"`
	SingleCountry   string   `json:"singleCountry,omitempty"` // country code if scope ends up single
	SampleSegments  []domain.RailSegment `json:"sampleSegments,omitempty"`
}

// PassRecommendation is the engine's suggested configuration.
type PassRecommendation struct {
	Scope           domain.PassScope    `json:"scope"`
	ValidityMode    domain.ValidityMode `json:"validityMode"`
	TravelDaysTotal int                 `json:"travelDaysTotal,omitempty"`
	Class           domain.ClassLevel   `json:"class"`
	Medium          domain.TicketMedium `json:"medium"`
	Reminders       []string            `json:"reminders,omitempty"`
}

const dayTier = 5

// Recommend applies the decision table. Day budgets come from a sample
// simulation when samples exist, otherwise from ceil(n / 2.5), both rounded
// up to the nearest 5-day tier and floored at 5.
func (e PassSelectionEngine) Recommend(shape TripShape) (PassRecommendation, error) {
	rec := PassRecommendation{}

	if shape.CrossCountry >= 2 {
		rec.Scope = domain.ScopeNetwork
	} else {
		rec.Scope = domain.ScopeSingleCountry
	}

	if shape.DailyTravel {
		rec.ValidityMode = domain.ValidityContinuous
	} else {
		rec.ValidityMode = domain.ValidityFlexible
		days, err := e.estimateDays(shape)
		if err != nil {
			return PassRecommendation{}, err
		}
		rec.TravelDaysTotal = days
	}

	if shape.PreferFirst && !shape.BudgetSensitive {
		rec.Class = domain.ClassFirst
	} else {
		rec.Class = domain.ClassSecond
	}

	if shape.PreferPaper {
		rec.Medium = domain.MediumPaper
	} else {
		rec.Medium = domain.MediumMobile
		rec.Reminders = append(rec.Reminders,
			"mobile passes need periodic re-validation with network connectivity; refresh the app before offline stretches")
	}
	return rec, nil
}

func (e PassSelectionEngine) estimateDays(shape TripShape) (int, error) {
	if len(shape.SampleSegments) > 0 {
		sim := domain.PassProfile{
			ResidencyCountry: "XX",
			Family:           domain.FamilyVisitor,
			Scope:            domain.ScopeNetwork,
			ValidityMode:     domain.ValidityFlexible,
		}
		res, err := e.Calculator.Calculate(shape.SampleSegments, sim)
		if err != nil {
			return 0, err
		}
		return roundToTier(res.TotalDaysUsed), nil
	}
	est := int(math.Ceil(float64(shape.SegmentCount) / 2.5))
	return roundToTier(est), nil
}

// roundToTier rounds up to the nearest 5-day tier, floored at 5.
func roundToTier(days int) int {
	if days <= dayTier {
		return dayTier
	}
	if rem := days % dayTier; rem != 0 {
		days += dayTier - rem
	}
	return days
}
