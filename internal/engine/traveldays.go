package engine

import (
	"sort"

	"railpass/internal/domain"
)

// TravelDayCalculator converts an itinerary into calendar-day consumption for
// flexible-validity passes. A travel day is a natural calendar day
// (00:00-23:59), never a rolling 24-hour window.
type TravelDayCalculator struct{}

// ConsumedDay explains why one calendar date was charged.
type ConsumedDay struct {
	Date       string   `json:"date"` // YYYY-MM-DD
	SegmentIDs []string `json:"segmentIds"`
	// NightTrainSpill marks a day consumed only because a night train from the
	// previous date crossed midnight into it.
	NightTrainSpill bool `json:"nightTrainSpill"`
}

// TravelDayResult is the full day-accounting outcome.
type TravelDayResult struct {
	TotalDaysUsed int                `json:"totalDaysUsed"`
	RemainingDays int                `json:"remainingDays"`
	Days          []ConsumedDay      `json:"days"`
	Violations    []domain.Violation `json:"violations,omitempty"`
}

// Calculate runs the day accounting. Continuous passes short-circuit to zero
// consumption; their entitlement is the date range itself.
func (TravelDayCalculator) Calculate(segments []domain.RailSegment, profile domain.PassProfile) (TravelDayResult, error) {
	if err := domain.ValidateSegments(segments); err != nil {
		return TravelDayResult{}, err
	}
	if profile.ValidityMode == domain.ValidityContinuous {
		return TravelDayResult{TotalDaysUsed: 0, RemainingDays: 0}, nil
	}

	byDate := map[string][]string{}
	spill := map[string][]string{}
	for _, s := range segments {
		byDate[s.DepartureDate] = append(byDate[s.DepartureDate], s.ID)
		if s.IsNightTrain && s.CrossesMidnight {
			next, err := nextDay(s.DepartureDate)
			if err != nil {
				return TravelDayResult{}, err
			}
			spill[next] = append(spill[next], s.ID)
		}
	}

	seen := map[string]bool{}
	var days []ConsumedDay
	for date, ids := range byDate {
		seen[date] = true
		day := ConsumedDay{Date: date, SegmentIDs: ids}
		// a spill onto a date that already has departures adds nothing extra
		if extra, ok := spill[date]; ok {
			day.SegmentIDs = append(day.SegmentIDs, extra...)
		}
		days = append(days, day)
	}
	for date, ids := range spill {
		if seen[date] {
			continue
		}
		days = append(days, ConsumedDay{Date: date, SegmentIDs: ids, NightTrainSpill: true})
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Date < days[j].Date })

	res := TravelDayResult{
		TotalDaysUsed: len(days),
		Days:          days,
	}
	budget := profile.TravelDaysTotal
	res.RemainingDays = budget - res.TotalDaysUsed
	if res.RemainingDays < 0 {
		res.RemainingDays = 0
	}
	if budget > 0 && res.TotalDaysUsed > budget {
		res.Violations = append(res.Violations, domain.Violation{
			Code:     "TRAVEL_DAYS_EXCEEDED",
			Severity: domain.SeverityError,
			Message:  "itinerary consumes more travel days than the pass budget",
			Details: map[string]any{
				"totalDaysUsed":   res.TotalDaysUsed,
				"travelDaysTotal": budget,
			},
			Suggestions: []string{
				"merge travel onto fewer calendar days",
				"replace a midnight-crossing night train with a day train",
				"buy a larger day budget",
			},
		})
	}
	return res, nil
}

// IsLastValidDay reports whether the date equals the pass's final valid day.
// Validity ends at 23:59 that day, which is why a midnight-crossing night
// train must not depart on it.
func (TravelDayCalculator) IsLastValidDay(date string, profile domain.PassProfile) (bool, error) {
	d, err := domain.ParseDay(date)
	if err != nil {
		return false, err
	}
	end, err := domain.ParseDay(profile.ValidityEnd)
	if err != nil {
		return false, err
	}
	return d.Equal(end), nil
}

func nextDay(date string) (string, error) {
	d, err := domain.ParseDay(date)
	if err != nil {
		return "", err
	}
	return d.AddDate(0, 0, 1).Format("2006-01-02"), nil
}
