package engine

import (
	"fmt"
	"time"

	"railpass/internal/domain"
)

// ReservationDecisionEngine decides, per segment, whether a paid seat or
// berth reservation is mandatory and how risky it is to obtain. Pure: the
// same segment always yields the same answer for a fixed Now.
type ReservationDecisionEngine struct {
	Config Config
	// Now anchors the days-until-departure proximity weight. Injected so the
	// decision stays replayable; zero value means "no proximity signal".
	Now time.Time
}

// CheckReservation resolves the mandatory reason in fixed order: night train,
// then high speed, then international, then operator policy. First match wins.
func (e ReservationDecisionEngine) CheckReservation(seg domain.RailSegment) (domain.ReservationRequirement, error) {
	if err := seg.Validate(); err != nil {
		return domain.ReservationRequirement{}, err
	}

	req := domain.ReservationRequirement{SegmentID: seg.ID}
	switch {
	case seg.IsNightTrain:
		req.Required = true
		req.Reason = domain.ReasonNightTrain
	case seg.IsHighSpeed:
		req.Required = true
		req.Reason = domain.ReasonHighSpeed
	case seg.IsInternational:
		req.Required = true
		req.Reason = domain.ReasonInternational
	case matchesAny(seg.Operator, e.Config.ReservationOperators):
		req.Required = true
		req.Reason = domain.ReasonOperatorPolicy
	}

	band := e.Config.bandFor(req.Reason)
	if !req.Required {
		band = e.Config.OptionalBand
	}
	req.FeeEstimate = &domain.FeeEstimate{Min: band.Min, Max: band.Max, Currency: e.Config.Currency}

	score, factors := e.riskScore(seg)
	req.RiskFactors = factors
	switch {
	case score >= e.Config.RiskHighThreshold:
		req.QuotaRisk = domain.RiskHigh
	case score >= e.Config.RiskMediumThreshold:
		req.QuotaRisk = domain.RiskMedium
	default:
		req.QuotaRisk = domain.RiskLow
	}

	if req.Required {
		req.Channels = channelsFor(req.Reason)
	}
	return req, nil
}

func (e ReservationDecisionEngine) riskScore(seg domain.RailSegment) (int, []string) {
	score := 0
	var factors []string

	if seg.IsNightTrain {
		score += e.Config.WeightNightTrain
		factors = append(factors, "night train berths sell out first")
	}
	if seg.IsHighSpeed || seg.IsInternational {
		score += e.Config.WeightSpeedOrIntl
		factors = append(factors, "high-speed/international trains carry pass-holder quotas")
	}

	dep, err := domain.ParseDay(seg.DepartureDate)
	if err == nil {
		if e.Config.PeakMonths[int(dep.Month())] {
			score += e.Config.WeightPeakSeason
			factors = append(factors, fmt.Sprintf("%s is peak season", dep.Month()))
		}
		if !e.Now.IsZero() {
			daysUntil := int(dep.Sub(e.Now.Truncate(24*time.Hour)).Hours() / 24)
			switch {
			case daysUntil >= 0 && daysUntil <= e.Config.UrgentDays:
				score += e.Config.WeightUrgentDegrade
				factors = append(factors, "departure is imminent")
			case daysUntil > e.Config.UrgentDays && daysUntil <= e.Config.CloseDays:
				score += e.Config.WeightCloseDegrade
				factors = append(factors, "departure is close")
			}
		}
	}
	return score, factors
}

func channelsFor(reason domain.MandatoryReason) []domain.BookingChannel {
	switch reason {
	case domain.ReasonNightTrain:
		return []domain.BookingChannel{domain.ChannelOperatorSite, domain.ChannelStationCounter}
	case domain.ReasonOperatorPolicy:
		return []domain.BookingChannel{domain.ChannelOperatorSite, domain.ChannelThirdParty}
	default:
		return []domain.BookingChannel{domain.ChannelOfficialApp, domain.ChannelOperatorSite, domain.ChannelStationCounter}
	}
}

// GenerateFallbackOptions proposes every remediation that could apply. The
// caller picks; the engine never chooses for it.
func (e ReservationDecisionEngine) GenerateFallbackOptions(seg domain.RailSegment) []domain.FallbackOption {
	var opts []domain.FallbackOption
	if seg.IsHighSpeed {
		opts = append(opts, domain.FallbackOption{
			ID: "fb-slow-" + seg.ID, Kind: domain.FallbackSlowTrain,
			Description: "regional/IC train without compulsory reservation",
			TimeDeltaMin: 90, CostDelta: -15,
		})
	}
	if seg.IsNightTrain {
		opts = append(opts, domain.FallbackOption{
			ID: "fb-split-" + seg.ID, Kind: domain.FallbackSplitNight,
			Description: "day train plus overnight lodging at the midpoint",
			TimeDeltaMin: 240, CostDelta: 45,
		})
	}
	opts = append(opts,
		domain.FallbackOption{
			ID: "fb-shift-" + seg.ID, Kind: domain.FallbackShiftTime,
			Description: "shift departure to an off-peak window",
			TimeDeltaMin: 120, CostDelta: 0,
		},
		domain.FallbackOption{
			ID: "fb-route-" + seg.ID, Kind: domain.FallbackChangeRoute,
			Description: "alternative routing over a less loaded corridor",
			TimeDeltaMin: 60, CostDelta: 5,
		},
		domain.FallbackOption{
			ID: "fb-flight-" + seg.ID, Kind: domain.FallbackFlight,
			Description: "budget flight on the same city pair",
			TimeDeltaMin: -120, CostDelta: 60,
		},
		domain.FallbackOption{
			ID: "fb-bus-" + seg.ID, Kind: domain.FallbackBus,
			Description: "long-distance coach",
			TimeDeltaMin: 180, CostDelta: -25,
		},
	)
	return opts
}
