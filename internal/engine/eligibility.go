package engine

import (
	"strings"

	"railpass/internal/domain"
)

// EligibilityEngine maps residency to a pass family and polices the
// home-country usage quota of the resident family.
type EligibilityEngine struct {
	Config Config
}

// HomeCountryRules caps rail usage inside the residency country for the
// resident family. Same-day multi-leg transfers count as a single use; that
// is the product rule, not an accounting accident.
type HomeCountryRules struct {
	OutboundMax int    `json:"outboundMax"`
	InboundMax  int    `json:"inboundMax"`
	Note        string `json:"note"`
}

// EligibilityResult is the residency verdict for one traveler.
type EligibilityResult struct {
	Family           domain.PassFamily `json:"family"`
	ResidencyCountry string            `json:"residencyCountry"`
	UsesHomeRail     bool              `json:"usesHomeRail"`
	HomeRules        *HomeCountryRules `json:"homeRules,omitempty"`
}

// DetermineFamily picks the pass family from residency alone.
func (e EligibilityEngine) DetermineFamily(residency string) domain.PassFamily {
	if e.Config.HomeRegion[strings.ToUpper(strings.TrimSpace(residency))] {
		return domain.FamilyResident
	}
	return domain.FamilyVisitor
}

// CheckEligibility resolves family and, when the itinerary touches the
// residency country under the resident family, attaches the quota rules.
func (e EligibilityEngine) CheckEligibility(residency string, travelCountries []string, departureDate string) (EligibilityResult, error) {
	residency = strings.ToUpper(strings.TrimSpace(residency))
	if residency == "" {
		return EligibilityResult{}, domain.ValidationError{Field: "residencyCountry", Msg: "required"}
	}
	if departureDate != "" {
		if _, err := domain.ParseDay(departureDate); err != nil {
			return EligibilityResult{}, err
		}
	}

	family := e.DetermineFamily(residency)
	res := EligibilityResult{
		Family:           family,
		ResidencyCountry: residency,
	}
	for _, c := range travelCountries {
		if strings.EqualFold(strings.TrimSpace(c), residency) {
			res.UsesHomeRail = true
			break
		}
	}
	if family == domain.FamilyResident && res.UsesHomeRail {
		res.HomeRules = &HomeCountryRules{
			OutboundMax: 1,
			InboundMax:  1,
			Note:        "one outbound and one inbound use inside the residency country; same-day multiple transfers count as a single use",
		}
	}
	return res, nil
}

// ValidateHomeCountryUsage re-checks the counters at any point of the
// itinerary's life. No-op for the visitor family.
func (e EligibilityEngine) ValidateHomeCountryUsage(profile domain.PassProfile, outboundUsed, inboundUsed int) []domain.Violation {
	if profile.Family != domain.FamilyResident {
		return nil
	}
	var violations []domain.Violation
	if outboundUsed > 1 {
		violations = append(violations, domain.Violation{
			Code:     "HOME_OUTBOUND_EXCEEDED",
			Severity: domain.SeverityError,
			Message:  "home-country outbound quota exceeded: at most 1 outbound use is allowed",
			Details:  map[string]any{"outboundUsed": outboundUsed},
			Suggestions: []string{
				"use point-to-point tickets for extra home-country legs",
			},
		})
	}
	if inboundUsed > 1 {
		violations = append(violations, domain.Violation{
			Code:     "HOME_INBOUND_EXCEEDED",
			Severity: domain.SeverityError,
			Message:  "home-country inbound quota exceeded: at most 1 inbound use is allowed",
			Details:  map[string]any{"inboundUsed": inboundUsed},
			Suggestions: []string{
				"use point-to-point tickets for extra home-country legs",
			},
		})
	}
	return violations
}

// CountHomeUsage tallies home-country legs from the itinerary itself,
// deduplicated per calendar date so same-day transfers count once. Legs fully
// inside the residency country before the first border crossing count as
// outbound, after the last crossing as inbound.
func (e EligibilityEngine) CountHomeUsage(segments []domain.RailSegment, residency string) (outbound, inbound int) {
	residency = strings.ToUpper(strings.TrimSpace(residency))
	if residency == "" {
		return 0, 0
	}
	lastAbroad := -1
	firstAbroad := -1
	for i, s := range segments {
		home := strings.EqualFold(s.FromCountry, residency) && strings.EqualFold(s.ToCountry, residency)
		if !home {
			if firstAbroad == -1 {
				firstAbroad = i
			}
			lastAbroad = i
		}
	}
	outDates := map[string]bool{}
	inDates := map[string]bool{}
	for i, s := range segments {
		home := strings.EqualFold(s.FromCountry, residency) && strings.EqualFold(s.ToCountry, residency)
		if !home {
			continue
		}
		switch {
		case firstAbroad == -1 || i < firstAbroad:
			outDates[s.DepartureDate] = true
		case i > lastAbroad:
			inDates[s.DepartureDate] = true
		default:
			// home leg sandwiched between foreign legs counts as outbound
			outDates[s.DepartureDate] = true
		}
	}
	return len(outDates), len(inDates)
}
