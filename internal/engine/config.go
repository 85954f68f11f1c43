package engine

import (
	"os"
	"strconv"
	"strings"

	"railpass/internal/domain"
)

// FeeBand is a named estimate band for one mandatory-reservation reason.
type FeeBand struct {
	Min float64
	Max float64
}

// Config holds every heuristic constant the engines branch on. All figures
// are estimates, not live quotes; keep them here so recalibration never
// touches engine logic.
type Config struct {
	Currency string

	// Fee estimate bands keyed by mandatory reason.
	NightTrainBand    FeeBand
	HighSpeedBand     FeeBand
	InternationalBand FeeBand
	OperatorBand      FeeBand
	OptionalBand      FeeBand

	// Quota-risk score weights and thresholds.
	WeightNightTrain    int
	WeightSpeedOrIntl   int
	WeightPeakSeason    int
	WeightCloseDegrade  int // departure within CloseDays
	WeightUrgentDegrade int // departure within UrgentDays
	CloseDays           int
	UrgentDays          int
	RiskHighThreshold   int
	RiskMediumThreshold int

	// Months (1-12) treated as peak season.
	PeakMonths map[int]bool

	// Operator substrings whose policy always demands a reservation.
	ReservationOperators []string
	// Operator substrings known to be inside the pass network.
	CoveredOperators []string
	// Operator substrings that are city transit, never covered.
	CityTransitOperators []string

	// Country codes of the home region deciding the resident pass family.
	HomeRegion map[string]bool

	// Regeneration knobs.
	ShiftIntervalMin   int     // stability strategy departure shift, minutes
	AffordabilityFee   float64 // fee ceiling that triggers direct-ticket comparison
	DirectTicketBase   float64 // base price for the direct-ticket heuristic
	HighSpeedFactor    float64
	InternationalFact  float64
	NightTrainFactor   float64
	ReminderWindowDays int // cron: flag unbooked tasks this close to travel
}

// DefaultConfig returns the calibration the engines ship with. Env variables
// override the risk thresholds and the affordability ceiling so operators can
// retune without a rebuild.
func DefaultConfig() Config {
	cfg := Config{
		Currency: "EUR",

		NightTrainBand:    FeeBand{Min: 20, Max: 150},
		HighSpeedBand:     FeeBand{Min: 10, Max: 30},
		InternationalBand: FeeBand{Min: 10, Max: 30},
		OperatorBand:      FeeBand{Min: 5, Max: 25},
		OptionalBand:      FeeBand{Min: 0, Max: 5},

		WeightNightTrain:    2,
		WeightSpeedOrIntl:   1,
		WeightPeakSeason:    1,
		WeightCloseDegrade:  1,
		WeightUrgentDegrade: 2,
		CloseDays:           14,
		UrgentDays:          3,
		RiskHighThreshold:   4,
		RiskMediumThreshold: 2,

		PeakMonths: map[int]bool{6: true, 7: true, 8: true, 12: true},

		ReservationOperators: []string{"eurostar", "thalys", "tgv", "frecciarossa", "ave", "railjet xpress"},
		CoveredOperators:     []string{"db", "öbb", "obb", "sbb", "sncf", "trenitalia", "renfe", "ns", "sncb", "pkp", "cd", "mav", "sj", "dsb", "regiojet"},
		CityTransitOperators: []string{"metro", "u-bahn", "s-bahn", "tram", "city bus", "underground", "subway", "ratp", "bvg", "wiener linien"},

		HomeRegion: map[string]bool{
			"AT": true, "BE": true, "BG": true, "CH": true, "CZ": true, "DE": true,
			"DK": true, "EE": true, "ES": true, "FI": true, "FR": true, "GB": true,
			"GR": true, "HR": true, "HU": true, "IE": true, "IT": true, "LT": true,
			"LU": true, "LV": true, "ME": true, "MK": true, "NL": true, "NO": true,
			"PL": true, "PT": true, "RO": true, "RS": true, "SE": true, "SI": true,
			"SK": true, "TR": true, "BA": true,
		},

		ShiftIntervalMin:   120,
		AffordabilityFee:   40,
		DirectTicketBase:   29,
		HighSpeedFactor:    2.2,
		InternationalFact:  1.6,
		NightTrainFactor:   2.8,
		ReminderWindowDays: 7,
	}

	cfg.RiskHighThreshold = envInt("RAILPASS_RISK_HIGH", cfg.RiskHighThreshold)
	cfg.RiskMediumThreshold = envInt("RAILPASS_RISK_MEDIUM", cfg.RiskMediumThreshold)
	cfg.AffordabilityFee = envFloat("RAILPASS_AFFORDABILITY_FEE", cfg.AffordabilityFee)
	cfg.ReminderWindowDays = envInt("RAILPASS_REMINDER_DAYS", cfg.ReminderWindowDays)
	return cfg
}

func (c Config) bandFor(reason domain.MandatoryReason) FeeBand {
	switch reason {
	case domain.ReasonNightTrain:
		return c.NightTrainBand
	case domain.ReasonHighSpeed:
		return c.HighSpeedBand
	case domain.ReasonInternational:
		return c.InternationalBand
	case domain.ReasonOperatorPolicy:
		return c.OperatorBand
	default:
		return c.OptionalBand
	}
}

func matchesAny(value string, needles []string) bool {
	v := strings.ToLower(strings.TrimSpace(value))
	if v == "" {
		return false
	}
	for _, n := range needles {
		if strings.Contains(v, n) {
			return true
		}
	}
	return false
}

func envInt(key string, def int) int {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func envFloat(key string, def float64) float64 {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}
