package calculator

import "github.com/mmynk/fundplan/internal/models"

// Horizon boundaries for the return-phase selector, in months.
const (
	shortHorizonMonths  = 36
	mediumHorizonMonths = 120
	glideMonths         = 60
)

// RiskProfile holds the expected annual returns of the three investment stances.
type RiskProfile struct {
	Conservative float64 `json:"conservative" toml:"conservative" yaml:"conservative"`
	Balanced     float64 `json:"balanced" toml:"balanced" yaml:"balanced"`
	Growth       float64 `json:"growth" toml:"growth" yaml:"growth"`
}

// DefaultRiskProfile is used when no profile is configured.
var DefaultRiskProfile = RiskProfile{
	Conservative: 0.04,
	Balanced:     0.06,
	Growth:       0.08,
}

// PhasesForHorizon picks a return-phase schedule for a horizon.
//
// Short horizons stay conservative throughout. Medium horizons start balanced
// and de-risk for the last three years. Long horizons start in growth, move to
// balanced for five years and end with five conservative years.
// The phase lengths always sum to horizon.
func PhasesForHorizon(horizon int, profile RiskProfile) []models.ReturnPhase {
	switch {
	case horizon <= 0:
		return nil
	case horizon <= shortHorizonMonths:
		return []models.ReturnPhase{
			{Months: horizon, AnnualRate: profile.Conservative},
		}
	case horizon <= mediumHorizonMonths:
		return []models.ReturnPhase{
			{Months: horizon - shortHorizonMonths, AnnualRate: profile.Balanced},
			{Months: shortHorizonMonths, AnnualRate: profile.Conservative},
		}
	default:
		return []models.ReturnPhase{
			{Months: horizon - 2*glideMonths, AnnualRate: profile.Growth},
			{Months: glideMonths, AnnualRate: profile.Balanced},
			{Months: glideMonths, AnnualRate: profile.Conservative},
		}
	}
}

// PhaseMonths returns the total length of a phase schedule.
func PhaseMonths(phases []models.ReturnPhase) int {
	total := 0
	for _, p := range phases {
		total += p.Months
	}
	return total
}
