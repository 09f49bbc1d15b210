// Package planfile reads YAML plan files for the fundplan CLI.
//
// A plan file lists goals together with the budget, funding style and
// optional household and lump-sum settings:
//
//	budget: 1500
//	style: hybrid
//	lump_sum: 4000
//	household:
//	  adults: 2
//	  children: 1
//	risk:
//	  conservative: 3.5%
//	  balanced: 5%
//	  growth: 7%
//	goals:
//	  - id: emergency-fund
//	    name: Emergency fund
//	    amount: 6000
//	    target_date: 2027-06-01
//	    scale_with_household: true
package planfile

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/mmynk/fundplan/internal/calculator"
	"github.com/mmynk/fundplan/internal/models"
)

// Plan is the decoded content of a plan file.
type Plan struct {
	Budget    float64                 `yaml:"budget"`
	Style     string                  `yaml:"style"`
	LumpSum   float64                 `yaml:"lump_sum"`
	Household Household               `yaml:"household"`
	Risk      *calculator.RiskProfile `yaml:"risk"`
	Goals     []GoalSpec              `yaml:"goals"`
}

// Household sizes the equivalence scale applied to scalable goals.
type Household struct {
	Adults   int `yaml:"adults"`
	Children int `yaml:"children"`
}

// GoalSpec is one goal entry of a plan file.
type GoalSpec struct {
	calculator.GoalInput `yaml:",inline"`

	// ScaleWithHousehold marks amounts given for a single adult.
	ScaleWithHousehold bool `yaml:"scale_with_household"`
}

// Load reads and parses a plan file.
func Load(path string) (*Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading plan file: %w", err)
	}
	return Parse(data)
}

// Parse decodes a plan file. Rates may be written as percentages ("5%").
func Parse(data []byte) (*Plan, error) {
	var plan Plan
	if err := yaml.Unmarshal([]byte(preprocessPercentages(string(data))), &plan); err != nil {
		return nil, fmt.Errorf("parsing plan file: %w", err)
	}
	if plan.Budget < 0 {
		return nil, fmt.Errorf("budget cannot be negative")
	}
	if plan.LumpSum < 0 {
		return nil, fmt.Errorf("lump_sum cannot be negative")
	}
	if _, err := models.ParseFundingStyle(plan.Style); err != nil {
		return nil, err
	}
	return &plan, nil
}

// BuildGoals turns the goal entries into engine-ready goals. The plan's own
// risk profile wins over fallback.
func (p *Plan) BuildGoals(now time.Time, fallback calculator.RiskProfile) ([]models.Goal, error) {
	risk := fallback
	if p.Risk != nil {
		risk = *p.Risk
	}

	goals := make([]models.Goal, 0, len(p.Goals))
	for i, spec := range p.Goals {
		in := spec.GoalInput
		if spec.ScaleWithHousehold {
			in.Amount = calculator.ScaleForHousehold(in.Amount, p.Household.Adults, p.Household.Children)
		}
		goal, err := calculator.BuildGoal(in, now, risk)
		if err != nil {
			return nil, fmt.Errorf("goal %d: %w", i+1, err)
		}
		goals = append(goals, goal)
	}
	return goals, nil
}

var percentPattern = regexp.MustCompile(`(:\s*)(-?\d+\.?\d*)%`)

// preprocessPercentages converts values like "5%" to "0.05".
func preprocessPercentages(content string) string {
	return percentPattern.ReplaceAllStringFunc(content, func(match string) string {
		parts := percentPattern.FindStringSubmatch(match)
		v, err := strconv.ParseFloat(parts[2], 64)
		if err != nil {
			return match
		}
		return parts[1] + strconv.FormatFloat(v/100, 'f', -1, 64)
	})
}
