package allocation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrInvalidProfile is wrapped by every profile validation failure.
var ErrInvalidProfile = errors.New("invalid profile")

// Risk is a coarse low/medium/high classification, used both for the
// user's tolerance and for an instrument's risk bucket.
type Risk int

const (
	RiskUnknown Risk = iota
	RiskLow
	RiskMedium
	RiskHigh
)

func (r Risk) String() string {
	switch r {
	case RiskLow:
		return "low"
	case RiskMedium:
		return "medium"
	case RiskHigh:
		return "high"
	}
	return "unknown"
}

// ParseRisk accepts low/medium/high plus the very_low/very_high extremes,
// which collapse into the nearest bucket.
func ParseRisk(s string) (Risk, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "low", "very_low", "very-low":
		return RiskLow, nil
	case "medium", "moderate":
		return RiskMedium, nil
	case "high", "very_high", "very-high":
		return RiskHigh, nil
	}
	return RiskUnknown, fmt.Errorf("unknown risk level %q", s)
}

func (r Risk) MarshalText() ([]byte, error) { return []byte(r.String()), nil }
func (r *Risk) UnmarshalText(text []byte) error {
	if len(text) == 0 || string(text) == "unknown" {
		*r = RiskUnknown
		return nil
	}
	v, err := ParseRisk(string(text))
	if err != nil {
		return err
	}
	*r = v
	return nil
}

// AgeBracket is the user's age range.
type AgeBracket string

const (
	Age18to25 AgeBracket = "18-25"
	Age26to35 AgeBracket = "26-35"
	Age36to45 AgeBracket = "36-45"
	Age46to55 AgeBracket = "46-55"
	Age56to65 AgeBracket = "56-65"
	Age65Plus AgeBracket = "65+"
)

var ageFactors = map[AgeBracket]float64{
	Age18to25: 1.0,
	Age26to35: 0.8,
	Age36to45: 0.6,
	Age46to55: 0.4,
	Age56to65: 0.2,
	Age65Plus: 0.1,
}

// Young reports whether the bracket is 35 or under.
func (a AgeBracket) Young() bool { return a == Age18to25 || a == Age26to35 }

// IncomeBracket is the user's income range.
type IncomeBracket string

const (
	IncomeLow         IncomeBracket = "low"
	IncomeLowerMiddle IncomeBracket = "lower-middle"
	IncomeMiddle      IncomeBracket = "middle"
	IncomeUpperMiddle IncomeBracket = "upper-middle"
	IncomeHigh        IncomeBracket = "high"
)

var incomeFactors = map[IncomeBracket]float64{
	IncomeLow:         0.2,
	IncomeLowerMiddle: 0.4,
	IncomeMiddle:      0.6,
	IncomeUpperMiddle: 0.8,
	IncomeHigh:        1.0,
}

// Goal is a financial goal tag.
type Goal string

const (
	GoalRetirement   Goal = "retirement"
	GoalIncome       Goal = "income"
	GoalGrowth       Goal = "growth"
	GoalEducation    Goal = "education"
	GoalPreservation Goal = "preservation"
	GoalEmergency    Goal = "emergency"
)

var goalAliases = map[string]Goal{
	"passive_income":      GoalIncome,
	"capital_growth":      GoalGrowth,
	"children_education":  GoalEducation,
	"wealth_preservation": GoalPreservation,
	"emergency_fund":      GoalEmergency,
	"safety":              GoalPreservation,
}

// ParseGoal returns the goal for a tag or one of its legacy aliases.
func ParseGoal(s string) (Goal, error) {
	tag := strings.ToLower(strings.TrimSpace(s))
	switch g := Goal(tag); g {
	case GoalRetirement, GoalIncome, GoalGrowth, GoalEducation, GoalPreservation, GoalEmergency:
		return g, nil
	}
	if g, ok := goalAliases[tag]; ok {
		return g, nil
	}
	return "", fmt.Errorf("unknown goal %q", s)
}

// ParseGoals parses a comma separated list of goals.
func ParseGoals(s string) ([]Goal, error) {
	var goals []Goal
	for _, f := range strings.Split(s, ",") {
		if strings.TrimSpace(f) == "" {
			continue
		}
		g, err := ParseGoal(f)
		if err != nil {
			return nil, err
		}
		goals = append(goals, g)
	}
	return goals, nil
}

// GlobalMarket matches every instrument market.
const GlobalMarket = "global"

// Profile is the validated answer to the questionnaire. Treat it as
// immutable once built.
type Profile struct {
	Age         AgeBracket    `json:"age"`
	Income      IncomeBracket `json:"income"`
	Risk        Risk          `json:"risk"`
	Goals       []Goal        `json:"goals,omitempty"`
	Preferences CategorySet   `json:"preferences"`
	Budget      Money         `json:"budget"`
	Market      string        `json:"market,omitempty"`
	Shariah     bool          `json:"shariah,omitempty"`
}

// HasGoal reports whether g is one of the profile goals.
func (p Profile) HasGoal(g Goal) bool {
	for _, x := range p.Goals {
		if x == g {
			return true
		}
	}
	return false
}

// Currency is the budget currency.
func (p Profile) Currency() string { return p.Budget.Currency() }

// Validate returns nil or an error wrapping ErrInvalidProfile with all the failures found.
func (p Profile) Validate() error {
	var errs []error
	if _, ok := ageFactors[p.Age]; !ok {
		errs = append(errs, fmt.Errorf("age bracket %q is not one of 18-25, 26-35, 36-45, 46-55, 56-65, 65+", p.Age))
	}
	if _, ok := incomeFactors[p.Income]; !ok {
		errs = append(errs, fmt.Errorf("income bracket %q is not one of low, lower-middle, middle, upper-middle, high", p.Income))
	}
	if p.Risk == RiskUnknown {
		errs = append(errs, errors.New("risk tolerance is required"))
	}
	if !p.Budget.IsPositive() {
		errs = append(errs, fmt.Errorf("budget must be positive, got %s", p.Budget.Decimal()))
	}
	if err := ValidateCurrency(p.Budget.Currency()); err != nil {
		errs = append(errs, err)
	}
	for _, g := range p.Goals {
		if _, err := ParseGoal(string(g)); err != nil {
			errs = append(errs, err)
		}
	}
	for c := range p.Preferences {
		if !c.Valid() {
			errs = append(errs, fmt.Errorf("%w %d in preferences", ErrUnknownCategory, int(c)))
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalidProfile, errors.Join(errs...))
}

// Budget tiers are in USD. Budgets in another currency are compared at the
// reference rates of DefaultRates, and as is when the currency is unknown.
const tierCurrency = "USD"

var (
	starterBudget      = decimal.NewFromInt(10000)
	intermediateBudget = decimal.NewFromInt(100000)
	referenceRates     = DefaultRates()
)

// budgetSegment classifies the budget size as starter, intermediate or advanced.
func budgetSegment(budget Money) string {
	v := budget.Decimal()
	if c := budget.Currency(); c != "" && !strings.EqualFold(c, tierCurrency) {
		if r, err := referenceRates.Rate(context.Background(), c, tierCurrency); err == nil {
			v = v.Mul(r)
		}
	}
	switch {
	case v.LessThan(starterBudget):
		return "starter"
	case v.LessThan(intermediateBudget):
		return "intermediate"
	default:
		return "advanced"
	}
}

// Segment returns a descriptive label like "medium_growth_intermediate"
// built from the risk, the main goal and the budget size.
func (p Profile) Segment() string {
	goal := "general"
	if len(p.Goals) > 0 {
		goals := make([]string, len(p.Goals))
		for i, g := range p.Goals {
			goals[i] = string(g)
		}
		sort.Strings(goals)
		goal = goals[0]
		// retirement and income drive the strategy, make them the headline.
		if p.HasGoal(GoalRetirement) {
			goal = string(GoalRetirement)
		} else if p.HasGoal(GoalIncome) {
			goal = string(GoalIncome)
		}
	}
	return fmt.Sprintf("%s_%s_%s", p.Risk, goal, budgetSegment(p.Budget))
}

// String is a compact one-line form, used in logs.
func (p Profile) String() string {
	b, _ := json.Marshal(p)
	return string(b)
}
