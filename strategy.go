package allocation

import (
	"encoding/json"
	"fmt"
	"math"
)

const numCategories = len(categoryTags)

// Weights maps each category to an integer percentage. Final weights sum to 100.
type Weights [numCategories]int

// W builds weights in canonical category order.
func W(realEstate, stocks, gold, bonds, savings, crypto int) Weights {
	return Weights{realEstate, stocks, gold, bonds, savings, crypto}
}

// Of returns the weight of a category.
func (w Weights) Of(c Category) int { return w[c] }

// Sum of all the weights.
func (w Weights) Sum() int {
	s := 0
	for _, v := range w {
		s += v
	}
	return s
}

func (w Weights) String() string {
	b, _ := json.Marshal(w)
	return string(b)
}

func (w Weights) MarshalJSON() ([]byte, error) {
	var o jsonObjectWriter
	for _, c := range Categories {
		o.Append(c.String(), w[c])
	}
	return o.MarshalJSON()
}

func (w *Weights) UnmarshalJSON(data []byte) error {
	var m map[string]int
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	var out Weights
	for k, v := range m {
		c, err := ParseCategory(k)
		if err != nil {
			return err
		}
		out[c] = v
	}
	*w = out
	return nil
}

// StrategyName identifies an allocation template.
type StrategyName string

const (
	Conservative  StrategyName = "conservative"
	Balanced      StrategyName = "balanced"
	Aggressive    StrategyName = "aggressive"
	Retirement    StrategyName = "retirement"
	IncomeFocused StrategyName = "income-focused"
	SafeDefault   StrategyName = "safe-default"
)

// Strategy is a named allocation template.
type Strategy struct {
	Name    StrategyName `json:"name"`
	Weights Weights      `json:"weights"`
	// ReviewMonths is the recommended portfolio review period.
	ReviewMonths int `json:"reviewMonths"`
	// MinReturn and MaxReturn bound the annual return expected from the template.
	MinReturn Percent `json:"minReturn"`
	MaxReturn Percent `json:"maxReturn"`
}

// Templates are the fixed allocation templates, each summing to 100.
var Templates = map[StrategyName]Strategy{
	Conservative:  {Conservative, W(10, 10, 15, 35, 30, 0), 12, 3, 6},
	Balanced:      {Balanced, W(20, 30, 10, 20, 15, 5), 6, 5, 10},
	Aggressive:    {Aggressive, W(20, 45, 5, 5, 5, 20), 3, 8, 15},
	Retirement:    {Retirement, W(15, 15, 10, 35, 25, 0), 12, 4, 8},
	IncomeFocused: {IncomeFocused, W(30, 20, 5, 30, 15, 0), 6, 5, 9},
	SafeDefault:   {SafeDefault, W(0, 0, 20, 30, 50, 0), 12, 3, 5},
}

// Template returns a template by name.
func Template(name StrategyName) (Strategy, error) {
	s, ok := Templates[name]
	if !ok {
		return Strategy{}, fmt.Errorf("unknown strategy %q", name)
	}
	return s, nil
}

// Factors are the profile scores used to select a strategy, all within [0,1].
type Factors struct {
	Age      float64 `json:"age"`
	Risk     float64 `json:"risk"`
	Income   float64 `json:"income"`
	Budget   float64 `json:"budget"`
	Goals    float64 `json:"goals"`
	Combined float64 `json:"combined"` // 0.3 age + 0.4 risk + 0.3 goals
	Capacity float64 `json:"capacity"` // 0.6 income + 0.4 budget
}

var riskFactors = map[Risk]float64{
	RiskLow:    0.1,
	RiskMedium: 0.5,
	RiskHigh:   1.0,
}

var goalAdjustments = map[Goal]float64{
	GoalGrowth:       +0.3,
	GoalEducation:    -0.1,
	GoalPreservation: -0.2,
	GoalEmergency:    -0.3,
}

var budgetFactors = map[string]float64{
	"starter":      0.2,
	"intermediate": 0.6,
	"advanced":     1.0,
}

// ScoreProfile computes the strategy selection factors.
func ScoreProfile(p Profile) Factors {
	f := Factors{
		Age:    ageFactors[p.Age],
		Risk:   riskFactors[p.Risk],
		Income: incomeFactors[p.Income],
		Budget: budgetFactors[budgetSegment(p.Budget)],
		Goals:  0.5,
	}
	for _, g := range p.Goals {
		f.Goals += goalAdjustments[g]
	}
	f.Goals = math.Max(0, math.Min(1, f.Goals))
	f.Combined = 0.3*f.Age + 0.4*f.Risk + 0.3*f.Goals
	f.Capacity = 0.6*f.Income + 0.4*f.Budget
	return f
}

// SelectStrategy maps a profile to exactly one template.
//
// A retirement goal wins, then an income goal. Otherwise the lower of the
// combined risk score and the capacity score picks conservative (< 0.3),
// balanced (< 0.6) or aggressive.
func SelectStrategy(p Profile) Strategy {
	switch {
	case p.HasGoal(GoalRetirement):
		return Templates[Retirement]
	case p.HasGoal(GoalIncome):
		return Templates[IncomeFocused]
	}
	f := ScoreProfile(p)
	switch low := math.Min(f.Combined, f.Capacity); {
	case low < 0.3:
		return Templates[Conservative]
	case low < 0.6:
		return Templates[Balanced]
	default:
		return Templates[Aggressive]
	}
}
