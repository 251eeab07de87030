package allocation

import (
	"errors"
	"fmt"
	"testing"
)

func TestEngine_Retirement(t *testing.T) {
	catalog := NewCatalog(
		Instrument{ID: "gov_bond", Category: Bonds, Name: "Government bond", UnitPrice: USD(1000), MinInvestment: USD(10000), ExpectedReturn: 5},
		Instrument{ID: "deposit", Category: Savings, Name: "Flat deposit", MinInvestment: USD(1000), ExpectedReturn: 4},
		Instrument{ID: "aramco", Category: Stocks, Name: "Aramco", UnitPrice: USD(7.5), ExpectedReturn: 8.5},
	)
	e := newTestEngine(t, DefaultOptions())

	res, err := e.Recommend("r-1", retiree(), catalog)
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}

	if res.Strategy.Name != Retirement {
		t.Errorf("Recommend().Strategy = %q, want %q", res.Strategy.Name, Retirement)
	}
	if want := W(0, 0, 0, 58, 42, 0); res.Weights != want {
		t.Errorf("Recommend().Weights = %v, want %v", res.Weights, want)
	}
	if res.ID != "r-1" || res.Segment != "low_retirement_intermediate" {
		t.Errorf("Recommend() id, segment = %q, %q", res.ID, res.Segment)
	}
	checkItems(t, res.Items, []wantItem{{"gov_bond", USD(29000)}, {"deposit", USD(21000)}})

	bond := res.Items[0]
	if !bond.Units.Equal(Q(29)) {
		t.Errorf("bond units = %v, want 29", bond.Units)
	}
	if bond.Amount.GreaterThan(res.Category(Bonds).SubBudget) {
		t.Errorf("bond amount %v exceeds the bonds sub-budget %v", bond.Amount, res.Category(Bonds).SubBudget)
	}
	if !res.TotalAllocated.Equal(USD(50000)) || !res.Remaining.Equal(USD(0)) {
		t.Errorf("Recommend() total, remaining = %v, %v, want 50000, 0", res.TotalAllocated, res.Remaining)
	}
	if !res.ExpectedReturn.Equal(4.58) {
		t.Errorf("Recommend().ExpectedReturn = %v, want 4.58%%", res.ExpectedReturn)
	}
	if res.Risk != RiskMedium {
		t.Errorf("Recommend().Risk = %v, want medium", res.Risk)
	}
	if len(res.ItemsOf(Stocks)) != 0 {
		t.Errorf("Recommend() allocated stocks which were not preferred")
	}
}

func TestEngine_InsufficientBudget(t *testing.T) {
	var instruments []Instrument
	for _, c := range Categories {
		instruments = append(instruments, Instrument{
			ID: fmt.Sprintf("%s_001", c), Category: c, Name: c.String(),
			UnitPrice: USD(5000), MinInvestment: USD(5000), ExpectedReturn: 6,
		})
	}
	e := newTestEngine(t, DefaultOptions())

	res, err := e.Recommend("tiny", everything(USD(500)), NewCatalog(instruments...))
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if res.Feasible() {
		t.Errorf("Recommend().Feasible() = true, want false")
	}
	if len(res.Items) != 0 {
		t.Errorf("Recommend().Items = %v, want none", res.Items)
	}
	if !res.TotalAllocated.Equal(USD(0)) || !res.Remaining.Equal(USD(500)) {
		t.Errorf("Recommend() total, remaining = %v, %v, want 0, 500", res.TotalAllocated, res.Remaining)
	}
	if res.ExpectedReturn != 0 || res.Risk != RiskUnknown {
		t.Errorf("Recommend() return, risk = %v, %v, want 0, unknown", res.ExpectedReturn, res.Risk)
	}
}

func TestEngine_NoPreferenceFallsBack(t *testing.T) {
	p := Profile{Age: Age18to25, Income: IncomeHigh, Risk: RiskHigh, Goals: []Goal{GoalGrowth}, Budget: USD(200000)}
	if got := SelectStrategy(p).Name; got != Aggressive {
		t.Fatalf("SelectStrategy() = %q, want %q", got, Aggressive)
	}
	e := newTestEngine(t, DefaultOptions())

	res, err := e.Recommend("fallback", p, DefaultCatalog())
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if res.Strategy.Name != SafeDefault {
		t.Errorf("Recommend().Strategy = %q, want %q", res.Strategy.Name, SafeDefault)
	}
	if want := W(0, 0, 20, 30, 50, 0); res.Weights != want {
		t.Errorf("Recommend().Weights = %v, want %v", res.Weights, want)
	}
	for _, it := range res.Items {
		if it.Category == Stocks || it.Category == Crypto || it.Category == RealEstate {
			t.Errorf("Recommend() allocated %s in %s", it.Instrument.ID, it.Category)
		}
	}
}

func TestEngine_LumpyStretch(t *testing.T) {
	catalog := NewCatalog(
		Instrument{ID: "compound", Category: RealEstate, Name: "Compound", UnitPrice: USD(30000), MinInvestment: USD(30000), ExpectedReturn: 6.8, Risk: RiskLow},
		Instrument{ID: "deposit", Category: Savings, Name: "Deposit", MinInvestment: USD(500), ExpectedReturn: 3.6, Risk: RiskLow},
	)
	p := Profile{
		Age: Age36to45, Income: IncomeMiddle, Risk: RiskMedium, Budget: USD(50000),
		Preferences: NewCategorySet(RealEstate, Savings),
	}
	e := newTestEngine(t, DefaultOptions())

	res, err := e.Recommend("lumpy", p, catalog)
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if want := W(57, 0, 0, 0, 43, 0); res.Weights != want {
		t.Fatalf("Recommend().Weights = %v, want %v", res.Weights, want)
	}
	if got := res.Category(RealEstate).SubBudget; !got.Equal(USD(30000)) {
		t.Errorf("real estate sub-budget = %v, want 30000", got)
	}
	if got := res.Category(Savings).SubBudget; !got.Equal(USD(20000)) {
		t.Errorf("savings sub-budget = %v, want 20000", got)
	}
	checkItems(t, res.Items, []wantItem{{"compound", USD(30000)}, {"deposit", USD(20000)}})

	// beyond the tolerance the property is out of reach.
	opts := DefaultOptions()
	opts.LumpyTolerance = 1.05
	res, err = newTestEngine(t, opts).Recommend("strict", p, catalog)
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	checkItems(t, res.Items, []wantItem{{"deposit", USD(21500)}})
	if !res.Remaining.Equal(USD(28500)) {
		t.Errorf("Recommend().Remaining = %v, want 28500", res.Remaining)
	}
}

func TestEngine_InvalidProfile(t *testing.T) {
	e := newTestEngine(t, DefaultOptions())
	testCases := []struct {
		name    string
		profile Profile
	}{
		{"zero budget", Profile{Age: Age18to25, Income: IncomeLow, Risk: RiskLow, Budget: USD(0)}},
		{"negative budget", Profile{Age: Age18to25, Income: IncomeLow, Risk: RiskLow, Budget: USD(-10)}},
		{"missing risk", Profile{Age: Age18to25, Income: IncomeLow, Budget: USD(1000)}},
		{"unknown age", Profile{Age: "12-17", Income: IncomeLow, Risk: RiskLow, Budget: USD(1000)}},
		{"missing currency", Profile{Age: Age18to25, Income: IncomeLow, Risk: RiskLow, Budget: M(1000, "")}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := e.Recommend("bad", tc.profile, DefaultCatalog())
			if !errors.Is(err, ErrInvalidProfile) {
				t.Errorf("Recommend(%v) error = %v, want ErrInvalidProfile", tc.profile, err)
			}
		})
	}
}

// profiles spans every strategy and budget segment.
func profiles() []Profile {
	var out []Profile
	budgets := []Money{USD(500), USD(7500), USD(50000), USD(123456.78), USD(2000000)}
	goals := [][]Goal{nil, {GoalRetirement}, {GoalIncome}, {GoalGrowth}, {GoalEmergency, GoalEducation}}
	prefs := []CategorySet{nil, NewCategorySet(Categories...), NewCategorySet(RealEstate, Crypto), NewCategorySet(Bonds, Savings, Gold)}
	for i, b := range budgets {
		for j, g := range goals {
			for k, pref := range prefs {
				out = append(out, Profile{
					Age:         []AgeBracket{Age18to25, Age26to35, Age36to45, Age46to55, Age56to65, Age65Plus}[(i+j+k)%6],
					Income:      []IncomeBracket{IncomeLow, IncomeLowerMiddle, IncomeMiddle, IncomeUpperMiddle, IncomeHigh}[(i+k)%5],
					Risk:        []Risk{RiskLow, RiskMedium, RiskHigh}[(j+k)%3],
					Goals:       g,
					Preferences: pref,
					Budget:      b,
					Market:      GlobalMarket,
				})
			}
		}
	}
	return out
}

func TestEngine_Invariants(t *testing.T) {
	e := newTestEngine(t, DefaultOptions())
	catalog := DefaultCatalog()
	for n, p := range profiles() {
		res, err := e.Recommend(fmt.Sprint(n), p, catalog)
		if err != nil {
			t.Fatalf("Recommend(%v) error = %v", p, err)
		}
		if res.Weights.Sum() != 100 {
			t.Errorf("Recommend(%v) weights %v sum to %d", p, res.Weights, res.Weights.Sum())
		}
		if res.Remaining.IsNegative() {
			t.Errorf("Recommend(%v) remaining %v is negative", p, res.Remaining)
		}
		if got := res.TotalAllocated.Add(res.Remaining); !got.Equal(p.Budget) {
			t.Errorf("Recommend(%v) total + remaining = %v, want %v", p, got, p.Budget)
		}
		subs := USD(0)
		for _, ca := range res.Categories {
			subs = subs.Add(ca.SubBudget)
			if ca.Allocated.GreaterThan(ca.SubBudget) {
				t.Errorf("Recommend(%v) allocates %v in %s over its sub-budget %v", p, ca.Allocated, ca.Category, ca.SubBudget)
			}
			for _, it := range ca.Items {
				if it.Amount.GreaterThan(ca.SubBudget) {
					t.Errorf("Recommend(%v) item %s %v exceeds the sub-budget %v", p, it.Instrument.ID, it.Amount, ca.SubBudget)
				}
			}
		}
		if subs.GreaterThan(p.Budget) {
			t.Errorf("Recommend(%v) sub-budgets sum to %v", p, subs)
		}
		for i, it := range res.Items {
			if it.Amount.LessThan(it.Instrument.MinInvestment) {
				t.Errorf("Recommend(%v) item %s %v is below its minimum %v", p, it.Instrument.ID, it.Amount, it.Instrument.MinInvestment)
			}
			if !it.Amount.IsPositive() {
				t.Errorf("Recommend(%v) item %s has no amount", p, it.Instrument.ID)
			}
			if i > 0 {
				prev := res.Items[i-1]
				if prev.Category > it.Category || (prev.Category == it.Category && prev.Amount.LessThan(it.Amount)) {
					t.Errorf("Recommend(%v) items %s and %s are out of order", p, prev.Instrument.ID, it.Instrument.ID)
				}
			}
		}
	}
}

func TestEngine_Deterministic(t *testing.T) {
	parallel := newTestEngine(t, DefaultOptions())
	opts := DefaultOptions()
	opts.Sequential = true
	sequential := newTestEngine(t, opts)
	catalog := DefaultCatalog()

	for n, p := range profiles() {
		id := fmt.Sprint(n)
		first, err := parallel.Recommend(id, p, catalog)
		if err != nil {
			t.Fatalf("Recommend(%v) error = %v", p, err)
		}
		second, _ := parallel.Recommend(id, p, catalog)
		third, _ := sequential.Recommend(id, p, catalog)
		if first.String() != second.String() {
			t.Errorf("Recommend(%v) is not idempotent:\n%s\n%s", p, first, second)
		}
		if first.String() != third.String() {
			t.Errorf("Recommend(%v) differs when sequential:\n%s\n%s", p, first, third)
		}
	}
}
