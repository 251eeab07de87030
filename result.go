package allocation

import (
	"encoding/json"
	"sort"

	"github.com/shopspring/decimal"
)

// LineItem is one concrete purchase recommendation.
type LineItem struct {
	Category   Category   `json:"category"`
	Instrument Instrument `json:"instrument"`
	// Amount is a whole number of units, or any amount above the minimum for
	// continuous instruments.
	Amount Money `json:"amount"`
	// Units is zero for continuous instruments.
	Units          Quantity `json:"units"`
	ExpectedReturn Percent  `json:"expectedReturn"`
	Risk           Risk     `json:"risk"`
	Score          float64  `json:"score"`
}

// CategoryAllocation reports how one category sub-budget was spent.
type CategoryAllocation struct {
	Category   Category   `json:"category"`
	Weight     int        `json:"weight"`
	SubBudget  Money      `json:"subBudget"`
	Allocated  Money      `json:"allocated"`
	Candidates int        `json:"candidates"`
	Items      []LineItem `json:"-"`
}

// Unallocated is the part of the sub-budget left unspent.
func (c CategoryAllocation) Unallocated() Money { return c.SubBudget.Sub(c.Allocated) }

// PortfolioResult is the recommended portfolio for a profile.
type PortfolioResult struct {
	ID       string   `json:"id"`
	Segment  string   `json:"segment"`
	Strategy Strategy `json:"strategy"`
	// Weights are the template weights after preference reweighting.
	Weights    Weights              `json:"weights"`
	Categories []CategoryAllocation `json:"categories"`
	// Items are ordered by category, then by descending amount.
	Items          []LineItem `json:"items"`
	Budget         Money      `json:"budget"`
	TotalAllocated Money      `json:"totalAllocated"`
	Remaining      Money      `json:"remaining"`
	ExpectedReturn Percent    `json:"expectedReturn"`
	Risk           Risk       `json:"risk"`
}

// Feasible reports whether anything at all could be bought. An infeasible
// result means the budget is too small for every offering of the catalog.
func (r *PortfolioResult) Feasible() bool { return len(r.Items) > 0 }

// Category returns the allocation of one category.
func (r *PortfolioResult) Category(c Category) CategoryAllocation {
	for _, ca := range r.Categories {
		if ca.Category == c {
			return ca
		}
	}
	return CategoryAllocation{Category: c}
}

// ItemsOf returns the line items of one category.
func (r *PortfolioResult) ItemsOf(c Category) []LineItem {
	var out []LineItem
	for _, it := range r.Items {
		if it.Category == c {
			out = append(out, it)
		}
	}
	return out
}

func (r *PortfolioResult) String() string {
	b, _ := json.Marshal(r)
	return string(b)
}

// sortItems orders line items by category, amount descending, then id.
func sortItems(items []LineItem) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if a.Category != b.Category {
			return a.Category < b.Category
		}
		if !a.Amount.Equal(b.Amount) {
			return a.Amount.GreaterThan(b.Amount)
		}
		return a.Instrument.ID < b.Instrument.ID
	})
}

// aggregate fills the totals of the result from its category allocations.
func (r *PortfolioResult) aggregate() {
	r.Items = r.Items[:0]
	for _, ca := range r.Categories {
		r.Items = append(r.Items, ca.Items...)
	}
	sortItems(r.Items)

	total := M(0, r.Budget.Currency())
	weighted := decimal.Zero
	byRisk := map[Risk]Money{}
	for _, it := range r.Items {
		total = total.Add(it.Amount)
		weighted = weighted.Add(it.Amount.Decimal().Mul(it.ExpectedReturn.decimal()))
		byRisk[it.Risk] = byRisk[it.Risk].Add(it.Amount)
	}
	r.TotalAllocated = total
	r.Remaining = MaxMoney(r.Budget.Sub(total), M(0, r.Budget.Currency()))
	r.ExpectedReturn = 0
	if total.IsPositive() {
		r.ExpectedReturn = Percent(weighted.Div(total.Decimal()).Round(4).InexactFloat64())
	}
	r.Risk = dominantRisk(byRisk)
}

// dominantRisk returns the risk level carrying the largest amount, the
// higher level on ties, and RiskUnknown when nothing is allocated.
func dominantRisk(byRisk map[Risk]Money) Risk {
	best := RiskUnknown
	var most Money
	for _, r := range []Risk{RiskLow, RiskMedium, RiskHigh} {
		amount, ok := byRisk[r]
		if !ok || !amount.IsPositive() {
			continue
		}
		if best == RiskUnknown || amount.GreaterThanOrEqual(most) {
			best, most = r, amount
		}
	}
	return best
}
