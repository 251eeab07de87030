package allocation

import (
	"sort"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// candidate is an eligible instrument with its suitability score.
type candidate struct {
	in    Instrument
	score float64
}

// selector picks the instruments of a single category.
type selector struct {
	opts     Options
	category Category
	weight   int
	profile  Profile
	log      zerolog.Logger
}

// eligible reports whether the instrument can be bought with the sub-budget.
func (s *selector) eligible(in Instrument, sub Money) bool {
	pol := policyFor(s.category)
	if in.Currency() != s.profile.Currency() {
		s.log.Debug().Str("instrument", in.ID).Str("currency", in.Currency()).Msg("skipped, currency differs from the budget")
		return false
	}
	if !pol.continuous && !in.UnitPrice.IsPositive() {
		s.log.Debug().Str("instrument", in.ID).Msg("skipped, no unit price")
		return false
	}
	ceiling := sub
	if pol.lumpy {
		ceiling = sub.Scale(decimal.NewFromFloat(s.opts.LumpyTolerance))
	}
	return in.EntryPrice().LessThanOrEqual(ceiling)
}

// score rates how well the instrument suits the profile.
func (s *selector) score(in Instrument) float64 {
	var score float64
	switch d := int(in.RiskBucket()) - int(s.profile.Risk); {
	case d == 0:
		score += s.opts.ExactRiskScore
	case d == 1 || d == -1:
		score += s.opts.AdjacentRiskScore
	}
	if s.profile.Preferences.Has(s.category) {
		score += s.opts.PreferredBonus
	}
	if tb := policyFor(s.category).tieBreak; tb != nil {
		score += float64(tb(in, s.profile)) * s.opts.TieBreakBonus
	}
	return score
}

// rank returns the eligible candidates, best first.
func (s *selector) rank(sub Money, instruments []Instrument) []candidate {
	var out []candidate
	for _, in := range instruments {
		if in.Category != s.category || !s.eligible(in, sub) {
			continue
		}
		out = append(out, candidate{in: in, score: s.score(in)})
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.score != b.score {
			return a.score > b.score
		}
		if a.in.ExpectedReturn != b.in.ExpectedReturn {
			return a.in.ExpectedReturn > b.in.ExpectedReturn
		}
		return a.in.ID < b.in.ID
	})
	return out
}

// fill spends the sub-budget over the ranked candidates.
//
// At most width instruments are funded. Each one is offered the remaining
// amount divided by the slots left, and discrete instruments buy whole
// units. A candidate that cannot afford one unit or its minimum is skipped
// without using a slot.
func (s *selector) fill(sub Money, ranked []candidate) []LineItem {
	continuous := policyFor(s.category).continuous
	slots := min(s.opts.width(s.weight), len(ranked))
	remaining := sub
	var items []LineItem
	for i, c := range ranked {
		if slots == 0 || !remaining.IsPositive() {
			break
		}
		// never divide among more slots than candidates left.
		share := min(slots, len(ranked)-i)
		slice := remaining.Div(Q(share)).Truncate()

		var amount Money
		var units Quantity
		if continuous {
			amount = slice
		} else {
			units = slice.DivPrice(c.in.UnitPrice).Floor()
			amount = c.in.UnitPrice.Mul(units)
		}
		if !amount.IsPositive() || amount.LessThan(c.in.MinInvestment) {
			s.log.Debug().Str("instrument", c.in.ID).Stringer("slice", slice).Msg("skipped, slice below one unit or the minimum")
			continue
		}
		items = append(items, LineItem{
			Category:       s.category,
			Instrument:     c.in,
			Amount:         amount,
			Units:          units,
			ExpectedReturn: c.in.ExpectedReturn,
			Risk:           c.in.RiskBucket(),
			Score:          c.score,
		})
		remaining = remaining.Sub(amount)
		slots--
	}
	return items
}

// run selects the line items of the category.
func (s *selector) run(sub Money, instruments []Instrument) CategoryAllocation {
	ca := CategoryAllocation{
		Category:  s.category,
		Weight:    s.weight,
		SubBudget: sub,
		Allocated: M(0, sub.Currency()),
	}
	if s.weight == 0 || !sub.IsPositive() {
		return ca
	}
	ranked := s.rank(sub, instruments)
	ca.Candidates = len(ranked)
	ca.Items = s.fill(sub, ranked)
	for _, it := range ca.Items {
		ca.Allocated = ca.Allocated.Add(it.Amount)
	}
	s.log.Debug().
		Stringer("category", s.category).
		Stringer("subBudget", sub).
		Int("candidates", ca.Candidates).
		Int("items", len(ca.Items)).
		Msg("category selected")
	return ca
}

// SelectInstruments runs the selection of one category in isolation: the
// instruments of the category affordable with sub are ranked for the
// profile, and the best ones bought within sub.
func SelectInstruments(opts Options, c Category, weight int, sub Money, instruments []Instrument, p Profile) []LineItem {
	s := &selector{opts: opts, category: c, weight: weight, profile: p, log: zerolog.Nop()}
	return s.run(sub, instruments).Items
}
