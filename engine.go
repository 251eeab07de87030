package allocation

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// Engine turns a profile and a catalog snapshot into a portfolio.
//
// An Engine holds no mutable state: it is safe for concurrent use, and the
// same inputs always produce the same result.
type Engine struct {
	opts Options
	log  zerolog.Logger
}

// NewEngine returns an engine with the given options. Pass zerolog.Nop() to disable logging.
func NewEngine(opts Options, log zerolog.Logger) (*Engine, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid engine options: %w", err)
	}
	return &Engine{
		opts: opts,
		log:  log.With().Str("component", "engine").Logger(),
	}, nil
}

// Options returns the engine tunables.
func (e *Engine) Options() Options { return e.opts }

// Weights returns the selected strategy and the final category weights of a profile.
func (e *Engine) Weights(p Profile) (Strategy, Weights, error) {
	if err := p.Validate(); err != nil {
		return Strategy{}, Weights{}, err
	}
	s := SelectStrategy(p)
	w := Reweight(s.Weights, p.Preferences)
	if len(p.Preferences.Sorted()) == 0 {
		s = Templates[SafeDefault]
	}
	return s, w, nil
}

// Recommend computes the portfolio of a profile.
//
// The catalog is expected to be already filtered for the profile, see
// ProfilePredicates. Instruments priced in another currency than the budget
// are ignored, convert the profile or the catalog first. The id is copied
// to the result, it is the caller's handle on the recommendation.
//
// A budget too small for every instrument is not an error: the result has
// no items and the whole budget remaining.
func (e *Engine) Recommend(id string, p Profile, c *Catalog) (*PortfolioResult, error) {
	strategy, weights, err := e.Weights(p)
	if err != nil {
		return nil, err
	}
	log := e.log.With().Str("id", id).Logger()
	log.Debug().Str("strategy", string(strategy.Name)).Stringer("weights", weights).Msg("strategy selected")

	subs := SplitBudget(p.Budget, weights)
	e.stretch(&subs, weights, p, c, log)

	res := &PortfolioResult{
		ID:         id,
		Segment:    p.Segment(),
		Strategy:   strategy,
		Weights:    weights,
		Budget:     p.Budget,
		Categories: make([]CategoryAllocation, len(Categories)),
	}

	// categories are independent, each goroutine writes its own slot.
	var g errgroup.Group
	if e.opts.Sequential {
		g.SetLimit(1)
	}
	for i, cat := range Categories {
		g.Go(func() error {
			s := &selector{
				opts:     e.opts,
				category: cat,
				weight:   weights[cat],
				profile:  p,
				log:      log.With().Str("component", "selector").Logger(),
			}
			res.Categories[i] = s.run(subs[cat], c.Instruments(cat))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	res.aggregate()
	log.Debug().
		Stringer("total", res.TotalAllocated).
		Stringer("remaining", res.Remaining).
		Int("items", len(res.Items)).
		Msg("portfolio aggregated")
	return res, nil
}

// stretch lets a lumpy category afford its cheapest instrument when it costs
// slightly more than the sub-budget. The difference is taken from the
// non-lumpy category with the largest sub-budget, provided it can cover it.
func (e *Engine) stretch(subs *SubBudgets, w Weights, p Profile, c *Catalog, log zerolog.Logger) {
	tolerance := decimal.NewFromFloat(e.opts.LumpyTolerance)
	for _, cat := range Categories {
		if !policyFor(cat).lumpy || w[cat] == 0 {
			continue
		}
		sub := subs[cat]
		var cheapest Money
		found := false
		for _, in := range c.Instruments(cat) {
			if in.Currency() != p.Currency() || !in.UnitPrice.IsPositive() {
				continue
			}
			if entry := in.EntryPrice(); !found || entry.LessThan(cheapest) {
				cheapest, found = entry, true
			}
		}
		if !found || cheapest.LessThanOrEqual(sub) || cheapest.GreaterThan(sub.Scale(tolerance)) {
			continue
		}
		deficit := cheapest.Sub(sub)

		donor := -1
		for _, d := range Categories {
			if policyFor(d).lumpy || w[d] == 0 {
				continue
			}
			if donor < 0 || subs[d].GreaterThan(subs[donor]) {
				donor = int(d)
			}
		}
		if donor < 0 || subs[donor].LessThan(deficit) {
			log.Debug().Stringer("category", cat).Stringer("deficit", deficit).Msg("cannot stretch, no donor")
			continue
		}
		subs[donor] = subs[donor].Sub(deficit)
		subs[cat] = subs[cat].Add(deficit)
		log.Debug().
			Stringer("category", cat).
			Stringer("donor", Category(donor)).
			Stringer("deficit", deficit).
			Msg("sub-budget stretched")
	}
}
