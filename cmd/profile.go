package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/tharagrowth/allocation"
)

// profileFlags are the questionnaire answers shared by recommend and strategy.
type profileFlags struct {
	budget   string
	currency string
	age      string
	income   string
	risk     string
	goals    string
	prefs    string
	market   string
	shariah  bool
}

func (p *profileFlags) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.budget, "budget", "", "Amount to invest.")
	f.StringVar(&p.currency, "currency", "", "Currency of the budget, the base currency by default.")
	f.StringVar(&p.age, "age", "36-45", "Age bracket: 18-25, 26-35, 36-45, 46-55, 56-65 or 65+.")
	f.StringVar(&p.income, "income", "middle", "Income bracket: low, lower-middle, middle, upper-middle or high.")
	f.StringVar(&p.risk, "risk", "medium", "Risk tolerance: low, medium or high.")
	f.StringVar(&p.goals, "goals", "", "Comma separated goals: retirement, income, growth, education, preservation, emergency.")
	f.StringVar(&p.prefs, "prefs", "", "Comma separated asset classes: real-estate, stocks, gold, bonds, savings, crypto.")
	f.StringVar(&p.market, "market", allocation.GlobalMarket, "Target market of the investments, e.g. uae.")
	f.BoolVar(&p.shariah, "shariah", false, "Only invest in Shariah compliant instruments.")
}

// Profile returns the validated profile, with the budget in currency when missing.
func (p *profileFlags) Profile(currency string) (allocation.Profile, error) {
	if p.currency != "" {
		currency = p.currency
	}
	if p.budget == "" {
		return allocation.Profile{}, fmt.Errorf("-budget is required")
	}
	budget, err := allocation.ParseMoney(p.budget, currency)
	if err != nil {
		return allocation.Profile{}, fmt.Errorf("invalid budget: %w", err)
	}
	risk, err := allocation.ParseRisk(p.risk)
	if err != nil {
		return allocation.Profile{}, err
	}
	goals, err := allocation.ParseGoals(p.goals)
	if err != nil {
		return allocation.Profile{}, err
	}
	prefs, err := allocation.ParseCategorySet(p.prefs)
	if err != nil {
		return allocation.Profile{}, err
	}
	profile := allocation.Profile{
		Age:         allocation.AgeBracket(p.age),
		Income:      allocation.IncomeBracket(p.income),
		Risk:        risk,
		Goals:       goals,
		Preferences: prefs,
		Budget:      budget,
		Market:      p.market,
		Shariah:     p.shariah,
	}
	return profile, profile.Validate()
}

// prepare converts the profile and the catalog to the base currency and
// applies the profile predicates to the catalog.
func prepare(ctx context.Context, cfg Config, rates allocation.ExchangeRateProvider, p allocation.Profile, c *allocation.Catalog) (allocation.Profile, *allocation.Catalog, error) {
	p, err := allocation.ConvertProfile(ctx, rates, p, cfg.BaseCurrency)
	if err != nil {
		return p, nil, err
	}
	c, err = allocation.ConvertCatalog(ctx, rates, c.Filter(allocation.ProfilePredicates(p)...), cfg.BaseCurrency)
	if err != nil {
		return p, nil, fmt.Errorf("cannot convert the catalog: %w", err)
	}
	return p, c, nil
}
