package allocation

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrUnknownRate is returned when no exchange rate is known for a currency pair.
var ErrUnknownRate = errors.New("unknown exchange rate")

// ExchangeRateProvider returns how many units of "to" one unit of "from" buys.
//
// The engine works in a single currency: callers convert the profile budget
// and the catalog at the boundary with ConvertProfile and ConvertCatalog, and
// the result back to the investor's currency with ConvertResult.
type ExchangeRateProvider interface {
	Rate(ctx context.Context, from, to string) (decimal.Decimal, error)
}

// StaticRates is a fixed table of rates keyed by "FROM_TO".
//
// Missing pairs are derived from the reverse pair, or crossed through USD.
type StaticRates map[string]decimal.Decimal

// DefaultRates are the rates used when no live source is available.
func DefaultRates() StaticRates {
	return StaticRates{
		"USD_AED": decimal.RequireFromString("3.67"),
		"USD_SAR": decimal.RequireFromString("3.75"),
		"USD_EUR": decimal.RequireFromString("0.85"),
		"USD_GBP": decimal.RequireFromString("0.73"),
	}
}

func pairKey(from, to string) string { return from + "_" + to }

// Rate implements ExchangeRateProvider.
func (s StaticRates) Rate(_ context.Context, from, to string) (decimal.Decimal, error) {
	from, to = strings.ToUpper(from), strings.ToUpper(to)
	if r, ok := s.direct(from, to); ok {
		return r, nil
	}
	const pivot = "USD"
	a, okA := s.direct(from, pivot)
	b, okB := s.direct(pivot, to)
	if okA && okB {
		return a.Mul(b), nil
	}
	return decimal.Zero, fmt.Errorf("%w from %s to %s", ErrUnknownRate, from, to)
}

func (s StaticRates) direct(from, to string) (decimal.Decimal, bool) {
	if from == to {
		return decimal.NewFromInt(1), true
	}
	if r, ok := s[pairKey(from, to)]; ok {
		return r, true
	}
	if r, ok := s[pairKey(to, from)]; ok && !r.IsZero() {
		return decimal.NewFromInt(1).DivRound(r, 8), true
	}
	return decimal.Zero, false
}

// Convert returns m expressed in currency, rounded to its minor unit.
func Convert(ctx context.Context, rates ExchangeRateProvider, m Money, currency string) (Money, error) {
	if m.Currency() == currency {
		return m, nil
	}
	r, err := rates.Rate(ctx, m.Currency(), currency)
	if err != nil {
		return Money{}, err
	}
	return m.In(currency, r), nil
}

// ConvertProfile returns a copy of the profile with its budget in currency.
func ConvertProfile(ctx context.Context, rates ExchangeRateProvider, p Profile, currency string) (Profile, error) {
	b, err := Convert(ctx, rates, p.Budget, currency)
	if err != nil {
		return p, fmt.Errorf("cannot convert the budget: %w", err)
	}
	p.Budget = b
	return p, nil
}

// ConvertCatalog returns a copy of the catalog with every price in currency.
func ConvertCatalog(ctx context.Context, rates ExchangeRateProvider, c *Catalog, currency string) (*Catalog, error) {
	out := NewCatalog()
	for _, in := range c.All() {
		var err error
		if !in.UnitPrice.IsZero() {
			if in.UnitPrice, err = Convert(ctx, rates, in.UnitPrice, currency); err != nil {
				return nil, fmt.Errorf("instrument %q: %w", in.ID, err)
			}
		}
		if !in.MinInvestment.IsZero() {
			if in.MinInvestment, err = Convert(ctx, rates, in.MinInvestment, currency); err != nil {
				return nil, fmt.Errorf("instrument %q: %w", in.ID, err)
			}
		}
		if err := out.Add(in); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// ConvertResult returns a copy of the result with every amount in currency.
//
// Line items and instrument prices are converted one by one; category and
// portfolio totals are then summed from the converted items so that they stay
// consistent. Expected return and risk do not depend on the currency.
func ConvertResult(ctx context.Context, rates ExchangeRateProvider, r *PortfolioResult, currency string) (*PortfolioResult, error) {
	from := r.Budget.Currency()
	if from == currency {
		return r, nil
	}
	rate, err := rates.Rate(ctx, from, currency)
	if err != nil {
		return nil, fmt.Errorf("cannot convert recommendation %q: %w", r.ID, err)
	}
	in := func(m Money) Money {
		if m.Currency() == "" {
			return m
		}
		return m.In(currency, rate)
	}

	out := *r
	out.Budget = in(r.Budget)
	out.Items = make([]LineItem, len(r.Items))
	for i, it := range r.Items {
		it.Amount = in(it.Amount)
		it.Instrument.UnitPrice = in(it.Instrument.UnitPrice)
		it.Instrument.MinInvestment = in(it.Instrument.MinInvestment)
		out.Items[i] = it
	}
	out.Categories = make([]CategoryAllocation, len(r.Categories))
	total := M(0, currency)
	for i, ca := range r.Categories {
		ca.SubBudget = in(ca.SubBudget)
		ca.Items = out.ItemsOf(ca.Category)
		ca.Allocated = M(0, currency)
		for _, it := range ca.Items {
			ca.Allocated = ca.Allocated.Add(it.Amount)
		}
		total = total.Add(ca.Allocated)
		out.Categories[i] = ca
	}
	sortItems(out.Items)
	out.TotalAllocated = total
	out.Remaining = MaxMoney(out.Budget.Sub(total), M(0, currency))
	return &out, nil
}
