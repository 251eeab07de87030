package allocation

import (
	"fmt"
	"sort"
	"strings"
)

// Catalog is a category-partitioned snapshot of the available instruments.
//
// The engine only reads a catalog. Eligibility predicates (Shariah, market,
// currency) are applied by the caller with Filter before the engine runs.
type Catalog struct {
	byCategory map[Category][]Instrument
	index      map[string]Instrument
}

// NewCatalog returns a catalog holding the given instruments. It panics on
// an invalid or duplicated instrument, use Add to handle errors.
func NewCatalog(instruments ...Instrument) *Catalog {
	c := &Catalog{
		byCategory: make(map[Category][]Instrument),
		index:      make(map[string]Instrument),
	}
	for _, in := range instruments {
		if err := c.Add(in); err != nil {
			panic(err)
		}
	}
	return c
}

// Add appends an instrument to the catalog.
func (c *Catalog) Add(in Instrument) error {
	if err := in.Validate(); err != nil {
		return err
	}
	if _, exists := c.index[in.ID]; exists {
		return fmt.Errorf("instrument %q is already defined", in.ID)
	}
	c.index[in.ID] = in
	c.byCategory[in.Category] = append(c.byCategory[in.Category], in)
	return nil
}

// Get returns the instrument with the given id.
func (c *Catalog) Get(id string) (Instrument, bool) {
	in, ok := c.index[id]
	return in, ok
}

func (c *Catalog) Len() int { return len(c.index) }

// Instruments returns a copy of the instruments of one category, in catalog order.
func (c *Catalog) Instruments(cat Category) []Instrument {
	src := c.byCategory[cat]
	out := make([]Instrument, len(src))
	copy(out, src)
	return out
}

// All returns every instrument sorted by category then id.
func (c *Catalog) All() []Instrument {
	var out []Instrument
	for _, cat := range Categories {
		list := c.Instruments(cat)
		sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
		out = append(out, list...)
	}
	return out
}

// Predicate selects instruments of a catalog.
type Predicate func(Instrument) bool

// ShariahCompliant keeps Shariah-compliant instruments only.
func ShariahCompliant() Predicate {
	return func(in Instrument) bool { return in.Shariah }
}

// InMarket keeps instruments offered in the target market.
func InMarket(market string) Predicate {
	return func(in Instrument) bool { return in.InMarket(market) }
}

// InCurrency keeps instruments priced in the given currency.
func InCurrency(currency string) Predicate {
	return func(in Instrument) bool { return strings.EqualFold(in.Currency(), currency) }
}

// ProfilePredicates returns the predicates a caller should apply for a profile:
// its target market, and Shariah compliance when requested.
func ProfilePredicates(p Profile) []Predicate {
	preds := []Predicate{InMarket(p.Market)}
	if p.Shariah {
		preds = append(preds, ShariahCompliant())
	}
	return preds
}

// Filter returns a new catalog with the instruments matching every predicate.
func (c *Catalog) Filter(preds ...Predicate) *Catalog {
	out := NewCatalog()
	for _, cat := range Categories {
	next:
		for _, in := range c.byCategory[cat] {
			for _, p := range preds {
				if !p(in) {
					continue next
				}
			}
			// already validated
			out.index[in.ID] = in
			out.byCategory[cat] = append(out.byCategory[cat], in)
		}
	}
	return out
}
