package allocation

import "fmt"

// ReferenceGoldPrice is the price of a gram of gold the built-in catalog is
// priced at.
var ReferenceGoldPrice = M(65.50, "USD")

// RepriceGold returns a copy of the catalog where the unit price of every
// gold instrument follows the gold price: it is scaled by
// perGram/ReferenceGoldPrice and rounded to the minor unit. Minimum
// investments are tickets and do not move. The ratio does not depend on the
// catalog currency, so AED catalogs follow a USD gold price as well.
func RepriceGold(c *Catalog, perGram Money) (*Catalog, error) {
	if perGram.Currency() != ReferenceGoldPrice.Currency() || !perGram.IsPositive() {
		return nil, fmt.Errorf("invalid gold price %v, want a positive %s amount", perGram, ReferenceGoldPrice.Currency())
	}
	ratio := perGram.Decimal().Div(ReferenceGoldPrice.Decimal())
	out := NewCatalog()
	for _, in := range c.All() {
		if in.Category == Gold && in.UnitPrice.IsPositive() {
			in.UnitPrice = in.UnitPrice.Scale(ratio).Round()
		}
		if err := out.Add(in); err != nil {
			return nil, err
		}
	}
	return out, nil
}
