package allocation

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Percent is a rate expressed in percent, e.g. 4.2 for 4.2%.
type Percent float64

func (p Percent) Equal(q Percent) bool {
	// it has to be compared with some precision
	const precision = 0.0001
	diff := p - q
	if diff < 0 {
		diff = -diff
	}
	return diff < precision
}

func (p Percent) String() string {
	return fmt.Sprintf("%.2f%%", p)
}

func (p Percent) decimal() decimal.Decimal { return decimal.NewFromFloat(float64(p)) }
