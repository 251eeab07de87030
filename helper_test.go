package allocation

import (
	"testing"

	"github.com/rs/zerolog"
)

// USD is a helper for test to create usd money from const
func USD(v float64) Money { return M(v, "USD") }

// EUR is a helper for test to create euro money from const
func EUR(v float64) Money { return M(v, "EUR") }

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

// retiree is the low risk retirement profile, investing in bonds and savings.
func retiree() Profile {
	return Profile{
		Age:         Age56to65,
		Income:      IncomeMiddle,
		Risk:        RiskLow,
		Goals:       []Goal{GoalRetirement},
		Preferences: NewCategorySet(Bonds, Savings),
		Budget:      USD(50000),
		Market:      GlobalMarket,
	}
}

// everything returns a medium risk profile selecting every category.
func everything(budget Money) Profile {
	return Profile{
		Age:         Age36to45,
		Income:      IncomeMiddle,
		Risk:        RiskMedium,
		Preferences: NewCategorySet(Categories...),
		Budget:      budget,
		Market:      GlobalMarket,
	}
}

func newTestEngine(t *testing.T, opts Options) *Engine {
	t.Helper()
	e, err := NewEngine(opts, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	return e
}
