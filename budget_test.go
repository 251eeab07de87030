package allocation

import "testing"

func TestSplitBudget(t *testing.T) {
	testCases := []struct {
		name    string
		budget  Money
		weights Weights
		want    SubBudgets
	}{
		{
			name:    "whole amounts",
			budget:  USD(50000),
			weights: W(0, 0, 0, 58, 42, 0),
			want:    SubBudgets{USD(0), USD(0), USD(0), USD(29000), USD(21000), USD(0)},
		},
		{
			name:    "truncated to cents",
			budget:  USD(100.05),
			weights: W(33, 33, 34, 0, 0, 0),
			want:    SubBudgets{USD(33.01), USD(33.01), USD(34.01), USD(0), USD(0), USD(0)},
		},
		{
			name:    "halves truncated, not rounded",
			budget:  USD(0.99),
			weights: W(50, 50, 0, 0, 0, 0),
			want:    SubBudgets{USD(0.49), USD(0.49), USD(0), USD(0), USD(0), USD(0)},
		},
		{
			name:    "currency without minor unit",
			budget:  M(1001, "JPY"),
			weights: W(50, 50, 0, 0, 0, 0),
			want:    SubBudgets{M(500, "JPY"), M(500, "JPY"), M(0, "JPY"), M(0, "JPY"), M(0, "JPY"), M(0, "JPY")},
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := SplitBudget(tc.budget, tc.weights)
			for _, c := range Categories {
				if !got[c].Equal(tc.want[c]) {
					t.Errorf("SplitBudget(%v, %v)[%s] = %v, want %v", tc.budget, tc.weights, c, got[c], tc.want[c])
				}
			}
			if got.Sum().GreaterThan(tc.budget) {
				t.Errorf("SplitBudget(%v, %v) sums to %v, more than the budget", tc.budget, tc.weights, got.Sum())
			}
		})
	}
}
