// Package allocation recommends a concrete, budget-bounded investment
// portfolio from a short investor profile.
//
// The engine is a pure computation over two immutable inputs: a validated
// Profile and a Catalog snapshot. It runs in stages:
//   - Strategy selection: the profile is scored (age, risk, goals, income and
//     budget size) and mapped to one of the fixed allocation templates.
//   - Reweighting: categories the investor did not select are zeroed and their
//     weight flows to the selected ones, the result summing to exactly 100.
//   - Budgeting: the budget is split into one sub-budget per category.
//   - Selection: in each category, in parallel, eligible instruments are
//     ranked for the profile and whole units are bought within the sub-budget.
//   - Aggregation: totals, remaining amount, weighted expected return and the
//     overall risk label.
//
// The engine never fetches data, converts currencies or renders text. Those
// belong to the callers: see the rates, store and renderer packages, and the
// tgr command.
package allocation
