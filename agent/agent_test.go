package agent

import (
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tharagrowth/allocation"
	"github.com/tharagrowth/allocation/store"
	"golang.org/x/text/language"
	"google.golang.org/genai"
)

func newTools(t *testing.T) *Tools {
	t.Helper()
	e, err := allocation.NewEngine(allocation.DefaultOptions(), zerolog.Nop())
	require.NoError(t, err)
	s, err := store.OpenSQLite(":memory:", zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return &Tools{Engine: e, Catalog: allocation.DefaultCatalog(), Store: s, Lang: language.English}
}

func save(t *testing.T, tools *Tools, id string, p allocation.Profile) {
	t.Helper()
	r, err := tools.Engine.Recommend(id, p, tools.Catalog)
	require.NoError(t, err)
	require.NoError(t, tools.Store.Save(context.Background(), p, r))
}

func retiree() allocation.Profile {
	return allocation.Profile{
		Age:         allocation.Age56to65,
		Income:      allocation.IncomeMiddle,
		Risk:        allocation.RiskLow,
		Goals:       []allocation.Goal{allocation.GoalRetirement},
		Preferences: allocation.NewCategorySet(allocation.Bonds, allocation.Savings),
		Budget:      allocation.M(50000, "USD"),
		Market:      allocation.GlobalMarket,
	}
}

func call(tools *Tools, name string, args map[string]any) *genai.FunctionResponse {
	lib := NewLibrary(tools.Functions())
	return lib(context.Background(), &genai.FunctionCall{ID: "1", Name: name, Args: args})
}

func output(t *testing.T, resp *genai.FunctionResponse) string {
	t.Helper()
	require.NotContains(t, resp.Response, "error", "function failed: %v", resp.Response["error"])
	out, ok := resp.Response["output"].(string)
	require.True(t, ok)
	return out
}

func TestTools_Recommendation(t *testing.T) {
	tools := newTools(t)

	resp := call(tools, "Recommendation", nil)
	assert.Contains(t, resp.Response["error"], "no recommendation")

	save(t, tools, "r1", retiree())
	out := output(t, call(tools, "Recommendation", nil))
	assert.Contains(t, out, "Portfolio recommendation r1")
	assert.Contains(t, out, "Bonds & Sukuk")

	out = output(t, call(tools, "Recommendation", map[string]any{"id": "r1"}))
	assert.Contains(t, out, "r1")

	resp = call(tools, "Recommendation", map[string]any{"id": "missing"})
	assert.Contains(t, resp.Response["error"], "not found")

	resp = call(tools, "Recommendation", map[string]any{"id": 12.0})
	assert.Contains(t, resp.Response["error"], "not a string")
}

func TestTools_History(t *testing.T) {
	tools := newTools(t)
	save(t, tools, "r1", retiree())
	save(t, tools, "r2", retiree())

	out := output(t, call(tools, "History", map[string]any{"limit": 1.0}))
	assert.Contains(t, out, "Recommendation history")
	assert.Equal(t, 1, strings.Count(out, "low_retirement_intermediate"))

	resp := call(tools, "History", map[string]any{"limit": "ten"})
	assert.Contains(t, resp.Response["error"], "not a number")
}

func TestTools_Strategy(t *testing.T) {
	tools := newTools(t)
	save(t, tools, "r1", retiree())

	out := output(t, call(tools, "Strategy", map[string]any{"id": "r1"}))
	assert.Contains(t, out, "Strategy: Retirement")
	assert.Contains(t, out, "Profile scores")
}

func TestTools_Catalog(t *testing.T) {
	tools := newTools(t)

	out := output(t, call(tools, "Catalog", map[string]any{"category": "crypto"}))
	assert.Contains(t, out, "btc_lot_001")
	assert.NotContains(t, out, "gov_bond")

	resp := call(tools, "Catalog", map[string]any{"category": "tulips"})
	assert.Contains(t, resp.Response, "error")
}

func TestTools_Topic(t *testing.T) {
	tools := newTools(t)
	out := output(t, call(tools, "Topic", map[string]any{"topic": "allocation"}))
	assert.NotEmpty(t, out)

	resp := call(tools, "Topic", map[string]any{"topic": "nope"})
	assert.Contains(t, resp.Response, "error")
}

func TestLibrary_Unknown(t *testing.T) {
	resp := call(newTools(t), "Fortune", nil)
	assert.Equal(t, "Fortune", resp.Name)
	assert.Equal(t, "unknown function Fortune", resp.Response["error"])
}

func TestExpert(t *testing.T) {
	e := NewExpert("Analyst", "reads recommendations")
	d := e.Declaration()
	assert.Equal(t, "Analyst", d.Name)
	assert.Equal(t, []string{"question"}, d.Parameters.Required)

	resp := e.Call(context.Background(), "1", map[string]any{})
	assert.Contains(t, resp.Response["error"], "missing argument")

	resp = e.Call(context.Background(), "1", map[string]any{"question": "why?"})
	assert.Contains(t, resp.Response["error"], "not started")
}

func TestNew(t *testing.T) {
	tools := newTools(t)
	analyst := NewAnalyst(tools, zerolog.Nop())
	require.Len(t, analyst.Config.Tools[0].FunctionDeclarations, len(tools.Functions()))

	a := New(&strings.Builder{}, strings.NewReader(""), zerolog.Nop(), analyst, NewMarketWatcher(zerolog.Nop()))
	names := []string{}
	for _, d := range a.Facilitator.Config.Tools[0].FunctionDeclarations {
		names = append(names, d.Name)
	}
	assert.Equal(t, []string{"Analyst", "MarketWatcher"}, names)
}
