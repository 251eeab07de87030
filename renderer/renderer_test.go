package renderer

import (
	"context"
	"sort"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/rs/zerolog"
	"github.com/tharagrowth/allocation"
	"github.com/tharagrowth/allocation/store"
	"golang.org/x/text/language"
)

func TestLocalesComplete(t *testing.T) {
	en, ok := messages["en"]
	if !ok {
		t.Fatal("missing en locale")
	}
	for _, lang := range []string{"ar", "fr"} {
		m, ok := messages[lang]
		if !ok {
			t.Fatalf("missing %s locale", lang)
		}
		keys := make([]string, 0, len(en))
		for k := range en {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			if _, ok := m[k]; !ok {
				t.Errorf("%s: missing key %q", lang, k)
			}
		}
		for k := range m {
			if _, ok := en[k]; !ok {
				t.Errorf("%s: unknown key %q", lang, k)
			}
		}
	}
}

func TestLocalesCoverDomain(t *testing.T) {
	en := messages["en"]
	for _, c := range allocation.Categories {
		if _, ok := en["category."+c.String()]; !ok {
			t.Errorf("missing category %q", c)
		}
	}
	for name := range allocation.Templates {
		for _, prefix := range []string{"strategy.", "rationale.", "tip."} {
			if _, ok := en[prefix+string(name)]; !ok {
				t.Errorf("missing %s%s", prefix, name)
			}
		}
	}
}

func TestRegister_MismatchedLocale(t *testing.T) {
	fsys := fstest.MapFS{
		"locales/de.yaml": {Data: []byte("locale: fr\nmessages:\n  x: y\n")},
	}
	if _, err := register(fsys); err == nil {
		t.Error("register() accepted a locale file declaring another locale")
	}
}

func TestLang(t *testing.T) {
	tests := []struct {
		in   string
		want language.Tag
	}{
		{"", language.English},
		{"en-US", language.English},
		{"ar", language.Arabic},
		{"ar-AE,en;q=0.5", language.Arabic},
		{"fr-CA", language.French},
		{"de", language.English},
	}
	for _, tt := range tests {
		if got := Lang(tt.in); got != tt.want {
			t.Errorf("Lang(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestCategoryName(t *testing.T) {
	if got := CategoryName(allocation.Gold, language.French); got != "Or" {
		t.Errorf("CategoryName(gold, fr) = %q, want %q", got, "Or")
	}
	if got := CategoryName(allocation.Bonds, language.English); got != "Bonds & Sukuk" {
		t.Errorf("CategoryName(bonds, en) = %q, want %q", got, "Bonds & Sukuk")
	}
}

func recommend(t *testing.T, budget float64) *allocation.PortfolioResult {
	t.Helper()
	e, err := allocation.NewEngine(allocation.DefaultOptions(), zerolog.Nop())
	if err != nil {
		t.Fatal(err)
	}
	p := allocation.Profile{
		Age:         allocation.Age56to65,
		Income:      allocation.IncomeMiddle,
		Risk:        allocation.RiskLow,
		Goals:       []allocation.Goal{allocation.GoalRetirement},
		Preferences: allocation.NewCategorySet(allocation.Bonds, allocation.Savings),
		Budget:      allocation.M(budget, "USD"),
		Market:      allocation.GlobalMarket,
	}
	r, err := e.Recommend("r1", p, allocation.DefaultCatalog())
	if err != nil {
		t.Fatal(err)
	}
	return r
}

func contains(t *testing.T, doc string, want ...string) {
	t.Helper()
	for _, w := range want {
		if !strings.Contains(doc, w) {
			t.Errorf("output does not contain %q:\n%s", w, doc)
		}
	}
}

func TestRecommendation(t *testing.T) {
	r := recommend(t, 50000)
	if !r.Feasible() {
		t.Fatal("retirement recommendation should be feasible")
	}

	doc := Recommendation(r, language.English)
	contains(t, doc,
		"# Portfolio recommendation r1",
		"## Summary",
		"## Investments",
		"Retirement",
		"Bonds & Sukuk",
		"Savings",
		r.Items[0].Instrument.Name,
	)
	if strings.Contains(doc, messages["en"]["msg.infeasible"]) {
		t.Error("feasible recommendation reported as infeasible")
	}

	doc = Recommendation(r, language.Arabic)
	contains(t, doc, "توصية المحفظة r1", "السندات والصكوك", "## عن الاستثمارات")
	for _, it := range r.Items {
		name := it.Instrument.LocalName("ar")
		if name == it.Instrument.Name {
			t.Errorf("%s has no arabic name", it.Instrument.ID)
		}
		contains(t, doc, name)
		if strings.Contains(doc, it.Instrument.Name) {
			t.Errorf("arabic report prints the english name %q", it.Instrument.Name)
		}
	}
}

func TestRecommendation_Currency(t *testing.T) {
	r, err := allocation.ConvertResult(context.Background(), allocation.DefaultRates(), recommend(t, 50000), "AED")
	if err != nil {
		t.Fatal(err)
	}
	if r.Budget.Currency() != "AED" {
		t.Fatalf("ConvertResult() budget in %s, want AED", r.Budget.Currency())
	}
	doc := Recommendation(r, language.English)
	contains(t, doc, r.Budget.String(), r.TotalAllocated.String(), r.Items[0].Amount.String())
	if strings.Contains(doc, allocation.M(50000, "USD").String()) {
		t.Error("AED report still shows the USD budget")
	}
}

func TestRecommendation_Infeasible(t *testing.T) {
	r := recommend(t, 10)
	if r.Feasible() {
		t.Fatal("10 USD should not be enough for any instrument")
	}
	doc := Recommendation(r, language.French)
	contains(t, doc, messages["fr"]["msg.infeasible"], "## Répartition")
	if strings.Contains(doc, "## Placements") {
		t.Error("infeasible recommendation should not list investments")
	}
}

func TestStrategy(t *testing.T) {
	s, err := allocation.Template(allocation.Balanced)
	if err != nil {
		t.Fatal(err)
	}
	doc := Strategy(s, s.Weights, allocation.Factors{Age: 0.5, Combined: 0.42}, language.English)
	contains(t, doc, "# Strategy: Balanced", "## Profile scores", "0.42", "Every 6 months", "Crypto")
}

func TestCatalog(t *testing.T) {
	doc := Catalog(allocation.DefaultCatalog(), language.English)
	contains(t, doc, "# Instrument catalog", "## Real Estate", "## Crypto")
	for _, in := range allocation.DefaultCatalog().All() {
		contains(t, doc, in.ID)
	}

	doc = Catalog(allocation.DefaultCatalog(), language.French)
	contains(t, doc, "Fonds Startups Tech MENA", "Lingots d'Or Physique 24K")

	doc = Catalog(allocation.NewCatalog(), language.English)
	contains(t, doc, "Nothing to show.")
}

func TestHistory(t *testing.T) {
	at := time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)
	doc := History([]store.Summary{{
		ID:        "r1",
		SavedAt:   at,
		Strategy:  allocation.Retirement,
		Segment:   "low_retirement_intermediate",
		Budget:    allocation.M(50000, "USD"),
		Allocated: allocation.M(50000, "USD"),
	}}, language.English)
	contains(t, doc, "# Recommendation history", "r1", "2026-03-01 09:30:00", "Retirement", "low_retirement_intermediate")

	contains(t, History(nil, language.Arabic), "لا يوجد ما يعرض.")
}
