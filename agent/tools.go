package agent

import (
	"context"
	"errors"
	"fmt"

	"github.com/tharagrowth/allocation"
	"github.com/tharagrowth/allocation/docs"
	"github.com/tharagrowth/allocation/renderer"
	"github.com/tharagrowth/allocation/store"
	"golang.org/x/text/language"
	"google.golang.org/genai"
)

// Tools gives the advisor read access to the recommendations and the catalog.
type Tools struct {
	Engine  *allocation.Engine
	Catalog *allocation.Catalog
	Store   store.Store
	Lang    language.Tag
}

// Functions returns the functions the analyst can call.
func (t *Tools) Functions() []Function {
	return []Function{
		t.recommendation(),
		t.history(),
		t.strategy(),
		t.catalog(),
		topic(),
	}
}

// record returns the recommendation with id, or the most recent one if id is empty.
func (t *Tools) record(ctx context.Context, id string) (*store.Record, error) {
	if id == "" {
		list, err := t.Store.List(ctx, 1)
		if err != nil {
			return nil, err
		}
		if len(list) == 0 {
			return nil, errors.New("no recommendation has been saved yet")
		}
		id = list[0].ID
	}
	return t.Store.Get(ctx, id)
}

var idParameter = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"id": {
			Type:        genai.TypeString,
			Description: "The recommendation id. The most recent recommendation is used when empty.",
		},
	},
}

var markdownResponse = &genai.Schema{
	Type:        genai.TypeString,
	Description: "A markdown document.",
}

func (t *Tools) recommendation() *Func {
	const name = "Recommendation"
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name: name,
			Description: `Recommendation returns a saved portfolio recommendation: the strategy, the
			weight and sub-budget of each asset class, the purchased instruments, the expected return
			and the overall risk.`,
			Parameters: idParameter,
			Response:   markdownResponse,
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			rid, err := stringArg(args, "id", "")
			if err != nil {
				return failure(id, name, err)
			}
			rec, err := t.record(ctx, rid)
			if err != nil {
				return failure(id, name, err)
			}
			return success(id, name, renderer.Recommendation(rec.Result, t.Lang))
		},
	}
}

func (t *Tools) history() *Func {
	const name = "History"
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name:        name,
			Description: "History lists the saved recommendations, most recent first.",
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"limit": {
						Type:        genai.TypeInteger,
						Description: "The maximum number of recommendations to list, 10 by default.",
					},
				},
			},
			Response: markdownResponse,
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			limit, err := intArg(args, "limit", 10)
			if err != nil {
				return failure(id, name, err)
			}
			list, err := t.Store.List(ctx, limit)
			if err != nil {
				return failure(id, name, err)
			}
			return success(id, name, renderer.History(list, t.Lang))
		},
	}
}

func (t *Tools) strategy() *Func {
	const name = "Strategy"
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name: name,
			Description: `Strategy explains why a recommendation uses its strategy: the profile scores
			(age, risk, goals, income, budget) and the template weights before and after they were
			restricted to the asset classes the user prefers.`,
			Parameters: idParameter,
			Response:   markdownResponse,
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			rid, err := stringArg(args, "id", "")
			if err != nil {
				return failure(id, name, err)
			}
			rec, err := t.record(ctx, rid)
			if err != nil {
				return failure(id, name, err)
			}
			s, w, err := t.Engine.Weights(rec.Profile)
			if err != nil {
				return failure(id, name, err)
			}
			return success(id, name, renderer.Strategy(s, w, allocation.ScoreProfile(rec.Profile), t.Lang))
		},
	}
}

func (t *Tools) catalog() *Func {
	const name = "Catalog"
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name:        name,
			Description: "Catalog lists the instruments that can be recommended, with their price, minimum investment, expected return and risk.",
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"category": {
						Type:        genai.TypeString,
						Description: "Restrict the list to one asset class: real-estate, stocks, gold, bonds, savings or crypto.",
					},
				},
			},
			Response: markdownResponse,
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			tag, err := stringArg(args, "category", "")
			if err != nil {
				return failure(id, name, err)
			}
			c := t.Catalog
			if tag != "" {
				cat, err := allocation.ParseCategory(tag)
				if err != nil {
					return failure(id, name, err)
				}
				c = allocation.NewCatalog(t.Catalog.Instruments(cat)...)
			}
			return success(id, name, renderer.Catalog(c, t.Lang))
		},
	}
}

func topic() *Func {
	const name = "Topic"
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name:        name,
			Description: "Topic returns a documentation topic about how recommendations are computed. Use '*' for every topic.",
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"topic": {
						Type:        genai.TypeString,
						Description: "The topic name: profile, strategies, catalog or allocation.",
					},
				},
				Required: []string{"topic"},
			},
			Response: markdownResponse,
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			name, err := stringArg(args, "topic", "*")
			if err != nil {
				return failure(id, "Topic", err)
			}
			content, err := docs.GetTopic(name)
			if err != nil {
				return failure(id, "Topic", err)
			}
			return success(id, "Topic", content)
		},
	}
}

func stringArg(args map[string]any, name, def string) (string, error) {
	v, ok := args[name]
	if !ok || v == nil {
		return def, nil
	}
	s, ok := v.(string)
	if !ok {
		return def, fmt.Errorf("argument %q is not a string as expected but %T", name, v)
	}
	return s, nil
}

// intArg reads a number argument, JSON decoding gives float64.
func intArg(args map[string]any, name string, def int) (int, error) {
	v, ok := args[name]
	if !ok || v == nil {
		return def, nil
	}
	switch n := v.(type) {
	case float64:
		return int(n), nil
	case int:
		return n, nil
	default:
		return def, fmt.Errorf("argument %q is not a number as expected but %T", name, v)
	}
}
