package rates

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/PaesslerAG/jsonpath"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/tharagrowth/allocation"
	"golang.org/x/sync/singleflight"
)

// DefaultGoldURL returns the gold spot price in USD per troy ounce.
const DefaultGoldURL = "https://api.metals.live/v1/spot/gold"

// gramsPerOunce is the weight of a troy ounce.
var gramsPerOunce = decimal.RequireFromString("31.1035")

// goldPaths are the places the spot price is found in the known answers.
var goldPaths = []string{"$.price", "$.spot", "$.data.price", "$[0].gold", "$[0].price"}

// Gold provides the price of a gram of gold in USD.
//
// The price is kept for TTL, concurrent lookups share one request, and
// Fallback answers when the endpoint fails.
type Gold struct {
	URL      string
	Client   *http.Client
	TTL      time.Duration
	Fallback allocation.Money

	log     zerolog.Logger
	now     func() time.Time
	mu      sync.RWMutex
	price   allocation.Money
	expires time.Time
	group   singleflight.Group
}

// NewGold returns a gold price provider querying url, DefaultGoldURL if empty.
func NewGold(url string, client *http.Client, log zerolog.Logger) *Gold {
	if url == "" {
		url = DefaultGoldURL
	}
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &Gold{
		URL:      url,
		Client:   client,
		TTL:      DefaultTTL,
		Fallback: allocation.ReferenceGoldPrice,
		log:      log.With().Str("component", "gold").Logger(),
		now:      time.Now,
	}
}

// PerGram returns the price of one gram of gold, the fallback price when
// the endpoint cannot answer.
func (g *Gold) PerGram(ctx context.Context) allocation.Money {
	if p, ok := g.cached(); ok {
		return p
	}
	v, err, _ := g.group.Do("gold", func() (any, error) {
		if p, ok := g.cached(); ok {
			return p, nil
		}
		p, err := g.fetch(ctx)
		if err != nil {
			return nil, err
		}
		g.mu.Lock()
		g.price, g.expires = p, g.now().Add(g.TTL)
		g.mu.Unlock()
		g.log.Debug().Stringer("price", p).Msg("gold price fetched")
		return p, nil
	})
	if err != nil {
		g.log.Warn().Err(err).Stringer("price", g.Fallback).Msg("using fallback gold price")
		return g.Fallback
	}
	return v.(allocation.Money)
}

func (g *Gold) fetch(ctx context.Context) (allocation.Money, error) {
	var doc any
	if err := jwget(ctx, g.Client, g.URL, &doc); err != nil {
		return allocation.Money{}, fmt.Errorf("cannot fetch the gold price: %w", err)
	}
	for _, path := range goldPaths {
		jval, err := jsonpath.Get(path, doc)
		if err != nil {
			continue
		}
		if jlist, ok := jval.([]any); ok && len(jlist) > 0 {
			jval = jlist[0]
		}
		if ounce, ok := jval.(float64); ok && ounce > 0 {
			perGram := decimal.NewFromFloat(ounce).Div(gramsPerOunce)
			return allocation.M(perGram, "USD").Round(), nil
		}
	}
	return allocation.Money{}, fmt.Errorf("no gold price in the answer of %s", g.URL)
}

func (g *Gold) cached() (allocation.Money, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	if g.price.IsZero() || g.now().After(g.expires) {
		return allocation.Money{}, false
	}
	return g.price, true
}
