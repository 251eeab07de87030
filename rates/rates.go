// Package rates provides live exchange rates from an exchangerate-api.com
// compatible endpoint, falling back to a static table when it is unreachable.
package rates

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/PaesslerAG/jsonpath"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/tharagrowth/allocation"
	"golang.org/x/sync/singleflight"
)

// DefaultURL is the endpoint queried for the rates of a base currency, %s
// being replaced by the base currency code.
const DefaultURL = "https://api.exchangerate-api.com/v4/latest/%s"

// DefaultTTL is how long fetched rates are reused.
const DefaultTTL = time.Hour

// entry holds the rates of one base currency.
type entry struct {
	doc     any
	expires time.Time
}

// Provider implements allocation.ExchangeRateProvider.
//
// Rates are fetched per base currency and kept in memory for TTL. Concurrent
// lookups of the same base share a single request. When the endpoint fails,
// or does not know the pair, the Fallback table answers.
type Provider struct {
	// URL is a format string receiving the base currency.
	URL      string
	Client   *http.Client
	TTL      time.Duration
	Fallback allocation.StaticRates

	log   zerolog.Logger
	now   func() time.Time
	mu    sync.RWMutex
	cache map[string]entry
	group singleflight.Group
}

// New returns a provider querying url, DefaultURL if empty.
func New(url string, client *http.Client, log zerolog.Logger) *Provider {
	if url == "" {
		url = DefaultURL
	}
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &Provider{
		URL:      url,
		Client:   client,
		TTL:      DefaultTTL,
		Fallback: allocation.DefaultRates(),
		log:      log.With().Str("component", "rates").Logger(),
		now:      time.Now,
		cache:    make(map[string]entry),
	}
}

// Rate returns how many units of "to" one unit of "from" buys.
func (p *Provider) Rate(ctx context.Context, from, to string) (decimal.Decimal, error) {
	from, to = strings.ToUpper(from), strings.ToUpper(to)
	if from == to {
		return decimal.NewFromInt(1), nil
	}
	rate, err := p.live(ctx, from, to)
	if err == nil {
		return rate, nil
	}
	p.log.Warn().Err(err).Str("from", from).Str("to", to).Msg("using fallback rate")
	return p.Fallback.Rate(ctx, from, to)
}

// live returns the rate from the endpoint.
func (p *Provider) live(ctx context.Context, from, to string) (decimal.Decimal, error) {
	doc, err := p.rates(ctx, from)
	if err != nil {
		return decimal.Zero, err
	}
	path := fmt.Sprintf("$.rates.%s", to)
	jval, err := jsonpath.Get(path, doc)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w from %s to %s: %v", allocation.ErrUnknownRate, from, to, err)
	}
	// jsonpath may return a list of 1 answer, or a single answer.
	if jlist, ok := jval.([]any); ok && len(jlist) > 0 {
		jval = jlist[0]
	}
	val, ok := jval.(float64)
	if !ok || val <= 0 {
		return decimal.Zero, fmt.Errorf("invalid rate from %s to %s: %v", from, to, jval)
	}
	return decimal.NewFromFloat(val), nil
}

// rates returns the decoded rates document of a base currency.
func (p *Provider) rates(ctx context.Context, base string) (any, error) {
	if doc, ok := p.cached(base); ok {
		return doc, nil
	}
	v, err, _ := p.group.Do(base, func() (any, error) {
		if doc, ok := p.cached(base); ok {
			return doc, nil
		}
		var doc any
		addr := fmt.Sprintf(p.URL, base)
		if err := jwget(ctx, p.Client, addr, &doc); err != nil {
			return nil, fmt.Errorf("cannot fetch %s rates: %w", base, err)
		}
		p.mu.Lock()
		p.cache[base] = entry{doc: doc, expires: p.now().Add(p.TTL)}
		p.mu.Unlock()
		p.log.Debug().Str("base", base).Msg("rates fetched")
		return doc, nil
	})
	return v, err
}

func (p *Provider) cached(base string) (any, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	e, ok := p.cache[base]
	if !ok || p.now().After(e.expires) {
		return nil, false
	}
	return e.doc, true
}
