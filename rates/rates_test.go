package rates

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tharagrowth/allocation"
)

func newServer(t *testing.T, hits *atomic.Int32) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		switch r.URL.Path {
		case "/latest/USD":
			fmt.Fprint(w, `{"base":"USD","rates":{"USD":1,"AED":3.6725,"EUR":0.92}}`)
		case "/latest/AED":
			fmt.Fprint(w, `{"base":"AED","rates":{"AED":1,"USD":0.2723}}`)
		default:
			http.Error(w, "unsupported", http.StatusNotFound)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestProvider_Rate(t *testing.T) {
	var hits atomic.Int32
	srv := newServer(t, &hits)
	p := New(srv.URL+"/latest/%s", srv.Client(), zerolog.Nop())
	ctx := context.Background()

	rate, err := p.Rate(ctx, "usd", "AED")
	require.NoError(t, err)
	assert.True(t, rate.Equal(decimal.RequireFromString("3.6725")), "got %s", rate)

	rate, err = p.Rate(ctx, "USD", "EUR")
	require.NoError(t, err)
	assert.True(t, rate.Equal(decimal.RequireFromString("0.92")), "got %s", rate)
	assert.EqualValues(t, 1, hits.Load(), "rates of a base are fetched once")

	rate, err = p.Rate(ctx, "AED", "USD")
	require.NoError(t, err)
	assert.True(t, rate.Equal(decimal.RequireFromString("0.2723")), "got %s", rate)
	assert.EqualValues(t, 2, hits.Load())

	rate, err = p.Rate(ctx, "EUR", "EUR")
	require.NoError(t, err)
	assert.True(t, rate.Equal(decimal.NewFromInt(1)))
	assert.EqualValues(t, 2, hits.Load(), "identity needs no request")
}

func TestProvider_Expiry(t *testing.T) {
	var hits atomic.Int32
	srv := newServer(t, &hits)
	p := New(srv.URL+"/latest/%s", srv.Client(), zerolog.Nop())
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	p.now = func() time.Time { return now }

	_, err := p.Rate(context.Background(), "USD", "AED")
	require.NoError(t, err)
	now = now.Add(30 * time.Minute)
	_, err = p.Rate(context.Background(), "USD", "AED")
	require.NoError(t, err)
	assert.EqualValues(t, 1, hits.Load())

	now = now.Add(time.Hour)
	_, err = p.Rate(context.Background(), "USD", "AED")
	require.NoError(t, err)
	assert.EqualValues(t, 2, hits.Load())
}

func TestProvider_Concurrent(t *testing.T) {
	var hits atomic.Int32
	srv := newServer(t, &hits)
	p := New(srv.URL+"/latest/%s", srv.Client(), zerolog.Nop())

	var wg sync.WaitGroup
	for range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := p.Rate(context.Background(), "USD", "AED")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()
	assert.LessOrEqual(t, hits.Load(), int32(2))
	assert.GreaterOrEqual(t, hits.Load(), int32(1))
}

func TestProvider_Fallback(t *testing.T) {
	var hits atomic.Int32
	srv := newServer(t, &hits)
	p := New(srv.URL+"/latest/%s", srv.Client(), zerolog.Nop())
	ctx := context.Background()

	// the endpoint does not serve SAR.
	rate, err := p.Rate(ctx, "SAR", "USD")
	require.NoError(t, err)
	assert.True(t, rate.Round(4).Equal(decimal.RequireFromString("0.2667")), "got %s", rate)

	// the USD document has no GBP rate.
	rate, err = p.Rate(ctx, "USD", "GBP")
	require.NoError(t, err)
	assert.True(t, rate.Equal(decimal.RequireFromString("0.73")), "got %s", rate)

	_, err = p.Rate(ctx, "USD", "XAU")
	assert.True(t, errors.Is(err, allocation.ErrUnknownRate), "got %v", err)

	srv.Close()
	down := New(srv.URL+"/latest/%s", &http.Client{Timeout: time.Second}, zerolog.Nop())
	rate, err = down.Rate(ctx, "USD", "AED")
	require.NoError(t, err)
	assert.True(t, rate.Equal(decimal.RequireFromString("3.67")), "got %s", rate)
}

func TestDailyClient(t *testing.T) {
	var hits atomic.Int32
	srv := newServer(t, &hits)
	dir := t.TempDir()

	for range 2 {
		p := New(srv.URL+"/latest/%s", DailyClient(dir, zerolog.Nop()), zerolog.Nop())
		rate, err := p.Rate(context.Background(), "USD", "EUR")
		require.NoError(t, err)
		assert.True(t, rate.Equal(decimal.RequireFromString("0.92")), "got %s", rate)
	}
	assert.EqualValues(t, 1, hits.Load(), "the second client reads the disk cache")

	// failures are not cached.
	p := New(srv.URL+"/missing/%s", DailyClient(dir, zerolog.Nop()), zerolog.Nop())
	for range 2 {
		_, err := p.live(context.Background(), "USD", "EUR")
		require.Error(t, err)
	}
	assert.EqualValues(t, 3, hits.Load())
}
