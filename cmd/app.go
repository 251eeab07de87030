// Package cmd implements the tgr command line application.
package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"
	"github.com/rs/zerolog"
	"github.com/tharagrowth/allocation"
	"github.com/tharagrowth/allocation/rates"
	"github.com/tharagrowth/allocation/renderer"
	"github.com/tharagrowth/allocation/store"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// Commands are the tgr subcommands.
var Commands = []subcommands.Command{
	&recommendCmd{},
	&strategyCmd{},
	&catalogCmd{},
	&ratesCmd{},
	&historyCmd{},
	&topicCmd{},
	&assistCmd{},
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var (
	configFile   = flag.String("config", "tharagrowth.yaml", "Path to the configuration file, ignored if missing")
	catalogFile  = flag.String("catalog", "", "Path to the instrument catalog (JSONL or YAML), the built-in catalog by default")
	dbFile       = flag.String("db", "", "Path to the recommendation history database, 'none' disables it")
	ratesURL     = flag.String("rates-url", "", "Exchange rate endpoint, %s is replaced by the base currency")
	goldURL      = flag.String("gold-url", "", "Gold spot price endpoint, 'none' keeps the catalog gold prices")
	baseCurrency = flag.String("base-currency", "", "Currency the engine works in")
	langFlag     = flag.String("lang", "", "Display language (en, ar, fr)")
	Verbose      = flag.Bool("v", false, "Enable debug logs")
)

// NoDB disables the recommendation history, or the gold price refresh.
const NoDB = "none"

// Config is the application configuration. Values come from the
// configuration file, then the environment, then the global flags.
type Config struct {
	Catalog  string `yaml:"catalog" env:"TGR_CATALOG"`
	DB       string `yaml:"db" env:"TGR_DB"`
	RatesURL string `yaml:"rates_url" env:"TGR_RATES_URL"`
	// GoldURL serves the gold spot price, NoDB ("none") keeps the catalog prices.
	GoldURL      string `yaml:"gold_url" env:"TGR_GOLD_URL"`
	BaseCurrency string `yaml:"base_currency" env:"TGR_BASE_CURRENCY"`
	Lang         string `yaml:"lang" env:"TGR_LANG"`
	// CacheDir holds the daily copies of the exchange rates, no disk cache if empty.
	CacheDir string             `yaml:"cache_dir" env:"TGR_CACHE_DIR"`
	Engine   allocation.Options `yaml:"engine"`
}

func defaultConfig() Config {
	cache := ""
	if dir, err := os.UserCacheDir(); err == nil {
		cache = filepath.Join(dir, "tharagrowth")
	}
	return Config{
		DB:           "tharagrowth.db",
		BaseCurrency: "USD",
		Lang:         "en",
		CacheDir:     cache,
		Engine:       allocation.DefaultOptions(),
	}
}

// LoadConfig reads the configuration file at path, a missing file is not an error.
func LoadConfig(path string) (Config, error) {
	cfg := defaultConfig()
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return cfg, fmt.Errorf("cannot read config: %w", err)
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("cannot decode config %q: %w", path, err)
		}
	}
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Engine.Validate(); err != nil {
		return cfg, fmt.Errorf("config %q: %w", path, err)
	}
	if err := allocation.ValidateCurrency(cfg.BaseCurrency); err != nil {
		return cfg, fmt.Errorf("config %q: base currency: %w", path, err)
	}
	return cfg, nil
}

func override(dst *string, flag string) {
	if flag != "" {
		*dst = flag
	}
}

// config returns the configuration with the global flags applied.
func config() (Config, error) {
	cfg, err := LoadConfig(*configFile)
	if err != nil {
		return cfg, err
	}
	override(&cfg.Catalog, *catalogFile)
	override(&cfg.DB, *dbFile)
	override(&cfg.RatesURL, *ratesURL)
	override(&cfg.GoldURL, *goldURL)
	override(&cfg.BaseCurrency, *baseCurrency)
	override(&cfg.Lang, *langFlag)
	return cfg, nil
}

// Logger returns the console logger of the application.
func Logger() zerolog.Logger {
	level := zerolog.InfoLevel
	if *Verbose {
		level = zerolog.DebugLevel
	}
	w := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}
	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}

func (c Config) language() language.Tag { return renderer.Lang(c.Lang) }

// catalog loads the configured catalog, or the built-in one.
// catalog loads the catalog, with the gold prices following the spot price.
func (c Config) catalog(ctx context.Context, log zerolog.Logger) (*allocation.Catalog, error) {
	catalog := allocation.DefaultCatalog()
	if c.Catalog != "" {
		var err error
		if catalog, err = allocation.LoadCatalog(c.Catalog); err != nil {
			return nil, err
		}
	}
	if c.GoldURL == NoDB {
		return catalog, nil
	}
	gold := rates.NewGold(c.GoldURL, c.client(log), log)
	return allocation.RepriceGold(catalog, gold.PerGram(ctx))
}

// client returns the HTTP client of the market data, caching the answers
// of the day in CacheDir.
func (c Config) client(log zerolog.Logger) *http.Client {
	if c.CacheDir == "" {
		return nil
	}
	if err := os.MkdirAll(c.CacheDir, 0o755); err != nil {
		log.Warn().Err(err).Str("dir", c.CacheDir).Msg("market data is not cached on disk")
		return nil
	}
	return rates.DailyClient(c.CacheDir, log)
}

func (c Config) rates(log zerolog.Logger) *rates.Provider {
	return rates.New(c.RatesURL, c.client(log), log)
}

func (c Config) store(log zerolog.Logger) (store.Store, error) {
	if c.DB == "" || c.DB == NoDB {
		return store.Noop{}, nil
	}
	return store.OpenSQLite(c.DB, log)
}

// printMarkdown renders markdown for the terminal, falling back to the raw text.
func printMarkdown(md string) {
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(100))
	if err == nil {
		var out string
		if out, err = r.Render(md); err == nil {
			fmt.Print(out)
			return
		}
	}
	fmt.Print(md)
}
