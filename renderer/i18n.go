package renderer

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/tharagrowth/allocation"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gopkg.in/yaml.v3"
)

//go:embed locales/*.yaml
var localesFS embed.FS

// Languages are the supported display languages, the first one is the fallback.
var Languages = []language.Tag{language.English, language.Arabic, language.French}

var matcher = language.NewMatcher(Languages)

// messages holds the raw catalogs, by locale then key.
var messages = mustRegister(localesFS)

type localeFile struct {
	Locale   string            `yaml:"locale"`
	Messages map[string]string `yaml:"messages"`
}

// register loads every locale file and registers its messages with x/text.
func register(fsys fs.FS) (map[string]map[string]string, error) {
	paths, err := fs.Glob(fsys, "locales/*.yaml")
	if err != nil {
		return nil, fmt.Errorf("glob locales: %w", err)
	}
	sort.Strings(paths)
	out := make(map[string]map[string]string)
	for _, p := range paths {
		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return nil, fmt.Errorf("read locale %s: %w", p, err)
		}
		var f localeFile
		if err := yaml.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("parse locale %s: %w", p, err)
		}
		if want := strings.TrimSuffix(path.Base(p), ".yaml"); f.Locale != want {
			return nil, fmt.Errorf("locale %s: declares %q", p, f.Locale)
		}
		tag, err := language.Parse(f.Locale)
		if err != nil {
			return nil, fmt.Errorf("locale %s: %w", p, err)
		}
		for key, value := range f.Messages {
			if err := message.SetString(tag, key, value); err != nil {
				return nil, fmt.Errorf("locale %s key %q: %w", p, key, err)
			}
		}
		out[f.Locale] = f.Messages
	}
	return out, nil
}

func mustRegister(fsys fs.FS) map[string]map[string]string {
	m, err := register(fsys)
	if err != nil {
		panic(err)
	}
	return m
}

// Lang returns the best supported language for an accept-language like string ("ar", "fr-CA", "en-US,en;q=0.8").
func Lang(s string) language.Tag {
	tags, _, _ := language.ParseAcceptLanguage(s)
	_, i, _ := matcher.Match(tags...)
	return Languages[i]
}

// printer translates keys for one language.
type printer struct {
	*message.Printer
	lang language.Tag
}

func newPrinter(lang language.Tag) printer {
	return printer{Printer: message.NewPrinter(lang), lang: lang}
}

// T translates a key.
func (p printer) T(key string, args ...any) string { return p.Sprintf(key, args...) }

func (p printer) category(c allocation.Category) string { return p.T("category." + c.String()) }
func (p printer) risk(r allocation.Risk) string         { return p.T("risk." + r.String()) }
func (p printer) strategy(s allocation.StrategyName) string {
	return p.T("strategy." + string(s))
}

// code is the base language of the printer, the key of instrument translations.
func (p printer) code() string {
	base, _ := p.lang.Base()
	return base.String()
}

func (p printer) name(in allocation.Instrument) string { return in.LocalName(p.code()) }

// CategoryName returns the display name of a category.
func CategoryName(c allocation.Category, lang language.Tag) string {
	return newPrinter(lang).category(c)
}
