package allocation

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Category is one of the fixed asset classes a portfolio allocates to.
type Category int

const (
	RealEstate Category = iota
	Stocks
	Gold
	Bonds
	Savings
	Crypto
)

// Categories lists every category in canonical order.
var Categories = []Category{RealEstate, Stocks, Gold, Bonds, Savings, Crypto}

var ErrUnknownCategory = errors.New("unknown category")

var categoryTags = [...]string{
	RealEstate: "real-estate",
	Stocks:     "stocks",
	Gold:       "gold",
	Bonds:      "bonds",
	Savings:    "savings",
	Crypto:     "crypto",
}

// legacy tags used by older questionnaires and catalogs.
var categoryAliases = map[string]Category{
	"real_estate": RealEstate,
	"realestate":  RealEstate,
	"stock":       Stocks,
	"equities":    Stocks,
	"bond":        Bonds,
	"sukuk":       Bonds,
	"saving":      Savings,
	"deposits":    Savings,
}

func (c Category) String() string {
	if c < 0 || int(c) >= len(categoryTags) {
		return fmt.Sprintf("category(%d)", int(c))
	}
	return categoryTags[c]
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool { return c >= 0 && int(c) < len(categoryTags) }

// ParseCategory returns the category for a tag.
func ParseCategory(s string) (Category, error) {
	tag := strings.ToLower(strings.TrimSpace(s))
	for i, t := range categoryTags {
		if t == tag {
			return Category(i), nil
		}
	}
	if c, ok := categoryAliases[tag]; ok {
		return c, nil
	}
	return 0, fmt.Errorf("%w %q", ErrUnknownCategory, s)
}

func (c Category) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("%w %d", ErrUnknownCategory, int(c))
	}
	return []byte(c.String()), nil
}

func (c *Category) UnmarshalText(text []byte) error {
	v, err := ParseCategory(string(text))
	if err != nil {
		return err
	}
	*c = v
	return nil
}

// CategorySet is a set of categories.
type CategorySet map[Category]bool

// NewCategorySet returns a set holding the given categories.
func NewCategorySet(cs ...Category) CategorySet {
	s := make(CategorySet, len(cs))
	for _, c := range cs {
		s[c] = true
	}
	return s
}

// ParseCategorySet parses a comma separated list of category tags.
func ParseCategorySet(s string) (CategorySet, error) {
	set := CategorySet{}
	for _, f := range strings.Split(s, ",") {
		if strings.TrimSpace(f) == "" {
			continue
		}
		c, err := ParseCategory(f)
		if err != nil {
			return nil, err
		}
		set[c] = true
	}
	return set, nil
}

func (s CategorySet) Has(c Category) bool { return s[c] }

// Sorted returns the members in canonical order.
func (s CategorySet) Sorted() []Category {
	var out []Category
	for _, c := range Categories {
		if s[c] {
			out = append(out, c)
		}
	}
	return out
}

// With returns a copy of s that also holds c.
func (s CategorySet) With(c Category) CategorySet {
	n := make(CategorySet, len(s)+1)
	for k, v := range s {
		n[k] = v
	}
	n[c] = true
	return n
}

func (s CategorySet) MarshalJSON() ([]byte, error) {
	tags := make([]string, 0, len(s))
	for _, c := range s.Sorted() {
		tags = append(tags, c.String())
	}
	return json.Marshal(tags)
}

func (s *CategorySet) UnmarshalJSON(data []byte) error {
	var tags []string
	if err := json.Unmarshal(data, &tags); err != nil {
		return err
	}
	set := CategorySet{}
	for _, t := range tags {
		c, err := ParseCategory(t)
		if err != nil {
			return err
		}
		set[c] = true
	}
	*s = set
	return nil
}
