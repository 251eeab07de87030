package allocation

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Instrument is a purchasable offering of the catalog. Instruments are
// reference data: the engine never mutates them.
type Instrument struct {
	ID       string
	Category Category
	// Name and Description are in English, Names and Descriptions hold their
	// translations keyed by language ("ar", "fr").
	Name  string
	Names Translations
	// UnitPrice is the price of one purchasable unit: a share, a gram, a bond
	// face value or a property fraction. Continuous instruments leave it zero.
	UnitPrice      Money
	MinInvestment  Money
	ExpectedReturn Percent
	// Risk is the explicit risk level, RiskUnknown lets RiskBucket derive it.
	Risk         Risk
	CreditRating string
	Sector       string
	Location     string
	Market       string
	Kind         string
	Shariah      bool
	Description  string
	Descriptions Translations
}

// Translations of a text, keyed by base language code.
type Translations map[string]string

// In returns the translation for lang, or fallback when there is none.
func (t Translations) In(lang, fallback string) string {
	if s, ok := t[strings.ToLower(lang)]; ok && s != "" {
		return s
	}
	return fallback
}

// LocalName returns the name of the instrument in lang, English by default.
func (i Instrument) LocalName(lang string) string { return i.Names.In(lang, i.Name) }

// LocalDescription returns the description of the instrument in lang, English by default.
func (i Instrument) LocalDescription(lang string) string {
	return i.Descriptions.In(lang, i.Description)
}

// Currency of the instrument prices.
func (i Instrument) Currency() string {
	if i.UnitPrice.Currency() != "" {
		return i.UnitPrice.Currency()
	}
	return i.MinInvestment.Currency()
}

// EntryPrice is the least amount that buys into the instrument.
func (i Instrument) EntryPrice() Money {
	return MaxMoney(i.UnitPrice, i.MinInvestment)
}

// RiskBucket classifies the instrument as low, medium or high risk.
//
// An explicit Risk wins, then the credit rating, then the expected return.
func (i Instrument) RiskBucket() Risk {
	if i.Risk != RiskUnknown {
		return i.Risk
	}
	if r := ratingRisk(i.CreditRating); r != RiskUnknown {
		return r
	}
	return returnRisk(i.ExpectedReturn)
}

// returnRisk maps an expected return to a risk bucket.
func returnRisk(p Percent) Risk {
	switch {
	case p < 5:
		return RiskLow
	case p < 9:
		return RiskMedium
	default:
		return RiskHigh
	}
}

// ratingRisk maps a credit rating (S&P style) to a risk bucket.
func ratingRisk(rating string) Risk {
	r := strings.ToUpper(strings.TrimSpace(rating))
	r = strings.TrimRight(r, "+-")
	switch r {
	case "":
		return RiskUnknown
	case "AAA", "AA":
		return RiskLow
	case "A", "BBB":
		return RiskMedium
	default:
		return RiskHigh
	}
}

// HighGrade reports an AAA or AA credit rating.
func (i Instrument) HighGrade() bool { return ratingRisk(i.CreditRating) == RiskLow }

// InMarket reports whether the instrument is offered in the target market.
// An empty or global market on either side matches everything.
func (i Instrument) InMarket(market string) bool {
	m := strings.ToLower(strings.TrimSpace(market))
	im := strings.ToLower(strings.TrimSpace(i.Market))
	if m == "" || m == GlobalMarket || im == "" || im == GlobalMarket {
		return true
	}
	return m == im
}

// Validate checks the catalog invariants of a single instrument.
func (i Instrument) Validate() error {
	if err := ValidateInstrumentID(i.ID); err != nil {
		return err
	}
	if !i.Category.Valid() {
		return fmt.Errorf("instrument %q: %w %d", i.ID, ErrUnknownCategory, int(i.Category))
	}
	if i.UnitPrice.IsNegative() || i.MinInvestment.IsNegative() {
		return fmt.Errorf("instrument %q: prices cannot be negative", i.ID)
	}
	if i.UnitPrice.IsZero() && i.MinInvestment.IsZero() {
		return fmt.Errorf("instrument %q: needs a unit price or a minimum investment", i.ID)
	}
	if !i.UnitPrice.IsZero() && !i.MinInvestment.IsZero() && i.UnitPrice.Currency() != i.MinInvestment.Currency() {
		return fmt.Errorf("instrument %q: unit price in %s but minimum in %s", i.ID, i.UnitPrice.Currency(), i.MinInvestment.Currency())
	}
	if err := ValidateCurrency(i.Currency()); err != nil {
		return fmt.Errorf("instrument %q: %w", i.ID, err)
	}
	return nil
}

// jinstrument is the persisted form of an instrument.
type jinstrument struct {
	ID             string       `json:"id" yaml:"id"`
	Category       Category     `json:"category" yaml:"category"`
	Name           string       `json:"name" yaml:"name"`
	Names          Translations `json:"names,omitempty" yaml:"names,omitempty"`
	Currency       string       `json:"currency" yaml:"currency"`
	UnitPrice      string       `json:"unitPrice,omitempty" yaml:"unit_price,omitempty"`
	MinInvestment  string       `json:"minInvestment,omitempty" yaml:"min_investment,omitempty"`
	ExpectedReturn float64      `json:"expectedReturn" yaml:"expected_return"`
	Risk           Risk         `json:"risk,omitempty" yaml:"risk,omitempty"`
	CreditRating   string       `json:"creditRating,omitempty" yaml:"credit_rating,omitempty"`
	Sector         string       `json:"sector,omitempty" yaml:"sector,omitempty"`
	Location       string       `json:"location,omitempty" yaml:"location,omitempty"`
	Market         string       `json:"market,omitempty" yaml:"market,omitempty"`
	Kind           string       `json:"kind,omitempty" yaml:"kind,omitempty"`
	Shariah        bool         `json:"shariah,omitempty" yaml:"shariah,omitempty"`
	Description    string       `json:"description,omitempty" yaml:"description,omitempty"`
	Descriptions   Translations `json:"descriptions,omitempty" yaml:"descriptions,omitempty"`
}

func (j jinstrument) instrument() (Instrument, error) {
	in := Instrument{
		ID:             j.ID,
		Category:       j.Category,
		Name:           j.Name,
		Names:          j.Names,
		ExpectedReturn: Percent(j.ExpectedReturn),
		Risk:           j.Risk,
		CreditRating:   j.CreditRating,
		Sector:         j.Sector,
		Location:       j.Location,
		Market:         j.Market,
		Kind:           j.Kind,
		Shariah:        j.Shariah,
		Description:    j.Description,
		Descriptions:   j.Descriptions,
	}
	var err error
	if j.UnitPrice != "" {
		if in.UnitPrice, err = ParseMoney(j.UnitPrice, j.Currency); err != nil {
			return in, fmt.Errorf("instrument %q unit price: %w", j.ID, err)
		}
	}
	if j.MinInvestment != "" {
		if in.MinInvestment, err = ParseMoney(j.MinInvestment, j.Currency); err != nil {
			return in, fmt.Errorf("instrument %q minimum investment: %w", j.ID, err)
		}
	}
	return in, in.Validate()
}

// MarshalJSON writes the instrument with a canonical field order.
func (i Instrument) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("id", i.ID)
	w.Append("category", i.Category)
	w.Append("name", i.Name)
	if len(i.Names) > 0 {
		w.Append("names", i.Names)
	}
	w.Append("currency", i.Currency())
	if !i.UnitPrice.IsZero() {
		w.Append("unitPrice", i.UnitPrice.Decimal().String())
	}
	if !i.MinInvestment.IsZero() {
		w.Append("minInvestment", i.MinInvestment.Decimal().String())
	}
	w.Append("expectedReturn", float64(i.ExpectedReturn))
	if i.Risk != RiskUnknown {
		w.Append("risk", i.Risk)
	}
	w.Optional("creditRating", i.CreditRating)
	w.Optional("sector", i.Sector)
	w.Optional("location", i.Location)
	w.Optional("market", i.Market)
	w.Optional("kind", i.Kind)
	w.Optional("shariah", i.Shariah)
	w.Optional("description", i.Description)
	if len(i.Descriptions) > 0 {
		w.Append("descriptions", i.Descriptions)
	}
	return w.MarshalJSON()
}

func (i *Instrument) UnmarshalJSON(data []byte) error {
	var j jinstrument
	if err := json.Unmarshal(data, &j); err != nil {
		return err
	}
	in, err := j.instrument()
	if err != nil {
		return err
	}
	*i = in
	return nil
}
