package allocation

import (
	"fmt"
	"regexp"
)

// currencyCodeRegex checks for the format: 3 uppercase letters.
var currencyCodeRegex = regexp.MustCompile(`^[A-Z]{3}$`)

// idRegex checks instrument identifiers: lowercase alphanumerics, '_' and '-'.
var idRegex = regexp.MustCompile(`^[a-z0-9][a-z0-9_\-]*$`)

// ValidateCurrency checks if the code is a valid ISO 4217 currency code format.
func ValidateCurrency(code string) error {
	if !currencyCodeRegex.MatchString(code) {
		return fmt.Errorf("invalid currency code %q: must be 3 uppercase letters", code)
	}
	return nil
}

// ValidateInstrumentID checks the catalog identifier format.
func ValidateInstrumentID(id string) error {
	if !idRegex.MatchString(id) {
		return fmt.Errorf("invalid instrument id %q: must be lowercase alphanumerics, '_' or '-'", id)
	}
	return nil
}
