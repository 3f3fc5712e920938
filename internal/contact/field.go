// Package contact models contact rows read from CSV: the fixed set of required
// fields, the mapping from raw header text to those fields, row validation and
// address assembly.
package contact

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Field is the symbolic key of a required input column.
type Field string

// Required fields, keyed the way headers are normalized (see HeaderKey).
const (
	FirstName                  Field = "first_name"
	LastName                   Field = "last_name"
	Email                      Field = "email"
	ResidentialAddressStreet   Field = "residential_address_street"
	ResidentialAddressLocality Field = "residential_address_locality"
	ResidentialAddressState    Field = "residential_address_state"
	ResidentialAddressPostcode Field = "residential_address_postcode"
	PostalAddressStreet        Field = "postal_address_street"
	PostalAddressLocality      Field = "postal_address_locality"
	PostalAddressState         Field = "postal_address_state"
	PostalAddressPostcode      Field = "postal_address_postcode"
)

// RequiredFields lists every required field in validation order.
var RequiredFields = []Field{
	FirstName,
	LastName,
	Email,
	ResidentialAddressStreet,
	ResidentialAddressLocality,
	ResidentialAddressState,
	ResidentialAddressPostcode,
	PostalAddressStreet,
	PostalAddressLocality,
	PostalAddressState,
	PostalAddressPostcode,
}

// AddressKind selects one of the two addresses carried by a row.
type AddressKind int

// Address kinds.
const (
	Residential AddressKind = iota
	Postal
)

func (k AddressKind) String() string {
	switch k {
	case Residential:
		return "residential"
	case Postal:
		return "postal"
	default:
		return "unknown"
	}
}

// addressFields holds street, locality, state and postcode, in that order.
var addressFields = map[AddressKind][4]Field{
	Residential: {ResidentialAddressStreet, ResidentialAddressLocality, ResidentialAddressState, ResidentialAddressPostcode},
	Postal:      {PostalAddressStreet, PostalAddressLocality, PostalAddressState, PostalAddressPostcode},
}

// AddressFields returns the street, locality, state and postcode fields for kind.
func AddressFields(kind AddressKind) [4]Field {
	return addressFields[kind]
}

var (
	nonWordRe    = regexp.MustCompile(`[^\s\w]+`)
	whitespaceRe = regexp.MustCompile(`\s+`)
)

// HeaderKey converts raw header text into a symbolic key: lower-cased, with
// punctuation dropped and whitespace runs collapsed to "_".
// "Residential Address Street" becomes "residential_address_street".
func HeaderKey(raw string) string {
	key := cases.Lower(language.Und).String(raw)
	key = nonWordRe.ReplaceAllString(key, "")
	key = strings.TrimSpace(key)
	return whitespaceRe.ReplaceAllString(key, "_")
}
