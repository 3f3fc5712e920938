package contact

import (
	"regexp"

	"github.com/rotisserie/eris"
)

// EmailPattern accepts local-part@domain.tld: the local part allows word
// characters, '+', '-' and '.'; the domain allows letters, digits, '-' and '.';
// the tld is letters only. Matching is case-insensitive.
const EmailPattern = `(?i)\A[\w+\-.]+@[a-z\d\-.]+\.[a-z]+\z`

var emailRe = regexp.MustCompile(EmailPattern)

// Validation errors.
var (
	ErrMissingField = eris.New("missing required field")
	ErrInvalidEmail = eris.New("invalid email")
)

// Validate reports the first reason row does not qualify for enrichment, or nil.
// Every required field must be present and non-empty and the email must match
// EmailPattern.
func Validate(row Row) error {
	for _, f := range RequiredFields {
		v, ok := row.Get(f)
		if !ok || v == "" {
			return eris.Wrapf(ErrMissingField, "contact: %s", f)
		}
	}
	if email := row.Value(Email); !emailRe.MatchString(email) {
		return eris.Wrapf(ErrInvalidEmail, "contact: %q", email)
	}
	return nil
}

// Valid reports whether row qualifies for enrichment.
func Valid(row Row) bool {
	return Validate(row) == nil
}

// ValidEmail reports whether s matches EmailPattern.
func ValidEmail(s string) bool {
	return emailRe.MatchString(s)
}
