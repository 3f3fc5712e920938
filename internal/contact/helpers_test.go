package contact

import (
	"testing"

	"github.com/stretchr/testify/require"
)

var testHeaderNames = []string{
	"First Name", "Last Name", "Email",
	"Residential Address Street", "Residential Address Locality", "Residential Address State", "Residential Address Postcode",
	"Postal Address Street", "Postal Address Locality", "Postal Address State", "Postal Address Postcode",
}

// validValues returns a fully valid row, aligned to testHeaderNames.
func validValues() []string {
	return []string{
		"Jane", "Citizen", "jane.citizen+list@example.com.au",
		"1 Macquarie St", "Sydney", "NSW", "2000",
		"PO Box 42", "Melbourne", "VIC", "3000",
	}
}

func testRow(t *testing.T, mutate func(map[Field]string)) Row {
	t.Helper()
	h, err := ParseHeader(testHeaderNames)
	require.NoError(t, err)

	values := validValues()
	if mutate != nil {
		m := make(map[Field]string, len(RequiredFields))
		for i, f := range RequiredFields {
			m[f] = values[i]
		}
		mutate(m)
		for i, f := range RequiredFields {
			values[i] = m[f]
		}
	}
	return NewRow(h, values, 2)
}
