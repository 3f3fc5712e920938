package contact

import "strings"

// AddressSeparator joins the parts of an assembled address.
const AddressSeparator = ", "

// BuildAddress joins street, locality, state and postcode of the given kind with
// AddressSeparator. Values are used verbatim.
func BuildAddress(row Row, kind AddressKind) string {
	fields := AddressFields(kind)
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, row.Value(f))
	}
	return strings.Join(parts, AddressSeparator)
}
