package contact

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseHeader(t *testing.T) {
	names := append([]string{"ID"}, testHeaderNames...)
	h, err := ParseHeader(names)
	require.NoError(t, err)

	assert.Equal(t, names, h.Names())
	assert.Equal(t, len(names), h.Len())
	assert.Equal(t, 1, h.index[FirstName])
	assert.Equal(t, 11, h.index[PostalAddressPostcode])
}

func TestParseHeader_MissingRequired(t *testing.T) {
	_, err := ParseHeader([]string{"First Name", "Last Name", "Email"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingHeader)
	assert.Contains(t, err.Error(), "residential_address_street")
	assert.Contains(t, err.Error(), "postal_address_postcode")
	assert.NotContains(t, err.Error(), "first_name")
}

func TestParseHeader_DuplicateKeepsFirst(t *testing.T) {
	names := append(append([]string{}, testHeaderNames...), "first name")
	h, err := ParseHeader(names)
	require.NoError(t, err)
	assert.Equal(t, 0, h.index[FirstName])
}

func TestParseHeader_NamesAreCopied(t *testing.T) {
	names := append([]string{}, testHeaderNames...)
	h, err := ParseHeader(names)
	require.NoError(t, err)

	names[0] = "changed"
	assert.Equal(t, "First Name", h.Names()[0])

	out := h.Names()
	out[0] = "changed"
	assert.Equal(t, "First Name", h.Names()[0])
}

func TestRowGet(t *testing.T) {
	row := testRow(t, nil)

	v, ok := row.Get(FirstName)
	assert.True(t, ok)
	assert.Equal(t, "Jane", v)
	assert.Equal(t, "3000", row.Value(PostalAddressPostcode))
	assert.Equal(t, 2, row.Line())
}

func TestRowGet_RaggedLine(t *testing.T) {
	h, err := ParseHeader(testHeaderNames)
	require.NoError(t, err)

	row := NewRow(h, []string{"Jane", "Citizen"}, 3)
	_, ok := row.Get(Email)
	assert.False(t, ok)
	assert.Equal(t, "", row.Value(Email))

	values := row.Values()
	assert.Len(t, values, len(testHeaderNames))
	assert.Equal(t, "Citizen", values[1])
	assert.Equal(t, "", values[10])
}

func TestRowValues_DropsExtras(t *testing.T) {
	h, err := ParseHeader(testHeaderNames)
	require.NoError(t, err)

	row := NewRow(h, append(validValues(), "extra"), 4)
	assert.Equal(t, validValues(), row.Values())
}
