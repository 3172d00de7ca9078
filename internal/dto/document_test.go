package dto_test

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mwaqasali/garage_invoice_app/internal/dto"
)

func TestLineItemInput_CoercesMalformedNumerics(t *testing.T) {
	raw := `{
		"description": "Oil change",
		"qty": 2,
		"rate": "not-a-number",
		"amount": null
	}`

	var item dto.LineItemInput
	require.NoError(t, json.Unmarshal([]byte(raw), &item))

	// Malformed rate degrades to a Rs.0 line instead of rejecting the
	// whole document.
	assert.True(t, item.Rate.Equal(decimal.Zero))
	assert.True(t, item.Amount.Equal(decimal.Zero))
}

func TestLineItemInput_AcceptsQuotedAndBareNumbers(t *testing.T) {
	raw := `{
		"description": "Brake pads",
		"qty": 1,
		"rate": "1200.50",
		"amount": 1200.50
	}`

	var item dto.LineItemInput
	require.NoError(t, json.Unmarshal([]byte(raw), &item))

	assert.True(t, item.Rate.Equal(decimal.RequireFromString("1200.5")))
	assert.True(t, item.Amount.Equal(decimal.RequireFromString("1200.5")))
}
