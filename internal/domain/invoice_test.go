package domain

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLineTotal(t *testing.T) {
	price := decimal.RequireFromString("1500.00")

	total := LineTotal(price, 2)

	assert.True(t, total.Equal(decimal.RequireFromString("3000.00")), "got %s", total)
}

func TestInvoiceTotal(t *testing.T) {
	items := []InvoiceItem{
		{LineTotal: decimal.RequireFromString("3000.00")},
		{LineTotal: decimal.RequireFromString("240.00")},
	}
	tax := decimal.RequireFromString("19.99")

	total := InvoiceTotal(items, tax)

	assert.True(t, total.Equal(decimal.RequireFromString("3259.99")), "got %s", total)
}

func TestInvoiceTotalZeroTax(t *testing.T) {
	items := []InvoiceItem{
		{LineTotal: decimal.RequireFromString("3000.00")},
	}

	total := InvoiceTotal(items, decimal.Zero)

	assert.True(t, total.Equal(decimal.RequireFromString("3000.00")), "got %s", total)
}

func validDraft() *InvoiceDraft {
	issue, _ := ParseDateOnly("2024-03-01")
	due, _ := ParseDateOnly("2024-03-31")
	return &InvoiceDraft{
		IssueDate: issue,
		DueDate:   due,
		ClientID:  1,
		Items:     []InvoiceItemDraft{{ProductID: 1, Quantity: 2}},
		Tax:       decimal.Zero,
	}
}

func TestInvoiceDraftValidate(t *testing.T) {
	assert.NoError(t, validDraft().Validate())
}

func TestInvoiceDraftValidateEmptyItems(t *testing.T) {
	draft := validDraft()
	draft.Items = nil

	err := draft.Validate()

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "items", validationErr.Field)
}

func TestInvoiceDraftValidateZeroQuantity(t *testing.T) {
	draft := validDraft()
	draft.Items = []InvoiceItemDraft{
		{ProductID: 1, Quantity: 1},
		{ProductID: 2, Quantity: 0},
	}

	err := draft.Validate()

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "items[1].quantity", validationErr.Field)
}

func TestInvoiceDraftValidateNegativeTax(t *testing.T) {
	draft := validDraft()
	draft.Tax = decimal.RequireFromString("-0.01")

	err := draft.Validate()

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "tax", validationErr.Field)
}

func TestInvoiceDraftValidateMissingClient(t *testing.T) {
	draft := validDraft()
	draft.ClientID = 0

	err := draft.Validate()

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "clientId", validationErr.Field)
}

func TestDateOnlyJSON(t *testing.T) {
	var d DateOnly
	require.NoError(t, json.Unmarshal([]byte(`"2024-03-01"`), &d))
	assert.Equal(t, "2024-03-01", d.String())

	out, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2024-03-01"`, string(out))
}

func TestDateOnlyJSONNull(t *testing.T) {
	var d DateOnly
	require.NoError(t, json.Unmarshal([]byte(`""`), &d))
	assert.True(t, d.IsZero())

	out, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, "null", string(out))
}

func TestDateOnlyJSONInvalid(t *testing.T) {
	var d DateOnly
	assert.Error(t, json.Unmarshal([]byte(`"03/01/2024"`), &d))
}
