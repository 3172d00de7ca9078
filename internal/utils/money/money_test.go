package money_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/mwaqasali/garage_invoice_app/internal/core/domain"
	"github.com/mwaqasali/garage_invoice_app/internal/utils/money"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestLineAmount(t *testing.T) {
	assert.True(t, money.LineAmount(3, dec("450")).Equal(dec("1350")))
	assert.True(t, money.LineAmount(1, dec("0")).Equal(decimal.Zero))
	// Fractional rates are kept exact at line level.
	assert.True(t, money.LineAmount(4, dec("12.25")).Equal(dec("49")))
	// Negative qty degrades to zero rather than producing a negative line.
	assert.True(t, money.LineAmount(-2, dec("100")).Equal(decimal.Zero))
}

func TestDecimalOrZero(t *testing.T) {
	assert.True(t, money.DecimalOrZero("199.50").Equal(dec("199.5")))
	assert.True(t, money.DecimalOrZero("abc").Equal(decimal.Zero))
	assert.True(t, money.DecimalOrZero("").Equal(decimal.Zero))
}

func TestSubtotal(t *testing.T) {
	items := []domain.LineItem{
		{Amount: dec("1000")},
		{Amount: dec("350")},
		{Amount: dec("0")},
	}
	assert.True(t, money.Subtotal(items).Equal(dec("1350")))
	assert.True(t, money.Subtotal(nil).Equal(decimal.Zero))
}

func TestTaxAndDiscountRounding(t *testing.T) {
	// 1000 at 10% tax and 5% discount: tax=100, discount=50, total=1050.
	sub := dec("1000")
	tax := money.TaxAmount(sub, dec("10"))
	disc := money.DiscountAmount(sub, dec("5"))
	assert.True(t, tax.Equal(dec("100")))
	assert.True(t, disc.Equal(dec("50")))
	assert.True(t, money.Total(sub, tax, disc).Equal(dec("1050")))

	// Half-up rounding on the aggregate: 333 * 7% = 23.31 -> 23,
	// 335 * 7.5% = 25.125 -> 25, 330 * 7.5% = 24.75 -> 25.
	assert.True(t, money.TaxAmount(dec("333"), dec("7")).Equal(dec("23")))
	assert.True(t, money.TaxAmount(dec("335"), dec("7.5")).Equal(dec("25")))
	assert.True(t, money.TaxAmount(dec("330"), dec("7.5")).Equal(dec("25")))
	// Exactly .5 rounds up.
	assert.True(t, money.TaxAmount(dec("250"), dec("5")).Equal(dec("13")))
}

func TestTotalZeroSubtotal(t *testing.T) {
	zero := decimal.Zero
	tax := money.TaxAmount(zero, dec("18"))
	disc := money.DiscountAmount(zero, dec("50"))
	assert.True(t, money.Total(zero, tax, disc).Equal(zero))
}

func TestRecomputeOverridesSubmittedAmounts(t *testing.T) {
	items := []domain.LineItem{
		{Qty: 2, Rate: dec("500"), Amount: dec("999999")}, // Client figure ignored
		{Qty: 1, Rate: dec("250")},
	}
	sub, total := money.Recompute(items, dec("10"), dec("5"))

	assert.True(t, items[0].Amount.Equal(dec("1000")))
	assert.True(t, items[1].Amount.Equal(dec("250")))
	assert.True(t, sub.Equal(dec("1250")))
	// tax=round(125)=125, discount=round(62.5)=63, total=1312.
	assert.True(t, total.Equal(dec("1312")))
}
