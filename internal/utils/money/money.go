// Package money implements the document amount arithmetic: line amounts,
// subtotal, percentage-based tax and discount, and the grand total.
// Amounts are whole Rupees; aggregates are rounded half-up to the nearest
// rupee, each from its own formula.
package money

import (
	"github.com/shopspring/decimal"

	"github.com/mwaqasali/garage_invoice_app/internal/core/domain"
)

var hundred = decimal.NewFromInt(100)

// DecimalOrZero parses s as a decimal, degrading to zero on malformed
// input instead of erroring. This preserves the historical behavior
// where a non-numeric rate silently became a Rs.0 line; the request
// layer funnels free-form rate and amount fields through it.
func DecimalOrZero(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// RoundRupee rounds half-up to the nearest whole rupee.
func RoundRupee(d decimal.Decimal) decimal.Decimal {
	return d.Round(0)
}

// LineAmount returns qty * rate. No rounding happens at line level; the
// product of an integer qty and the rate is stored exactly.
func LineAmount(qty int64, rate decimal.Decimal) decimal.Decimal {
	if qty < 0 {
		qty = 0
	}
	return rate.Mul(decimal.NewFromInt(qty))
}

// Subtotal sums the amounts of all items.
func Subtotal(items []domain.LineItem) decimal.Decimal {
	sum := decimal.Zero
	for _, item := range items {
		sum = sum.Add(item.Amount)
	}
	return sum
}

// TaxAmount returns round(subtotal * taxPct / 100).
func TaxAmount(subtotal, taxPct decimal.Decimal) decimal.Decimal {
	return RoundRupee(subtotal.Mul(taxPct).Div(hundred))
}

// DiscountAmount returns round(subtotal * discountPct / 100).
func DiscountAmount(subtotal, discountPct decimal.Decimal) decimal.Decimal {
	return RoundRupee(subtotal.Mul(discountPct).Div(hundred))
}

// Total returns round(subtotal + taxAmount - discountAmount). The operands
// are the already-rounded aggregates; the outer round is a no-op on integer
// inputs but keeps the invariant if intermediates ever carry fractions.
func Total(subtotal, taxAmount, discountAmount decimal.Decimal) decimal.Decimal {
	return RoundRupee(subtotal.Add(taxAmount).Sub(discountAmount))
}

// Recompute normalizes a set of items and returns the derived document
// figures. Each item's amount is overwritten with qty*rate, then subtotal,
// tax amount, discount amount and total are derived from the percentages.
// Server-side recomputation always wins over client-submitted figures.
func Recompute(items []domain.LineItem, taxPct, discountPct decimal.Decimal) (subtotal, total decimal.Decimal) {
	for i := range items {
		items[i].Amount = LineAmount(items[i].Qty, items[i].Rate)
	}
	subtotal = Subtotal(items)
	tax := TaxAmount(subtotal, taxPct)
	disc := DiscountAmount(subtotal, discountPct)
	total = Total(subtotal, tax, disc)
	return subtotal, total
}
