package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DocumentType discriminates invoices from estimates. Both share one table
// and one struct; business rules branch on this tag.
type DocumentType string

const (
	Invoice  DocumentType = "INVOICE"
	Estimate DocumentType = "ESTIMATE"
)

// PaymentMethodBankTransfer is the only payment method for which a payment
// account is meaningful. Any other method (e.g. "Cash") stores an empty
// payment account.
const PaymentMethodBankTransfer = "Bank Transfer"

// Document is a single invoice or estimate. The name/contact/vehicle/
// registrationNo fields are denormalized snapshots of the customer at save
// time, not a live join: a printed invoice must keep showing the details
// the customer had when it was issued.
//
// Tax and Discount store percentages. Invariants:
//
//	Subtotal == sum of item amounts
//	Total    == round(Subtotal + round(Subtotal*Tax/100) - round(Subtotal*Discount/100))
type Document struct {
	DocumentID     int64           `json:"id" db:"document_id"`
	CustomerID     int64           `json:"customerId" db:"customer_id"`
	Type           DocumentType    `json:"type" db:"type"`
	Name           string          `json:"name" db:"name"`
	Contact        string          `json:"contact" db:"contact"`
	Vehicle        string          `json:"vehicle" db:"vehicle"`
	RegistrationNo string          `json:"registrationNo" db:"registration_no"`
	PaymentMethod  string          `json:"paymentMethod" db:"payment_method"`
	PaymentAccount string          `json:"paymentAccount" db:"payment_account"`
	Subtotal       decimal.Decimal `json:"subtotal" db:"subtotal"`
	Tax            decimal.Decimal `json:"tax" db:"tax"`           // Percentage, not amount
	Discount       decimal.Decimal `json:"discount" db:"discount"` // Percentage, not amount
	Total          decimal.Decimal `json:"total" db:"total"`
	Items          []LineItem      `json:"items" db:"-"`
	Timestamps
}

// DocumentSummary is the trimmed document shape embedded in customer
// listings (up to the ten most recently updated documents per customer).
type DocumentSummary struct {
	DocumentID int64           `json:"id" db:"document_id"`
	Type       DocumentType    `json:"type" db:"type"`
	Total      decimal.Decimal `json:"total" db:"total"`
	CreatedAt  time.Time       `json:"createdAt" db:"created_at"`
}

// LineItem is a single description/qty/rate/amount row owned exclusively by
// one document. Invariant: Amount == Qty * Rate.
type LineItem struct {
	LineItemID  int64           `json:"id" db:"line_item_id"`
	DocumentID  int64           `json:"documentId" db:"document_id"`
	Description string          `json:"description" db:"description"`
	Qty         int64           `json:"qty" db:"qty"`
	Rate        decimal.Decimal `json:"rate" db:"rate"`
	Amount      decimal.Decimal `json:"amount" db:"amount"`
}
