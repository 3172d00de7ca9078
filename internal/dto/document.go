package dto

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mwaqasali/garage_invoice_app/internal/core/domain"
	"github.com/mwaqasali/garage_invoice_app/internal/utils/money"
)

// CoercedDecimal is a decimal that tolerates malformed numeric JSON by
// degrading to zero instead of failing the whole request. Historical
// client payloads carry free-text rate and amount fields; a non-numeric
// value becomes a Rs.0 line rather than a rejected document.
type CoercedDecimal struct {
	decimal.Decimal
}

func (d *CoercedDecimal) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "null" {
		s = ""
	}
	d.Decimal = money.DecimalOrZero(s)
	return nil
}

// LineItemInput is a single item row as submitted by the client. The
// submitted amount is accepted for backward compatibility but the server
// recomputes it from qty and rate; the recomputed figure always wins.
type LineItemInput struct {
	Description string         `json:"description" binding:"required,min=1,max=255"`
	Qty         int64          `json:"qty" binding:"required,min=1"`
	Rate        CoercedDecimal `json:"rate"`
	Amount      CoercedDecimal `json:"amount"`
}

// SaveDocumentRequest defines the data for creating or fully updating an
// invoice or estimate. When CustomerID is nil a new customer is created
// from the name/contact/vehicle/registrationNo fields before the document
// is saved.
type SaveDocumentRequest struct {
	CustomerID     *int64          `json:"customerId" binding:"omitempty,min=1"`
	Name           string          `json:"name" binding:"required,max=255"`
	Contact        string          `json:"contact" binding:"omitempty,max=255"`
	Vehicle        string          `json:"vehicle" binding:"omitempty,max=255"`
	RegistrationNo string          `json:"registrationNo" binding:"omitempty,max=255"`
	PaymentMethod  string          `json:"paymentMethod" binding:"omitempty,max=255"`
	PaymentAccount string          `json:"paymentAccount" binding:"omitempty,max=255"`
	Items          []LineItemInput `json:"items" binding:"required,min=1,dive"`
	Subtotal       decimal.Decimal `json:"subtotal"`
	Tax            decimal.Decimal `json:"tax"`
	Discount       decimal.Decimal `json:"discount"`
	Total          decimal.Decimal `json:"total"`
}

// ApproveEstimateRequest records the payment details at approval time.
type ApproveEstimateRequest struct {
	PaymentMethod  string `json:"paymentMethod" binding:"omitempty,max=255"`
	PaymentAccount string `json:"paymentAccount" binding:"omitempty,max=255"`
}

// LineItemResponse defines the data returned for a line item.
type LineItemResponse struct {
	LineItemID  int64           `json:"id"`
	Description string          `json:"description"`
	Qty         int64           `json:"qty"`
	Rate        decimal.Decimal `json:"rate"`
	Amount      decimal.Decimal `json:"amount"`
}

// DocumentResponse defines the data returned for an invoice or estimate.
type DocumentResponse struct {
	DocumentID     int64               `json:"id"`
	CustomerID     int64               `json:"customerId"`
	Type           domain.DocumentType `json:"type"`
	Name           string              `json:"name"`
	Contact        string              `json:"contact,omitempty"`
	Vehicle        string              `json:"vehicle,omitempty"`
	RegistrationNo string              `json:"registrationNo,omitempty"`
	PaymentMethod  string              `json:"paymentMethod,omitempty"`
	PaymentAccount string              `json:"paymentAccount,omitempty"`
	Subtotal       decimal.Decimal     `json:"subtotal"`
	Tax            decimal.Decimal     `json:"tax"`
	Discount       decimal.Decimal     `json:"discount"`
	Total          decimal.Decimal     `json:"total"`
	Items          []LineItemResponse  `json:"items,omitempty"`
	CreatedAt      time.Time           `json:"createdAt"`
	UpdatedAt      time.Time           `json:"updatedAt"`
}

// DocumentSummaryResponse is the trimmed document shape embedded in
// customer listings.
type DocumentSummaryResponse struct {
	DocumentID int64               `json:"id"`
	Type       domain.DocumentType `json:"type"`
	Total      decimal.Decimal     `json:"total"`
	CreatedAt  time.Time           `json:"createdAt"`
}

// ListDocumentsParams extends the shared list parameters with the document
// type filter. The default matches the primary invoice listing.
type ListDocumentsParams struct {
	ListParams
	Type domain.DocumentType `form:"type,default=INVOICE" binding:"omitempty,oneof=INVOICE ESTIMATE"`
}

// ListDocumentsResponse is the envelope for invoice/estimate listings.
type ListDocumentsResponse struct {
	Data       []DocumentResponse `json:"data"`
	Pagination Pagination         `json:"pagination"`
}

// ToLineItemResponse converts a domain.LineItem to its response DTO.
func ToLineItemResponse(item *domain.LineItem) LineItemResponse {
	return LineItemResponse{
		LineItemID:  item.LineItemID,
		Description: item.Description,
		Qty:         item.Qty,
		Rate:        item.Rate,
		Amount:      item.Amount,
	}
}

// ToDocumentResponse converts a domain.Document to its response DTO.
func ToDocumentResponse(doc *domain.Document) DocumentResponse {
	items := make([]LineItemResponse, len(doc.Items))
	for i := range doc.Items {
		items[i] = ToLineItemResponse(&doc.Items[i])
	}
	return DocumentResponse{
		DocumentID:     doc.DocumentID,
		CustomerID:     doc.CustomerID,
		Type:           doc.Type,
		Name:           doc.Name,
		Contact:        doc.Contact,
		Vehicle:        doc.Vehicle,
		RegistrationNo: doc.RegistrationNo,
		PaymentMethod:  doc.PaymentMethod,
		PaymentAccount: doc.PaymentAccount,
		Subtotal:       doc.Subtotal,
		Tax:            doc.Tax,
		Discount:       doc.Discount,
		Total:          doc.Total,
		Items:          items,
		CreatedAt:      doc.CreatedAt,
		UpdatedAt:      doc.UpdatedAt,
	}
}

// ToDocumentResponses converts a slice of documents for listings.
func ToDocumentResponses(docs []domain.Document) []DocumentResponse {
	responses := make([]DocumentResponse, len(docs))
	for i := range docs {
		responses[i] = ToDocumentResponse(&docs[i])
	}
	return responses
}

// ToDocumentSummaryResponse converts a domain.DocumentSummary.
func ToDocumentSummaryResponse(s *domain.DocumentSummary) DocumentSummaryResponse {
	return DocumentSummaryResponse{
		DocumentID: s.DocumentID,
		Type:       s.Type,
		Total:      s.Total,
		CreatedAt:  s.CreatedAt,
	}
}

// ToLineItems converts submitted item inputs to domain line items. Amounts
// are left to the arithmetic layer to recompute.
func ToLineItems(inputs []LineItemInput) []domain.LineItem {
	items := make([]domain.LineItem, len(inputs))
	for i, in := range inputs {
		items[i] = domain.LineItem{
			Description: in.Description,
			Qty:         in.Qty,
			Rate:        in.Rate.Decimal,
			Amount:      in.Amount.Decimal,
		}
	}
	return items
}
