package dto

import (
	"time"

	"github.com/mwaqasali/garage_invoice_app/internal/core/domain"
)

// SaveCustomerRequest defines the data for creating or updating a customer.
// Updates are a full overwrite of the four scalar fields.
type SaveCustomerRequest struct {
	Name           string `json:"name" binding:"required,max=255"`
	Contact        string `json:"contact" binding:"omitempty,max=255"`
	Vehicle        string `json:"vehicle" binding:"omitempty,max=255"`
	RegistrationNo string `json:"registrationNo" binding:"omitempty,max=255"`
}

// CustomerResponse defines the data returned for a customer.
type CustomerResponse struct {
	CustomerID     int64     `json:"id"`
	Name           string    `json:"name"`
	Contact        string    `json:"contact,omitempty"`
	Vehicle        string    `json:"vehicle,omitempty"`
	RegistrationNo string    `json:"registrationNo,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// CustomerListEntry is a customer plus its most recent document summaries,
// as embedded in the customer listing.
type CustomerListEntry struct {
	CustomerResponse
	Documents []DocumentSummaryResponse `json:"documents"`
}

// ListCustomersResponse is the envelope for the customer listing.
type ListCustomersResponse struct {
	Data       []CustomerListEntry `json:"data"`
	Pagination Pagination          `json:"pagination"`
}

// ToCustomerResponse converts a domain.Customer to its response DTO.
func ToCustomerResponse(c *domain.Customer) CustomerResponse {
	return CustomerResponse{
		CustomerID:     c.CustomerID,
		Name:           c.Name,
		Contact:        c.Contact,
		Vehicle:        c.Vehicle,
		RegistrationNo: c.RegistrationNo,
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
	}
}
