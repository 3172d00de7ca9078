package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	portssvc "github.com/mwaqasali/garage_invoice_app/internal/core/ports/services"
	"github.com/mwaqasali/garage_invoice_app/internal/dto"
	"github.com/mwaqasali/garage_invoice_app/internal/middleware"
)

type customerHandler struct {
	customerService portssvc.CustomerSvcFacade
}

func newCustomerHandler(customerService portssvc.CustomerSvcFacade) *customerHandler {
	return &customerHandler{customerService: customerService}
}

func registerCustomerRoutes(rg *gin.RouterGroup, customerService portssvc.CustomerSvcFacade) {
	h := newCustomerHandler(customerService)
	customers := rg.Group("/customers")
	{
		customers.POST("", h.createCustomer)
		customers.GET("", h.listCustomers)
		customers.GET("/:id", h.getCustomer)
		customers.PATCH("/:id", h.updateCustomer)
		customers.DELETE("/:id", h.deleteCustomer)
	}
}

func (h *customerHandler) createCustomer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.SaveCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindingErrorResponse(c, err)
		return
	}

	customer, err := h.customerService.CreateCustomer(c.Request.Context(), req)
	if err != nil {
		logger.Error("Failed to create customer", "error", err)
		serviceErrorResponse(c, err, "customer")
		return
	}

	c.JSON(http.StatusCreated, dto.ToCustomerResponse(customer))
}

func (h *customerHandler) getCustomer(c *gin.Context) {
	customerID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid customer ID format"})
		return
	}

	customer, err := h.customerService.GetCustomerByID(c.Request.Context(), customerID)
	if err != nil {
		serviceErrorResponse(c, err, "customer")
		return
	}

	c.JSON(http.StatusOK, dto.ToCustomerResponse(customer))
}

func (h *customerHandler) updateCustomer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	customerID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid customer ID format"})
		return
	}

	var req dto.SaveCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindingErrorResponse(c, err)
		return
	}

	customer, err := h.customerService.UpdateCustomer(c.Request.Context(), customerID, req)
	if err != nil {
		logger.Error("Failed to update customer", "customerID", customerID, "error", err)
		serviceErrorResponse(c, err, "customer")
		return
	}

	c.JSON(http.StatusOK, dto.ToCustomerResponse(customer))
}

func (h *customerHandler) deleteCustomer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	customerID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid customer ID format"})
		return
	}

	if err := h.customerService.DeleteCustomer(c.Request.Context(), customerID); err != nil {
		logger.Warn("Failed to delete customer", "customerID", customerID, "error", err)
		serviceErrorResponse(c, err, "customer")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Customer deleted successfully"})
}

func (h *customerHandler) listCustomers(c *gin.Context) {
	var params dto.ListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindingErrorResponse(c, err)
		return
	}

	customers, summaries, total, err := h.customerService.ListCustomers(c.Request.Context(), params)
	if err != nil {
		serviceErrorResponse(c, err, "customer")
		return
	}

	entries := make([]dto.CustomerListEntry, len(customers))
	for i := range customers {
		docs := summaries[customers[i].CustomerID]
		docResponses := make([]dto.DocumentSummaryResponse, len(docs))
		for j := range docs {
			docResponses[j] = dto.ToDocumentSummaryResponse(&docs[j])
		}
		entries[i] = dto.CustomerListEntry{
			CustomerResponse: dto.ToCustomerResponse(&customers[i]),
			Documents:        docResponses,
		}
	}

	c.JSON(http.StatusOK, dto.ListCustomersResponse{
		Data:       entries,
		Pagination: dto.NewPagination(params.Page, params.Limit, total),
	})
}
