package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mwaqasali/garage_invoice_app/internal/core/domain"
	portssvc "github.com/mwaqasali/garage_invoice_app/internal/core/ports/services"
	"github.com/mwaqasali/garage_invoice_app/internal/dto"
	"github.com/mwaqasali/garage_invoice_app/internal/middleware"
)

// documentHandler serves both /invoices and /estimates. The docType field
// fixes which kind a given route group creates; reads and deletes work on
// either kind so an approved estimate stays reachable under its old URL.
type documentHandler struct {
	documentService portssvc.DocumentSvcFacade
	docType         domain.DocumentType
}

func newDocumentHandler(documentService portssvc.DocumentSvcFacade, docType domain.DocumentType) *documentHandler {
	return &documentHandler{documentService: documentService, docType: docType}
}

func registerDocumentRoutes(rg *gin.RouterGroup, documentService portssvc.DocumentSvcFacade) {
	invoices := rg.Group("/invoices")
	{
		h := newDocumentHandler(documentService, domain.Invoice)
		invoices.POST("", h.createDocument)
		invoices.GET("", h.listDocuments)
		invoices.GET("/:id", h.getDocument)
		invoices.PUT("/:id", h.updateDocument)
		invoices.DELETE("/:id", h.deleteDocument)
	}

	estimates := rg.Group("/estimates")
	{
		h := newDocumentHandler(documentService, domain.Estimate)
		estimates.POST("", h.createDocument)
		estimates.GET("", h.listDocuments)
		estimates.GET("/:id", h.getDocument)
		estimates.PUT("/:id", h.updateDocument)
		estimates.DELETE("/:id", h.deleteDocument)
		estimates.PATCH("/:id/approve", h.approveEstimate)
	}
}

// entity is the lowercase label used in error bodies for this route group.
func (h *documentHandler) entity() string {
	return strings.ToLower(string(h.docType))
}

func (h *documentHandler) createDocument(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.SaveDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindingErrorResponse(c, err)
		return
	}

	doc, err := h.documentService.CreateDocument(c.Request.Context(), h.docType, req)
	if err != nil {
		logger.Error("Failed to create document", "type", h.docType, "error", err)
		serviceErrorResponse(c, err, h.entity())
		return
	}

	c.JSON(http.StatusCreated, dto.ToDocumentResponse(doc))
}

func (h *documentHandler) getDocument(c *gin.Context) {
	documentID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid document ID format"})
		return
	}

	doc, err := h.documentService.GetDocumentByID(c.Request.Context(), documentID)
	if err != nil {
		serviceErrorResponse(c, err, h.entity())
		return
	}

	c.JSON(http.StatusOK, dto.ToDocumentResponse(doc))
}

func (h *documentHandler) updateDocument(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	documentID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid document ID format"})
		return
	}

	var req dto.SaveDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindingErrorResponse(c, err)
		return
	}

	doc, err := h.documentService.UpdateDocument(c.Request.Context(), documentID, req)
	if err != nil {
		logger.Error("Failed to update document", "documentID", documentID, "error", err)
		serviceErrorResponse(c, err, h.entity())
		return
	}

	c.JSON(http.StatusOK, dto.ToDocumentResponse(doc))
}

func (h *documentHandler) deleteDocument(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	documentID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid document ID format"})
		return
	}

	if err := h.documentService.DeleteDocument(c.Request.Context(), documentID); err != nil {
		logger.Warn("Failed to delete document", "documentID", documentID, "error", err)
		serviceErrorResponse(c, err, h.entity())
		return
	}

	deletedBy, _ := middleware.GetUserFromCtx(c.Request.Context())
	logger.Info("Document deleted", "documentID", documentID, "deletedBy", deletedBy)
	c.JSON(http.StatusOK, gin.H{"message": "Document deleted successfully"})
}

func (h *documentHandler) listDocuments(c *gin.Context) {
	var params dto.ListDocumentsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindingErrorResponse(c, err)
		return
	}
	// The route group decides the kind; ?type= on /invoices is kept for
	// old clients that filtered there.
	if h.docType == domain.Estimate {
		params.Type = domain.Estimate
	}

	docs, total, err := h.documentService.ListDocuments(c.Request.Context(), params)
	if err != nil {
		serviceErrorResponse(c, err, h.entity())
		return
	}

	c.JSON(http.StatusOK, dto.ListDocumentsResponse{
		Data:       dto.ToDocumentResponses(docs),
		Pagination: dto.NewPagination(params.Page, params.Limit, total),
	})
}

func (h *documentHandler) approveEstimate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	documentID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid document ID format"})
		return
	}

	var req dto.ApproveEstimateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindingErrorResponse(c, err)
		return
	}

	doc, err := h.documentService.ApproveEstimate(c.Request.Context(), documentID, req)
	if err != nil {
		logger.Warn("Failed to approve estimate", "documentID", documentID, "error", err)
		serviceErrorResponse(c, err, "estimate")
		return
	}

	approvedBy, _ := middleware.GetUserFromCtx(c.Request.Context())
	logger.Info("Estimate approved", "documentID", documentID, "approvedBy", approvedBy)
	c.JSON(http.StatusOK, dto.ToDocumentResponse(doc))
}
