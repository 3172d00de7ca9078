package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	portssvc "github.com/mwaqasali/garage_invoice_app/internal/core/ports/services"
	"github.com/mwaqasali/garage_invoice_app/internal/dto"
	"github.com/mwaqasali/garage_invoice_app/internal/middleware"
)

type catalogHandler struct {
	catalogService portssvc.CatalogSvcFacade
}

func newCatalogHandler(catalogService portssvc.CatalogSvcFacade) *catalogHandler {
	return &catalogHandler{catalogService: catalogService}
}

// registerCatalogRoutes mounts the description catalog under /searchItems,
// the path the autocomplete clients already use.
func registerCatalogRoutes(rg *gin.RouterGroup, catalogService portssvc.CatalogSvcFacade) {
	h := newCatalogHandler(catalogService)
	items := rg.Group("/searchItems")
	{
		items.POST("", h.createCatalogItem)
		items.GET("", h.listCatalogItems)
		items.GET("/:id", h.getCatalogItem)
		items.PATCH("/:id", h.updateCatalogItem)
		items.DELETE("/:id", h.deleteCatalogItem)
	}
}

func (h *catalogHandler) createCatalogItem(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.SaveCatalogItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindingErrorResponse(c, err)
		return
	}

	item, err := h.catalogService.CreateCatalogItem(c.Request.Context(), req)
	if err != nil {
		logger.Error("Failed to create catalog item", "error", err)
		serviceErrorResponse(c, err, "search item")
		return
	}

	c.JSON(http.StatusCreated, dto.ToCatalogItemResponse(item))
}

func (h *catalogHandler) getCatalogItem(c *gin.Context) {
	catalogItemID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid search item ID format"})
		return
	}

	item, err := h.catalogService.GetCatalogItemByID(c.Request.Context(), catalogItemID)
	if err != nil {
		serviceErrorResponse(c, err, "search item")
		return
	}

	c.JSON(http.StatusOK, dto.ToCatalogItemResponse(item))
}

func (h *catalogHandler) updateCatalogItem(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	catalogItemID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid search item ID format"})
		return
	}

	var req dto.SaveCatalogItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindingErrorResponse(c, err)
		return
	}

	item, err := h.catalogService.UpdateCatalogItem(c.Request.Context(), catalogItemID, req)
	if err != nil {
		logger.Error("Failed to update catalog item", "catalogItemID", catalogItemID, "error", err)
		serviceErrorResponse(c, err, "search item")
		return
	}

	c.JSON(http.StatusOK, dto.ToCatalogItemResponse(item))
}

func (h *catalogHandler) deleteCatalogItem(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	catalogItemID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid search item ID format"})
		return
	}

	if err := h.catalogService.DeleteCatalogItem(c.Request.Context(), catalogItemID); err != nil {
		logger.Warn("Failed to delete catalog item", "catalogItemID", catalogItemID, "error", err)
		serviceErrorResponse(c, err, "search item")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Search item deleted successfully"})
}

func (h *catalogHandler) listCatalogItems(c *gin.Context) {
	var params dto.ListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindingErrorResponse(c, err)
		return
	}

	items, total, err := h.catalogService.ListCatalogItems(c.Request.Context(), params)
	if err != nil {
		serviceErrorResponse(c, err, "search item")
		return
	}

	c.JSON(http.StatusOK, dto.ListCatalogItemsResponse{
		Data:       dto.ToCatalogItemResponses(items),
		Pagination: dto.NewPagination(params.Page, params.Limit, total),
	})
}
