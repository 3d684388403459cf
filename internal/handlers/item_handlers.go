package handlers

import (
	"errors"
	"net/http"

	"soletracker_backend/internal/services"
	"soletracker_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// ItemHandler holds the item and sale services.
type ItemHandler struct {
	itemService services.ItemService
	saleService services.SaleService
}

// NewItemHandler creates a new ItemHandler.
func NewItemHandler(is services.ItemService, ss services.SaleService) *ItemHandler {
	return &ItemHandler{itemService: is, saleService: ss}
}

// CreateItem handles adding a new item to the inventory.
func (h *ItemHandler) CreateItem(c *gin.Context) {
	var req services.CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError(err, "CreateItem: Failed to bind JSON")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	item, err := h.itemService.CreateItem(req)
	if err != nil {
		utils.LogError(err, "CreateItem: Error from itemService.CreateItem")
		if errors.Is(err, services.ErrValidation) || errors.Is(err, services.ErrDateFormat) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Validation failed: "+err.Error(), err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to create item.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusCreated, item)
}

// GetItems handles fetching the merged item+sale list.
func (h *ItemHandler) GetItems(c *gin.Context) {
	items, err := h.itemService.ListItems()
	if err != nil {
		utils.LogError(err, "GetItems: Error from itemService.ListItems")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch items.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, items)
}

// SellItem handles marking an item as sold.
func (h *ItemHandler) SellItem(c *gin.Context) {
	idStr := c.Param("id")
	itemID, err := utils.StrToInt64(idStr)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid item ID format.", err.Error()))
		return
	}

	var req services.SellItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError(err, "SellItem: Failed to bind JSON for ID "+idStr)
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	result, err := h.saleService.SellItem(itemID, req)
	if err != nil {
		utils.LogError(err, "SellItem: Error from saleService.SellItem for ID "+idStr)
		if errors.Is(err, services.ErrItemNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Item not found.", err.Error()))
		} else if errors.Is(err, services.ErrItemAlreadySold) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, "Item already sold.", err.Error()))
		} else if errors.Is(err, services.ErrValidation) || errors.Is(err, services.ErrDateFormat) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Validation failed: "+err.Error(), err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to sell item.", "Internal error"))
		}
		return
	}

	utils.LogInfo("Item sold", map[string]interface{}{"item_id": utils.Int64ToStr(itemID)})
	c.JSON(http.StatusCreated, result)
}

// DeleteItem handles removing an item (and its sale record, if any).
func (h *ItemHandler) DeleteItem(c *gin.Context) {
	idStr := c.Param("id")
	itemID, err := utils.StrToInt64(idStr)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid item ID format.", err.Error()))
		return
	}

	result, err := h.itemService.DeleteItem(itemID)
	if err != nil {
		utils.LogError(err, "DeleteItem: Error from itemService.DeleteItem for ID "+idStr)
		if errors.Is(err, services.ErrItemNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Item not found.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to delete item.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, result)
}
