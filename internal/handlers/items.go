package handlers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/edenivgi/bar-stock/internal/database"
	"github.com/edenivgi/bar-stock/internal/models"
)

// ListItems returns a paginated list of catalog items
func (h *Handler) ListItems(c *fiber.Ctx) error {
	params := &models.ItemListParams{
		Limit:       c.QueryInt("limit", 50),
		Offset:      c.QueryInt("offset", 0),
		Search:      c.Query("search"),
		Category:    c.Query("category"),
		Supplier:    c.Query("supplier"),
		StockStatus: c.Query("stock_status"),
	}

	// Validate limits
	if params.Limit < 1 || params.Limit > 200 {
		params.Limit = 50
	}
	if params.Offset < 0 {
		params.Offset = 0
	}

	items, total, err := h.db.ListItems(c.Context(), params)
	if err != nil {
		return Error(c, fiber.StatusInternalServerError, "failed to list items")
	}

	return SuccessWithMeta(c, items, total, params.Limit, params.Offset)
}

// GetItem returns a single item by ID
func (h *Handler) GetItem(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return Error(c, fiber.StatusBadRequest, "invalid item id")
	}

	item, err := h.db.GetItemByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, database.ErrItemNotFound) {
			return Error(c, fiber.StatusNotFound, "item not found")
		}
		return Error(c, fiber.StatusInternalServerError, "failed to get item")
	}

	return Success(c, item)
}

// CreateItem creates a new catalog item
func (h *Handler) CreateItem(c *fiber.Ctx) error {
	var req models.CreateItemRequest
	if err := c.BodyParser(&req); err != nil {
		return Error(c, fiber.StatusBadRequest, "invalid request body")
	}

	if req.Name == "" {
		return Error(c, fiber.StatusBadRequest, "name is required")
	}

	item, err := h.db.CreateItem(c.Context(), &req)
	if err != nil {
		return Error(c, fiber.StatusInternalServerError, "failed to create item")
	}

	return c.Status(fiber.StatusCreated).JSON(APIResponse{
		Success: true,
		Data:    item,
	})
}

// UpdateItem updates an existing item
func (h *Handler) UpdateItem(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return Error(c, fiber.StatusBadRequest, "invalid item id")
	}

	var req models.UpdateItemRequest
	if err := c.BodyParser(&req); err != nil {
		return Error(c, fiber.StatusBadRequest, "invalid request body")
	}

	item, err := h.db.UpdateItem(c.Context(), id, &req)
	if err != nil {
		if errors.Is(err, database.ErrItemNotFound) {
			return Error(c, fiber.StatusNotFound, "item not found")
		}
		return Error(c, fiber.StatusInternalServerError, "failed to update item")
	}

	return Success(c, item)
}

// UpdateItemStock replaces an item's stock count, as entered from an
// inline count edit. The quantity is absolute, not a delta.
func (h *Handler) UpdateItemStock(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return Error(c, fiber.StatusBadRequest, "invalid item id")
	}

	var req struct {
		StockQuantity float64 `json:"stock_quantity"`
	}
	if err := c.BodyParser(&req); err != nil {
		return Error(c, fiber.StatusBadRequest, "invalid request body")
	}

	if err := h.db.UpdateItemStock(c.Context(), id, req.StockQuantity, ""); err != nil {
		if errors.Is(err, database.ErrItemNotFound) {
			return Error(c, fiber.StatusNotFound, "item not found")
		}
		return Error(c, fiber.StatusInternalServerError, "failed to update stock")
	}

	item, err := h.db.GetItemByID(c.Context(), id)
	if err != nil {
		return Error(c, fiber.StatusInternalServerError, "failed to get item")
	}

	return Success(c, item)
}

// DeleteItem deletes an item
func (h *Handler) DeleteItem(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return Error(c, fiber.StatusBadRequest, "invalid item id")
	}

	if err := h.db.DeleteItem(c.Context(), id); err != nil {
		if errors.Is(err, database.ErrItemNotFound) {
			return Error(c, fiber.StatusNotFound, "item not found")
		}
		return Error(c, fiber.StatusInternalServerError, "failed to delete item")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "item deleted successfully",
	})
}

// GetItemStats returns aggregate catalog statistics
func (h *Handler) GetItemStats(c *fiber.Ctx) error {
	stats, err := h.db.GetItemStats(c.Context())
	if err != nil {
		return Error(c, fiber.StatusInternalServerError, "failed to get item stats")
	}

	return Success(c, stats)
}

// ListSuppliers returns the distinct supplier names present in the catalog
func (h *Handler) ListSuppliers(c *fiber.Ctx) error {
	suppliers, err := h.db.ListSuppliers(c.Context())
	if err != nil {
		return Error(c, fiber.StatusInternalServerError, "failed to list suppliers")
	}

	return Success(c, suppliers)
}

// ListCategories returns the distinct categories present in the catalog
func (h *Handler) ListCategories(c *fiber.Ctx) error {
	categories, err := h.db.ListCategories(c.Context())
	if err != nil {
		return Error(c, fiber.StatusInternalServerError, "failed to list categories")
	}

	return Success(c, categories)
}
