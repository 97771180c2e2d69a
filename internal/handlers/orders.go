package handlers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/edenivgi/bar-stock/internal/database"
	"github.com/edenivgi/bar-stock/internal/models"
	"github.com/edenivgi/bar-stock/internal/services"
)

// ListOrders returns a paginated list of stock orders
func (h *Handler) ListOrders(c *fiber.Ctx) error {
	params := &models.OrderListParams{
		Limit:    c.QueryInt("limit", 50),
		Offset:   c.QueryInt("offset", 0),
		Status:   c.Query("status"),
		Supplier: c.Query("supplier"),
	}

	if params.Limit < 1 || params.Limit > 100 {
		params.Limit = 50
	}
	if params.Offset < 0 {
		params.Offset = 0
	}

	orders, total, err := h.db.ListOrders(c.Context(), params)
	if err != nil {
		return Error(c, fiber.StatusInternalServerError, "failed to list orders")
	}

	return SuccessWithMeta(c, orders, total, params.Limit, params.Offset)
}

// GetActiveOrders returns orders that are still pending or approved
func (h *Handler) GetActiveOrders(c *fiber.Ctx) error {
	orders, err := h.db.GetActiveOrders(c.Context())
	if err != nil {
		return Error(c, fiber.StatusInternalServerError, "failed to get active orders")
	}

	return Success(c, orders)
}

// GetOrder returns a single order by ID
func (h *Handler) GetOrder(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return Error(c, fiber.StatusBadRequest, "invalid order id")
	}

	order, err := h.db.GetOrderByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, database.ErrOrderNotFound) {
			return Error(c, fiber.StatusNotFound, "order not found")
		}
		return Error(c, fiber.StatusInternalServerError, "failed to get order")
	}

	return Success(c, order)
}

// UpdateOrderStatus moves an order through its lifecycle
func (h *Handler) UpdateOrderStatus(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return Error(c, fiber.StatusBadRequest, "invalid order id")
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := c.BodyParser(&req); err != nil {
		return Error(c, fiber.StatusBadRequest, "invalid request body")
	}

	switch req.Status {
	case models.OrderStatusPending, models.OrderStatusApproved,
		models.OrderStatusDelivered, models.OrderStatusCancelled:
	default:
		return Error(c, fiber.StatusBadRequest, "invalid status")
	}

	order, err := h.db.UpdateOrderStatus(c.Context(), id, req.Status)
	if err != nil {
		if errors.Is(err, database.ErrOrderNotFound) {
			return Error(c, fiber.StatusNotFound, "order not found")
		}
		return Error(c, fiber.StatusInternalServerError, "failed to update order status")
	}

	return Success(c, order)
}

// DeleteOrder deletes an order
func (h *Handler) DeleteOrder(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return Error(c, fiber.StatusBadRequest, "invalid order id")
	}

	if err := h.db.DeleteOrder(c.Context(), id); err != nil {
		if errors.Is(err, database.ErrOrderNotFound) {
			return Error(c, fiber.StatusNotFound, "order not found")
		}
		return Error(c, fiber.StatusInternalServerError, "failed to delete order")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "order deleted successfully",
	})
}

// reorderBucket is one supplier bucket of the reorder preview.
type reorderBucket struct {
	Supplier string             `json:"supplier"`
	Items    []models.OrderLine `json:"items"`
	Total    float64            `json:"total"`
}

// GetReorderPreview computes the shortfall for every catalog item and
// returns the resulting order lines grouped by supplier. Nothing is
// persisted; the preview is recomputed from the live catalog on every
// call.
// GET /api/reorder
func (h *Handler) GetReorderPreview(c *fiber.Ctx) error {
	catalog, err := h.db.AllItems(c.Context())
	if err != nil {
		return Error(c, fiber.StatusInternalServerError, "failed to load catalog")
	}

	lines := services.BuildReorderLines(catalog)
	groups := services.GroupBySupplier(lines)

	buckets := make([]reorderBucket, 0, len(groups))
	for _, key := range services.BucketKeys(groups) {
		bucket := reorderBucket{Supplier: key, Items: groups[key]}
		for _, line := range bucket.Items {
			bucket.Total += line.Subtotal
		}
		buckets = append(buckets, bucket)
	}

	return Success(c, fiber.Map{
		"buckets":     buckets,
		"total_lines": len(lines),
	})
}

// CreateReorderRequest selects which supplier buckets of the reorder
// preview to turn into orders.
type CreateReorderRequest struct {
	Suppliers []string `json:"suppliers"`
	Combined  bool     `json:"combined"`
}

// CreateReorderOrders turns selected supplier buckets of the live
// reorder calculation into pending stock orders, either one per
// supplier or a single combined order.
// POST /api/reorder/orders
func (h *Handler) CreateReorderOrders(c *fiber.Ctx) error {
	var req CreateReorderRequest
	if err := c.BodyParser(&req); err != nil {
		return Error(c, fiber.StatusBadRequest, "invalid request body")
	}

	catalog, err := h.db.AllItems(c.Context())
	if err != nil {
		return Error(c, fiber.StatusInternalServerError, "failed to load catalog")
	}

	lines := services.BuildReorderLines(catalog)
	groups := services.GroupBySupplier(lines)

	selected, err := services.SelectBuckets(groups, req.Suppliers)
	if err != nil {
		if errors.Is(err, services.ErrNoSupplierSelected) {
			return Error(c, fiber.StatusBadRequest, "no supplier selected")
		}
		return Error(c, fiber.StatusInternalServerError, "failed to select suppliers")
	}

	byID := make(map[int]*models.Item, len(catalog))
	for i := range catalog {
		byID[catalog[i].ID] = &catalog[i]
	}
	lookup := func(itemID int) (*models.Item, bool) {
		item, ok := byID[itemID]
		return item, ok
	}

	drafts := services.ToDraftOrders(selected, req.Combined, lookup)

	created := make([]*models.Order, 0, len(drafts))
	for i := range drafts {
		order, err := h.db.CreateOrder(c.Context(), &drafts[i])
		if err != nil {
			return Error(c, fiber.StatusInternalServerError, "failed to create order")
		}
		created = append(created, order)
	}

	return c.Status(fiber.StatusCreated).JSON(APIResponse{
		Success: true,
		Data:    created,
	})
}
