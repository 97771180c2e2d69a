package handlers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/edenivgi/bar-stock/internal/database"
	"github.com/edenivgi/bar-stock/internal/services"
)

// GetCart returns the current cart contents
func (h *Handler) GetCart(c *fiber.Ctx) error {
	cart, err := h.cart.Load(c.Context())
	if err != nil {
		return Error(c, fiber.StatusInternalServerError, "failed to load cart")
	}

	return Success(c, cart)
}

// AddToCart puts a catalog item in the cart, incrementing the quantity
// when the item is already there
func (h *Handler) AddToCart(c *fiber.Ctx) error {
	var req struct {
		ItemID   int `json:"item_id"`
		Quantity int `json:"quantity"`
	}
	if err := c.BodyParser(&req); err != nil {
		return Error(c, fiber.StatusBadRequest, "invalid request body")
	}

	item, err := h.db.GetItemByID(c.Context(), req.ItemID)
	if err != nil {
		if errors.Is(err, database.ErrItemNotFound) {
			return Error(c, fiber.StatusNotFound, "item not found")
		}
		return Error(c, fiber.StatusInternalServerError, "failed to get item")
	}

	cart, err := h.cart.Add(c.Context(), item, req.Quantity)
	if err != nil {
		return Error(c, fiber.StatusInternalServerError, "failed to update cart")
	}

	return Success(c, cart)
}

// UpdateCartLine sets the quantity of a cart line; zero or less removes it
func (h *Handler) UpdateCartLine(c *fiber.Ctx) error {
	itemID, err := strconv.Atoi(c.Params("itemId"))
	if err != nil {
		return Error(c, fiber.StatusBadRequest, "invalid item id")
	}

	var req struct {
		Quantity int `json:"quantity"`
	}
	if err := c.BodyParser(&req); err != nil {
		return Error(c, fiber.StatusBadRequest, "invalid request body")
	}

	cart, err := h.cart.UpdateQuantity(c.Context(), itemID, req.Quantity)
	if err != nil {
		return Error(c, fiber.StatusInternalServerError, "failed to update cart")
	}

	return Success(c, cart)
}

// RemoveFromCart deletes a cart line
func (h *Handler) RemoveFromCart(c *fiber.Ctx) error {
	itemID, err := strconv.Atoi(c.Params("itemId"))
	if err != nil {
		return Error(c, fiber.StatusBadRequest, "invalid item id")
	}

	cart, err := h.cart.Remove(c.Context(), itemID)
	if err != nil {
		return Error(c, fiber.StatusInternalServerError, "failed to update cart")
	}

	return Success(c, cart)
}

// ClearCart empties the cart
func (h *Handler) ClearCart(c *fiber.Ctx) error {
	if err := h.cart.Clear(c.Context()); err != nil {
		return Error(c, fiber.StatusInternalServerError, "failed to clear cart")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "cart cleared",
	})
}

// CheckoutCart settles the cart into one pending order per supplier.
// On partial failure the response reports how many orders were created
// and which supplier failed; the committed suppliers' lines are already
// removed from the cart, so a retry only re-submits the remainder.
// POST /api/cart/checkout
func (h *Handler) CheckoutCart(c *fiber.Ctx) error {
	created, err := h.cart.Checkout(c.Context(), h.db)
	if err != nil {
		if errors.Is(err, services.ErrEmptyCart) {
			return Error(c, fiber.StatusBadRequest, "cart is empty")
		}
		var partial *services.CheckoutPartialError
		if errors.As(err, &partial) {
			return c.Status(fiber.StatusInternalServerError).JSON(APIResponse{
				Success: false,
				Error:   "checkout partially completed",
				Data: fiber.Map{
					"orders_created":  partial.Created,
					"failed_supplier": partial.Supplier,
				},
			})
		}
		return Error(c, fiber.StatusInternalServerError, "checkout failed")
	}

	return c.Status(fiber.StatusCreated).JSON(APIResponse{
		Success: true,
		Data: fiber.Map{
			"orders_created": created,
		},
	})
}
