package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/edenivgi/bar-stock/internal/models"
)

// GetBarBook returns the bar book document
func (h *Handler) GetBarBook(c *fiber.Ctx) error {
	content, err := h.barBook.GetContent(c.Context())
	if err != nil {
		return Error(c, fiber.StatusInternalServerError, "failed to load bar book")
	}

	return Success(c, content)
}

// SaveBarBook replaces the bar book document. Last write wins.
func (h *Handler) SaveBarBook(c *fiber.Ctx) error {
	var content models.BarBookContent
	if err := c.BodyParser(&content); err != nil {
		return Error(c, fiber.StatusBadRequest, "invalid request body")
	}

	if err := h.barBook.SaveContent(c.Context(), content); err != nil {
		return Error(c, fiber.StatusInternalServerError, "failed to save bar book")
	}

	return Success(c, content)
}

// ClearBarBook resets the bar book to its empty structure
func (h *Handler) ClearBarBook(c *fiber.Ctx) error {
	content, err := h.barBook.Clear(c.Context())
	if err != nil {
		return Error(c, fiber.StatusInternalServerError, "failed to clear bar book")
	}

	return Success(c, content)
}
