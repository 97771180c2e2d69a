package handlers

import (
	"bytes"
	"errors"
	"io"
	"log"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/edenivgi/bar-stock/internal/database"
	"github.com/edenivgi/bar-stock/internal/models"
	"github.com/edenivgi/bar-stock/internal/services"
)

const maxSheetSize = 10 * 1024 * 1024

func isValidSheetType(contentType string) bool {
	switch contentType {
	case "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		"application/vnd.ms-excel",
		"application/octet-stream":
		return true
	}
	return false
}

// PreviewImport handles a count sheet upload: it decodes the workbook,
// extracts product rows, runs a dry-run match against the catalog and
// returns the rows together with the match report. No stock is changed.
// POST /api/imports/preview
func (h *Handler) PreviewImport(c *fiber.Ctx) error {
	file, err := c.FormFile("sheet")
	if err != nil {
		return Error(c, fiber.StatusBadRequest, "sheet file is required")
	}

	contentType := file.Header.Get("Content-Type")
	if !isValidSheetType(contentType) {
		return Error(c, fiber.StatusBadRequest, "invalid file type. Supported: XLSX")
	}

	if file.Size > maxSheetSize {
		return Error(c, fiber.StatusBadRequest, "file too large. Maximum size is 10MB")
	}

	src, err := file.Open()
	if err != nil {
		return Error(c, fiber.StatusInternalServerError, "failed to read file")
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return Error(c, fiber.StatusInternalServerError, "failed to read file")
	}

	sheet, err := services.DecodeWorkbook(data)
	if err != nil {
		return Error(c, fiber.StatusBadRequest, "failed to decode workbook")
	}

	rows, err := h.extractor.Extract(sheet)
	if err != nil {
		if errors.Is(err, services.ErrHeaderNotFound) {
			return Error(c, fiber.StatusUnprocessableEntity, "no header row found in sheet")
		}
		return Error(c, fiber.StatusUnprocessableEntity, "failed to extract rows from sheet")
	}

	catalog, err := h.db.AllItems(c.Context())
	if err != nil {
		return Error(c, fiber.StatusInternalServerError, "failed to load catalog")
	}

	report, err := h.matcher.Match(rows, catalog)
	if err != nil {
		if errors.Is(err, services.ErrNoValidRows) {
			return Error(c, fiber.StatusUnprocessableEntity, "no product rows found in sheet")
		}
		return Error(c, fiber.StatusInternalServerError, "failed to match rows")
	}

	// Archive the original sheet when an object store is configured.
	// Archival failure does not block the preview.
	var objectKey string
	if h.archive != nil {
		key, err := h.archive.Store(c.Context(), file.Filename, bytes.NewReader(data), file.Size, contentType)
		if err != nil {
			log.Printf("Warning: failed to archive sheet %s: %v", file.Filename, err)
		} else {
			objectKey = key
		}
	}

	imp, err := h.db.CreateStockImport(c.Context(), &models.StockImport{
		Filename:    file.Filename,
		ObjectKey:   objectKey,
		TotalRows:   report.Summary.TotalRows,
		MatchedRows: report.Summary.MatchedRows,
	})
	if err != nil {
		return Error(c, fiber.StatusInternalServerError, "failed to record import")
	}

	return Success(c, models.ImportPreviewResponse{
		ImportID: imp.ID,
		Filename: imp.Filename,
		Rows:     rows,
		Report:   *report,
	})
}

// ApplyImport writes the confirmed rows' quantities into the catalog.
// Rows are the ones echoed back by the preview, possibly edited by the
// operator. Matching is re-run against the current catalog snapshot.
// POST /api/imports/apply
func (h *Handler) ApplyImport(c *fiber.Ctx) error {
	var req models.ImportApplyRequest
	if err := c.BodyParser(&req); err != nil {
		return Error(c, fiber.StatusBadRequest, "invalid request body")
	}

	if len(req.Rows) == 0 {
		return Error(c, fiber.StatusBadRequest, "rows are required")
	}

	catalog, err := h.db.AllItems(c.Context())
	if err != nil {
		return Error(c, fiber.StatusInternalServerError, "failed to load catalog")
	}

	applied, err := h.matcher.Apply(c.Context(), req.Rows, catalog, h.db)
	if err != nil {
		var applyErr *services.ImportApplyError
		if errors.As(err, &applyErr) {
			// Some updates landed before the failure. Report what was
			// applied so the operator can retry the remainder.
			return c.Status(fiber.StatusInternalServerError).JSON(APIResponse{
				Success: false,
				Error:   "import partially applied",
				Data: fiber.Map{
					"applied": applyErr.Applied,
				},
			})
		}
		return Error(c, fiber.StatusInternalServerError, "failed to apply import")
	}

	if req.ImportID > 0 {
		if err := h.db.MarkStockImportApplied(c.Context(), req.ImportID); err != nil {
			log.Printf("Warning: failed to mark import %d applied: %v", req.ImportID, err)
		}
	}

	return Success(c, fiber.Map{
		"applied": applied,
	})
}

// ListImports returns recent import audit records
func (h *Handler) ListImports(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 20)
	if limit < 1 || limit > 100 {
		limit = 20
	}

	imports, err := h.db.ListStockImports(c.Context(), limit)
	if err != nil {
		return Error(c, fiber.StatusInternalServerError, "failed to list imports")
	}

	return Success(c, imports)
}

// GetImportSheet returns a presigned download URL for an archived sheet
func (h *Handler) GetImportSheet(c *fiber.Ctx) error {
	if h.archive == nil {
		return Error(c, fiber.StatusNotFound, "sheet archive is not configured")
	}

	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return Error(c, fiber.StatusBadRequest, "invalid import id")
	}

	imp, err := h.db.GetStockImport(c.Context(), id)
	if err != nil {
		if errors.Is(err, database.ErrImportNotFound) {
			return Error(c, fiber.StatusNotFound, "import not found")
		}
		return Error(c, fiber.StatusInternalServerError, "failed to get import")
	}

	if strings.TrimSpace(imp.ObjectKey) == "" {
		return Error(c, fiber.StatusNotFound, "no archived sheet for this import")
	}

	url, err := h.archive.PresignedURL(c.Context(), imp.ObjectKey, services.SheetURLExpiry)
	if err != nil {
		return Error(c, fiber.StatusInternalServerError, "failed to generate download url")
	}

	return Success(c, fiber.Map{
		"url": url,
	})
}
