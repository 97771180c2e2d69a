package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/edenivgi/bar-stock/internal/models"
)

// barBookStorageKey is the fixed key the bar book document lives
// under in the durable state store.
const barBookStorageKey = "bar_book"

// BarBookService stores the bar book (shift checklists, daily tasks,
// stock table) as one JSON document. Content strings are opaque to the
// server; last write wins.
type BarBookService struct {
	store StateStore
}

// NewBarBookService creates a bar book service over the given store.
func NewBarBookService(store StateStore) *BarBookService {
	return &BarBookService{store: store}
}

// GetContent reads the bar book document, returning the empty
// structure when nothing was saved yet.
func (s *BarBookService) GetContent(ctx context.Context) (models.BarBookContent, error) {
	empty := models.EmptyBarBookContent()

	raw, err := s.store.Load(ctx, barBookStorageKey)
	if err != nil {
		return empty, fmt.Errorf("failed to load bar book: %w", err)
	}
	if len(raw) == 0 {
		return empty, nil
	}

	var content models.BarBookContent
	if err := json.Unmarshal(raw, &content); err != nil {
		return empty, fmt.Errorf("failed to decode bar book: %w", err)
	}
	return content, nil
}

// SaveContent replaces the whole bar book document.
func (s *BarBookService) SaveContent(ctx context.Context, content models.BarBookContent) error {
	raw, err := json.Marshal(content)
	if err != nil {
		return fmt.Errorf("failed to encode bar book: %w", err)
	}
	if err := s.store.Save(ctx, barBookStorageKey, raw); err != nil {
		return fmt.Errorf("failed to save bar book: %w", err)
	}
	return nil
}

// Clear resets the bar book to the empty structure and returns it.
func (s *BarBookService) Clear(ctx context.Context) (models.BarBookContent, error) {
	empty := models.EmptyBarBookContent()
	if err := s.SaveContent(ctx, empty); err != nil {
		return empty, err
	}
	return empty, nil
}
