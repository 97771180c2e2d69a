package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edenivgi/bar-stock/internal/models"
)

type stockUpdate struct {
	itemID   int
	quantity float64
	category string
}

// fakeStockWriter records updates and can be told to fail on a given
// item id.
type fakeStockWriter struct {
	updates []stockUpdate
	failOn  int
}

func (w *fakeStockWriter) UpdateItemStock(_ context.Context, itemID int, quantity float64, category string) error {
	if w.failOn != 0 && itemID == w.failOn {
		return errors.New("write failed")
	}
	w.updates = append(w.updates, stockUpdate{itemID, quantity, category})
	return nil
}

func matcherCatalog() []models.Item {
	return []models.Item{
		{ID: 1, Name: "מרלו רזרבה", Category: "wine"},
		{ID: 2, Name: "ערק עלית", Category: "alcohol"},
		{ID: 3, Name: "סודה", Category: "soft_drink"},
	}
}

func TestMatchReport(t *testing.T) {
	rows := []models.ImportRow{
		{Name: "מרלו רזרבה", Quantity: 3},
		{Name: "  ערק עלית  ", Quantity: 2},
		{Name: "מוצר חדש", Quantity: 5},
		{Name: "מרלו רזרבה", Quantity: 4},
	}

	report, err := NewCatalogMatcher().Match(rows, matcherCatalog())
	require.NoError(t, err)

	assert.Equal(t, 4, report.Summary.TotalRows)
	assert.Equal(t, 3, report.Summary.MatchedRows)
	assert.Equal(t, 2, report.Summary.UniqueMatchedItems)
	assert.Equal(t, 1, report.Summary.UnmatchedRows)

	require.Len(t, report.Unmatched, 1)
	assert.Equal(t, 2, report.Unmatched[0].RowIndex)
	assert.Equal(t, "מוצר חדש", report.Unmatched[0].InputName)
	assert.Equal(t, 5.0, report.Unmatched[0].Quantity)
}

func TestMatchIsReadOnlyAndRepeatable(t *testing.T) {
	rows := []models.ImportRow{{Name: "מרלו רזרבה", Quantity: 3}}
	catalog := matcherCatalog()

	m := NewCatalogMatcher()
	first, err := m.Match(rows, catalog)
	require.NoError(t, err)
	second, err := m.Match(rows, catalog)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestMatchEmptyRows(t *testing.T) {
	_, err := NewCatalogMatcher().Match(nil, matcherCatalog())
	assert.ErrorIs(t, err, ErrNoValidRows)
}

func TestApplyLastRowWins(t *testing.T) {
	rows := []models.ImportRow{
		{Name: "מרלו רזרבה", Quantity: 3, Category: "wine"},
		{Name: "ערק עלית", Quantity: 2, Category: "alcohol"},
		{Name: "מרלו רזרבה", Quantity: 8, Category: "wine"},
		{Name: "מוצר חדש", Quantity: 99},
	}

	writer := &fakeStockWriter{}
	applied, err := NewCatalogMatcher().Apply(context.Background(), rows, matcherCatalog(), writer)
	require.NoError(t, err)

	// One write per matched item, unmatched rows create nothing.
	assert.Equal(t, 2, applied)
	require.Len(t, writer.updates, 2)
	assert.Equal(t, stockUpdate{1, 8, "wine"}, writer.updates[0])
	assert.Equal(t, stockUpdate{2, 2, "alcohol"}, writer.updates[1])
}

func TestApplyPartialFailure(t *testing.T) {
	rows := []models.ImportRow{
		{Name: "מרלו רזרבה", Quantity: 3},
		{Name: "ערק עלית", Quantity: 2},
		{Name: "סודה", Quantity: 12},
	}

	writer := &fakeStockWriter{failOn: 2}
	applied, err := NewCatalogMatcher().Apply(context.Background(), rows, matcherCatalog(), writer)

	assert.Equal(t, 1, applied)
	var applyErr *ImportApplyError
	require.ErrorAs(t, err, &applyErr)
	assert.Equal(t, 1, applyErr.Applied)

	// The write before the failure landed; nothing after it ran.
	require.Len(t, writer.updates, 1)
	assert.Equal(t, 1, writer.updates[0].itemID)
}

func TestApplyIsIdempotent(t *testing.T) {
	rows := []models.ImportRow{{Name: "סודה", Quantity: 12, Category: "soft_drink"}}
	catalog := matcherCatalog()

	writer := &fakeStockWriter{}
	m := NewCatalogMatcher()

	_, err := m.Apply(context.Background(), rows, catalog, writer)
	require.NoError(t, err)
	_, err = m.Apply(context.Background(), rows, catalog, writer)
	require.NoError(t, err)

	// Both passes write the same absolute quantity.
	require.Len(t, writer.updates, 2)
	assert.Equal(t, writer.updates[0], writer.updates[1])
}
