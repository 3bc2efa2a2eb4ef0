package controller

import (
	"context"
	"fmt"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shelflyfe/internal/models"
)

// fakeStore records calls and serves scripted responses.
type fakeStore struct {
	list     []models.Ingredient
	listErr  error
	addErr   error
	upErr    error
	delErr   error
	listHits int
	added    []models.Ingredient
	updated  []models.Ingredient
	deleted  []string
}

func (s *fakeStore) ListIngredients(ctx context.Context) ([]models.Ingredient, error) {
	s.listHits++
	return s.list, s.listErr
}

func (s *fakeStore) AddIngredient(ctx context.Context, ing models.Ingredient) error {
	if s.addErr == nil {
		s.added = append(s.added, ing)
	}
	return s.addErr
}

func (s *fakeStore) UpdateIngredient(ctx context.Context, ing models.Ingredient) error {
	if s.upErr == nil {
		s.updated = append(s.updated, ing)
	}
	return s.upErr
}

func (s *fakeStore) DeleteIngredient(ctx context.Context, sku string) error {
	if s.delErr == nil {
		s.deleted = append(s.deleted, sku)
	}
	return s.delErr
}

func seedIngredients(n int) []models.Ingredient {
	out := make([]models.Ingredient, n)
	for i := range out {
		out[i] = models.Ingredient{
			ID:         fmt.Sprintf("sku-%03d", i),
			SKU:        fmt.Sprintf("sku-%03d", i),
			Name:       fmt.Sprintf("Ingredient %03d", i),
			Stock:      i + 1,
			Price:      float64(i),
			Unit:       models.UnitIndividual,
			Threshold:  10,
			ExpiryDate: "2026-09-04",
		}
	}
	return out
}

func loadedController(t *testing.T, store *fakeStore) *IngredientController {
	t.Helper()
	c := NewIngredientController(store)
	require.NoError(t, c.Load(context.Background()))
	return c
}

func TestIngredientLoad(t *testing.T) {
	store := &fakeStore{list: seedIngredients(3)}
	c := loadedController(t, store)

	assert.Len(t, c.Records(), 3)
	assert.Empty(t, c.Err())
	assert.False(t, c.Loading())
}

func TestIngredientLoadFailureKeepsCollection(t *testing.T) {
	store := &fakeStore{list: seedIngredients(3)}
	c := loadedController(t, store)

	store.listErr = errors.New("boom")
	err := c.Load(context.Background())
	require.Error(t, err)
	assert.Len(t, c.Records(), 3, "failed reload leaves the collection untouched")
	assert.Equal(t, "Failed to fetch ingredients: boom", c.Err())

	// a later successful load clears the error
	store.listErr = nil
	require.NoError(t, c.Load(context.Background()))
	assert.Empty(t, c.Err())
}

func TestIngredientEnsureLoadedFetchesOnce(t *testing.T) {
	store := &fakeStore{list: seedIngredients(1)}
	c := NewIngredientController(store)

	require.NoError(t, c.EnsureLoaded(context.Background()))
	require.NoError(t, c.EnsureLoaded(context.Background()))
	assert.Equal(t, 1, store.listHits)
}

func TestIngredientFilterSortPaginate(t *testing.T) {
	store := &fakeStore{list: seedIngredients(60)}
	c := loadedController(t, store)

	assert.Equal(t, 3, c.TotalPages())
	c.SetPage(2)
	assert.Equal(t, 2, c.Page())

	c.SetSearchTerm("SKU-00")
	assert.Equal(t, 1, c.Page(), "filter change returns to page 1")
	assert.Len(t, c.Filtered(), 10)

	c.SetSearchTerm("")
	c.SetSort("stock")
	c.SetSort("stock")
	assert.Equal(t, 60, c.Visible()[0].Stock, "descending stock puts the largest first")
}

func TestIngredientAdd(t *testing.T) {
	store := &fakeStore{}
	c := loadedController(t, store)

	c.SetDraft(models.IngredientDraft{
		Name: "Saffron", SKU: "saffron-009", Stock: "5",
		Unit: models.UnitIndividual, ExpiryDate: "2026-12-01",
	})
	require.NoError(t, c.Add(context.Background()))

	require.Len(t, store.added, 1)
	assert.Equal(t, "saffron-009", store.added[0].ID, "id adopts the SKU")
	require.Len(t, c.Records(), 1)
	assert.Equal(t, models.EmptyDraft(), c.Draft(), "form resets after a confirmed add")
}

func TestIngredientAddInvalidDraftSkipsStore(t *testing.T) {
	store := &fakeStore{}
	c := NewIngredientController(store)

	c.SetDraft(models.IngredientDraft{Name: "No SKU"})
	err := c.Add(context.Background())
	assert.ErrorIs(t, err, ErrInvalidDraft)
	assert.Empty(t, store.added, "validation failure must not reach the store")
	assert.True(t, c.FieldErrors().Has("sku"))
}

func TestIngredientAddStoreFailure(t *testing.T) {
	store := &fakeStore{addErr: errors.New("duplicate")}
	c := loadedController(t, store)

	c.SetDraft(models.IngredientDraft{
		Name: "Dup", SKU: "dup-001", Stock: "1",
		Unit: models.UnitIndividual, ExpiryDate: "2026-12-01",
	})
	err := c.Add(context.Background())
	require.Error(t, err)
	assert.Empty(t, c.Records(), "unconfirmed add never joins the collection")
	assert.Equal(t, "Failed to add ingredient: duplicate", c.Err())
	dr := c.Draft()
	assert.Equal(t, "Dup", dr.Name, "draft survives for retry")
}

func TestIngredientUpdate(t *testing.T) {
	store := &fakeStore{list: seedIngredients(2)}
	c := loadedController(t, store)

	require.True(t, c.Select("sku-001"))
	draft := c.Draft()
	draft.Stock = "99"
	c.SetDraft(draft)
	assert.True(t, c.Dirty())

	require.NoError(t, c.Update(context.Background()))

	require.Len(t, store.updated, 1)
	assert.Equal(t, 99, store.updated[0].Stock)

	sel, ok := c.Selected()
	require.True(t, ok, "record stays selected after update")
	assert.Equal(t, 99, sel.Stock)
	assert.False(t, c.Dirty(), "snapshot advances to the saved values")
}

func TestIngredientUpdateWithoutSelection(t *testing.T) {
	c := NewIngredientController(&fakeStore{})
	assert.Error(t, c.Update(context.Background()))
}

func TestIngredientUpdateFailureThenRetry(t *testing.T) {
	store := &fakeStore{list: seedIngredients(1)}
	c := loadedController(t, store)

	require.True(t, c.Select("sku-000"))
	draft := c.Draft()
	draft.Stock = "77"
	c.SetDraft(draft)

	store.upErr = errors.New("offline")
	require.Error(t, c.Update(context.Background()))
	sel, _ := c.Selected()
	assert.Equal(t, 1, sel.Stock, "record keeps its old values after a failed update")
	assert.True(t, c.Dirty(), "edits are preserved for retry")

	store.upErr = nil
	require.NoError(t, c.Update(context.Background()))
	sel, _ = c.Selected()
	assert.Equal(t, 77, sel.Stock)
	assert.Empty(t, c.Err())
}

func TestIngredientRemove(t *testing.T) {
	store := &fakeStore{list: seedIngredients(2)}
	c := loadedController(t, store)
	require.True(t, c.Select("sku-000"))

	require.NoError(t, c.Remove(context.Background(), "sku-000"))

	assert.Equal(t, []string{"sku-000"}, store.deleted)
	assert.Len(t, c.Records(), 1)
	_, ok := c.Selected()
	assert.False(t, ok, "selection pointing at the removed record clears")
	assert.Equal(t, models.EmptyDraft(), c.Draft())
}

func TestIngredientRemoveFailure(t *testing.T) {
	store := &fakeStore{list: seedIngredients(2), delErr: errors.New("denied")}
	c := loadedController(t, store)

	require.Error(t, c.Remove(context.Background(), "sku-000"))
	assert.Len(t, c.Records(), 2)
	assert.Equal(t, "Failed to delete ingredient: denied", c.Err())
}

func TestIngredientClearSelection(t *testing.T) {
	store := &fakeStore{list: seedIngredients(1)}
	c := loadedController(t, store)

	require.True(t, c.Select("sku-000"))
	draft := c.Draft()
	draft.Name = "Edited"
	c.SetDraft(draft)

	c.ClearSelection()
	_, ok := c.Selected()
	assert.False(t, ok)
	assert.Equal(t, models.EmptyDraft(), c.Draft(), "cancel discards edits")
	assert.Equal(t, "Ingredient 000", c.Records()[0].Name, "collection untouched")
}

func TestIngredientSelectUnknownID(t *testing.T) {
	store := &fakeStore{list: seedIngredients(1)}
	c := loadedController(t, store)
	assert.False(t, c.Select("missing"))
}
