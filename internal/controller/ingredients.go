package controller

import (
	"context"
	"strings"
	"sync"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"shelflyfe/internal/models"
)

// ErrInvalidDraft is returned when a submission fails local validation.
// Field-level messages are available from FieldErrors; no remote call was
// made.
var ErrInvalidDraft = errors.New("draft failed validation")

// Store is the remote ingredient collection the controller synchronizes
// with. Update and delete are keyed by SKU.
type Store interface {
	ListIngredients(ctx context.Context) ([]models.Ingredient, error)
	AddIngredient(ctx context.Context, ing models.Ingredient) error
	UpdateIngredient(ctx context.Context, ing models.Ingredient) error
	DeleteIngredient(ctx context.Context, sku string) error
}

// listKey tags load requests in the stale-response guard; record mutations
// are tagged by SKU.
const listKey = "\x00list"

// IngredientController owns the canonical in-memory ingredient collection
// and mediates all mutations through the remote store. Local state changes
// only after the store confirms an operation; a failed call leaves the
// collection exactly as it was. The rendering layer reads derived state
// through the accessors and never mutates it directly.
type IngredientController struct {
	mu    sync.Mutex
	store Store
	view  *ListView[models.Ingredient]

	selectedID string
	draft      models.IngredientDraft
	snapshot   models.IngredientDraft
	fieldErrs  models.FieldErrors

	loading bool
	loaded  bool
	errMsg  string

	// Monotonic sequence per record key. A response is applied only when
	// its sequence is still the latest issued for that key, so a stale
	// response can never overwrite newer state.
	seq map[string]uint64
}

// NewIngredientController creates a controller backed by the given store.
func NewIngredientController(store Store) *IngredientController {
	return &IngredientController{
		store:    store,
		view:     NewListView(matchIngredient, ingredientComparers),
		draft:    models.EmptyDraft(),
		snapshot: models.EmptyDraft(),
		seq:      make(map[string]uint64),
	}
}

// matchIngredient is a case-insensitive substring match against name OR SKU.
func matchIngredient(ing models.Ingredient, term string) bool {
	term = strings.ToLower(term)
	return strings.Contains(strings.ToLower(ing.Name), term) ||
		strings.Contains(strings.ToLower(ing.SKU), term)
}

var ingredientComparers = map[string]Comparator[models.Ingredient]{
	"name":       func(a, b models.Ingredient) int { return strings.Compare(a.Name, b.Name) },
	"sku":        func(a, b models.Ingredient) int { return strings.Compare(a.SKU, b.SKU) },
	"stock":      func(a, b models.Ingredient) int { return a.Stock - b.Stock },
	"price":      func(a, b models.Ingredient) int { return compareFloat(a.Price, b.Price) },
	"threshold":  func(a, b models.Ingredient) int { return a.Threshold - b.Threshold },
	"orders":     func(a, b models.Ingredient) int { return a.Orders - b.Orders },
	"expiryDate": func(a, b models.Ingredient) int { return strings.Compare(a.ExpiryDate, b.ExpiryDate) },
}

func compareFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// Load fetches the full collection from the store. On success it replaces
// the local collection and clears any error state; on failure it records an
// error and leaves the previous collection untouched.
func (c *IngredientController) Load(ctx context.Context) error {
	seq := c.begin(listKey)
	c.setLoading(true)
	defer c.setLoading(false)

	items, err := c.store.ListIngredients(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.seq[listKey] != seq {
		zap.S().Debugw("discarding stale ingredient list response", "seq", seq)
		return nil
	}
	c.loaded = true
	if err != nil {
		c.errMsg = "Failed to fetch ingredients: " + err.Error()
		zap.S().Warnw("ingredient load failed", "error", err)
		return err
	}
	c.view.Reset(items)
	c.errMsg = ""
	return nil
}

// EnsureLoaded fetches the collection once; later calls are no-ops. Use
// Load for an explicit reload.
func (c *IngredientController) EnsureLoaded(ctx context.Context) error {
	c.mu.Lock()
	loaded := c.loaded
	c.mu.Unlock()
	if loaded {
		return nil
	}
	return c.Load(ctx)
}

// SetSearchTerm updates the active filter. Purely local.
func (c *IngredientController) SetSearchTerm(term string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.view.SetSearchTerm(term)
}

// SetSort selects or toggles the sort column.
func (c *IngredientController) SetSort(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.view.SetSort(key)
}

// SetPage moves to page n; out-of-range values are ignored.
func (c *IngredientController) SetPage(n int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.view.SetPage(n)
}

// Add validates the working draft and, on pass, creates the record in the
// store. The record joins the local collection only after the store
// confirms, with its id set to the SKU. Validation failure returns
// ErrInvalidDraft without any network call.
func (c *IngredientController) Add(ctx context.Context) error {
	c.mu.Lock()
	draft := c.draft
	errs := draft.Validate()
	c.fieldErrs = errs
	c.mu.Unlock()
	if len(errs) > 0 {
		return ErrInvalidDraft
	}

	ing := draft.Ingredient()
	seq := c.begin(ing.SKU)
	err := c.store.AddIngredient(ctx, ing)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.seq[ing.SKU] != seq {
		zap.S().Debugw("discarding stale add response", "sku", ing.SKU)
		return nil
	}
	if err != nil {
		c.errMsg = "Failed to add ingredient: " + err.Error()
		zap.S().Warnw("ingredient add failed", "sku", ing.SKU, "error", err)
		return err
	}
	c.view.Insert(ing)
	c.errMsg = ""
	c.draft = models.EmptyDraft()
	c.snapshot = c.draft
	return nil
}

// Update validates the working draft and replaces the selected record in
// the store, keyed by SKU. On success the matching local record is swapped
// in place and stays selected, so the form keeps showing the saved values.
func (c *IngredientController) Update(ctx context.Context) error {
	c.mu.Lock()
	if c.selectedID == "" {
		c.mu.Unlock()
		return errors.New("no record selected")
	}
	id := c.selectedID
	draft := c.draft
	errs := draft.Validate()
	c.fieldErrs = errs
	c.mu.Unlock()
	if len(errs) > 0 {
		return ErrInvalidDraft
	}

	ing := draft.Ingredient()
	ing.ID = id
	seq := c.begin(ing.SKU)
	err := c.store.UpdateIngredient(ctx, ing)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.seq[ing.SKU] != seq {
		zap.S().Debugw("discarding stale update response", "sku", ing.SKU)
		return nil
	}
	if err != nil {
		c.errMsg = "Failed to update ingredient: " + err.Error()
		zap.S().Warnw("ingredient update failed", "sku", ing.SKU, "error", err)
		return err
	}
	c.view.Replace(func(r models.Ingredient) bool { return r.ID == id }, ing)
	c.errMsg = ""
	c.snapshot = draft
	return nil
}

// Remove deletes the record with the given id from the store and, once
// confirmed, from the local collection. A selection pointing at the removed
// record is cleared.
func (c *IngredientController) Remove(ctx context.Context, id string) error {
	seq := c.begin(id)
	err := c.store.DeleteIngredient(ctx, id)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.seq[id] != seq {
		zap.S().Debugw("discarding stale delete response", "sku", id)
		return nil
	}
	if err != nil {
		c.errMsg = "Failed to delete ingredient: " + err.Error()
		zap.S().Warnw("ingredient delete failed", "sku", id, "error", err)
		return err
	}
	c.view.Remove(func(r models.Ingredient) bool { return r.ID == id })
	c.errMsg = ""
	if c.selectedID == id {
		c.clearSelectionLocked()
	}
	return nil
}

// Select loads the record with the given id into the form for editing.
func (c *IngredientController) Select(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, ing := range c.view.Items() {
		if ing.ID == id {
			c.selectedID = id
			c.draft = models.DraftOf(ing)
			c.snapshot = c.draft
			c.fieldErrs = nil
			return true
		}
	}
	return false
}

// ClearSelection cancels an edit: the form reverts to blank defaults and no
// record is selected. The backing collection is untouched.
func (c *IngredientController) ClearSelection() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.clearSelectionLocked()
}

func (c *IngredientController) clearSelectionLocked() {
	c.selectedID = ""
	c.draft = models.EmptyDraft()
	c.snapshot = c.draft
	c.fieldErrs = nil
}

// SetDraft replaces the form's working copy.
func (c *IngredientController) SetDraft(d models.IngredientDraft) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.draft = d
}

// Draft returns the form's working copy.
func (c *IngredientController) Draft() models.IngredientDraft {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.draft
}

// Dirty reports whether the working copy differs from the last-loaded
// snapshot. Update is only meaningful when the form is dirty; a clean form
// would be a no-op round trip.
func (c *IngredientController) Dirty() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.draft != c.snapshot
}

// Selected returns the selected record, if any.
func (c *IngredientController) Selected() (models.Ingredient, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.selectedID == "" {
		return models.Ingredient{}, false
	}
	for _, ing := range c.view.Items() {
		if ing.ID == c.selectedID {
			return ing, true
		}
	}
	return models.Ingredient{}, false
}

// FieldErrors returns the per-field messages from the last validation.
func (c *IngredientController) FieldErrors() models.FieldErrors {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fieldErrs
}

// Visible returns the rows of the current page.
func (c *IngredientController) Visible() []models.Ingredient {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.view.PageItems()
}

// Filtered returns the full filtered, sorted view.
func (c *IngredientController) Filtered() []models.Ingredient {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.view.All()
}

// Records returns the canonical collection.
func (c *IngredientController) Records() []models.Ingredient {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.view.Items()
}

// Page returns the current page number.
func (c *IngredientController) Page() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.view.Page()
}

// TotalPages returns the page count for the current filter.
func (c *IngredientController) TotalPages() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.view.TotalPages()
}

// Sort returns the active sort key and direction.
func (c *IngredientController) Sort() (string, SortDirection) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.view.Sort()
}

// Loading reports whether a load is in flight.
func (c *IngredientController) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}

// Err returns the last surfaced error message, empty when the last
// operation succeeded.
func (c *IngredientController) Err() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.errMsg
}

func (c *IngredientController) setLoading(v bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.loading = v
}

func (c *IngredientController) begin(key string) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq[key]++
	return c.seq[key]
}
