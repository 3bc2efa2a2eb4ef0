package controller

import (
	"context"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"shelflyfe/internal/models"
)

// ErrNothingStaged is returned when Confirm is called on an empty staging
// list; nothing is sent to the store.
var ErrNothingStaged = errors.New("add at least one ingredient before confirming")

// ResupplyStore submits staged supplier/ingredient pairs as one batch.
type ResupplyStore interface {
	Resupply(ctx context.Context, items []models.ResupplyItem) error
}

// ResupplyController owns the staging list of the resupply workflow. Staged
// pairs exist only in the client until Confirm submits the whole list in a
// single request; on failure the list is preserved unmodified so the user
// can retry.
type ResupplyController struct {
	mu    sync.Mutex
	store ResupplyStore
	view  *ListView[models.ResupplyItem]

	selectedID string
	draft      models.ResupplyDraft
	snapshot   models.ResupplyDraft
	fieldErrs  models.FieldErrors
	errMsg     string

	// SKUs already present in the loaded ingredient collection; anything
	// else staged is flagged as a new ingredient for the store.
	knownSKUs map[string]bool

	ids clientIDGen
}

// NewResupplyController creates a controller backed by the given store.
func NewResupplyController(store ResupplyStore) *ResupplyController {
	return &ResupplyController{
		store:     store,
		view:      NewListView(matchResupply, resupplyComparers),
		draft:     models.EmptyResupplyDraft(),
		snapshot:  models.EmptyResupplyDraft(),
		knownSKUs: make(map[string]bool),
	}
}

// matchResupply filters on ingredient name OR supplier OR SKU.
func matchResupply(item models.ResupplyItem, term string) bool {
	term = strings.ToLower(term)
	return strings.Contains(strings.ToLower(item.Name), term) ||
		strings.Contains(strings.ToLower(item.Supplier), term) ||
		strings.Contains(strings.ToLower(item.SKU), term)
}

var resupplyComparers = map[string]Comparator[models.ResupplyItem]{
	"name":     func(a, b models.ResupplyItem) int { return strings.Compare(a.Name, b.Name) },
	"supplier": func(a, b models.ResupplyItem) int { return strings.Compare(a.Supplier, b.Supplier) },
	"sku":      func(a, b models.ResupplyItem) int { return strings.Compare(a.SKU, b.SKU) },
	"stock":    func(a, b models.ResupplyItem) int { return a.Stock - b.Stock },
	"price":    func(a, b models.ResupplyItem) int { return compareFloat(a.Price, b.Price) },
}

// SetKnownSKUs records which SKUs already exist in the ingredient
// collection, so staged pairs can be classified as new or existing.
func (c *ResupplyController) SetKnownSKUs(skus []string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.knownSKUs = make(map[string]bool, len(skus))
	for _, sku := range skus {
		c.knownSKUs[sku] = true
	}
}

// Stage validates the working draft and appends it to the staging list with
// a client-minted id. Purely local; nothing reaches the store until
// Confirm.
func (c *ResupplyController) Stage() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	errs := c.draft.Validate()
	c.fieldErrs = errs
	if len(errs) > 0 {
		return ErrInvalidDraft
	}
	item := c.draft.Item(c.ids.next(), !c.knownSKUs[c.draft.SKU])
	c.view.Insert(item)
	c.draft = models.EmptyResupplyDraft()
	c.snapshot = c.draft
	return nil
}

// UpdateStaged validates the working draft and replaces the selected staged
// pair in place, keeping it selected.
func (c *ResupplyController) UpdateStaged() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.selectedID == "" {
		return errors.New("no staged pair selected")
	}
	errs := c.draft.Validate()
	c.fieldErrs = errs
	if len(errs) > 0 {
		return ErrInvalidDraft
	}
	id := c.selectedID
	item := c.draft.Item(id, !c.knownSKUs[c.draft.SKU])
	c.view.Replace(func(r models.ResupplyItem) bool { return r.ID == id }, item)
	c.snapshot = c.draft
	return nil
}

// RemoveStaged drops a staged pair; a selection pointing at it is cleared.
func (c *ResupplyController) RemoveStaged(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.view.Remove(func(r models.ResupplyItem) bool { return r.ID == id })
	if c.selectedID == id {
		c.clearSelectionLocked()
	}
}

// Confirm submits the whole staging list as one request. On success the
// list and selection clear; on failure nothing is known to have committed
// and the staged drafts are kept as they were.
func (c *ResupplyController) Confirm(ctx context.Context) error {
	c.mu.Lock()
	items := c.view.Items()
	c.mu.Unlock()
	if len(items) == 0 {
		return ErrNothingStaged
	}

	err := c.store.Resupply(ctx, items)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.errMsg = "Failed to confirm order: " + err.Error()
		zap.S().Warnw("resupply confirm failed", "staged", len(items), "error", err)
		return err
	}
	c.view.Reset(nil)
	c.clearSelectionLocked()
	c.errMsg = ""
	return nil
}

// Select loads a staged pair into the form for editing.
func (c *ResupplyController) Select(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, item := range c.view.Items() {
		if item.ID == id {
			c.selectedID = id
			c.draft = models.DraftOfResupply(item)
			c.snapshot = c.draft
			c.fieldErrs = nil
			return true
		}
	}
	return false
}

// ClearSelection resets the form to blank defaults.
func (c *ResupplyController) ClearSelection() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.clearSelectionLocked()
}

func (c *ResupplyController) clearSelectionLocked() {
	c.selectedID = ""
	c.draft = models.EmptyResupplyDraft()
	c.snapshot = c.draft
	c.fieldErrs = nil
}

// SetDraft replaces the form's working copy.
func (c *ResupplyController) SetDraft(d models.ResupplyDraft) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.draft = d
}

// Draft returns the form's working copy.
func (c *ResupplyController) Draft() models.ResupplyDraft {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.draft
}

// Dirty reports whether the working copy differs from its snapshot.
func (c *ResupplyController) Dirty() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.draft != c.snapshot
}

// SetSearchTerm updates the staging list filter.
func (c *ResupplyController) SetSearchTerm(term string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.view.SetSearchTerm(term)
}

// Staged returns the full filtered staging list.
func (c *ResupplyController) Staged() []models.ResupplyItem {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.view.All()
}

// StagedCount returns the number of staged pairs, ignoring the filter.
func (c *ResupplyController) StagedCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.view.Items())
}

// FieldErrors returns the per-field messages from the last validation.
func (c *ResupplyController) FieldErrors() models.FieldErrors {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fieldErrs
}

// Err returns the last surfaced error message.
func (c *ResupplyController) Err() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.errMsg
}

// clientIDGen mints strictly increasing millisecond-timestamp ids for rows
// that have no server identity yet. The resupply endpoint expects them to
// parse as integers.
type clientIDGen struct {
	mu   sync.Mutex
	last int64
}

func (g *clientIDGen) next() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	now := time.Now().UnixMilli()
	if now <= g.last {
		now = g.last + 1
	}
	g.last = now
	return strconv.FormatInt(now, 10)
}
