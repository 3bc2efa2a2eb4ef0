package controller

import (
	"context"
	"sort"
	"sync"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"shelflyfe/internal/models"
)

// ErrNoOrders is returned when Submit is called with no counts entered.
var ErrNoOrders = errors.New("no orders entered")

// MenuStore serves the menu and accepts entered order batches.
type MenuStore interface {
	ListMenuItems(ctx context.Context) ([]models.MenuItem, error)
	SubmitOrders(ctx context.Context, orders map[string]models.OrderCount) error
}

// OrderEntryController accumulates order counts against the menu and
// submits them as one batch. Counts clear only after the store confirms
// the submission, so a failed submit can be retried as-is.
type OrderEntryController struct {
	mu    sync.Mutex
	store MenuStore

	menu    map[string][]models.MenuItem
	counts  map[string]models.OrderCount
	loading bool
	loaded  bool
	errMsg  string
}

// NewOrderEntryController creates a controller backed by the given store.
func NewOrderEntryController(store MenuStore) *OrderEntryController {
	return &OrderEntryController{
		store:  store,
		menu:   make(map[string][]models.MenuItem),
		counts: make(map[string]models.OrderCount),
	}
}

// Load fetches the menu and groups it by category. On failure the previous
// menu is kept and an error recorded.
func (c *OrderEntryController) Load(ctx context.Context) error {
	c.mu.Lock()
	c.loading = true
	c.mu.Unlock()

	items, err := c.store.ListMenuItems(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.loading = false
	c.loaded = true
	if err != nil {
		c.errMsg = "Failed to fetch recipes: " + err.Error()
		zap.S().Warnw("menu load failed", "error", err)
		return err
	}
	c.menu = models.GroupByCategory(items)
	c.errMsg = ""
	return nil
}

// EnsureLoaded fetches the menu once; later calls are no-ops.
func (c *OrderEntryController) EnsureLoaded(ctx context.Context) error {
	c.mu.Lock()
	loaded := c.loaded
	c.mu.Unlock()
	if loaded {
		return nil
	}
	return c.Load(ctx)
}

// Categories returns the menu categories in sorted order.
func (c *OrderEntryController) Categories() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, 0, len(c.menu))
	for category := range c.menu {
		out = append(out, category)
	}
	sort.Strings(out)
	return out
}

// ItemsIn returns the menu items of one category.
func (c *OrderEntryController) ItemsIn(category string) []models.MenuItem {
	c.mu.Lock()
	defer c.mu.Unlock()
	items := c.menu[category]
	out := make([]models.MenuItem, len(items))
	copy(out, items)
	return out
}

// AddOrders accumulates entered amounts for the given category. Amounts of
// zero or less and ids outside the category are ignored; repeated adds for
// the same item sum up.
func (c *OrderEntryController) AddOrders(category string, amounts map[string]int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, item := range c.menu[category] {
		amount, ok := amounts[item.ID]
		if !ok || amount <= 0 {
			continue
		}
		entry, exists := c.counts[item.ID]
		if exists {
			entry.Count += amount
		} else {
			entry = models.OrderCount{Name: item.Name, Count: amount}
		}
		c.counts[item.ID] = entry
	}
}

// Counts returns the accumulated order counts keyed by menu item id.
func (c *OrderEntryController) Counts() map[string]models.OrderCount {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make(map[string]models.OrderCount, len(c.counts))
	for id, entry := range c.counts {
		out[id] = entry
	}
	return out
}

// Submit sends the accumulated counts as one batch. Counts clear on
// confirmation and survive a failure.
func (c *OrderEntryController) Submit(ctx context.Context) error {
	c.mu.Lock()
	if len(c.counts) == 0 {
		c.mu.Unlock()
		return ErrNoOrders
	}
	batch := make(map[string]models.OrderCount, len(c.counts))
	for id, entry := range c.counts {
		batch[id] = entry
	}
	c.mu.Unlock()

	err := c.store.SubmitOrders(ctx, batch)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.errMsg = "Failed to submit orders: " + err.Error()
		zap.S().Warnw("order submit failed", "orders", len(batch), "error", err)
		return err
	}
	c.counts = make(map[string]models.OrderCount)
	c.errMsg = ""
	return nil
}

// Loading reports whether a menu load is in flight.
func (c *OrderEntryController) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}

// Err returns the last surfaced error message.
func (c *OrderEntryController) Err() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.errMsg
}
