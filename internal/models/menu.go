package models

// MenuItem represents a dish on the menu
type MenuItem struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Category    string           `json:"category"`
	Price       float64          `json:"price,omitempty"`
	Description string           `json:"description,omitempty"`
	Season      string           `json:"season,omitempty"`
	Ingredients []MenuIngredient `json:"ingredients,omitempty"`
}

// MenuIngredient is an ingredient line within a recipe
type MenuIngredient struct {
	SKU      string `json:"sku"`
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

// OrderCount accumulates how many times a menu item was ordered. Submitted
// order batches are keyed by menu item id.
type OrderCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// GroupByCategory buckets menu items by category, preserving arrival order
// within each bucket.
func GroupByCategory(items []MenuItem) map[string][]MenuItem {
	grouped := make(map[string][]MenuItem)
	for _, item := range items {
		grouped[item.Category] = append(grouped[item.Category], item)
	}
	return grouped
}
