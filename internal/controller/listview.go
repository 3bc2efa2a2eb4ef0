package controller

import "sort"

// PageSize is the fixed number of rows per page on every list view.
const PageSize = 25

// SortDirection orders a sorted column
type SortDirection string

const (
	Ascending  SortDirection = "ascending"
	Descending SortDirection = "descending"
)

// Comparator orders two records under a sort key. Negative means a before b.
type Comparator[T any] func(a, b T) int

// ListView is a derived, queryable view over an in-memory collection:
// a text filter, a sortable-column ordering, and pagination. The canonical
// collection is kept unsorted; the derived slice is recomputed fresh from
// it on every filter or sort change, so repeated re-sorts never accumulate.
type ListView[T any] struct {
	items      []T
	match      func(item T, term string) bool
	comparers  map[string]Comparator[T]
	searchTerm string
	sortKey    string
	sortDir    SortDirection
	page       int
	derived    []T
}

// NewListView creates a view with a filter predicate and per-column
// comparators. The zero search term matches everything.
func NewListView[T any](match func(item T, term string) bool, comparers map[string]Comparator[T]) *ListView[T] {
	return &ListView[T]{
		match:     match,
		comparers: comparers,
		sortDir:   Ascending,
		page:      1,
	}
}

// Reset replaces the canonical collection and returns to the first page.
func (v *ListView[T]) Reset(items []T) {
	v.items = items
	v.page = 1
	v.recompute()
}

// SetSearchTerm updates the filter predicate and recomputes the view.
func (v *ListView[T]) SetSearchTerm(term string) {
	v.searchTerm = term
	v.page = 1
	v.recompute()
}

// SearchTerm returns the active filter term.
func (v *ListView[T]) SearchTerm() string {
	return v.searchTerm
}

// SetSort selects the sort column. Selecting a new key sorts ascending;
// reselecting the current key flips the direction. Keys without a
// registered comparator are ignored.
func (v *ListView[T]) SetSort(key string) {
	if _, ok := v.comparers[key]; !ok {
		return
	}
	if v.sortKey == key && v.sortDir == Ascending {
		v.sortDir = Descending
	} else {
		v.sortDir = Ascending
	}
	v.sortKey = key
	v.page = 1
	v.recompute()
}

// Sort returns the active sort key and direction.
func (v *ListView[T]) Sort() (string, SortDirection) {
	return v.sortKey, v.sortDir
}

// SetPage moves to page n. Values outside [1, TotalPages] are ignored.
func (v *ListView[T]) SetPage(n int) {
	if n < 1 || n > v.TotalPages() {
		return
	}
	v.page = n
}

// Page returns the current page, clamped into range for the current
// filtered count.
func (v *ListView[T]) Page() int {
	if total := v.TotalPages(); v.page > total && total > 0 {
		return total
	}
	return v.page
}

// TotalPages is ceil(filteredCount / PageSize).
func (v *ListView[T]) TotalPages() int {
	return (len(v.derived) + PageSize - 1) / PageSize
}

// Len returns the filtered record count.
func (v *ListView[T]) Len() int {
	return len(v.derived)
}

// All returns the full filtered, sorted view.
func (v *ListView[T]) All() []T {
	out := make([]T, len(v.derived))
	copy(out, v.derived)
	return out
}

// PageItems returns the rows of the current page.
func (v *ListView[T]) PageItems() []T {
	page := v.Page()
	start := (page - 1) * PageSize
	if start >= len(v.derived) {
		return nil
	}
	end := start + PageSize
	if end > len(v.derived) {
		end = len(v.derived)
	}
	out := make([]T, end-start)
	copy(out, v.derived[start:end])
	return out
}

// Items returns the canonical (unfiltered) collection.
func (v *ListView[T]) Items() []T {
	out := make([]T, len(v.items))
	copy(out, v.items)
	return out
}

// Insert appends a record to the canonical collection.
func (v *ListView[T]) Insert(item T) {
	v.items = append(v.items, item)
	v.recompute()
}

// Replace swaps the first record matching pred for item, in place.
func (v *ListView[T]) Replace(pred func(T) bool, item T) bool {
	for i := range v.items {
		if pred(v.items[i]) {
			v.items[i] = item
			v.recompute()
			return true
		}
	}
	return false
}

// Remove deletes the first record matching pred.
func (v *ListView[T]) Remove(pred func(T) bool) bool {
	for i := range v.items {
		if pred(v.items[i]) {
			v.items = append(v.items[:i], v.items[i+1:]...)
			v.recompute()
			return true
		}
	}
	return false
}

func (v *ListView[T]) recompute() {
	derived := make([]T, 0, len(v.items))
	for _, item := range v.items {
		if v.searchTerm == "" || v.match(item, v.searchTerm) {
			derived = append(derived, item)
		}
	}
	if cmp, ok := v.comparers[v.sortKey]; ok {
		sort.SliceStable(derived, func(i, j int) bool {
			if v.sortDir == Ascending {
				return cmp(derived[i], derived[j]) < 0
			}
			return cmp(derived[j], derived[i]) < 0
		})
	}
	v.derived = derived
}
