// Package orderfind implements the open-order picker: filter, sort and
// keyboard navigation over a caller-supplied list of order summaries.
package orderfind

import (
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/princekenny23/primepos-sub004/models"
)

// SortKey selects the ordering of the filtered list.
type SortKey string

const (
	SortRecent SortKey = "recent" // preserves input order
	SortAmount SortKey = "amount" // total, descending
	SortTable  SortKey = "table"  // numeric table number, ascending
)

// Finder holds the picker state. It consumes a plain slice of summaries;
// refreshing that slice is the caller's responsibility. All methods are safe
// for concurrent use.
type Finder struct {
	mu          sync.Mutex
	orders      []models.OrderSummary
	searchTerm  string
	sortKey     SortKey
	highlighted int
	open        bool

	onSelect func(models.OrderSummary)
}

func NewFinder(onSelect func(models.OrderSummary)) *Finder {
	return &Finder{sortKey: SortRecent, onSelect: onSelect}
}

// SetOrders replaces the backing list.
func (f *Finder) SetOrders(orders []models.OrderSummary) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.orders = append([]models.OrderSummary(nil), orders...)
	f.clampHighlightLocked()
}

func (f *Finder) Open() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.open = true
}

func (f *Finder) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.open = false
}

func (f *Finder) IsOpen() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.open
}

// SetSearchTerm updates the filter and resets the highlight to the top.
func (f *Finder) SetSearchTerm(term string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.searchTerm = term
	f.highlighted = 0
}

// SetSortKey updates the ordering and resets the highlight to the top.
func (f *Finder) SetSortKey(key SortKey) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sortKey = key
	f.highlighted = 0
}

func (f *Finder) HighlightedIndex() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.highlighted
}

// Filtered returns the visible orders: case-insensitive substring match
// against receipt number, table number or customer name, then sorted by the
// active sort key.
func (f *Finder) Filtered() []models.OrderSummary {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.filteredLocked()
}

func (f *Finder) filteredLocked() []models.OrderSummary {
	term := strings.ToLower(strings.TrimSpace(f.searchTerm))

	out := make([]models.OrderSummary, 0, len(f.orders))
	for _, o := range f.orders {
		if term == "" ||
			strings.Contains(strings.ToLower(o.ReceiptNumber), term) ||
			strings.Contains(strings.ToLower(o.TableNumber), term) ||
			strings.Contains(strings.ToLower(o.CustomerName), term) {
			out = append(out, o)
		}
	}

	switch f.sortKey {
	case SortAmount:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Total.GreaterThan(out[j].Total)
		})
	case SortTable:
		sort.SliceStable(out, func(i, j int) bool {
			return tableNum(out[i].TableNumber) < tableNum(out[j].TableNumber)
		})
	}
	return out
}

// Highlighted returns the currently highlighted order, if any.
func (f *Finder) Highlighted() (models.OrderSummary, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.highlightedLocked()
}

func (f *Finder) highlightedLocked() (models.OrderSummary, bool) {
	filtered := f.filteredLocked()
	if len(filtered) == 0 {
		return models.OrderSummary{}, false
	}
	idx := f.highlighted
	if idx > len(filtered)-1 {
		idx = len(filtered) - 1
	}
	return filtered[idx], true
}

// HandleKey processes keyboard navigation. Only active while the picker is
// open; returns whether the key was handled. The highlight clamps at both
// ends, no wraparound.
func (f *Finder) HandleKey(key string) bool {
	f.mu.Lock()
	if !f.open {
		f.mu.Unlock()
		return false
	}

	var selected *models.OrderSummary
	switch key {
	case "ArrowDown":
		f.highlighted++
		f.clampHighlightLocked()
	case "ArrowUp":
		f.highlighted--
		f.clampHighlightLocked()
	case "Enter":
		if order, ok := f.highlightedLocked(); ok {
			selected = &order
		}
	case "Escape":
		f.open = false
	default:
		f.mu.Unlock()
		return false
	}
	f.mu.Unlock()

	// Deliver the selection outside the lock so the callback can read the
	// finder freely.
	if selected != nil && f.onSelect != nil {
		f.onSelect(*selected)
	}
	return true
}

func (f *Finder) clampHighlightLocked() {
	max := len(f.filteredLocked()) - 1
	if max < 0 {
		max = 0
	}
	if f.highlighted > max {
		f.highlighted = max
	}
	if f.highlighted < 0 {
		f.highlighted = 0
	}
}

// tableNum parses a table number for sorting; non-numeric and missing values
// sort as 0.
func tableNum(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}
