package engine

import "nft_market/internal/domain"

// Category is an administrative grouping of listings, used by browse read
// models. The count tracks currently active listings of every kind.
type Category struct {
	Name  string
	Count int64
}

// RegisterCategory creates a category and returns its id, drawn from the
// same global pool as listing ids. Category administration is external to
// the trading protocols; it lives here so counters have something to count.
func (m *Market) RegisterCategory(name string) domain.GlobalID {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := m.ids.Next()
	m.categories[id] = &Category{Name: name}
	return id
}

// CategoryCount returns a category's active-listing count.
func (m *Market) CategoryCount(id domain.GlobalID) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cat, ok := m.categories[id]
	if !ok {
		return 0, domain.ErrCategoryNotFound
	}
	return cat.Count, nil
}

// incCategory fails on an unknown category: listings may only enter
// pre-registered categories.
func (m *Market) incCategory(id domain.GlobalID) error {
	cat, ok := m.categories[id]
	if !ok {
		return domain.ErrCategoryNotFound
	}
	cat.Count++
	return nil
}

// decCategory saturates at zero and tolerates a deleted category. A listing
// leaving the market must never fail because its category went away.
func (m *Market) decCategory(id domain.GlobalID) {
	cat, ok := m.categories[id]
	if !ok {
		return
	}
	if cat.Count > 0 {
		cat.Count--
	}
}
