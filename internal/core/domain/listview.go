package domain

import (
	"sort"
	"strings"
)

// ItemGroups is the display form of a shopping list.
// Unpurchased items always precede purchased ones.
type ItemGroups struct {
	// Unpurchased items, ordered by name ascending.
	Unpurchased []Item

	// Purchased items, ordered by ID descending (most recently created first).
	Purchased []Item
}

// GroupItems splits items into the unpurchased and purchased groups and
// orders each group for display. The input slice is not modified.
func GroupItems(items []Item) ItemGroups {
	groups := ItemGroups{
		Unpurchased: make([]Item, 0, len(items)),
		Purchased:   make([]Item, 0),
	}
	for i := range items {
		if items[i].Purchased {
			groups.Purchased = append(groups.Purchased, items[i])
		} else {
			groups.Unpurchased = append(groups.Unpurchased, items[i])
		}
	}

	sort.SliceStable(groups.Unpurchased, func(a, b int) bool {
		left, right := groups.Unpurchased[a], groups.Unpurchased[b]
		if c := strings.Compare(left.Name, right.Name); c != 0 {
			return c < 0
		}
		return left.ID < right.ID
	})
	sort.SliceStable(groups.Purchased, func(a, b int) bool {
		return groups.Purchased[a].ID > groups.Purchased[b].ID
	})

	return groups
}

// Ordered returns the full display order: unpurchased then purchased.
func (g ItemGroups) Ordered() []Item {
	out := make([]Item, 0, g.Len())
	out = append(out, g.Unpurchased...)
	return append(out, g.Purchased...)
}

// Len returns the total number of items in both groups.
func (g ItemGroups) Len() int {
	return len(g.Unpurchased) + len(g.Purchased)
}

// Empty reports whether the list has no items at all.
func (g ItemGroups) Empty() bool {
	return g.Len() == 0
}
