package domain

import "strings"

// ExpandedSet tracks which category nodes the user has toggled open in the
// dropdown. It is a plain value type, independent of any rendering concern.
type ExpandedSet map[string]struct{}

func NewExpandedSet(names ...string) ExpandedSet {
	s := make(ExpandedSet, len(names))
	for _, name := range names {
		s[name] = struct{}{}
	}
	return s
}

func (s ExpandedSet) Add(name string)    { s[name] = struct{}{} }
func (s ExpandedSet) Remove(name string) { delete(s, name) }
func (s ExpandedSet) Has(name string) bool {
	_, ok := s[name]
	return ok
}

func (s ExpandedSet) Toggle(name string) {
	if s.Has(name) {
		s.Remove(name)
	} else {
		s.Add(name)
	}
}

// DisplayRow is one row of the flattened dropdown: a category header when
// Subcategory is nil, otherwise a child entry under the preceding header.
type DisplayRow struct {
	Category    string       `json:"category"`
	Subcategory *Subcategory `json:"subCategory,omitempty"`
}

// FilterCategories flattens the merged tree into dropdown rows.
//
// A non-empty query matches case-insensitively against category names and
// subcategory names and auto-expands every matching node. With an empty
// query, every header is shown and children appear only under nodes the user
// toggled open.
func FilterCategories(tree []Category, query string, expanded ExpandedSet) []DisplayRow {
	q := strings.ToLower(strings.TrimSpace(query))

	var rows []DisplayRow
	for i := range tree {
		cat := &tree[i]

		if q == "" {
			rows = append(rows, DisplayRow{Category: cat.Name})
			if !expanded.Has(cat.Name) {
				continue
			}
			for j := range cat.SubCategories {
				rows = append(rows, DisplayRow{Category: cat.Name, Subcategory: &cat.SubCategories[j]})
			}
			continue
		}

		if strings.Contains(strings.ToLower(cat.Name), q) {
			// Header matched: show the whole node.
			rows = append(rows, DisplayRow{Category: cat.Name})
			for j := range cat.SubCategories {
				rows = append(rows, DisplayRow{Category: cat.Name, Subcategory: &cat.SubCategories[j]})
			}
			continue
		}

		var matched []*Subcategory
		for j := range cat.SubCategories {
			if strings.Contains(strings.ToLower(cat.SubCategories[j].Name), q) {
				matched = append(matched, &cat.SubCategories[j])
			}
		}
		if len(matched) == 0 {
			continue
		}
		rows = append(rows, DisplayRow{Category: cat.Name})
		for _, sub := range matched {
			rows = append(rows, DisplayRow{Category: cat.Name, Subcategory: sub})
		}
	}
	return rows
}
