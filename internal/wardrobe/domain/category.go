package domain

import (
	"strings"

	"github.com/sing9814/smartshopper-sub000/internal/wardrobe/errors"
)

// DefaultCategory is one entry of the shipped taxonomy asset.
type DefaultCategory struct {
	Name          string   `json:"name"`
	SubCategories []string `json:"subCategories"`
}

// Subcategory is a selectable entry under a category. Default entries carry a
// deterministic id; custom entries carry the UUID of their stored record.
type Subcategory struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Custom bool   `json:"custom"`
}

// Category is a node of the merged tree shown in selection dropdowns.
type Category struct {
	Name          string        `json:"name"`
	SubCategories []Subcategory `json:"subCategories"`
}

// CustomCategoryRecord is the persisted form of a user-defined subcategory.
type CustomCategoryRecord struct {
	ID          string `json:"id"`
	Category    string `json:"category"`
	SubCategory string `json:"subCategory"`
}

func (r *CustomCategoryRecord) Validate() error {
	if strings.TrimSpace(r.Category) == "" || strings.TrimSpace(r.SubCategory) == "" {
		return errors.ErrCategoryRequired
	}
	return nil
}

// FlatCustomCategory is the management-screen projection of a custom record.
type FlatCustomCategory struct {
	ID       string `json:"id"`
	Category string `json:"category"`
	Name     string `json:"name"`
}

// DefaultSubcategoryID builds the deterministic id of a default subcategory,
// e.g. ("Footwear", "Dress Shoes") -> "footwear_dress_shoes".
func DefaultSubcategoryID(category, name string) string {
	return strings.ToLower(category) + "_" + strings.ToLower(strings.ReplaceAll(name, " ", "_"))
}

// MergeCategories combines the default taxonomy with the user's custom
// records into the merged tree and the flattened management list.
//
// The merge is a pure transform: deterministic and order-preserving. Default
// categories come first in asset order; within a category, defaults keep
// asset order and customs follow in fetch order. A custom record whose name
// already exists under its category is treated as already merged and skipped,
// so merging the same record twice is a no-op for the tree.
func MergeCategories(defaults []DefaultCategory, customs []CustomCategoryRecord) ([]Category, []FlatCustomCategory) {
	tree := make([]Category, 0, len(defaults))
	for _, d := range defaults {
		subs := make([]Subcategory, 0, len(d.SubCategories))
		for _, name := range d.SubCategories {
			subs = append(subs, Subcategory{
				ID:   DefaultSubcategoryID(d.Name, name),
				Name: name,
			})
		}
		tree = append(tree, Category{Name: d.Name, SubCategories: subs})
	}

	flat := make([]FlatCustomCategory, 0, len(customs))
	for _, rec := range customs {
		flat = append(flat, FlatCustomCategory{ID: rec.ID, Category: rec.Category, Name: rec.SubCategory})
		tree = AppendCustom(tree, rec)
	}
	return tree, flat
}

// AppendCustom adds one custom record to the tree. An unknown category name
// creates a new node holding only that subcategory; a same-named subcategory
// already under the category leaves the tree unchanged.
func AppendCustom(tree []Category, rec CustomCategoryRecord) []Category {
	for i := range tree {
		if tree[i].Name != rec.Category {
			continue
		}
		for _, sub := range tree[i].SubCategories {
			if sub.Name == rec.SubCategory {
				return tree
			}
		}
		tree[i].SubCategories = append(tree[i].SubCategories, Subcategory{
			ID:     rec.ID,
			Name:   rec.SubCategory,
			Custom: true,
		})
		return tree
	}
	return append(tree, Category{
		Name: rec.Category,
		SubCategories: []Subcategory{
			{ID: rec.ID, Name: rec.SubCategory, Custom: true},
		},
	})
}

// RemoveSubcategoryByID strips the subcategory with the given id from every
// category node, not just the one that recorded it. An earlier edit may have
// moved the subcategory under a different node than the stored record says.
func RemoveSubcategoryByID(tree []Category, id string) []Category {
	for i := range tree {
		subs := tree[i].SubCategories[:0]
		for _, sub := range tree[i].SubCategories {
			if sub.ID != id {
				subs = append(subs, sub)
			}
		}
		tree[i].SubCategories = subs
	}
	return tree
}
