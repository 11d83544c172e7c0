package domain

import (
	_ "embed"
	"encoding/json"
	"sync"
)

//go:embed default_categories.json
var defaultCategoriesJSON []byte

var (
	defaultsOnce sync.Once
	defaults     []DefaultCategory
)

// DefaultCategories returns the shipped taxonomy. The embedded asset is
// parsed once; callers must treat the result as read-only.
func DefaultCategories() []DefaultCategory {
	defaultsOnce.Do(func() {
		if err := json.Unmarshal(defaultCategoriesJSON, &defaults); err != nil {
			// The asset ships with the binary; a parse failure is a build defect.
			panic("invalid default_categories.json: " + err.Error())
		}
	})
	return defaults
}
