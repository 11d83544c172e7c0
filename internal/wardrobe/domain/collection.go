package domain

import (
	"time"

	"github.com/sing9814/smartshopper-sub000/internal/wardrobe/errors"
)

// Collection groups purchases by their keys.
type Collection struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Items       []string  `json:"items"`
	DateCreated time.Time `json:"dateCreated"`
}

func (c *Collection) Validate() error {
	if !nameHasAlnum.MatchString(c.Name) {
		return errors.ErrNameRequired
	}
	return nil
}

// AddItems unions the given purchase keys into the collection. Existing order
// is preserved and duplicates are suppressed.
func (c *Collection) AddItems(keys []string) {
	seen := make(map[string]struct{}, len(c.Items)+len(keys))
	for _, key := range c.Items {
		seen[key] = struct{}{}
	}
	for _, key := range keys {
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		c.Items = append(c.Items, key)
	}
}
