package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCollection_AddItems(t *testing.T) {
	c := Collection{Items: []string{"a", "b"}}

	c.AddItems([]string{"b", "c", "c", "d"})

	assert.Equal(t, []string{"a", "b", "c", "d"}, c.Items)
}

func TestCollection_Validate(t *testing.T) {
	c := Collection{Name: "Summer fits"}
	assert.NoError(t, c.Validate())

	c.Name = "   "
	assert.Error(t, c.Validate())
}
