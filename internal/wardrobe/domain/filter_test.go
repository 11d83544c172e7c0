package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilterCategories_EmptyQueryCollapsed(t *testing.T) {
	tree, _ := MergeCategories(testDefaults(), nil)

	rows := FilterCategories(tree, "", NewExpandedSet())

	// Only headers, one per category.
	require.Len(t, rows, 2)
	for _, row := range rows {
		assert.Nil(t, row.Subcategory)
	}
}

func TestFilterCategories_ToggledOpenShowsChildren(t *testing.T) {
	tree, _ := MergeCategories(testDefaults(), nil)
	expanded := NewExpandedSet("Footwear")

	rows := FilterCategories(tree, "", expanded)

	require.Len(t, rows, 4) // Tops header, Footwear header + 2 children
	assert.Equal(t, "Tops", rows[0].Category)
	assert.Nil(t, rows[0].Subcategory)
	assert.Equal(t, "Footwear", rows[1].Category)
	require.NotNil(t, rows[2].Subcategory)
	assert.Equal(t, "Sneakers", rows[2].Subcategory.Name)
}

func TestFilterCategories_QueryAutoExpands(t *testing.T) {
	tree, _ := MergeCategories(testDefaults(), nil)

	// Matches the subcategory, not the category name; node expands anyway.
	rows := FilterCategories(tree, "sneak", NewExpandedSet())

	require.Len(t, rows, 2)
	assert.Equal(t, "Footwear", rows[0].Category)
	assert.Nil(t, rows[0].Subcategory)
	require.NotNil(t, rows[1].Subcategory)
	assert.Equal(t, "Sneakers", rows[1].Subcategory.Name)
}

func TestFilterCategories_CategoryNameMatchShowsAllChildren(t *testing.T) {
	tree, _ := MergeCategories(testDefaults(), nil)

	rows := FilterCategories(tree, "FOOT", NewExpandedSet())

	require.Len(t, rows, 3)
	assert.Equal(t, "Sneakers", rows[1].Subcategory.Name)
	assert.Equal(t, "Dress Shoes", rows[2].Subcategory.Name)
}

func TestFilterCategories_NoMatch(t *testing.T) {
	tree, _ := MergeCategories(testDefaults(), nil)

	rows := FilterCategories(tree, "zzz", NewExpandedSet())
	assert.Empty(t, rows)
}

func TestExpandedSet_Toggle(t *testing.T) {
	s := NewExpandedSet()
	s.Toggle("Tops")
	assert.True(t, s.Has("Tops"))
	s.Toggle("Tops")
	assert.False(t, s.Has("Tops"))
}
