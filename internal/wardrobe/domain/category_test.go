package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDefaults() []DefaultCategory {
	return []DefaultCategory{
		{Name: "Tops", SubCategories: []string{"T-Shirts", "Sweaters"}},
		{Name: "Footwear", SubCategories: []string{"Sneakers", "Dress Shoes"}},
	}
}

func TestMergeCategories_DefaultsOnly(t *testing.T) {
	tree, flat := MergeCategories(testDefaults(), nil)

	require.Len(t, tree, 2)
	assert.Empty(t, flat)

	assert.Equal(t, "Tops", tree[0].Name)
	assert.Equal(t, "Footwear", tree[1].Name)

	for _, cat := range tree {
		for _, sub := range cat.SubCategories {
			assert.False(t, sub.Custom)
		}
	}

	// Deterministic ids: lowercased, spaces to underscores.
	assert.Equal(t, "tops_t-shirts", tree[0].SubCategories[0].ID)
	assert.Equal(t, "footwear_dress_shoes", tree[1].SubCategories[1].ID)
}

func TestMergeCategories_CustomAppendsAfterDefaults(t *testing.T) {
	customs := []CustomCategoryRecord{
		{ID: "id-1", Category: "Footwear", SubCategory: "Clogs"},
		{ID: "id-2", Category: "Footwear", SubCategory: "Wellies"},
	}
	tree, flat := MergeCategories(testDefaults(), customs)

	require.Len(t, tree, 2)
	footwear := tree[1]
	require.Len(t, footwear.SubCategories, 4)

	// Defaults keep asset order, customs follow in fetch order.
	assert.Equal(t, "Sneakers", footwear.SubCategories[0].Name)
	assert.Equal(t, "Dress Shoes", footwear.SubCategories[1].Name)
	assert.Equal(t, "Clogs", footwear.SubCategories[2].Name)
	assert.Equal(t, "Wellies", footwear.SubCategories[3].Name)
	assert.True(t, footwear.SubCategories[2].Custom)
	assert.True(t, footwear.SubCategories[3].Custom)

	require.Len(t, flat, 2)
	assert.Equal(t, FlatCustomCategory{ID: "id-1", Category: "Footwear", Name: "Clogs"}, flat[0])
}

func TestMergeCategories_UnknownCategoryCreatesNode(t *testing.T) {
	customs := []CustomCategoryRecord{
		{ID: "id-1", Category: "Costumes", SubCategory: "Halloween"},
	}
	tree, _ := MergeCategories(testDefaults(), customs)

	require.Len(t, tree, 3)
	assert.Equal(t, "Costumes", tree[2].Name)
	require.Len(t, tree[2].SubCategories, 1)
	assert.Equal(t, Subcategory{ID: "id-1", Name: "Halloween", Custom: true}, tree[2].SubCategories[0])
}

func TestMergeCategories_DuplicateNameIsSilentNoOp(t *testing.T) {
	customs := []CustomCategoryRecord{
		{ID: "id-1", Category: "Footwear", SubCategory: "Clogs"},
		{ID: "id-2", Category: "Footwear", SubCategory: "Clogs"},
	}
	tree, flat := MergeCategories(testDefaults(), customs)

	require.Len(t, tree[1].SubCategories, 3, "second record should not duplicate the subcategory")
	// The flattened list still carries both records so they stay manageable.
	assert.Len(t, flat, 2)
}

func TestMergeCategories_Deterministic(t *testing.T) {
	customs := []CustomCategoryRecord{
		{ID: "id-1", Category: "Tops", SubCategory: "Flannels"},
		{ID: "id-2", Category: "Costumes", SubCategory: "Halloween"},
	}
	first, _ := MergeCategories(testDefaults(), customs)
	second, _ := MergeCategories(testDefaults(), customs)
	assert.Equal(t, first, second)
}

func TestAppendCustom_Idempotent(t *testing.T) {
	tree, _ := MergeCategories(testDefaults(), nil)
	rec := CustomCategoryRecord{ID: "id-1", Category: "Footwear", SubCategory: "Clogs"}

	tree = AppendCustom(tree, rec)
	tree = AppendCustom(tree, rec)

	assert.Len(t, tree[1].SubCategories, 3)
}

func TestRemoveSubcategoryByID_SearchesAllCategories(t *testing.T) {
	tree, _ := MergeCategories(testDefaults(), []CustomCategoryRecord{
		{ID: "id-1", Category: "Tops", SubCategory: "Flannels"},
	})
	// Simulate an edit that moved the subcategory under another node.
	tree = RemoveSubcategoryByID(tree, "id-1")
	tree = AppendCustom(tree, CustomCategoryRecord{ID: "id-1", Category: "Footwear", SubCategory: "Flannels"})

	tree = RemoveSubcategoryByID(tree, "id-1")

	for _, cat := range tree {
		for _, sub := range cat.SubCategories {
			assert.NotEqual(t, "id-1", sub.ID)
		}
	}
}

func TestCustomCategoryRecord_Validate(t *testing.T) {
	tests := []struct {
		name    string
		record  CustomCategoryRecord
		wantErr bool
	}{
		{"valid", CustomCategoryRecord{Category: "Footwear", SubCategory: "Clogs"}, false},
		{"missing category", CustomCategoryRecord{SubCategory: "Clogs"}, true},
		{"missing subcategory", CustomCategoryRecord{Category: "Footwear"}, true},
		{"whitespace only", CustomCategoryRecord{Category: "  ", SubCategory: "Clogs"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.record.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
