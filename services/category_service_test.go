package services

import (
	"context"
	"testing"

	"storefront-service/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestCreateCategory(t *testing.T) {
	cr := newMemCategoryRepo()
	svc := NewCategoryService(cr, newMemProductRepo())

	created, err := svc.CreateCategory(context.Background(), CategoryRequest{Name: "  Winter Coats "})
	require.NoError(t, err)
	assert.Equal(t, "Winter Coats", created.Name)
	assert.Equal(t, "winter-coats", created.Slug)

	_, err = svc.CreateCategory(context.Background(), CategoryRequest{Name: "Winter Coats"})
	assert.ErrorIs(t, err, ErrCategoryExists)
	assert.Len(t, cr.categories, 1, "duplicate must not create a record")

	_, err = svc.CreateCategory(context.Background(), CategoryRequest{Name: ""})
	requireValidation(t, err, "name")
}

func TestUpdateCategory(t *testing.T) {
	cr := newMemCategoryRepo()
	svc := NewCategoryService(cr, newMemProductRepo())
	shoes := cr.add("Shoes")
	cr.add("Boots")

	updated, err := svc.UpdateCategory(context.Background(), shoes.ID, CategoryRequest{Name: "Running Shoes"})
	require.NoError(t, err)
	assert.Equal(t, "running-shoes", updated.Slug)

	_, err = svc.UpdateCategory(context.Background(), shoes.ID, CategoryRequest{Name: "Boots"})
	assert.ErrorIs(t, err, ErrCategoryExists)

	_, err = svc.UpdateCategory(context.Background(), primitive.NewObjectID(), CategoryRequest{Name: "Sandals"})
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.UpdateCategory(context.Background(), shoes.ID, CategoryRequest{})
	requireValidation(t, err, "name")
}

func TestGetCategoryBySlug(t *testing.T) {
	cr := newMemCategoryRepo()
	svc := NewCategoryService(cr, newMemProductRepo())
	cr.add("Kitchen Tools")

	found, err := svc.GetCategoryBySlug(context.Background(), "kitchen-tools")
	require.NoError(t, err)
	assert.Equal(t, "Kitchen Tools", found.Name)

	_, err = svc.GetCategoryBySlug(context.Background(), "garden")
	assert.ErrorIs(t, err, ErrNotFound)

	all, err := svc.ListCategories(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestDeleteCategory(t *testing.T) {
	cr := newMemCategoryRepo()
	pr := newMemProductRepo()
	svc := NewCategoryService(cr, pr)
	used := cr.add("Used")
	unused := cr.add("Unused")
	pr.seed(models.Product{Name: "p", CategoryID: used.ID})

	assert.ErrorIs(t, svc.DeleteCategory(context.Background(), used.ID), ErrCategoryInUse)
	assert.Contains(t, cr.categories, used.ID)

	require.NoError(t, svc.DeleteCategory(context.Background(), unused.ID))
	require.NoError(t, svc.DeleteCategory(context.Background(), unused.ID))
	assert.NotContains(t, cr.categories, unused.ID)
}
