package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"storefront-service/models"
	"storefront-service/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type CategoryService struct {
	repo        repository.CategoryRepo
	productRepo repository.ProductRepo
}

func NewCategoryService(repo repository.CategoryRepo, productRepo repository.ProductRepo) *CategoryService {
	return &CategoryService{repo: repo, productRepo: productRepo}
}

// CreateCategory inserts a category. A taken name yields ErrCategoryExists; uniqueness is
// enforced by the store, so concurrent creates cannot both succeed.
func (s *CategoryService) CreateCategory(ctx context.Context, req CategoryRequest) (*models.Category, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, invalid("name", "Name is required")
	}

	category := &models.Category{Name: name, Slug: Slugify(name)}
	if err := s.repo.Create(ctx, category); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrCategoryExists
		}
		return nil, fmt.Errorf("failed to create category: %w", err)
	}
	return category, nil
}

func (s *CategoryService) UpdateCategory(ctx context.Context, id primitive.ObjectID, req CategoryRequest) (*models.Category, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, invalid("name", "Name is required")
	}

	category, err := s.repo.Update(ctx, id, name, Slugify(name))
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return nil, ErrNotFound
	case errors.Is(err, repository.ErrDuplicate):
		return nil, ErrCategoryExists
	case err != nil:
		return nil, fmt.Errorf("failed to update category: %w", err)
	}
	return category, nil
}

func (s *CategoryService) ListCategories(ctx context.Context) ([]models.Category, error) {
	categories, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

func (s *CategoryService) GetCategoryBySlug(ctx context.Context, slug string) (*models.Category, error) {
	category, err := s.repo.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get category %q: %w", slug, err)
	}
	return category, nil
}

// DeleteCategory is idempotent, but refuses while products still reference the category.
func (s *CategoryService) DeleteCategory(ctx context.Context, id primitive.ObjectID) error {
	inUse, err := s.productRepo.CountByCategory(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to check category products: %w", err)
	}
	if inUse > 0 {
		return ErrCategoryInUse
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}
	return nil
}
