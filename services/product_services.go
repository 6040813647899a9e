package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"storefront-service/models"
	"storefront-service/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type ProductService struct {
	productRepo  repository.ProductRepo
	categoryRepo repository.CategoryRepo
}

func NewProductService(pr repository.ProductRepo, cr repository.CategoryRepo) *ProductService {
	return &ProductService{
		productRepo:  pr,
		categoryRepo: cr,
	}
}

// ListProducts returns the newest products, first page only.
func (s *ProductService) ListProducts(ctx context.Context) ([]*models.Product, error) {
	products, err := s.productRepo.Find(ctx, repository.ProductQuery{Limit: ListPageSize, NewestFirst: true})
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return s.withCategories(ctx, products)
}

// ListProductsPage returns the given 1-indexed page of PerPage products, newest first.
func (s *ProductService) ListProductsPage(ctx context.Context, page int) ([]*models.Product, error) {
	if page < 1 {
		page = 1
	}
	if page > MaxPage {
		return nil, invalid("page", "Page number is out of range")
	}
	products, err := s.productRepo.Find(ctx, repository.ProductQuery{
		Limit:       PerPage,
		Skip:        int64(page-1) * PerPage,
		NewestFirst: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list products page %d: %w", page, err)
	}
	return s.withCategories(ctx, products)
}

func (s *ProductService) GetProductBySlug(ctx context.Context, slug string) (*models.Product, error) {
	product, err := s.productRepo.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get product %q: %w", slug, err)
	}
	products, err := s.withCategories(ctx, []*models.Product{product})
	if err != nil {
		return nil, err
	}
	return products[0], nil
}

// SearchProducts matches keyword literally and case-insensitively against name or description.
func (s *ProductService) SearchProducts(ctx context.Context, keyword string) ([]*models.Product, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return nil, invalid("keyword", "Keyword is required")
	}
	products, err := s.productRepo.Find(ctx, repository.ProductQuery{Keyword: keyword})
	if err != nil {
		return nil, fmt.Errorf("failed to search products: %w", err)
	}
	return products, nil
}

// FilterProducts applies the optional category set and inclusive price range.
func (s *ProductService) FilterProducts(ctx context.Context, f ProductFilter) ([]*models.Product, error) {
	q := repository.ProductQuery{}

	for _, raw := range f.CategoryIDs {
		id, err := primitive.ObjectIDFromHex(strings.TrimSpace(raw))
		if err != nil {
			return nil, invalid("checked", fmt.Sprintf("Invalid category id %q", raw))
		}
		q.CategoryIDs = append(q.CategoryIDs, id)
	}

	switch len(f.PriceRange) {
	case 0:
	case 2:
		lo, hi := f.PriceRange[0], f.PriceRange[1]
		if lo > hi {
			return nil, invalid("radio", "Minimum price must not exceed maximum price")
		}
		q.MinPrice, q.MaxPrice = &lo, &hi
	default:
		return nil, invalid("radio", "Price range must be [min, max]")
	}

	products, err := s.productRepo.Find(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("failed to filter products: %w", err)
	}
	return products, nil
}

func (s *ProductService) CountProducts(ctx context.Context) (int64, error) {
	total, err := s.productRepo.EstimatedCount(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	return total, nil
}

// RelatedProducts returns up to RelatedLimit other products of category cid.
func (s *ProductService) RelatedProducts(ctx context.Context, pid, cid primitive.ObjectID) ([]*models.Product, error) {
	products, err := s.productRepo.Find(ctx, repository.ProductQuery{
		CategoryIDs: []primitive.ObjectID{cid},
		ExcludeID:   &pid,
		Limit:       RelatedLimit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to find related products: %w", err)
	}
	return s.withCategories(ctx, products)
}

func (s *ProductService) ProductsByCategory(ctx context.Context, categorySlug string) (*CategoryProducts, error) {
	category, err := s.categoryRepo.FindBySlug(ctx, categorySlug)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get category %q: %w", categorySlug, err)
	}

	products, err := s.productRepo.Find(ctx, repository.ProductQuery{CategoryIDs: []primitive.ObjectID{category.ID}})
	if err != nil {
		return nil, fmt.Errorf("failed to list products of category %q: %w", categorySlug, err)
	}
	for _, p := range products {
		p.Category = category
	}
	return &CategoryProducts{Category: category, Products: products}, nil
}

// GetPhoto returns the stored photo. A product without image bytes yields ErrNotFound.
func (s *ProductService) GetPhoto(ctx context.Context, id primitive.ObjectID) (*models.Photo, error) {
	photo, err := s.productRepo.FindPhoto(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get photo: %w", err)
	}
	if !photo.HasData() {
		return nil, ErrNotFound
	}
	return photo, nil
}

func (s *ProductService) CreateProduct(ctx context.Context, in ProductInput) (*models.Product, error) {
	draft, err := validateProduct(&in, createRules)
	if err != nil {
		return nil, err
	}
	category, err := s.requireCategory(ctx, draft.categoryID)
	if err != nil {
		return nil, err
	}

	product := draft.product()
	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	zap.L().Info("Product created", zap.String("id", product.ID.Hex()), zap.String("slug", product.Slug))
	product.Photo = nil
	product.Category = category
	return product, nil
}

func (s *ProductService) UpdateProduct(ctx context.Context, id primitive.ObjectID, in ProductInput) (*models.Product, error) {
	draft, err := validateProduct(&in, updateRules)
	if err != nil {
		return nil, err
	}
	category, err := s.requireCategory(ctx, draft.categoryID)
	if err != nil {
		return nil, err
	}

	updated, err := s.productRepo.Update(ctx, id, draft.product())
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update product: %w", err)
	}
	updated.Category = category
	return updated, nil
}

// DeleteProduct succeeds whether or not the product existed.
func (s *ProductService) DeleteProduct(ctx context.Context, id primitive.ObjectID) error {
	if err := s.productRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	return nil
}

func (s *ProductService) requireCategory(ctx context.Context, id primitive.ObjectID) (*models.Category, error) {
	category, err := s.categoryRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, invalid("category", "Category not found")
		}
		return nil, fmt.Errorf("failed to look up category: %w", err)
	}
	return category, nil
}

// withCategories resolves each product's category reference with a single lookup.
func (s *ProductService) withCategories(ctx context.Context, products []*models.Product) ([]*models.Product, error) {
	if len(products) == 0 {
		return products, nil
	}

	seen := make(map[primitive.ObjectID]bool)
	var ids []primitive.ObjectID
	for _, p := range products {
		if !seen[p.CategoryID] {
			seen[p.CategoryID] = true
			ids = append(ids, p.CategoryID)
		}
	}

	categories, err := s.categoryRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve categories: %w", err)
	}
	byID := make(map[primitive.ObjectID]*models.Category, len(categories))
	for i := range categories {
		byID[categories[i].ID] = &categories[i]
	}
	for _, p := range products {
		p.Category = byID[p.CategoryID]
	}
	return products, nil
}
