package controllers

import (
	"context"
	"time"

	"storefront-service/models"
	"storefront-service/services"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	DefaultCacheTTL = 10 * time.Minute
	// maxMultipartMemory bounds the in-memory part of a product form; larger parts spill to disk.
	maxMultipartMemory = 32 << 20
)

// ProductServiceAPI defines the interface for product service operations
type ProductServiceAPI interface {
	ListProducts(ctx context.Context) ([]*models.Product, error)
	ListProductsPage(ctx context.Context, page int) ([]*models.Product, error)
	GetProductBySlug(ctx context.Context, slug string) (*models.Product, error)
	SearchProducts(ctx context.Context, keyword string) ([]*models.Product, error)
	FilterProducts(ctx context.Context, f services.ProductFilter) ([]*models.Product, error)
	CountProducts(ctx context.Context) (int64, error)
	RelatedProducts(ctx context.Context, pid, cid primitive.ObjectID) ([]*models.Product, error)
	ProductsByCategory(ctx context.Context, categorySlug string) (*services.CategoryProducts, error)
	GetPhoto(ctx context.Context, id primitive.ObjectID) (*models.Photo, error)
	CreateProduct(ctx context.Context, in services.ProductInput) (*models.Product, error)
	UpdateProduct(ctx context.Context, id primitive.ObjectID, in services.ProductInput) (*models.Product, error)
	DeleteProduct(ctx context.Context, id primitive.ObjectID) error
}

// CategoryServiceAPI defines the interface for category service operations
type CategoryServiceAPI interface {
	CreateCategory(ctx context.Context, req services.CategoryRequest) (*models.Category, error)
	UpdateCategory(ctx context.Context, id primitive.ObjectID, req services.CategoryRequest) (*models.Category, error)
	ListCategories(ctx context.Context) ([]models.Category, error)
	GetCategoryBySlug(ctx context.Context, slug string) (*models.Category, error)
	DeleteCategory(ctx context.Context, id primitive.ObjectID) error
}

type PaymentServiceAPI interface {
	ClientToken(ctx context.Context) (string, error)
	Checkout(ctx context.Context, buyer string, req services.CheckoutRequest) (*models.Order, error)
}

type OrderServiceAPI interface {
	BuyerOrders(ctx context.Context, buyer string) ([]*models.Order, error)
	AllOrders(ctx context.Context) ([]*models.Order, error)
	UpdateOrderStatus(ctx context.Context, id primitive.ObjectID, status string) (*models.Order, error)
}

// filterRequest is the body of POST /product/filters.
type filterRequest struct {
	Checked []string  `json:"checked"`
	Radio   []float64 `json:"radio"`
}
