package repository

import (
	"context"
	"errors"

	"storefront-service/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	// ErrNotFound is returned when a lookup or targeted update matches nothing.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when a write violates a unique index.
	ErrDuplicate = errors.New("duplicate key")
)

// ProductRepo defines the operations used by the catalog services.
// Read methods never return photo bytes; FindPhoto is the only way to get them.
type ProductRepo interface {
	Find(ctx context.Context, q ProductQuery) ([]*models.Product, error)
	FindBySlug(ctx context.Context, slug string) (*models.Product, error)
	FindPhoto(ctx context.Context, id primitive.ObjectID) (*models.Photo, error)
	EstimatedCount(ctx context.Context) (int64, error)
	CountByCategory(ctx context.Context, categoryID primitive.ObjectID) (int64, error)
	Create(ctx context.Context, product *models.Product) error
	Update(ctx context.Context, id primitive.ObjectID, product *models.Product) (*models.Product, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	EnsureIndexes(ctx context.Context) error
}

// CategoryRepo defines the operations used for category management.
type CategoryRepo interface {
	FindAll(ctx context.Context) ([]models.Category, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Category, error)
	FindBySlug(ctx context.Context, slug string) (*models.Category, error)
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Category, error)
	Create(ctx context.Context, category *models.Category) error
	Update(ctx context.Context, id primitive.ObjectID, name, slug string) (*models.Category, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	EnsureIndexes(ctx context.Context) error
}

// OrderRepo persists orders created by successful payments and tracks their fulfilment.
// Listings are newest first.
type OrderRepo interface {
	Create(ctx context.Context, order *models.Order) error
	FindByBuyer(ctx context.Context, buyer string) ([]*models.Order, error)
	FindAll(ctx context.Context) ([]*models.Order, error)
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) (*models.Order, error)
	EnsureIndexes(ctx context.Context) error
}
