package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"storefront-service/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ProductRepository struct {
	collection *mongo.Collection
}

func NewProductRepository(db *mongo.Database) *ProductRepository {
	return &ProductRepository{
		collection: db.Collection("products"),
	}
}

func (r *ProductRepository) Find(ctx context.Context, q ProductQuery) ([]*models.Product, error) {
	cursor, err := r.collection.Find(ctx, q.Filter(), q.FindOptions())
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	products := []*models.Product{}
	if err = cursor.All(ctx, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (r *ProductRepository) FindBySlug(ctx context.Context, slug string) (*models.Product, error) {
	var product models.Product
	opts := options.FindOne().SetProjection(withoutPhoto)
	err := r.collection.FindOne(ctx, bson.M{"slug": slug}, opts).Decode(&product)
	if err != nil {
		return nil, notFound(err)
	}
	return &product, nil
}

// FindPhoto fetches only the photo sub-document. A product without a photo yields a nil Photo.
func (r *ProductRepository) FindPhoto(ctx context.Context, id primitive.ObjectID) (*models.Photo, error) {
	var doc struct {
		Photo *models.Photo `bson:"photo"`
	}
	opts := options.FindOne().SetProjection(bson.M{"photo": 1})
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}, opts).Decode(&doc); err != nil {
		return nil, notFound(err)
	}
	return doc.Photo, nil
}

// EstimatedCount uses collection metadata, so it may lag concurrent writes.
func (r *ProductRepository) EstimatedCount(ctx context.Context) (int64, error) {
	return r.collection.EstimatedDocumentCount(ctx)
}

func (r *ProductRepository) CountByCategory(ctx context.Context, categoryID primitive.ObjectID) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"category": categoryID})
}

func (r *ProductRepository) Create(ctx context.Context, product *models.Product) error {
	now := time.Now().UTC()
	if product.ID.IsZero() {
		product.ID = primitive.NewObjectID()
	}
	product.CreatedAt = now
	product.UpdatedAt = now

	_, err := r.collection.InsertOne(ctx, product)
	return err
}

// Update overwrites the editable fields of the product. The stored photo is replaced only when
// product.Photo is non-nil. The updated document is returned without photo bytes.
func (r *ProductRepository) Update(ctx context.Context, id primitive.ObjectID, product *models.Product) (*models.Product, error) {
	set := bson.M{
		"name":        product.Name,
		"slug":        product.Slug,
		"description": product.Description,
		"price":       product.Price,
		"quantity":    product.Quantity,
		"category":    product.CategoryID,
		"shipping":    product.Shipping,
		"updatedAt":   time.Now().UTC(),
	}
	if product.Photo != nil {
		set["photo"] = product.Photo
	}

	opts := options.FindOneAndUpdate().
		SetReturnDocument(options.After).
		SetProjection(withoutPhoto)

	var updated models.Product
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&updated)
	if err != nil {
		return nil, notFound(err)
	}
	return &updated, nil
}

// Delete removes the product; deleting a missing id is not an error.
func (r *ProductRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

func (r *ProductRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "slug", Value: 1}}},
		{Keys: bson.D{{Key: "category", Value: 1}, {Key: "price", Value: 1}}},
		{Keys: bson.D{{Key: "createdAt", Value: -1}}},
	})
	if err != nil {
		return fmt.Errorf("failed to create product indexes: %w", err)
	}
	return nil
}

// notFound maps the driver's no-documents error onto ErrNotFound.
func notFound(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}
	return err
}
