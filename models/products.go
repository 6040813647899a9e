package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MaxPhotoSize is the largest photo, in bytes, a product may carry.
const MaxPhotoSize = 1000000

type Product struct {
	ID          primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	Name        string             `json:"name" bson:"name"`
	Slug        string             `json:"slug" bson:"slug"`
	Description string             `json:"description" bson:"description"`
	Price       float64            `json:"price" bson:"price"`
	Quantity    int                `json:"quantity" bson:"quantity"`
	CategoryID  primitive.ObjectID `json:"category_id" bson:"category"`
	Shipping    bool               `json:"shipping" bson:"shipping"`
	Photo       *Photo             `json:"-" bson:"photo,omitempty"`
	CreatedAt   time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt" bson:"updatedAt"`

	// Category is filled in on read paths; it is never persisted.
	Category *Category `json:"category,omitempty" bson:"-"`
}

// Photo is stored inside the product document rather than as its own entity.
type Photo struct {
	Data        []byte `bson:"data"`
	ContentType string `bson:"contentType"`
}

// HasData reports whether any image bytes are stored.
func (p *Photo) HasData() bool {
	return p != nil && len(p.Data) > 0
}
