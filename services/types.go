package services

import (
	"math"

	"storefront-service/models"
)

const (
	// ListPageSize is the number of products returned by the plain listing.
	ListPageSize = 12
	// PerPage is the page size of the paginated listing.
	PerPage = 6
	// RelatedLimit caps the related-products lookup.
	RelatedLimit = 3
	// MaxPage is the last page whose offset (page-1)*PerPage fits in an int.
	MaxPage = math.MaxInt/PerPage + 1
)

// ProductInput carries the raw form values of a product create or update.
// Values stay strings so validation can tell "absent" apart from "zero".
type ProductInput struct {
	Name        string
	Description string
	Price       string
	Category    string
	Quantity    string
	Shipping    string
	Photo       *PhotoUpload
}

// PhotoUpload is an uploaded image before it is persisted.
type PhotoUpload struct {
	Size        int64
	ContentType string
	Data        []byte
}

// ProductFilter holds the optional constraints of the filter query.
// PriceRange is either empty or exactly [min, max].
type ProductFilter struct {
	CategoryIDs []string
	PriceRange  []float64
}

// CategoryRequest is the request payload for creating or renaming a category
type CategoryRequest struct {
	Name string `json:"name" validate:"required"`
}

// CategoryProducts is the result of the by-category lookup.
type CategoryProducts struct {
	Category *models.Category
	Products []*models.Product
}

// CheckoutRequest is the payload of a sale: the cart and the client's payment nonce.
type CheckoutRequest struct {
	Cart  []models.CartItem `json:"cart" validate:"required,min=1,dive"`
	Nonce string            `json:"nonce" validate:"required"`
}

// SaleRequest is what the gateway needs to charge a payment method.
type SaleRequest struct {
	Amount   int64 // minor units
	Currency string
	Nonce    string
}

// OrderStatusRequest is the body of an order status update.
type OrderStatusRequest struct {
	Status string `json:"status" validate:"required"`
}
