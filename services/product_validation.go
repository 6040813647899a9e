package services

import (
	"strconv"
	"strings"

	"storefront-service/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// productDraft is a ProductInput being checked; rules fill in the parsed values as they pass.
type productDraft struct {
	in         *ProductInput
	price      float64
	quantity   int
	categoryID primitive.ObjectID
	shipping   bool
}

// productRule checks one field and returns a message when it is violated.
type productRule struct {
	field string
	check func(d *productDraft) string
}

var (
	nameRule = productRule{"name", func(d *productDraft) string {
		if strings.TrimSpace(d.in.Name) == "" {
			return "Name is required"
		}
		return ""
	}}

	descriptionRule = productRule{"description", func(d *productDraft) string {
		if strings.TrimSpace(d.in.Description) == "" {
			return "Description is required"
		}
		return ""
	}}

	priceRule = productRule{"price", func(d *productDraft) string {
		raw := strings.TrimSpace(d.in.Price)
		if raw == "" {
			return "Price is required"
		}
		price, err := strconv.ParseFloat(raw, 64)
		if err != nil || price < 0 {
			return "Price must be a non-negative number"
		}
		d.price = price
		return ""
	}}

	categoryRule = productRule{"category", func(d *productDraft) string {
		raw := strings.TrimSpace(d.in.Category)
		if raw == "" {
			return "Category is required"
		}
		id, err := primitive.ObjectIDFromHex(raw)
		if err != nil {
			return "Category must be a valid category id"
		}
		d.categoryID = id
		return ""
	}}

	quantityRule = productRule{"quantity", func(d *productDraft) string {
		raw := strings.TrimSpace(d.in.Quantity)
		if raw == "" {
			return "Quantity is required"
		}
		quantity, err := strconv.Atoi(raw)
		if err != nil || quantity < 0 {
			return "Quantity must be a non-negative integer"
		}
		d.quantity = quantity
		return ""
	}}

	photoRequiredRule = productRule{"photo", func(d *productDraft) string {
		if d.in.Photo == nil {
			return "Photo is required"
		}
		return ""
	}}

	photoSizeRule = productRule{"photo", func(d *productDraft) string {
		if d.in.Photo != nil && d.in.Photo.Size > models.MaxPhotoSize {
			return "Photo should be less than 1 MB"
		}
		return ""
	}}

	shippingRule = productRule{"shipping", func(d *productDraft) string {
		raw := strings.TrimSpace(d.in.Shipping)
		if raw == "" {
			return ""
		}
		shipping, err := strconv.ParseBool(raw)
		if err != nil {
			return "Shipping must be true or false"
		}
		d.shipping = shipping
		return ""
	}}
)

// createRules run in this exact order; the first violation is reported.
var createRules = []productRule{
	nameRule,
	descriptionRule,
	priceRule,
	categoryRule,
	quantityRule,
	photoRequiredRule,
	photoSizeRule,
	shippingRule,
}

// updateRules match createRules except that the photo may be omitted.
var updateRules = []productRule{
	nameRule,
	descriptionRule,
	priceRule,
	categoryRule,
	quantityRule,
	photoSizeRule,
	shippingRule,
}

func validateProduct(in *ProductInput, rules []productRule) (*productDraft, error) {
	d := &productDraft{in: in}
	for _, rule := range rules {
		if msg := rule.check(d); msg != "" {
			return nil, invalid(rule.field, msg)
		}
	}
	return d, nil
}

// product converts a validated draft into the model that gets persisted.
func (d *productDraft) product() *models.Product {
	p := &models.Product{
		Name:        strings.TrimSpace(d.in.Name),
		Description: d.in.Description,
		Price:       d.price,
		Quantity:    d.quantity,
		CategoryID:  d.categoryID,
		Shipping:    d.shipping,
	}
	p.Slug = Slugify(p.Name)
	if d.in.Photo != nil {
		p.Photo = &models.Photo{
			Data:        d.in.Photo.Data,
			ContentType: d.in.Photo.ContentType,
		}
	}
	return p
}
