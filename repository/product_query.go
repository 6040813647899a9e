package repository

import (
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ProductQuery describes a read over the products collection.
// Zero values mean "no constraint"; Limit 0 means unlimited.
type ProductQuery struct {
	CategoryIDs []primitive.ObjectID
	ExcludeID   *primitive.ObjectID
	MinPrice    *float64
	MaxPrice    *float64
	Keyword     string
	Limit       int64
	Skip        int64
	NewestFirst bool
}

// Filter builds the bson filter for q.
func (q ProductQuery) Filter() bson.M {
	filter := bson.M{}

	switch len(q.CategoryIDs) {
	case 0:
	case 1:
		filter["category"] = q.CategoryIDs[0]
	default:
		filter["category"] = bson.M{"$in": q.CategoryIDs}
	}

	if q.ExcludeID != nil {
		filter["_id"] = bson.M{"$ne": *q.ExcludeID}
	}

	if q.MinPrice != nil || q.MaxPrice != nil {
		price := bson.M{}
		if q.MinPrice != nil {
			price["$gte"] = *q.MinPrice
		}
		if q.MaxPrice != nil {
			price["$lte"] = *q.MaxPrice
		}
		filter["price"] = price
	}

	if q.Keyword != "" {
		pattern := primitive.Regex{Pattern: regexp.QuoteMeta(q.Keyword), Options: "i"}
		filter["$or"] = bson.A{
			bson.M{"name": pattern},
			bson.M{"description": pattern},
		}
	}

	return filter
}

// FindOptions builds limit/skip/sort options for q. The photo is always projected away.
func (q ProductQuery) FindOptions() *options.FindOptions {
	opts := options.Find().SetProjection(withoutPhoto)
	if q.Limit > 0 {
		opts.SetLimit(q.Limit)
	}
	if q.Skip > 0 {
		opts.SetSkip(q.Skip)
	}
	if q.NewestFirst {
		opts.SetSort(bson.D{{Key: "createdAt", Value: -1}})
	}
	return opts
}

var withoutPhoto = bson.M{"photo": 0}
