package services

import "github.com/gosimple/slug"

// Slugify derives the URL-safe, lowercased, hyphenated form of a display name.
func Slugify(name string) string {
	return slug.Make(name)
}
