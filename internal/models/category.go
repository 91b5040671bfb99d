package models

import (
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Category struct {
	ID           primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Name         string              `bson:"name" json:"name"`
	Slug         string              `bson:"slug" json:"slug"`
	ParentID     *primitive.ObjectID `bson:"parentId,omitempty" json:"parentId,omitempty"`
	Featured     bool                `bson:"featured" json:"featured"`
	DisplayOrder int                 `bson:"displayOrder" json:"displayOrder"`
}

// Slugify derives a URL slug from a category name: lowercased, runs of
// non-alphanumerics collapsed to single hyphens, edges trimmed.
func Slugify(name string) string {
	var b strings.Builder
	lastHyphen := true
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
