// internal/models/product.go
package models

import (
	"encoding/json"
	"strings"
)

// TagDelimiter separates tags in Product.Tags. Tags containing it do not
// survive a round trip.
const TagDelimiter = ","

type Product struct {
	BaseModel
	Name     string  `json:"name" gorm:"size:255;not null"`
	SKU      string  `json:"sku" gorm:"column:sku;uniqueIndex;size:120;not null"`
	Price    float64 `json:"price" gorm:"type:decimal(10,2);not null"`
	Category string  `json:"category" gorm:"size:120;default:'';index"`
	Tags     string  `json:"-" gorm:"size:255;default:''"`
	ImageURL string  `json:"image_url" gorm:"size:500;default:''"`
	Active   bool    `json:"active" gorm:"not null;index"`
}

func (p *Product) TagList() []string {
	return SplitTags(p.Tags)
}

func (p *Product) SetTags(tags []string) {
	p.Tags = JoinTags(tags)
}

func JoinTags(tags []string) string {
	return strings.Join(tags, TagDelimiter)
}

// SplitTags drops empty segments, so "" yields an empty list.
func SplitTags(s string) []string {
	tags := make([]string, 0)
	for _, t := range strings.Split(s, TagDelimiter) {
		if t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

// MarshalJSON exposes tags as a list.
func (p Product) MarshalJSON() ([]byte, error) {
	type product Product
	return json.Marshal(struct {
		product
		Tags []string `json:"tags"`
	}{product(p), p.TagList()})
}
