package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Product struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Name        string             `bson:"name" json:"name"`
	Price       int64              `bson:"price" json:"price"`
	Images      []string           `bson:"images" json:"images"`
	Condition   string             `bson:"condition" json:"condition"`
	Category    string             `bson:"category" json:"category"`
	Seller      Seller             `bson:"seller" json:"seller"`
	Rating      float64            `bson:"rating" json:"rating"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	InStock     bool               `bson:"inStock" json:"inStock"`
	Variants    []Variant          `bson:"variants,omitempty" json:"variants,omitempty"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
}

// Variant is a purchasable configuration of a product (subscription length etc.)
// with its own price. When a product has variants, the checkout price is always
// the selected variant's price.
type Variant struct {
	ID       string   `bson:"id" json:"id"`
	Name     string   `bson:"name" json:"name"`
	Price    int64    `bson:"price" json:"price"`
	Period   string   `bson:"period,omitempty" json:"period,omitempty"`
	Features []string `bson:"features,omitempty" json:"features,omitempty"`
}

type Seller struct {
	ID     string  `bson:"id" json:"id"`
	Name   string  `bson:"name" json:"name"`
	Avatar string  `bson:"avatar,omitempty" json:"avatar,omitempty"`
	Rating float64 `bson:"rating" json:"rating"`
}

// VariantByID returns the variant with the given id, or nil.
func (p *Product) VariantByID(id string) *Variant {
	for i := range p.Variants {
		if p.Variants[i].ID == id {
			return &p.Variants[i]
		}
	}
	return nil
}

// CheckoutPrice is the variant price when a variant is selected, else the base price.
func (p *Product) CheckoutPrice(variantID string) int64 {
	if variantID != "" {
		if v := p.VariantByID(variantID); v != nil {
			return v.Price
		}
	}
	return p.Price
}
