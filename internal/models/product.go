package models

import (
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Review struct {
	UserID    primitive.ObjectID `bson:"userId" json:"userId"`
	Name      string             `bson:"name" json:"name"`
	Rating    int                `bson:"rating" json:"rating"`
	Comment   string             `bson:"comment" json:"comment"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

type Product struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description" json:"description"`
	Price       float64            `bson:"price" json:"price"`
	MRP         float64            `bson:"mrp" json:"mrp"`
	Discount    int                `bson:"discount" json:"discount"`
	Stock       int                `bson:"stock" json:"stock"`
	CategoryID  primitive.ObjectID `bson:"categoryId" json:"categoryId"`
	Images      []string           `bson:"images" json:"images"`
	Reviews     []Review           `bson:"reviews" json:"reviews"`
	Rating      float64            `bson:"rating" json:"rating"`
	Featured    bool               `bson:"featured" json:"featured"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// ComputeDiscount derives the discount percentage from mrp and selling
// price, clamped to [0,100]. Zero when mrp is unset or not above zero.
func ComputeDiscount(price, mrp float64) int {
	if mrp <= 0 || price >= mrp {
		return 0
	}
	pct := decimal.NewFromFloat(mrp - price).
		Div(decimal.NewFromFloat(mrp)).
		Mul(decimal.NewFromInt(100)).
		Round(0)
	d := int(pct.IntPart())
	if d < 0 {
		d = 0
	}
	if d > 100 {
		d = 100
	}
	return d
}

// RatingMean returns the arithmetic mean of review ratings rounded to
// one decimal place, or 0 when there are no reviews.
func RatingMean(reviews []Review) float64 {
	if len(reviews) == 0 {
		return 0
	}
	sum := decimal.Zero
	for _, r := range reviews {
		sum = sum.Add(decimal.NewFromInt(int64(r.Rating)))
	}
	mean, _ := sum.Div(decimal.NewFromInt(int64(len(reviews)))).Round(1).Float64()
	return mean
}

// HasReviewBy reports whether the user already reviewed the product.
func (p *Product) HasReviewBy(userID primitive.ObjectID) bool {
	for _, r := range p.Reviews {
		if r.UserID == userID {
			return true
		}
	}
	return false
}
