package models

import "time"

// Product condition values accepted by the listing endpoints.
const (
	ConditionBrandNew = "brand-new"
	ConditionLikeNew  = "like-new"
	ConditionGood     = "good"
	ConditionFair     = "fair"
	ConditionPoor     = "poor"
)

// ValidCondition reports whether c is one of the accepted condition values.
func ValidCondition(c string) bool {
	switch c {
	case ConditionBrandNew, ConditionLikeNew, ConditionGood, ConditionFair, ConditionPoor:
		return true
	}
	return false
}

// Product is a listing record. Seller fields are a snapshot taken at creation
// time; later profile edits never change historical listings. ImageURL is
// computed at read time from ImagePath and is never persisted.
type Product struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Price       float64   `json:"price"`
	Condition   string    `json:"condition"`
	ImagePath   string    `json:"imagePath,omitempty"`
	ImageURL    string    `json:"imageUrl,omitempty"`
	SellerID    string    `json:"sellerId"`
	SellerName  string    `json:"sellerName"`
	SellerEmail string    `json:"sellerEmail"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
}
