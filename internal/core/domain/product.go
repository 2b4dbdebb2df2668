package domain

import "time"

// Product is a dealer's catalog entry.
type Product struct {
	ID          string    `json:"id" bson:"_id,omitempty"`
	DealerID    string    `json:"dealer_id" bson:"dealer_id"`
	Name        string    `json:"name" bson:"name"`
	Category    string    `json:"category" bson:"category"`
	Brand       string    `json:"brand,omitempty" bson:"brand,omitempty"`
	Description string    `json:"description,omitempty" bson:"description,omitempty"`
	Price       float64   `json:"price" bson:"price"`
	Currency    string    `json:"currency" bson:"currency"`
	Unit        string    `json:"unit,omitempty" bson:"unit,omitempty"`
	InStock     bool      `json:"in_stock" bson:"in_stock"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" bson:"updated_at"`
}
