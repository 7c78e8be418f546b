package models

import (
	"time"

	"github.com/gocql/gocql"
)

type Product struct {
	ID          gocql.UUID `json:"id" db:"product_id"`
	Name        string     `json:"name" db:"name"`
	Description string     `json:"description" db:"description"`
	Price       float64    `json:"price" db:"price"`
	Category    string     `json:"category" db:"category"`
	Brand       string     `json:"brand" db:"brand"`
	Stock       int        `json:"stock" db:"stock"`
	Images      []string   `json:"images" db:"images"`
	Rating      float64    `json:"rating" db:"rating"`
	NumReviews  int        `json:"numReviews" db:"num_reviews"`
	Featured    bool       `json:"featured" db:"featured"`
	CreatedAt   time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time  `json:"updatedAt" db:"updated_at"`
}

// Categories is the fixed set a product may belong to. It mirrors the
// storefront's filter sidebar.
var Categories = []string{
	"Electronics",
	"Clothing",
	"Home & Garden",
	"Sports",
	"Books",
	"Beauty",
	"Toys",
	"Automotive",
}

func IsValidCategory(category string) bool {
	for _, c := range Categories {
		if c == category {
			return true
		}
	}
	return false
}
