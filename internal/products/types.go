package products

import "time"

// Product is the typed view of a product document. The gateway accepts
// arbitrary extra fields on create; this struct covers the fields the
// triggers and the dashboard depend on.
type Product struct {
	ID         string    `dynamodbav:"id" json:"id"`
	Name       string    `dynamodbav:"name,omitempty" json:"name,omitempty"`
	Brand      string    `dynamodbav:"brand,omitempty" json:"brand,omitempty"`
	Price      float64   `dynamodbav:"price,omitempty" json:"price,omitempty"`
	Stock      int       `dynamodbav:"stock" json:"stock"`
	Rating     float64   `dynamodbav:"rating" json:"rating"`
	NumRatings int       `dynamodbav:"numRatings" json:"numRatings"`
	CreatedAt  time.Time `dynamodbav:"createdAt,omitempty" json:"createdAt,omitempty"`
}

// StockDecrement is one line of an order's stock adjustment.
type StockDecrement struct {
	ProductID string
	Quantity  int
}
