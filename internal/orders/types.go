package orders

import "time"

// Order statuses
const (
	StatusPending   = "pending"
	StatusShipped   = "shipped"
	StatusDelivered = "delivered"
)

// Item is a single order line: a product reference and a quantity. Price is
// captured at checkout time so the order total stays meaningful after the
// product changes.
type Item struct {
	ProductID string  `dynamodbav:"productId" json:"productId"`
	Quantity  int     `dynamodbav:"quantity" json:"quantity"`
	Price     float64 `dynamodbav:"price,omitempty" json:"price,omitempty"`
}

// Order represents the item stored in the orders table. Line items are
// immutable once the order is created; there is no update path.
type Order struct {
	ID        string    `dynamodbav:"id" json:"id"`
	UserID    string    `dynamodbav:"userId,omitempty" json:"userId,omitempty"`
	Items     []Item    `dynamodbav:"items" json:"items"`
	Total     float64   `dynamodbav:"total" json:"total"`
	Status    string    `dynamodbav:"status" json:"status"`
	CreatedAt time.Time `dynamodbav:"createdAt" json:"createdAt"`
}
