package validation

// OrderItem is a single checkout line item.
type OrderItem struct {
	ProductID string  `json:"productId" validate:"required"`
	Quantity  int     `json:"quantity" validate:"required,min=1"` // must be >= 1
	Price     float64 `json:"price" validate:"required,gt=0"`     // price per unit
}

// CreateOrderRequest is the payload for POST /api/orders.
type CreateOrderRequest struct {
	UserID string      `json:"userId" validate:"required"`
	Items  []OrderItem `json:"items" validate:"required,min=1,dive"` // at least one item
	Total  float64     `json:"total" validate:"required,gt=0"`       // total the client claims
}
