package reviews

import "time"

// Review lives under a parent product: the table key is
// (productId, id), mirroring the dashboard's subcollection layout.
type Review struct {
	ProductID string    `dynamodbav:"productId" json:"productId"`
	ID        string    `dynamodbav:"id" json:"id"`
	Rating    float64   `dynamodbav:"rating" json:"rating"`
	AuthorID  string    `dynamodbav:"authorId,omitempty" json:"authorId,omitempty"`
	CreatedAt time.Time `dynamodbav:"createdAt,omitempty" json:"createdAt,omitempty"`
}
