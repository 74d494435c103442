package dedupe

import "time"

// Marker records that a change event was already processed. Keyed by the
// source document id; expires via the table's TTL attribute so the table
// does not grow without bound.
type Marker struct {
	ID          string    `dynamodbav:"id"` // PK
	Handler     string    `dynamodbav:"handler,omitempty"`
	ProcessedAt time.Time `dynamodbav:"processedAt"`
	ExpiresAt   int64     `dynamodbav:"expiresAt"` // TTL epoch seconds
}
