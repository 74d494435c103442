package triggers

import (
	"context"
	"fmt"
	"log"

	"github.com/aws/aws-lambda-go/events"

	"github.com/storefrontkit/go-store-admin/internal/metrics"
	"github.com/storefrontkit/go-store-admin/internal/products"
	"github.com/storefrontkit/go-store-admin/internal/reviews"
)

// RatingProcessor reacts to review create and delete events and rewrites the
// parent product's rating aggregate.
//
// It recomputes from a full scan of the product's reviews instead of
// adjusting incrementally, so redelivered or reordered events converge on the
// same value. Keep it that way: an incremental version reintroduces the
// at-least-once double-count problem.
type RatingProcessor struct {
	reviews  *reviews.Store
	products *products.Store
	metrics  *metrics.Publisher
}

// NewRatingProcessor wires the processor. metrics may be nil.
func NewRatingProcessor(reviewStore *reviews.Store, productStore *products.Store, m *metrics.Publisher) *RatingProcessor {
	return &RatingProcessor{
		reviews:  reviewStore,
		products: productStore,
		metrics:  m,
	}
}

// Handle processes a reviews-table stream batch. INSERT and REMOVE records
// share the same recomputation; the review payload itself is not used beyond
// locating the parent product.
func (p *RatingProcessor) Handle(ctx context.Context, ev events.DynamoDBEvent) error {
	for _, rec := range ev.Records {
		switch rec.EventName {
		case string(events.DynamoDBOperationTypeInsert), string(events.DynamoDBOperationTypeRemove):
		default:
			continue
		}

		keyAttr, ok := rec.Change.Keys["productId"]
		if !ok || keyAttr.DataType() != events.DataTypeString {
			log.Printf("[ratings] record missing productId key, skipping")
			p.metrics.CountResult(ctx, "ratings", false)
			continue
		}
		productID := keyAttr.String()

		if err := p.Recompute(ctx, productID); err != nil {
			log.Printf("[ratings] product=%s: %v", productID, err)
			p.metrics.CountResult(ctx, "ratings", false)
			continue
		}
		p.metrics.CountResult(ctx, "ratings", true)
	}
	return nil
}

// Recompute reads the current review set under productID and writes the mean
// rating and count to the product. Zero reviews yields rating 0. Safe to call
// any number of times; the result depends only on store state at read time.
func (p *RatingProcessor) Recompute(ctx context.Context, productID string) error {
	revs, err := p.reviews.ListByProduct(ctx, productID)
	if err != nil {
		return fmt.Errorf("list reviews: %w", err)
	}

	var total float64
	for _, r := range revs {
		total += r.Rating
	}
	count := len(revs)
	mean := 0.0
	if count > 0 {
		mean = total / float64(count)
	}

	if err := p.products.SetRating(ctx, productID, mean, count); err != nil {
		return err
	}

	log.Printf("[ratings] product=%s rating=%g numRatings=%d", productID, mean, count)
	return nil
}
