// Package triggers holds the derived-aggregate handlers bound to document
// change events: stock decrement on order creation, rating aggregation on
// review create/delete, and account cleanup on identity deletion. Handlers
// are stateless per invocation and do not coordinate with each other.
package triggers

import (
	"context"
	"fmt"
	"log"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"

	"github.com/storefrontkit/go-store-admin/internal/dedupe"
	"github.com/storefrontkit/go-store-admin/internal/metrics"
	"github.com/storefrontkit/go-store-admin/internal/orders"
	"github.com/storefrontkit/go-store-admin/internal/products"
	"github.com/storefrontkit/go-store-admin/internal/streamconv"
)

// StockProcessor reacts to order-create events on the orders table stream and
// decrements product stock for every line item, one atomic batch per order.
//
// The decrement is a relative adjustment, so redelivered events decrement
// twice unless a dedupe store is configured. With dedupe nil this matches the
// original fire-and-forget behavior, gap included.
type StockProcessor struct {
	products *products.Store
	dedupe   *dedupe.Store
	metrics  *metrics.Publisher
}

// NewStockProcessor wires the processor. dedupe and metrics may be nil.
func NewStockProcessor(productStore *products.Store, dedupeStore *dedupe.Store, m *metrics.Publisher) *StockProcessor {
	return &StockProcessor{
		products: productStore,
		dedupe:   dedupeStore,
		metrics:  m,
	}
}

// Handle processes a DynamoDB stream batch. Only INSERT records matter: line
// items are immutable after creation and there is no decrement on
// modification or deletion.
//
// Store failures are logged and swallowed; triggers have no caller to report
// to, and the platform's redelivery is the only retry there is.
func (p *StockProcessor) Handle(ctx context.Context, ev events.DynamoDBEvent) error {
	for _, rec := range ev.Records {
		if rec.EventName != string(events.DynamoDBOperationTypeInsert) {
			continue
		}
		if err := p.processRecord(ctx, rec); err != nil {
			log.Printf("[stock] order %s", err)
			p.metrics.CountResult(ctx, "stock", false)
			continue
		}
		p.metrics.CountResult(ctx, "stock", true)
	}
	return nil
}

func (p *StockProcessor) processRecord(ctx context.Context, rec events.DynamoDBEventRecord) error {
	img, err := streamconv.FromStreamMap(rec.Change.NewImage)
	if err != nil {
		return fmt.Errorf("convert image: %w", err)
	}

	var order orders.Order
	if err := attributevalue.UnmarshalMap(img, &order); err != nil {
		return fmt.Errorf("unmarshal order: %w", err)
	}
	if order.ID == "" {
		return fmt.Errorf("record missing order id")
	}
	if len(order.Items) == 0 {
		log.Printf("[stock] order=%s has no items, nothing to decrement", order.ID)
		return nil
	}

	if p.dedupe != nil {
		claimed, err := p.dedupe.Claim(ctx, order.ID, "stock")
		if err != nil {
			return fmt.Errorf("claim order=%s: %w", order.ID, err)
		}
		if !claimed {
			log.Printf("[stock] order=%s already processed, skipping redelivery", order.ID)
			return nil
		}
	}

	decs := make([]products.StockDecrement, 0, len(order.Items))
	for _, it := range order.Items {
		decs = append(decs, products.StockDecrement{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
		})
	}

	if err := p.products.ApplyStockDecrements(ctx, decs); err != nil {
		return fmt.Errorf("order=%s: %w", order.ID, err)
	}

	log.Printf("[stock] order=%s processed, stock updated for %d products", order.ID, len(decs))
	return nil
}
