package orders

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	dyn "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/storefrontkit/go-store-admin/internal/aws"
)

// Store encapsulates operations on the orders table.
type Store struct {
	client    aws.DynamoDBAPI
	tableName string
	nowFunc   func() time.Time
}

// NewStore creates a new orders Store.
func NewStore(client aws.DynamoDBAPI, tableName string) *Store {
	return &Store{
		client:    client,
		tableName: tableName,
		nowFunc:   time.Now,
	}
}

// Create persists a new order. CreatedAt is stamped here if the caller left
// it zero. The stock trigger reacts to the committed write; the store itself
// does not touch product stock.
func (s *Store) Create(ctx context.Context, o Order) (Order, error) {
	if o.CreatedAt.IsZero() {
		o.CreatedAt = s.nowFunc().UTC()
	}
	if o.Status == "" {
		o.Status = StatusPending
	}

	item, err := attributevalue.MarshalMap(o)
	if err != nil {
		return Order{}, fmt.Errorf("marshal order: %w", err)
	}
	_, err = s.client.PutItem(ctx, &dyn.PutItemInput{
		TableName: &s.tableName,
		Item:      item,
	})
	if err != nil {
		return Order{}, fmt.Errorf("put item: %w", err)
	}
	return o, nil
}

// ListByCreatedAtDesc returns all orders, newest first, as raw documents for
// the dashboard. A scan plus in-memory sort is fine at admin scale; RFC 3339
// timestamps sort lexicographically.
func (s *Store) ListByCreatedAtDesc(ctx context.Context) ([]map[string]interface{}, error) {
	out, err := s.client.Scan(ctx, &dyn.ScanInput{TableName: &s.tableName})
	if err != nil {
		return nil, fmt.Errorf("scan: %w", err)
	}
	docs := make([]map[string]interface{}, 0, len(out.Items))
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &docs); err != nil {
		return nil, fmt.Errorf("unmarshal orders: %w", err)
	}

	sort.SliceStable(docs, func(i, j int) bool {
		return createdAt(docs[i]) > createdAt(docs[j])
	})
	return docs, nil
}

func createdAt(doc map[string]interface{}) string {
	v, _ := doc["createdAt"].(string)
	return v
}
