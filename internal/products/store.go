package products

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	dyn "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/storefrontkit/go-store-admin/internal/aws"
)

// Store encapsulates operations on the products table.
type Store struct {
	client    aws.DynamoDBAPI
	tableName string
}

// NewStore creates a new products Store.
func NewStore(client aws.DynamoDBAPI, tableName string) *Store {
	return &Store{
		client:    client,
		tableName: tableName,
	}
}

// ErrBatchCanceled indicates the decrement batch was rejected as a whole,
// typically because a line item referenced a product that does not exist.
var ErrBatchCanceled = errors.New("stock decrement batch canceled")

// ApplyStockDecrements subtracts the ordered quantity from each referenced
// product's stock in a single TransactWriteItems call. The batch is
// all-or-nothing: a line item naming an unknown product fails the whole
// transaction and no stock changes.
//
// The decrements are relative adjustments, not recomputed values, so the
// caller must ensure this runs once per order.
func (s *Store) ApplyStockDecrements(ctx context.Context, decs []StockDecrement) error {
	if len(decs) == 0 {
		return nil
	}

	items := make([]types.TransactWriteItem, 0, len(decs))
	for _, d := range decs {
		items = append(items, types.TransactWriteItem{
			Update: &types.Update{
				TableName: &s.tableName,
				Key: map[string]types.AttributeValue{
					"id": &types.AttributeValueMemberS{Value: d.ProductID},
				},
				UpdateExpression:    awsString("SET stock = stock - :q"),
				ConditionExpression: awsString("attribute_exists(id)"),
				ExpressionAttributeValues: map[string]types.AttributeValue{
					":q": &types.AttributeValueMemberN{Value: strconv.Itoa(d.Quantity)},
				},
			},
		})
	}

	_, err := s.client.TransactWriteItems(ctx, &dyn.TransactWriteItemsInput{
		TransactItems: items,
	})
	if err != nil {
		var tce *types.TransactionCanceledException
		if errors.As(err, &tce) {
			return fmt.Errorf("%w: %v", ErrBatchCanceled, err)
		}
		return fmt.Errorf("transact write: %w", err)
	}
	return nil
}

// SetRating writes the recomputed rating aggregate to the product document.
// Direct field update, not a batch.
func (s *Store) SetRating(ctx context.Context, productID string, rating float64, numRatings int) error {
	_, err := s.client.UpdateItem(ctx, &dyn.UpdateItemInput{
		TableName: &s.tableName,
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: productID},
		},
		UpdateExpression:    awsString("SET rating = :r, numRatings = :n"),
		ConditionExpression: awsString("attribute_exists(id)"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":r": &types.AttributeValueMemberN{Value: strconv.FormatFloat(rating, 'f', -1, 64)},
			":n": &types.AttributeValueMemberN{Value: strconv.Itoa(numRatings)},
		},
	})
	if err != nil {
		return fmt.Errorf("update rating: %w", err)
	}
	return nil
}

// Get fetches a product by id. Returns (nil, nil) if not found.
func (s *Store) Get(ctx context.Context, productID string) (*Product, error) {
	out, err := s.client.GetItem(ctx, &dyn.GetItemInput{
		TableName: &s.tableName,
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: productID},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("get item: %w", err)
	}
	if len(out.Item) == 0 {
		return nil, nil
	}
	var p Product
	if err := attributevalue.UnmarshalMap(out.Item, &p); err != nil {
		return nil, fmt.Errorf("unmarshal product: %w", err)
	}
	return &p, nil
}

// Create persists a product document. The caller supplies the full field map
// including the generated id; fields beyond the typed schema are preserved
// as-is.
func (s *Store) Create(ctx context.Context, doc map[string]interface{}) error {
	item, err := attributevalue.MarshalMap(doc)
	if err != nil {
		return fmt.Errorf("marshal product: %w", err)
	}
	_, err = s.client.PutItem(ctx, &dyn.PutItemInput{
		TableName: &s.tableName,
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("put item: %w", err)
	}
	return nil
}

// List scans the whole table and returns raw documents. Admin-dashboard
// scale; no pagination.
func (s *Store) List(ctx context.Context) ([]map[string]interface{}, error) {
	out, err := s.client.Scan(ctx, &dyn.ScanInput{TableName: &s.tableName})
	if err != nil {
		return nil, fmt.Errorf("scan: %w", err)
	}
	docs := make([]map[string]interface{}, 0, len(out.Items))
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &docs); err != nil {
		return nil, fmt.Errorf("unmarshal products: %w", err)
	}
	return docs, nil
}

func awsString(s string) *string { return &s }
