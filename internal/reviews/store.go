package reviews

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	dyn "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/storefrontkit/go-store-admin/internal/aws"
)

// Store encapsulates operations on the reviews table.
type Store struct {
	client    aws.DynamoDBAPI
	tableName string
}

// NewStore creates a new reviews Store.
func NewStore(client aws.DynamoDBAPI, tableName string) *Store {
	return &Store{
		client:    client,
		tableName: tableName,
	}
}

// ListByProduct returns every review under productID. The rating trigger
// recomputes aggregates from this full set rather than adjusting
// incrementally.
func (s *Store) ListByProduct(ctx context.Context, productID string) ([]Review, error) {
	out, err := s.client.Query(ctx, &dyn.QueryInput{
		TableName:              &s.tableName,
		KeyConditionExpression: awsString("productId = :pid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pid": &types.AttributeValueMemberS{Value: productID},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("query reviews: %w", err)
	}
	revs := make([]Review, 0, len(out.Items))
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &revs); err != nil {
		return nil, fmt.Errorf("unmarshal reviews: %w", err)
	}
	return revs, nil
}

// Put writes a review document.
func (s *Store) Put(ctx context.Context, r Review) error {
	item, err := attributevalue.MarshalMap(r)
	if err != nil {
		return fmt.Errorf("marshal review: %w", err)
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

func awsString(s string) *string { return &s }
