// Package users covers the user document and the two documents keyed by the
// same id by convention: the cart and the wishlist. Account deletion must
// remove all three together.
package users

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	dyn "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/storefrontkit/go-store-admin/internal/aws"
)

// Store encapsulates operations on the users table and the cart/wishlist
// tables that share its key space.
type Store struct {
	client         aws.DynamoDBAPI
	usersTable     string
	cartsTable     string
	wishlistsTable string
}

// NewStore creates a new users Store.
func NewStore(client aws.DynamoDBAPI, usersTable, cartsTable, wishlistsTable string) *Store {
	return &Store{
		client:         client,
		usersTable:     usersTable,
		cartsTable:     cartsTable,
		wishlistsTable: wishlistsTable,
	}
}

// DeleteCascade removes the user document, the cart, and the wishlist for
// uid in one atomic batch. Deleting documents that are already absent
// succeeds, so re-invocation after a completed cleanup is a no-op.
func (s *Store) DeleteCascade(ctx context.Context, uid string) error {
	key := map[string]types.AttributeValue{
		"id": &types.AttributeValueMemberS{Value: uid},
	}
	items := []types.TransactWriteItem{
		{Delete: &types.Delete{TableName: &s.usersTable, Key: key}},
		{Delete: &types.Delete{TableName: &s.cartsTable, Key: key}},
		{Delete: &types.Delete{TableName: &s.wishlistsTable, Key: key}},
	}

	_, err := s.client.TransactWriteItems(ctx, &dyn.TransactWriteItemsInput{
		TransactItems: items,
	})
	if err != nil {
		return fmt.Errorf("cascade delete uid=%s: %w", uid, err)
	}
	return nil
}

// List scans the users table for the dashboard.
func (s *Store) List(ctx context.Context) ([]map[string]interface{}, error) {
	out, err := s.client.Scan(ctx, &dyn.ScanInput{TableName: &s.usersTable})
	if err != nil {
		return nil, fmt.Errorf("scan: %w", err)
	}
	docs := make([]map[string]interface{}, 0, len(out.Items))
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &docs); err != nil {
		return nil, fmt.Errorf("unmarshal users: %w", err)
	}
	return docs, nil
}
