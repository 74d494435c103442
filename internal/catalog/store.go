// Package catalog provides read-only listing over the small reference
// collections the dashboard renders verbatim (categories, seller
// applications).
package catalog

import (
	"context"
	"fmt"
	"sort"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	dyn "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/storefrontkit/go-store-admin/internal/aws"
)

// Store is a generic lister bound to one table.
type Store struct {
	client    aws.DynamoDBAPI
	tableName string
}

// NewStore creates a Store for tableName.
func NewStore(client aws.DynamoDBAPI, tableName string) *Store {
	return &Store{
		client:    client,
		tableName: tableName,
	}
}

// List returns every document in the table.
func (s *Store) List(ctx context.Context) ([]map[string]interface{}, error) {
	out, err := s.client.Scan(ctx, &dyn.ScanInput{TableName: &s.tableName})
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", s.tableName, err)
	}
	docs := make([]map[string]interface{}, 0, len(out.Items))
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &docs); err != nil {
		return nil, fmt.Errorf("unmarshal %s: %w", s.tableName, err)
	}
	return docs, nil
}

// ListByCreatedAtDesc returns every document, newest first.
func (s *Store) ListByCreatedAtDesc(ctx context.Context) ([]map[string]interface{}, error) {
	docs, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(docs, func(i, j int) bool {
		a, _ := docs[i]["createdAt"].(string)
		b, _ := docs[j]["createdAt"].(string)
		return a > b
	})
	return docs, nil
}
