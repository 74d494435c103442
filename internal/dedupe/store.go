// Package dedupe guards non-idempotent trigger work against at-least-once
// event delivery. A conditional put of a processed marker claims the event;
// redeliveries lose the claim and skip the work.
package dedupe

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	dyn "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/smithy-go"
	"github.com/storefrontkit/go-store-admin/internal/aws"
)

// Store encapsulates marker operations against DynamoDB.
type Store struct {
	client    aws.DynamoDBAPI
	tableName string
	ttlWindow time.Duration
	nowFunc   func() time.Time
}

// NewStore returns a configured Store. ttlWindow bounds how long markers are
// kept; it must comfortably exceed the source's redelivery horizon.
func NewStore(client aws.DynamoDBAPI, tableName string, ttlWindow time.Duration) *Store {
	return &Store{
		client:    client,
		tableName: tableName,
		ttlWindow: ttlWindow,
		nowFunc:   time.Now,
	}
}

// Claim attempts to record id as processed by handler.
// Returns (true, nil) if this invocation won the claim and should do the work.
// Returns (false, nil) if a marker already exists — the event is a redelivery.
func (s *Store) Claim(ctx context.Context, id, handler string) (bool, error) {
	now := s.nowFunc()
	m := Marker{
		ID:          id,
		Handler:     handler,
		ProcessedAt: now,
		ExpiresAt:   now.Add(s.ttlWindow).Unix(),
	}

	item, err := attributevalue.MarshalMap(m)
	if err != nil {
		return false, fmt.Errorf("marshal marker: %w", err)
	}

	_, err = s.client.PutItem(ctx, &dyn.PutItemInput{
		TableName:           &s.tableName,
		Item:                item,
		ConditionExpression: awsString("attribute_not_exists(id)"),
	})
	if err != nil {
		var ae smithy.APIError
		if errors.As(err, &ae) && ae.ErrorCode() == "ConditionalCheckFailedException" {
			return false, nil
		}
		return false, fmt.Errorf("put marker: %w", err)
	}
	return true, nil
}

func awsString(s string) *string { return &s }
