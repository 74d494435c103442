package triggers

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/aws/aws-lambda-go/events"

	"github.com/storefrontkit/go-store-admin/internal/aws"
	"github.com/storefrontkit/go-store-admin/internal/metrics"
	"github.com/storefrontkit/go-store-admin/internal/users"
)

// CleanupProcessor consumes account-deletion events and removes the user's
// documents (user, cart, wishlist) in one atomic batch. Deleting absent
// documents succeeds, so the handler is naturally idempotent.
//
// The user's reviews are not touched; nothing links them back to the account
// in the key schema. Known gap, matches the dashboard's behavior.
type CleanupProcessor struct {
	users   *users.Store
	metrics *metrics.Publisher
}

// NewCleanupProcessor wires the processor. metrics may be nil.
func NewCleanupProcessor(userStore *users.Store, m *metrics.Publisher) *CleanupProcessor {
	return &CleanupProcessor{
		users:   userStore,
		metrics: m,
	}
}

// Handle processes an SQS batch of account-deletion messages. A malformed
// body is returned as an error so the queue's redrive policy can park it;
// store failures are logged and swallowed like the other triggers.
func (p *CleanupProcessor) Handle(ctx context.Context, ev events.SQSEvent) error {
	for _, rec := range ev.Records {
		var msg aws.AccountDeletedMessage
		if err := json.Unmarshal([]byte(rec.Body), &msg); err != nil {
			return fmt.Errorf("invalid message body: %w", err)
		}
		if msg.UID == "" {
			return fmt.Errorf("message %s missing uid", rec.MessageId)
		}

		if err := p.users.DeleteCascade(ctx, msg.UID); err != nil {
			log.Printf("[cleanup] uid=%s: %v", msg.UID, err)
			p.metrics.CountResult(ctx, "cleanup", false)
			continue
		}

		log.Printf("[cleanup] uid=%s data cleaned up", msg.UID)
		p.metrics.CountResult(ctx, "cleanup", true)
	}
	return nil
}
