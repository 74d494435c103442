// usercleanup is the Lambda consuming account-deletion events. It removes the
// user document, cart, and wishlist in one atomic batch.
package main

import (
	"context"
	"log"
	"os"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"

	"github.com/storefrontkit/go-store-admin/internal/aws"
	"github.com/storefrontkit/go-store-admin/internal/config"
	"github.com/storefrontkit/go-store-admin/internal/metrics"
	"github.com/storefrontkit/go-store-admin/internal/triggers"
	"github.com/storefrontkit/go-store-admin/internal/users"
)

func main() {
	cfg := config.Load(".env")

	clients, err := aws.NewAWSClients(context.Background())
	if err != nil {
		log.Fatalf("failed to init aws clients: %v", err)
	}

	p := triggers.NewCleanupProcessor(
		users.NewStore(clients.DynamoDB, cfg.Tables.Users, cfg.Tables.Carts, cfg.Tables.Wishlists),
		metrics.NewPublisher(clients.CloudWatch),
	)

	// Local testing helper: simulate a single SQS event from the environment.
	if os.Getenv("RUN_LOCAL") == "true" {
		testBody := os.Getenv("LOCAL_SQS_BODY")
		if testBody == "" {
			testBody = `{"uid":"local-user-1"}`
		}
		ev := events.SQSEvent{
			Records: []events.SQSMessage{
				{Body: testBody},
			},
		}
		if err := p.Handle(context.Background(), ev); err != nil {
			log.Fatalf("local handler error: %v", err)
		}
		return
	}

	lambda.Start(p.Handle)
}
