// ratings is the Lambda bound to the reviews table stream. It recomputes the
// parent product's rating aggregate on every review create or delete.
package main

import (
	"context"
	"encoding/json"
	"log"
	"os"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"

	"github.com/storefrontkit/go-store-admin/internal/aws"
	"github.com/storefrontkit/go-store-admin/internal/config"
	"github.com/storefrontkit/go-store-admin/internal/metrics"
	"github.com/storefrontkit/go-store-admin/internal/products"
	"github.com/storefrontkit/go-store-admin/internal/reviews"
	"github.com/storefrontkit/go-store-admin/internal/triggers"
)

func main() {
	cfg := config.Load(".env")

	clients, err := aws.NewAWSClients(context.Background())
	if err != nil {
		log.Fatalf("failed to init aws clients: %v", err)
	}

	p := triggers.NewRatingProcessor(
		reviews.NewStore(clients.DynamoDB, cfg.Tables.Reviews),
		products.NewStore(clients.DynamoDB, cfg.Tables.Products),
		metrics.NewPublisher(clients.CloudWatch),
	)

	if os.Getenv("RUN_LOCAL") == "true" {
		var ev events.DynamoDBEvent
		if raw := os.Getenv("LOCAL_STREAM_EVENT"); raw != "" {
			if err := json.Unmarshal([]byte(raw), &ev); err != nil {
				log.Fatalf("invalid LOCAL_STREAM_EVENT: %v", err)
			}
		}
		if err := p.Handle(context.Background(), ev); err != nil {
			log.Fatalf("local handler error: %v", err)
		}
		return
	}

	lambda.Start(p.Handle)
}
