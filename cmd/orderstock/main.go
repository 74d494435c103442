// orderstock is the Lambda bound to the orders table stream. It decrements
// product stock once per created order.
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
	"github.com/storefrontkit/go-store-admin/internal/dedupe"
	"github.com/storefrontkit/go-store-admin/internal/metrics"
	"github.com/storefrontkit/go-store-admin/internal/products"
	"github.com/storefrontkit/go-store-admin/internal/triggers"
)

func main() {
	cfg := config.Load(".env")

	clients, err := aws.NewAWSClients(context.Background())
	if err != nil {
		log.Fatalf("failed to init aws clients: %v", err)
	}

	var dedupeStore *dedupe.Store
	if cfg.OrderDedupeTable != "" {
		dedupeStore = dedupe.NewStore(clients.DynamoDB, cfg.OrderDedupeTable, cfg.DedupeTTL)
	}

	p := triggers.NewStockProcessor(
		products.NewStore(clients.DynamoDB, cfg.Tables.Products),
		dedupeStore,
		metrics.NewPublisher(clients.CloudWatch),
	)

	// If RUN_LOCAL=true, replay a stream event from the environment instead
	// of starting the Lambda runtime.
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
