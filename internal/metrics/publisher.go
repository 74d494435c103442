// Package metrics emits per-handler outcome counters to CloudWatch. Trigger
// failures never reach a caller, so the metric is the only operator-visible
// signal besides the logs.
package metrics

import (
	"context"
	"log"

	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	cwtypes "github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
	"github.com/storefrontkit/go-store-admin/internal/aws"
)

const namespace = "StoreAdmin/Triggers"

// Publisher wraps a CloudWatch client. A nil Publisher is valid and records
// nothing, so handlers can run without metrics wired.
type Publisher struct {
	client aws.CloudWatchAPI
}

// NewPublisher returns a Publisher backed by client.
func NewPublisher(client aws.CloudWatchAPI) *Publisher {
	return &Publisher{client: client}
}

// CountResult records one success or failure for handler. Best-effort: a
// metric delivery error is logged and otherwise ignored so it can never
// change a handler's outcome.
func (p *Publisher) CountResult(ctx context.Context, handler string, ok bool) {
	if p == nil || p.client == nil {
		return
	}

	name := "HandlerSuccess"
	if !ok {
		name = "HandlerFailure"
	}

	_, err := p.client.PutMetricData(ctx, &cloudwatch.PutMetricDataInput{
		Namespace: awsString(namespace),
		MetricData: []cwtypes.MetricDatum{
			{
				MetricName: awsString(name),
				Unit:       cwtypes.StandardUnitCount,
				Value:      awsFloat(1),
				Dimensions: []cwtypes.Dimension{
					{Name: awsString("Handler"), Value: awsString(handler)},
				},
			},
		},
	})
	if err != nil {
		log.Printf("[metrics] put metric data: %v", err)
	}
}

func awsString(s string) *string { return &s }

func awsFloat(f float64) *float64 { return &f }
