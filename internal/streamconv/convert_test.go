package streamconv

import (
	"testing"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
)

func TestFromStreamMap_RoundTripsAnOrderImage(t *testing.T) {
	image := map[string]events.DynamoDBAttributeValue{
		"id":     events.NewStringAttribute("order-1"),
		"total":  events.NewNumberAttribute("25.5"),
		"status": events.NewStringAttribute("pending"),
		"items": events.NewListAttribute([]events.DynamoDBAttributeValue{
			events.NewMapAttribute(map[string]events.DynamoDBAttributeValue{
				"productId": events.NewStringAttribute("P1"),
				"quantity":  events.NewNumberAttribute("2"),
			}),
		}),
		"gift": events.NewBooleanAttribute(true),
		"note": events.NewNullAttribute(),
	}

	converted, err := FromStreamMap(image)
	if err != nil {
		t.Fatalf("FromStreamMap error: %v", err)
	}

	var out struct {
		ID     string  `dynamodbav:"id"`
		Total  float64 `dynamodbav:"total"`
		Status string  `dynamodbav:"status"`
		Items  []struct {
			ProductID string `dynamodbav:"productId"`
			Quantity  int    `dynamodbav:"quantity"`
		} `dynamodbav:"items"`
		Gift bool `dynamodbav:"gift"`
	}
	if err := attributevalue.UnmarshalMap(converted, &out); err != nil {
		t.Fatalf("unmarshal converted image: %v", err)
	}

	if out.ID != "order-1" || out.Total != 25.5 || out.Status != "pending" || !out.Gift {
		t.Errorf("scalar fields wrong: %+v", out)
	}
	if len(out.Items) != 1 || out.Items[0].ProductID != "P1" || out.Items[0].Quantity != 2 {
		t.Errorf("items wrong: %+v", out.Items)
	}
}

func TestFromStreamValue_Sets(t *testing.T) {
	m := map[string]events.DynamoDBAttributeValue{
		"tags":   events.NewStringSetAttribute([]string{"a", "b"}),
		"scores": events.NewNumberSetAttribute([]string{"1", "2"}),
	}
	converted, err := FromStreamMap(m)
	if err != nil {
		t.Fatalf("FromStreamMap error: %v", err)
	}
	var out struct {
		Tags   []string  `dynamodbav:"tags"`
		Scores []float64 `dynamodbav:"scores"`
	}
	if err := attributevalue.UnmarshalMap(converted, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(out.Tags) != 2 || len(out.Scores) != 2 {
		t.Errorf("sets wrong: %+v", out)
	}
}
