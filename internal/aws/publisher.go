package aws

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/service/sqs"
	sqstypes "github.com/aws/aws-sdk-go-v2/service/sqs/types"
)

// Publisher wraps an SQS client and a queue URL.
type Publisher struct {
	SQS      SQSAPI
	QueueURL string
}

// NewPublisher returns a Publisher bound to a queue URL.
func NewPublisher(sqsClient SQSAPI, queueURL string) *Publisher {
	return &Publisher{
		SQS:      sqsClient,
		QueueURL: queueURL,
	}
}

// AccountDeletedMessage is the payload published when an account identity is
// removed. The cleanup trigger consumes it and deletes the user's documents.
type AccountDeletedMessage struct {
	UID string `json:"uid"`
}

// SendAccountDeleted publishes an account-deletion event for uid.
func (p *Publisher) SendAccountDeleted(ctx context.Context, uid, correlationID string) error {
	body, err := json.Marshal(AccountDeletedMessage{UID: uid})
	if err != nil {
		return fmt.Errorf("marshal account deleted message: %w", err)
	}

	attrs := map[string]string{"uid": uid}
	if correlationID != "" {
		attrs["correlation_id"] = correlationID
	}
	return p.send(ctx, string(body), attrs)
}

// send delivers messageBody to the queue. attributes are sent as string
// MessageAttributes.
func (p *Publisher) send(ctx context.Context, messageBody string, attributes map[string]string) error {
	input := &sqs.SendMessageInput{
		QueueUrl:    &p.QueueURL,
		MessageBody: &messageBody,
	}
	if len(attributes) > 0 {
		msgAttrs := map[string]sqstypes.MessageAttributeValue{}
		for k, v := range attributes {
			// using string type for all attrs
			msgAttrs[k] = sqstypes.MessageAttributeValue{
				DataType:    awsString("String"),
				StringValue: &v,
			}
		}
		input.MessageAttributes = msgAttrs
	}

	_, err := p.SQS.SendMessage(ctx, input)
	if err != nil {
		return fmt.Errorf("send message: %w", err)
	}
	return nil
}

// awsString helper
func awsString(s string) *string { return &s }
