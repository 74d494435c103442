// Package streamconv converts DynamoDB Streams attribute values, as delivered
// by aws-lambda-go, into SDK v2 attribute values so stream images can be
// unmarshaled with the attributevalue feature package. The two libraries use
// incompatible representations of the same wire type.
package streamconv

import (
	"fmt"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// FromStreamMap converts a full stream image (Keys, NewImage, OldImage).
func FromStreamMap(in map[string]events.DynamoDBAttributeValue) (map[string]types.AttributeValue, error) {
	out := make(map[string]types.AttributeValue, len(in))
	for k, v := range in {
		av, err := FromStreamValue(v)
		if err != nil {
			return nil, fmt.Errorf("attribute %q: %w", k, err)
		}
		out[k] = av
	}
	return out, nil
}

// FromStreamValue converts a single attribute value.
func FromStreamValue(in events.DynamoDBAttributeValue) (types.AttributeValue, error) {
	switch in.DataType() {
	case events.DataTypeString:
		return &types.AttributeValueMemberS{Value: in.String()}, nil
	case events.DataTypeNumber:
		return &types.AttributeValueMemberN{Value: in.Number()}, nil
	case events.DataTypeBoolean:
		return &types.AttributeValueMemberBOOL{Value: in.Boolean()}, nil
	case events.DataTypeNull:
		return &types.AttributeValueMemberNULL{Value: true}, nil
	case events.DataTypeBinary:
		return &types.AttributeValueMemberB{Value: in.Binary()}, nil
	case events.DataTypeStringSet:
		return &types.AttributeValueMemberSS{Value: in.StringSet()}, nil
	case events.DataTypeNumberSet:
		return &types.AttributeValueMemberNS{Value: in.NumberSet()}, nil
	case events.DataTypeBinarySet:
		return &types.AttributeValueMemberBS{Value: in.BinarySet()}, nil
	case events.DataTypeList:
		items := in.List()
		list := make([]types.AttributeValue, 0, len(items))
		for i, item := range items {
			av, err := FromStreamValue(item)
			if err != nil {
				return nil, fmt.Errorf("list index %d: %w", i, err)
			}
			list = append(list, av)
		}
		return &types.AttributeValueMemberL{Value: list}, nil
	case events.DataTypeMap:
		m, err := FromStreamMap(in.Map())
		if err != nil {
			return nil, err
		}
		return &types.AttributeValueMemberM{Value: m}, nil
	default:
		return nil, fmt.Errorf("unsupported stream attribute type %v", in.DataType())
	}
}
