package triggers

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	dyn "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// fakeDynamo is an in-memory stand-in for DynamoDB covering exactly the
// operations the stores issue: conditional puts, the two update expressions,
// queries by partition key, scans, and all-or-nothing transact writes.
// NOTE: intentionally minimal, not production-grade.
type fakeDynamo struct {
	mu     sync.Mutex
	keys   map[string][]string // table -> key attribute names (pk[, sk])
	tables map[string]map[string]map[string]types.AttributeValue
}

func newFakeDynamo() *fakeDynamo {
	return &fakeDynamo{
		keys:   map[string][]string{},
		tables: map[string]map[string]map[string]types.AttributeValue{},
	}
}

func (f *fakeDynamo) createTable(name string, keyAttrs ...string) {
	f.keys[name] = keyAttrs
	f.tables[name] = map[string]map[string]types.AttributeValue{}
}

// seed inserts an item bypassing the API surface.
func (f *fakeDynamo) seed(table string, item map[string]types.AttributeValue) {
	k, err := f.keyFromAttrs(table, item)
	if err != nil {
		panic(err)
	}
	f.tables[table][k] = item
}

// lookup reads an item bypassing the API surface. Returns nil if absent.
func (f *fakeDynamo) lookup(table string, keyVals ...string) map[string]types.AttributeValue {
	return f.tables[table][strings.Join(keyVals, "\x00")]
}

func (f *fakeDynamo) keyFromAttrs(table string, attrs map[string]types.AttributeValue) (string, error) {
	names, ok := f.keys[table]
	if !ok {
		return "", fmt.Errorf("unknown table %q", table)
	}
	parts := make([]string, 0, len(names))
	for _, name := range names {
		av, ok := attrs[name].(*types.AttributeValueMemberS)
		if !ok {
			return "", fmt.Errorf("table %q: missing key attribute %q", table, name)
		}
		parts = append(parts, av.Value)
	}
	return strings.Join(parts, "\x00"), nil
}

func (f *fakeDynamo) PutItem(ctx context.Context, params *dyn.PutItemInput, optFns ...func(*dyn.Options)) (*dyn.PutItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	table := *params.TableName
	k, err := f.keyFromAttrs(table, params.Item)
	if err != nil {
		return nil, err
	}
	if params.ConditionExpression != nil && strings.HasPrefix(*params.ConditionExpression, "attribute_not_exists(") {
		if _, exists := f.tables[table][k]; exists {
			return nil, &types.ConditionalCheckFailedException{}
		}
	}
	f.tables[table][k] = params.Item
	return &dyn.PutItemOutput{}, nil
}

func (f *fakeDynamo) GetItem(ctx context.Context, params *dyn.GetItemInput, optFns ...func(*dyn.Options)) (*dyn.GetItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	table := *params.TableName
	k, err := f.keyFromAttrs(table, params.Key)
	if err != nil {
		return nil, err
	}
	item, ok := f.tables[table][k]
	if !ok {
		return &dyn.GetItemOutput{}, nil
	}
	return &dyn.GetItemOutput{Item: item}, nil
}

func (f *fakeDynamo) UpdateItem(ctx context.Context, params *dyn.UpdateItemInput, optFns ...func(*dyn.Options)) (*dyn.UpdateItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	table := *params.TableName
	k, err := f.keyFromAttrs(table, params.Key)
	if err != nil {
		return nil, err
	}
	item, exists := f.tables[table][k]
	if params.ConditionExpression != nil && strings.HasPrefix(*params.ConditionExpression, "attribute_exists(") && !exists {
		return nil, &types.ConditionalCheckFailedException{}
	}
	if !exists {
		item = map[string]types.AttributeValue{}
		for name, v := range params.Key {
			item[name] = v
		}
	}
	if err := applyUpdateExpression(item, *params.UpdateExpression, params.ExpressionAttributeValues); err != nil {
		return nil, err
	}
	f.tables[table][k] = item
	return &dyn.UpdateItemOutput{Attributes: item}, nil
}

func (f *fakeDynamo) Query(ctx context.Context, params *dyn.QueryInput, optFns ...func(*dyn.Options)) (*dyn.QueryOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	table := *params.TableName
	// supports only "<pk> = :val"
	cond := *params.KeyConditionExpression
	parts := strings.SplitN(cond, " = ", 2)
	if len(parts) != 2 {
		return nil, fmt.Errorf("unsupported key condition %q", cond)
	}
	pkName, valRef := strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])
	want, ok := params.ExpressionAttributeValues[valRef].(*types.AttributeValueMemberS)
	if !ok {
		return nil, fmt.Errorf("missing value for %q", valRef)
	}

	out := &dyn.QueryOutput{}
	for _, item := range f.tables[table] {
		if av, ok := item[pkName].(*types.AttributeValueMemberS); ok && av.Value == want.Value {
			out.Items = append(out.Items, item)
		}
	}
	return out, nil
}

func (f *fakeDynamo) Scan(ctx context.Context, params *dyn.ScanInput, optFns ...func(*dyn.Options)) (*dyn.ScanOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := &dyn.ScanOutput{}
	for _, item := range f.tables[*params.TableName] {
		out.Items = append(out.Items, item)
	}
	return out, nil
}

func (f *fakeDynamo) TransactWriteItems(ctx context.Context, params *dyn.TransactWriteItemsInput, optFns ...func(*dyn.Options)) (*dyn.TransactWriteItemsOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	// validation pass first so the batch stays all-or-nothing
	for _, it := range params.TransactItems {
		switch {
		case it.Update != nil:
			u := it.Update
			k, err := f.keyFromAttrs(*u.TableName, u.Key)
			if err != nil {
				return nil, err
			}
			_, exists := f.tables[*u.TableName][k]
			if u.ConditionExpression != nil && strings.HasPrefix(*u.ConditionExpression, "attribute_exists(") && !exists {
				return nil, &types.TransactionCanceledException{}
			}
		case it.Put != nil:
			p := it.Put
			k, err := f.keyFromAttrs(*p.TableName, p.Item)
			if err != nil {
				return nil, err
			}
			if p.ConditionExpression != nil && strings.HasPrefix(*p.ConditionExpression, "attribute_not_exists(") {
				if _, exists := f.tables[*p.TableName][k]; exists {
					return nil, &types.TransactionCanceledException{}
				}
			}
		case it.Delete != nil:
			if _, err := f.keyFromAttrs(*it.Delete.TableName, it.Delete.Key); err != nil {
				return nil, err
			}
		default:
			return nil, errors.New("unsupported transact item")
		}
	}

	// apply pass
	for _, it := range params.TransactItems {
		switch {
		case it.Update != nil:
			u := it.Update
			k, _ := f.keyFromAttrs(*u.TableName, u.Key)
			item := f.tables[*u.TableName][k]
			if item == nil {
				item = map[string]types.AttributeValue{}
				for name, v := range u.Key {
					item[name] = v
				}
			}
			if err := applyUpdateExpression(item, *u.UpdateExpression, u.ExpressionAttributeValues); err != nil {
				return nil, err
			}
			f.tables[*u.TableName][k] = item
		case it.Put != nil:
			k, _ := f.keyFromAttrs(*it.Put.TableName, it.Put.Item)
			f.tables[*it.Put.TableName][k] = it.Put.Item
		case it.Delete != nil:
			k, _ := f.keyFromAttrs(*it.Delete.TableName, it.Delete.Key)
			delete(f.tables[*it.Delete.TableName], k)
		}
	}
	return &dyn.TransactWriteItemsOutput{}, nil
}

// applyUpdateExpression handles the expressions the stores issue:
// arithmetic decrement "SET stock = stock - :q" and plain assignments
// "SET a = :x, b = :y".
func applyUpdateExpression(item map[string]types.AttributeValue, expr string, vals map[string]types.AttributeValue) error {
	if expr == "SET stock = stock - :q" {
		cur, ok := item["stock"].(*types.AttributeValueMemberN)
		if !ok {
			return errors.New("stock attribute missing")
		}
		have, err := strconv.Atoi(cur.Value)
		if err != nil {
			return err
		}
		q, err := strconv.Atoi(vals[":q"].(*types.AttributeValueMemberN).Value)
		if err != nil {
			return err
		}
		item["stock"] = &types.AttributeValueMemberN{Value: strconv.Itoa(have - q)}
		return nil
	}

	body, ok := strings.CutPrefix(expr, "SET ")
	if !ok {
		return fmt.Errorf("unsupported update expression %q", expr)
	}
	for _, clause := range strings.Split(body, ",") {
		parts := strings.SplitN(clause, "=", 2)
		if len(parts) != 2 {
			return fmt.Errorf("unsupported clause %q", clause)
		}
		name, valRef := strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])
		v, ok := vals[valRef]
		if !ok {
			return fmt.Errorf("missing value for %q", valRef)
		}
		item[name] = v
	}
	return nil
}
