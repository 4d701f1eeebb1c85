package repository

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"flux-web/internal/domain"
)

// codec maps one record type to and from its DynamoDB item. encode returns
// the record attributes only; the table adds the keys.
type codec[T any] struct {
	kind   string
	id     func(T) string
	encode func(T) map[string]types.AttributeValue
	decode func(*itemReader) T
}

// Table is the CRUD gateway for one record kind. Records live under
// PK = kind, SK = id.
type Table[T any] struct {
	c     *Client
	codec codec[T]
}

func newTable[T any](c *Client, cd codec[T]) *Table[T] {
	return &Table[T]{c: c, codec: cd}
}

func (t *Table[T]) key(id string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"PK": strValue(t.codec.kind),
		"SK": strValue(id),
	}
}

func (t *Table[T]) item(rec T) map[string]types.AttributeValue {
	item := t.codec.encode(rec)
	item["PK"] = strValue(t.codec.kind)
	item["SK"] = strValue(t.codec.id(rec))
	return item
}

func (t *Table[T]) decode(item map[string]types.AttributeValue) (T, error) {
	r := &itemReader{item: item}
	rec := t.codec.decode(r)
	if r.err != nil {
		var zero T
		return zero, r.err
	}
	return rec, nil
}

// List returns every record of the kind matching all equality conditions
// in where, following pagination to the end.
func (t *Table[T]) List(ctx context.Context, where domain.Where) ([]T, error) {
	in := &dynamodb.QueryInput{
		TableName:              aws.String(t.c.tableName),
		KeyConditionExpression: aws.String("PK = :pk"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pk": strValue(t.codec.kind),
		},
	}
	if len(where) > 0 {
		expr, names, values, err := conditionExpression("w", where, " AND ")
		if err != nil {
			return nil, fmt.Errorf("repository: List %s: %w", t.codec.kind, err)
		}
		in.FilterExpression = aws.String(expr)
		in.ExpressionAttributeNames = names
		for k, v := range values {
			in.ExpressionAttributeValues[k] = v
		}
	}

	var out []T
	for {
		page, err := t.c.api.Query(ctx, in)
		if err != nil {
			return nil, fmt.Errorf("repository: List %s query: %w", t.codec.kind, err)
		}
		for _, item := range page.Items {
			rec, err := t.decode(item)
			if err != nil {
				return nil, fmt.Errorf("repository: List %s unmarshal: %w", t.codec.kind, err)
			}
			out = append(out, rec)
		}
		if len(page.LastEvaluatedKey) == 0 {
			return out, nil
		}
		in.ExclusiveStartKey = page.LastEvaluatedKey
	}
}

// Get returns the record with id or domain.ErrNotFound.
func (t *Table[T]) Get(ctx context.Context, id string) (T, error) {
	var zero T
	out, err := t.c.api.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(t.c.tableName),
		Key:            t.key(id),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return zero, fmt.Errorf("repository: Get %s: %w", t.codec.kind, err)
	}
	if out == nil || len(out.Item) == 0 {
		return zero, errNotFound("Get " + t.codec.kind)
	}
	rec, err := t.decode(out.Item)
	if err != nil {
		return zero, fmt.Errorf("repository: Get %s unmarshal: %w", t.codec.kind, err)
	}
	return rec, nil
}

// Create inserts rec. An existing record with the same id is a conflict.
func (t *Table[T]) Create(ctx context.Context, rec T) (T, error) {
	if strings.TrimSpace(t.codec.id(rec)) == "" {
		var zero T
		return zero, fmt.Errorf("repository: Create %s: id is required", t.codec.kind)
	}
	_, err := t.c.api.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(t.c.tableName),
		Item:                t.item(rec),
		ConditionExpression: aws.String("attribute_not_exists(PK) AND attribute_not_exists(SK)"),
	})
	if err != nil {
		var zero T
		return zero, fmt.Errorf("repository: Create %s: %w", t.codec.kind, mapConditionErr(err, domain.ErrConflict))
	}
	return rec, nil
}

// Update sets the given attributes on an existing record and returns the
// stored result.
func (t *Table[T]) Update(ctx context.Context, id string, fields domain.Fields) (T, error) {
	return t.update(ctx, id, fields, nil)
}

// UpdateIf is Update guarded by equality conditions on the stored record.
// A record that no longer matches cond yields domain.ErrConflict.
func (t *Table[T]) UpdateIf(ctx context.Context, id string, fields domain.Fields, cond domain.Where) (T, error) {
	if len(cond) == 0 {
		var zero T
		return zero, fmt.Errorf("repository: UpdateIf %s: no conditions", t.codec.kind)
	}
	return t.update(ctx, id, fields, cond)
}

func (t *Table[T]) update(ctx context.Context, id string, fields domain.Fields, cond domain.Where) (T, error) {
	var zero T
	if len(fields) == 0 {
		return zero, fmt.Errorf("repository: Update %s: no fields to update", t.codec.kind)
	}
	for k := range fields {
		if k == "PK" || k == "SK" || k == "id" {
			return zero, fmt.Errorf("repository: Update %s: attribute %q is immutable", t.codec.kind, k)
		}
	}
	assignments, names, values, err := conditionExpression("u", domain.Where(fields), ", ")
	if err != nil {
		return zero, fmt.Errorf("repository: Update %s: %w", t.codec.kind, err)
	}

	in := &dynamodb.UpdateItemInput{
		TableName:                 aws.String(t.c.tableName),
		Key:                       t.key(id),
		UpdateExpression:          aws.String("SET " + assignments),
		ConditionExpression:       aws.String("attribute_exists(PK)"),
		ExpressionAttributeNames:  names,
		ExpressionAttributeValues: values,
		ReturnValues:              types.ReturnValueAllNew,
	}
	if len(cond) > 0 {
		guard, condNames, condValues, err := conditionExpression("c", cond, " AND ")
		if err != nil {
			return zero, fmt.Errorf("repository: Update %s: %w", t.codec.kind, err)
		}
		in.ConditionExpression = aws.String("attribute_exists(PK) AND " + guard)
		for k, v := range condNames {
			in.ExpressionAttributeNames[k] = v
		}
		for k, v := range condValues {
			in.ExpressionAttributeValues[k] = v
		}
		// The old item tells a missing record apart from a failed guard.
		in.ReturnValuesOnConditionCheckFailure = types.ReturnValuesOnConditionCheckFailureAllOld
	}

	out, err := t.c.api.UpdateItem(ctx, in)
	if err != nil {
		return zero, fmt.Errorf("repository: Update %s: %w", t.codec.kind, updateConditionErr(err))
	}
	if out == nil || len(out.Attributes) == 0 {
		return zero, fmt.Errorf("repository: Update %s: empty result", t.codec.kind)
	}
	rec, err := t.decode(out.Attributes)
	if err != nil {
		return zero, fmt.Errorf("repository: Update %s unmarshal: %w", t.codec.kind, err)
	}
	return rec, nil
}

// updateConditionErr maps a failed update condition: no stored item means
// the record is gone, otherwise its guard no longer holds.
func updateConditionErr(err error) error {
	var ccf *types.ConditionalCheckFailedException
	if errors.As(err, &ccf) && len(ccf.Item) > 0 {
		return domain.ErrConflict
	}
	return mapConditionErr(err, domain.ErrNotFound)
}

// Delete removes the record with id or returns domain.ErrNotFound.
func (t *Table[T]) Delete(ctx context.Context, id string) error {
	_, err := t.c.api.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName:           aws.String(t.c.tableName),
		Key:                 t.key(id),
		ConditionExpression: aws.String("attribute_exists(PK)"),
	})
	if err != nil {
		return fmt.Errorf("repository: Delete %s: %w", t.codec.kind, mapConditionErr(err, domain.ErrNotFound))
	}
	return nil
}

// conditionExpression renders "#p0 = :p0<sep>#p1 = :p1" for the given
// attributes in key order, so the same input always gives the same text.
func conditionExpression(prefix string, attrs domain.Where, sep string) (string, map[string]string, map[string]types.AttributeValue, error) {
	if len(attrs) == 0 {
		return "", nil, nil, errors.New("no attributes")
	}
	keys := make([]string, 0, len(attrs))
	for k := range attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	names := make(map[string]string, len(keys))
	values := make(map[string]types.AttributeValue, len(keys))
	for i, k := range keys {
		v, err := attrValue(attrs[k])
		if err != nil {
			return "", nil, nil, fmt.Errorf("attribute %q: %w", k, err)
		}
		name := fmt.Sprintf("#%s%d", prefix, i)
		placeholder := fmt.Sprintf(":%s%d", prefix, i)
		names[name] = k
		values[placeholder] = v
		parts = append(parts, name+" = "+placeholder)
	}
	return strings.Join(parts, sep), names, values, nil
}
