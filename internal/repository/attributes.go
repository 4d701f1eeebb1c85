package repository

import (
	"fmt"
	"reflect"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// attrValue converts a filter or update value into a DynamoDB attribute.
// Named string types (status enums) are stored as plain strings.
func attrValue(v any) (types.AttributeValue, error) {
	switch x := v.(type) {
	case nil:
		return &types.AttributeValueMemberNULL{Value: true}, nil
	case string:
		return &types.AttributeValueMemberS{Value: x}, nil
	case bool:
		return &types.AttributeValueMemberBOOL{Value: x}, nil
	case int:
		return &types.AttributeValueMemberN{Value: strconv.Itoa(x)}, nil
	case int64:
		return &types.AttributeValueMemberN{Value: strconv.FormatInt(x, 10)}, nil
	case float64:
		return &types.AttributeValueMemberN{Value: strconv.FormatFloat(x, 'f', -1, 64)}, nil
	case time.Time:
		return timeValue(x), nil
	case *time.Time:
		if x == nil {
			return &types.AttributeValueMemberNULL{Value: true}, nil
		}
		return timeValue(*x), nil
	case []string:
		return listValue(x), nil
	}
	if rv := reflect.ValueOf(v); rv.Kind() == reflect.String {
		return &types.AttributeValueMemberS{Value: rv.String()}, nil
	}
	return nil, fmt.Errorf("repository: unsupported attribute type %T", v)
}

func strValue(s string) types.AttributeValue {
	return &types.AttributeValueMemberS{Value: s}
}

func numValue(n int) types.AttributeValue {
	return &types.AttributeValueMemberN{Value: strconv.Itoa(n)}
}

func floatValue(f float64) types.AttributeValue {
	return &types.AttributeValueMemberN{Value: strconv.FormatFloat(f, 'f', -1, 64)}
}

func boolValue(b bool) types.AttributeValue {
	return &types.AttributeValueMemberBOOL{Value: b}
}

func timeValue(t time.Time) types.AttributeValue {
	if t.IsZero() {
		return &types.AttributeValueMemberS{Value: ""}
	}
	return &types.AttributeValueMemberS{Value: t.UTC().Format(time.RFC3339Nano)}
}

func optTimeValue(t *time.Time) types.AttributeValue {
	if t == nil {
		return &types.AttributeValueMemberNULL{Value: true}
	}
	return timeValue(*t)
}

func listValue(ss []string) types.AttributeValue {
	l := make([]types.AttributeValue, 0, len(ss))
	for _, s := range ss {
		l = append(l, &types.AttributeValueMemberS{Value: s})
	}
	return &types.AttributeValueMemberL{Value: l}
}

// itemReader decodes attributes and keeps the first error, so record
// decoders can read every field and check once.
type itemReader struct {
	item map[string]types.AttributeValue
	err  error
}

func (r *itemReader) fail(err error) {
	if r.err == nil {
		r.err = err
	}
}

func (r *itemReader) str(key string) string {
	s, err := strAttr(r.item, key)
	if err != nil {
		r.fail(err)
	}
	return s
}

// optStr returns "" for a missing or NULL attribute.
func (r *itemReader) optStr(key string) string {
	if s, ok := r.item[key].(*types.AttributeValueMemberS); ok {
		return s.Value
	}
	return ""
}

func (r *itemReader) num(key string) int {
	n, err := intAttr(r.item, key)
	if err != nil {
		r.fail(err)
	}
	return n
}

func (r *itemReader) float(key string) float64 {
	v, ok := r.item[key].(*types.AttributeValueMemberN)
	if !ok {
		r.fail(fmt.Errorf("repository: attribute %q is not a number", key))
		return 0
	}
	f, err := strconv.ParseFloat(v.Value, 64)
	if err != nil {
		r.fail(fmt.Errorf("repository: parse attribute %q: %w", key, err))
	}
	return f
}

func (r *itemReader) boolean(key string) bool {
	if v, ok := r.item[key].(*types.AttributeValueMemberBOOL); ok {
		return v.Value
	}
	return false
}

func (r *itemReader) time(key string) time.Time {
	s := r.optStr(key)
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		r.fail(fmt.Errorf("repository: parse attribute %q: %w", key, err))
	}
	return t
}

func (r *itemReader) optTime(key string) *time.Time {
	t := r.time(key)
	if t.IsZero() {
		return nil
	}
	return &t
}

func (r *itemReader) list(key string) []string {
	l, ok := r.item[key].(*types.AttributeValueMemberL)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(l.Value))
	for _, v := range l.Value {
		if s, ok := v.(*types.AttributeValueMemberS); ok {
			out = append(out, s.Value)
		}
	}
	return out
}
