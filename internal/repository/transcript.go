package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"flux-web/internal/domain"
)

const (
	skPrefixMsg   = "MSG#"
	skMeta        = "META#"
	transcriptTTL = 24 * time.Hour // chat sessions are short-lived
)

// chatPK returns the partition key for a chat session.
func chatPK(sessionID string) string {
	return "CHAT#" + sessionID
}

// msgSK returns the sort key for a message; the zero padding keeps the
// lexical order equal to the sequence order.
func msgSK(seq int) string {
	return fmt.Sprintf("%s%08d", skPrefixMsg, seq)
}

func (c *Client) ttlValue() int64 {
	return c.now().Add(transcriptTTL).Unix()
}

func (c *Client) nowValue() types.AttributeValue {
	return &types.AttributeValueMemberN{Value: strconv.FormatInt(c.now().Unix(), 10)}
}

// GetTranscript returns up to limit of the newest messages of a session in
// chronological order.
func (c *Client) GetTranscript(ctx context.Context, sessionID string, limit int) ([]domain.ChatMessage, error) {
	in := &dynamodb.QueryInput{
		TableName:              aws.String(c.tableName),
		KeyConditionExpression: aws.String("PK = :pk AND begins_with(SK, :prefix)"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pk":     &types.AttributeValueMemberS{Value: chatPK(sessionID)},
			":prefix": &types.AttributeValueMemberS{Value: skPrefixMsg},
			":now":    c.nowValue(),
		},
		// Expired items linger until DynamoDB deletes them.
		FilterExpression:         aws.String("attribute_not_exists(#ttl) OR #ttl > :now"),
		ExpressionAttributeNames: map[string]string{"#ttl": "ttl"},
		// Read newest first so LIMIT favors the most recent messages.
		ScanIndexForward: aws.Bool(false),
	}
	if limit > 0 {
		in.Limit = aws.Int32(int32(limit))
	}

	out, err := c.api.Query(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("repository: GetTranscript query: %w", err)
	}

	msgs := make([]domain.ChatMessage, 0, len(out.Items))
	for _, item := range out.Items {
		msg, err := itemToChatMessage(item)
		if err != nil {
			return nil, fmt.Errorf("repository: GetTranscript unmarshal: %w", err)
		}
		msgs = append(msgs, msg)
	}
	for i, j := 0, len(msgs)-1; i < j; i, j = i+1, j-1 {
		msgs[i], msgs[j] = msgs[j], msgs[i]
	}
	return msgs, nil
}

// GetSessionMeta returns the session metadata and whether it exists. An
// expired session does not exist.
func (c *Client) GetSessionMeta(ctx context.Context, sessionID string) (domain.SessionMeta, bool, error) {
	out, err := c.api.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(c.tableName),
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: chatPK(sessionID)},
			"SK": &types.AttributeValueMemberS{Value: skMeta},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return domain.SessionMeta{}, false, fmt.Errorf("repository: GetSessionMeta get item: %w", err)
	}
	if out == nil || len(out.Item) == 0 {
		return domain.SessionMeta{}, false, nil
	}

	messages, err := intAttr(out.Item, "messages")
	if err != nil {
		return domain.SessionMeta{}, false, fmt.Errorf("repository: GetSessionMeta decode messages: %w", err)
	}
	var ttl int64
	if _, ok := out.Item["ttl"]; ok {
		if ttl, err = int64Attr(out.Item, "ttl"); err != nil {
			return domain.SessionMeta{}, false, fmt.Errorf("repository: GetSessionMeta decode ttl: %w", err)
		}
		if ttl <= c.now().Unix() {
			return domain.SessionMeta{}, false, nil
		}
	}
	page, _ := strAttr(out.Item, "page") // allow empty
	lastActivity, _ := strAttr(out.Item, "lastActivity")
	return domain.SessionMeta{
		PK:           chatPK(sessionID),
		SK:           skMeta,
		SessionID:    sessionID,
		LastActivity: lastActivity,
		Messages:     messages,
		Page:         page,
		TTL:          ttl,
	}, true, nil
}

// SaveTurn writes the new messages and the updated metadata in one transaction.
// Messages take the expiry of meta, so a session expires as a whole. Message
// puts are conditional so a concurrent turn on the same sequence numbers
// fails with domain.ErrConflict instead of overwriting; only expired leftovers
// may be replaced.
func (c *Client) SaveTurn(ctx context.Context, entries []domain.TranscriptEntry, meta domain.SessionMeta) error {
	if len(entries) == 0 {
		return errors.New("repository: SaveTurn: at least one message is required")
	}
	if meta.PK == "" || meta.SK == "" {
		return errors.New("repository: SaveTurn: meta PK and SK are required")
	}

	items := make([]types.TransactWriteItem, 0, len(entries)+1)
	for _, e := range entries {
		if e.PK == "" || e.SK == "" {
			return errors.New("repository: SaveTurn: message PK and SK are required")
		}
		if meta.TTL > 0 {
			e.TTL = meta.TTL
		}
		items = append(items, types.TransactWriteItem{
			Put: &types.Put{
				TableName:                 aws.String(c.tableName),
				Item:                      transcriptItem(e),
				ConditionExpression:       aws.String("attribute_not_exists(SK) OR #ttl <= :now"),
				ExpressionAttributeNames:  map[string]string{"#ttl": "ttl"},
				ExpressionAttributeValues: map[string]types.AttributeValue{":now": c.nowValue()},
			},
		})
	}
	items = append(items, types.TransactWriteItem{
		Put: &types.Put{
			TableName: aws.String(c.tableName),
			Item:      metaItem(meta),
		},
	})

	_, err := c.api.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{TransactItems: items})
	if err != nil {
		return fmt.Errorf("repository: SaveTurn: %w", mapConditionErr(err, domain.ErrConflict))
	}
	return nil
}

// NewTranscriptEntry constructs a TranscriptEntry keyed by the message id.
func (c *Client) NewTranscriptEntry(sessionID string, msg domain.ChatMessage) domain.TranscriptEntry {
	return domain.TranscriptEntry{
		PK:        chatPK(sessionID),
		SK:        msgSK(msg.ID),
		SessionID: sessionID,
		Message:   msg,
		TTL:       c.ttlValue(),
	}
}

// NewSessionMeta constructs a SessionMeta record.
func (c *Client) NewSessionMeta(sessionID string, messages int, page string) domain.SessionMeta {
	return domain.SessionMeta{
		PK:           chatPK(sessionID),
		SK:           skMeta,
		SessionID:    sessionID,
		LastActivity: c.now().UTC().Format(time.RFC3339),
		Messages:     messages,
		Page:         page,
		TTL:          c.ttlValue(),
	}
}

func itemToChatMessage(item map[string]types.AttributeValue) (domain.ChatMessage, error) {
	id, err := intAttr(item, "seq")
	if err != nil {
		return domain.ChatMessage{}, err
	}
	text, err := strAttr(item, "text")
	if err != nil {
		return domain.ChatMessage{}, err
	}
	ts, err := strAttr(item, "timestamp")
	if err != nil {
		return domain.ChatMessage{}, err
	}
	timestamp, err := time.Parse(time.RFC3339Nano, ts)
	if err != nil {
		return domain.ChatMessage{}, fmt.Errorf("repository: parse timestamp: %w", err)
	}
	isUser := false
	if v, ok := item["isUser"].(*types.AttributeValueMemberBOOL); ok {
		isUser = v.Value
	}

	msg := domain.ChatMessage{ID: id, Text: text, IsUser: isUser, Timestamp: timestamp}
	kind, _ := strAttr(item, "actionType") // allow empty
	if kind != "" {
		payload, _ := strAttr(item, "actionPayload")
		msg.Action = &domain.Action{Kind: domain.ActionKind(kind), Payload: payload}
	}
	return msg, nil
}

func transcriptItem(e domain.TranscriptEntry) map[string]types.AttributeValue {
	item := map[string]types.AttributeValue{
		"PK":        &types.AttributeValueMemberS{Value: e.PK},
		"SK":        &types.AttributeValueMemberS{Value: e.SK},
		"sessionId": &types.AttributeValueMemberS{Value: e.SessionID},
		"seq":       &types.AttributeValueMemberN{Value: strconv.Itoa(e.Message.ID)},
		"text":      &types.AttributeValueMemberS{Value: e.Message.Text},
		"isUser":    &types.AttributeValueMemberBOOL{Value: e.Message.IsUser},
		"timestamp": &types.AttributeValueMemberS{Value: e.Message.Timestamp.UTC().Format(time.RFC3339Nano)},
		"ttl":       &types.AttributeValueMemberN{Value: strconv.FormatInt(e.TTL, 10)},
	}
	if a := e.Message.Action; a != nil {
		item["actionType"] = &types.AttributeValueMemberS{Value: string(a.Kind)}
		item["actionPayload"] = &types.AttributeValueMemberS{Value: a.Payload}
	}
	return item
}

func metaItem(meta domain.SessionMeta) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"PK":           &types.AttributeValueMemberS{Value: meta.PK},
		"SK":           &types.AttributeValueMemberS{Value: meta.SK},
		"sessionId":    &types.AttributeValueMemberS{Value: meta.SessionID},
		"lastActivity": &types.AttributeValueMemberS{Value: meta.LastActivity},
		"messages":     &types.AttributeValueMemberN{Value: strconv.Itoa(meta.Messages)},
		"page":         &types.AttributeValueMemberS{Value: meta.Page},
		"ttl":          &types.AttributeValueMemberN{Value: strconv.FormatInt(meta.TTL, 10)},
	}
}
