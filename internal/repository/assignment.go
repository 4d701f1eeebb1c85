package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"flux-web/internal/domain"
)

// AssignBooth applies both writes of a booth assignment in one transaction.
// The application must still be pending and the booth still available;
// otherwise nothing is written and domain.ErrConflict is returned.
func (c *Client) AssignBooth(ctx context.Context, a domain.BoothAssignment) error {
	if strings.TrimSpace(a.ApplicationID) == "" || strings.TrimSpace(a.BoothID) == "" {
		return errors.New("repository: AssignBooth: application and booth ids are required")
	}

	_, err := c.api.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{
				Update: &types.Update{
					TableName: aws.String(c.tableName),
					Key: map[string]types.AttributeValue{
						"PK": strValue(KindApplication),
						"SK": strValue(a.ApplicationID),
					},
					UpdateExpression:    aws.String("SET #status = :approved, assigned_booth_id = :booth, reviewed_at = :reviewed"),
					ConditionExpression: aws.String("#status = :pending"),
					ExpressionAttributeNames: map[string]string{
						"#status": "status",
					},
					ExpressionAttributeValues: map[string]types.AttributeValue{
						":approved": strValue(string(domain.ApplicationApproved)),
						":pending":  strValue(string(domain.ApplicationPending)),
						":booth":    strValue(a.BoothID),
						":reviewed": timeValue(a.ReviewedAt),
					},
				},
			},
			{
				Update: &types.Update{
					TableName: aws.String(c.tableName),
					Key: map[string]types.AttributeValue{
						"PK": strValue(KindBooth),
						"SK": strValue(a.BoothID),
					},
					UpdateExpression:    aws.String("SET #status = :occupied, exhibitor_id = :exhibitor"),
					ConditionExpression: aws.String("#status = :available"),
					ExpressionAttributeNames: map[string]string{
						"#status": "status",
					},
					ExpressionAttributeValues: map[string]types.AttributeValue{
						":occupied":  strValue(string(domain.BoothOccupied)),
						":available": strValue(string(domain.BoothAvailable)),
						":exhibitor": strValue(a.ExhibitorID),
					},
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("repository: AssignBooth: %w", mapConditionErr(err, domain.ErrConflict))
	}
	return nil
}
