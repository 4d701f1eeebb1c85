package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/require"

	"flux-web/internal/domain"
)

func TestAssignBooth_SingleTransaction(t *testing.T) {
	db := &fakeDynamo{}
	c := mustNewClient(t, db)
	reviewed := time.Date(2026, 4, 2, 8, 30, 0, 0, time.UTC)

	err := c.AssignBooth(context.Background(), domain.BoothAssignment{
		ApplicationID: "app-1", BoothID: "booth-9", ExhibitorID: "ex-1", ReviewedAt: reviewed,
	})
	require.NoError(t, err)
	require.Len(t, db.lastTxInput.TransactItems, 2)

	app := db.lastTxInput.TransactItems[0].Update
	require.Equal(t, "APPLICATION", app.Key["PK"].(*types.AttributeValueMemberS).Value)
	require.Equal(t, "app-1", app.Key["SK"].(*types.AttributeValueMemberS).Value)
	require.Equal(t, "#status = :pending", *app.ConditionExpression)
	require.Equal(t, "booth-9", app.ExpressionAttributeValues[":booth"].(*types.AttributeValueMemberS).Value)
	require.Equal(t, "2026-04-02T08:30:00Z", app.ExpressionAttributeValues[":reviewed"].(*types.AttributeValueMemberS).Value)

	booth := db.lastTxInput.TransactItems[1].Update
	require.Equal(t, "BOOTH", booth.Key["PK"].(*types.AttributeValueMemberS).Value)
	require.Equal(t, "#status = :available", *booth.ConditionExpression)
	require.Equal(t, "occupied", booth.ExpressionAttributeValues[":occupied"].(*types.AttributeValueMemberS).Value)
	require.Equal(t, "ex-1", booth.ExpressionAttributeValues[":exhibitor"].(*types.AttributeValueMemberS).Value)
}

func TestAssignBooth_ConditionFailureIsConflict(t *testing.T) {
	c := mustNewClient(t, &fakeDynamo{txErr: cancelledBy("None", "ConditionalCheckFailed")})
	err := c.AssignBooth(context.Background(), domain.BoothAssignment{ApplicationID: "app-1", BoothID: "booth-9"})
	require.ErrorIs(t, err, domain.ErrConflict)
}

func TestAssignBooth_ThrottledIsNotConflict(t *testing.T) {
	c := mustNewClient(t, &fakeDynamo{txErr: cancelledBy("ThrottlingError", "None")})
	err := c.AssignBooth(context.Background(), domain.BoothAssignment{ApplicationID: "app-1", BoothID: "booth-9"})
	require.Error(t, err)
	require.NotErrorIs(t, err, domain.ErrConflict)
	var tce *types.TransactionCanceledException
	require.ErrorAs(t, err, &tce)
}

func TestAssignBooth_Errors(t *testing.T) {
	c := mustNewClient(t, &fakeDynamo{})
	err := c.AssignBooth(context.Background(), domain.BoothAssignment{ApplicationID: "app-1"})
	require.ErrorContains(t, err, "required")

	c = mustNewClient(t, &fakeDynamo{txErr: errors.New("throttled")})
	err = c.AssignBooth(context.Background(), domain.BoothAssignment{ApplicationID: "app-1", BoothID: "booth-9"})
	require.ErrorContains(t, err, "AssignBooth")
	require.NotErrorIs(t, err, domain.ErrConflict)
}
