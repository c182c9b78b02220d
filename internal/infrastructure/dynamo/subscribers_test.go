package dynamo

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/waitlist-api/internal/domain"
)

type mockDynamo struct{ mock.Mock }

func (m *mockDynamo) PutItem(ctx context.Context, in *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	args := m.Called(ctx, in)
	return &dynamodb.PutItemOutput{}, args.Error(0)
}

func (m *mockDynamo) CreateTable(ctx context.Context, in *dynamodb.CreateTableInput, _ ...func(*dynamodb.Options)) (*dynamodb.CreateTableOutput, error) {
	args := m.Called(ctx, in)
	return &dynamodb.CreateTableOutput{}, args.Error(0)
}

func testRecord() *domain.SubscriptionRecord {
	return domain.NewSubscriptionRecord("alice@example.com", time.Date(2026, 5, 1, 9, 30, 0, 0, time.UTC))
}

func TestSubscriberRepo_Insert_ConditionalPut(t *testing.T) {
	db := &mockDynamo{}
	var got *dynamodb.PutItemInput
	db.On("PutItem", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		got = args.Get(1).(*dynamodb.PutItemInput)
	}).Return(nil)

	repo := NewSubscriberRepo(db, "subscribers")
	require.NoError(t, repo.Insert(context.Background(), testRecord()))

	require.NotNil(t, got)
	assert.Equal(t, "subscribers", *got.TableName)
	assert.Equal(t, "attribute_not_exists(#e)", *got.ConditionExpression)
	assert.Equal(t, "email", got.ExpressionAttributeNames["#e"])

	email, ok := got.Item["email"].(*types.AttributeValueMemberS)
	require.True(t, ok)
	assert.Equal(t, "alice@example.com", email.Value)
	sid, ok := got.Item["subscriber_id"].(*types.AttributeValueMemberS)
	require.True(t, ok)
	assert.Len(t, sid.Value, 26)
	_, ok = got.Item["subscribed_at"].(*types.AttributeValueMemberS)
	assert.True(t, ok)
	db.AssertNumberOfCalls(t, "PutItem", 1)
}

func TestSubscriberRepo_Insert_DoesNotMutateRecord(t *testing.T) {
	db := &mockDynamo{}
	db.On("PutItem", mock.Anything, mock.Anything).Return(nil)
	rec := testRecord()
	require.NoError(t, NewSubscriberRepo(db, "subscribers").Insert(context.Background(), rec))
	assert.Empty(t, rec.SubscriberID)
}

func TestSubscriberRepo_Insert_ConditionFailedIsConflict(t *testing.T) {
	db := &mockDynamo{}
	db.On("PutItem", mock.Anything, mock.Anything).Return(&types.ConditionalCheckFailedException{})

	err := NewSubscriberRepo(db, "subscribers").Insert(context.Background(), testRecord())
	assert.True(t, errors.Is(err, domain.ErrConflict))
}

func TestSubscriberRepo_Insert_OtherErrorIsUpstream(t *testing.T) {
	db := &mockDynamo{}
	db.On("PutItem", mock.Anything, mock.Anything).Return(errors.New("throttled"))

	err := NewSubscriberRepo(db, "subscribers").Insert(context.Background(), testRecord())
	assert.True(t, errors.Is(err, domain.ErrUpstream))
	assert.Contains(t, err.Error(), "throttled")
}

func TestBootstrap_ExistingTableIsFine(t *testing.T) {
	db := &mockDynamo{}
	db.On("CreateTable", mock.Anything, mock.MatchedBy(func(in *dynamodb.CreateTableInput) bool {
		return *in.TableName == "subscribers" && *in.KeySchema[0].AttributeName == "email"
	})).Return(&types.ResourceInUseException{})

	Bootstrap(context.Background(), db, "subscribers", zerolog.Nop())
	db.AssertExpectations(t)
}
