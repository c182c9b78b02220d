package dynamo

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/waitlist-api/internal/domain"
	"github.com/waitlist-api/internal/pkg/id"
)

const attrEmail = "email"

type itemPutter interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
}

// SubscriberRepo stores subscribers keyed by email.
type SubscriberRepo struct {
	client    itemPutter
	tableName string
}

func NewSubscriberRepo(client itemPutter, tableName string) *SubscriberRepo {
	return &SubscriberRepo{client: client, tableName: tableName}
}

// Insert writes rec only if no item exists for its email. An existing item is
// reported as domain.ErrConflict.
func (r *SubscriberRepo) Insert(ctx context.Context, rec *domain.SubscriptionRecord) error {
	item := *rec
	if item.SubscriberID == "" {
		item.SubscriberID = id.NewAt(item.SubscribedAt)
	}
	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return fmt.Errorf("marshal subscriber: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:                aws.String(r.tableName),
		Item:                     av,
		ConditionExpression:      aws.String("attribute_not_exists(#e)"),
		ExpressionAttributeNames: map[string]string{"#e": attrEmail},
	})
	if err == nil {
		return nil
	}
	var ccf *types.ConditionalCheckFailedException
	if errors.As(err, &ccf) {
		return fmt.Errorf("email already subscribed: %w", domain.ErrConflict)
	}
	return fmt.Errorf("dynamo put subscriber: %v: %w", err, domain.ErrUpstream)
}
