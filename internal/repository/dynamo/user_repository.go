package dynamo

import (
	"context"
	"fmt"

	"app/internal/model"
	"app/internal/repository"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// UserRepository is a DynamoDB implementation of repository.UserRepository.
// Accounts are keyed by username.
type UserRepository struct {
	client *dynamodb.Client
	table  string
}

// NewUserRepository creates a new UserRepository backed by the given table.
func NewUserRepository(client *dynamodb.Client, table string) *UserRepository {
	return &UserRepository{client: client, table: table}
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.table),
		Key: map[string]types.AttributeValue{
			"username": &types.AttributeValueMemberS{Value: username},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get user %s: %w", username, err)
	}
	if out.Item == nil {
		return nil, nil
	}
	var u model.User
	if err := attributevalue.UnmarshalMap(out.Item, &u); err != nil {
		return nil, fmt.Errorf("failed to unmarshal user %s: %w", username, err)
	}
	return &u, nil
}

func (r *UserRepository) Create(ctx context.Context, u *model.User) error {
	item, err := attributevalue.MarshalMap(u)
	if err != nil {
		return fmt.Errorf("failed to marshal user %s: %w", u.Username, err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.table),
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(username)"),
	})
	if err != nil {
		if isConditionalCheckFailed(err) {
			return repository.ErrConditionFailed
		}
		return fmt.Errorf("failed to create user %s: %w", u.Username, err)
	}
	return nil
}
