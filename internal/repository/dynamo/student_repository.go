package dynamo

import (
	"context"
	"errors"
	"fmt"

	"app/internal/model"
	"app/internal/repository"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// StudentRepository is a DynamoDB implementation of repository.StudentRepository.
// Students are keyed by student_id.
type StudentRepository struct {
	client *dynamodb.Client
	table  string
}

// NewStudentRepository creates a new StudentRepository backed by the given table.
func NewStudentRepository(client *dynamodb.Client, table string) *StudentRepository {
	return &StudentRepository{client: client, table: table}
}

func (r *StudentRepository) Get(ctx context.Context, studentID string) (*model.Student, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.table),
		Key: map[string]types.AttributeValue{
			"student_id": &types.AttributeValueMemberS{Value: studentID},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get student %s: %w", studentID, err)
	}
	if out.Item == nil {
		return nil, nil
	}
	var s model.Student
	if err := attributevalue.UnmarshalMap(out.Item, &s); err != nil {
		return nil, fmt.Errorf("failed to unmarshal student %s: %w", studentID, err)
	}
	return &s, nil
}

func (r *StudentRepository) Put(ctx context.Context, s *model.Student) error {
	item, err := attributevalue.MarshalMap(s)
	if err != nil {
		return fmt.Errorf("failed to marshal student %s: %w", s.StudentID, err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.table),
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("failed to put student %s: %w", s.StudentID, err)
	}
	return nil
}

func (r *StudentRepository) PutOwned(ctx context.Context, s *model.Student, ownerID string) error {
	item, err := attributevalue.MarshalMap(s)
	if err != nil {
		return fmt.Errorf("failed to marshal student %s: %w", s.StudentID, err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.table),
		Item:                item,
		ConditionExpression: aws.String("user_id = :owner"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":owner": &types.AttributeValueMemberS{Value: ownerID},
		},
	})
	if err != nil {
		if isConditionalCheckFailed(err) {
			return repository.ErrConditionFailed
		}
		return fmt.Errorf("failed to put student %s: %w", s.StudentID, err)
	}
	return nil
}

func (r *StudentRepository) DeleteOwned(ctx context.Context, studentID, ownerID string) error {
	_, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.table),
		Key: map[string]types.AttributeValue{
			"student_id": &types.AttributeValueMemberS{Value: studentID},
		},
		ConditionExpression: aws.String("user_id = :owner"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":owner": &types.AttributeValueMemberS{Value: ownerID},
		},
	})
	if err != nil {
		if isConditionalCheckFailed(err) {
			return repository.ErrConditionFailed
		}
		return fmt.Errorf("failed to delete student %s: %w", studentID, err)
	}
	return nil
}

func (r *StudentRepository) List(ctx context.Context) ([]model.Student, error) {
	var students []model.Student
	paginator := dynamodb.NewScanPaginator(r.client, &dynamodb.ScanInput{
		TableName: aws.String(r.table),
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to scan students: %w", err)
		}
		var batch []model.Student
		if err := attributevalue.UnmarshalListOfMaps(page.Items, &batch); err != nil {
			return nil, fmt.Errorf("failed to unmarshal students: %w", err)
		}
		students = append(students, batch...)
	}
	return students, nil
}

func isConditionalCheckFailed(err error) bool {
	var ccf *types.ConditionalCheckFailedException
	return errors.As(err, &ccf)
}
