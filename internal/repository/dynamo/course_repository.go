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

// CourseRepository is a DynamoDB implementation of repository.CourseRepository.
// Courses are keyed by name.
type CourseRepository struct {
	client *dynamodb.Client
	table  string
}

// NewCourseRepository creates a new CourseRepository backed by the given table.
func NewCourseRepository(client *dynamodb.Client, table string) *CourseRepository {
	return &CourseRepository{client: client, table: table}
}

func (r *CourseRepository) Get(ctx context.Context, name string) (*model.Course, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.table),
		Key: map[string]types.AttributeValue{
			"name": &types.AttributeValueMemberS{Value: name},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get course %s: %w", name, err)
	}
	if out.Item == nil {
		return nil, nil
	}
	var c model.Course
	if err := attributevalue.UnmarshalMap(out.Item, &c); err != nil {
		return nil, fmt.Errorf("failed to unmarshal course %s: %w", name, err)
	}
	return &c, nil
}

func (r *CourseRepository) Create(ctx context.Context, c *model.Course) error {
	item, err := attributevalue.MarshalMap(c)
	if err != nil {
		return fmt.Errorf("failed to marshal course %s: %w", c.Name, err)
	}
	// "name" is a DynamoDB reserved word, so the condition needs an alias.
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.table),
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(#n)"),
		ExpressionAttributeNames: map[string]string{
			"#n": "name",
		},
	})
	if err != nil {
		if isConditionalCheckFailed(err) {
			return repository.ErrConditionFailed
		}
		return fmt.Errorf("failed to create course %s: %w", c.Name, err)
	}
	return nil
}

func (r *CourseRepository) Put(ctx context.Context, c *model.Course) error {
	item, err := attributevalue.MarshalMap(c)
	if err != nil {
		return fmt.Errorf("failed to marshal course %s: %w", c.Name, err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.table),
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("failed to put course %s: %w", c.Name, err)
	}
	return nil
}

func (r *CourseRepository) Delete(ctx context.Context, name string) error {
	_, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.table),
		Key: map[string]types.AttributeValue{
			"name": &types.AttributeValueMemberS{Value: name},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to delete course %s: %w", name, err)
	}
	return nil
}

func (r *CourseRepository) List(ctx context.Context) ([]model.Course, error) {
	var courses []model.Course
	paginator := dynamodb.NewScanPaginator(r.client, &dynamodb.ScanInput{
		TableName: aws.String(r.table),
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to scan courses: %w", err)
		}
		var batch []model.Course
		if err := attributevalue.UnmarshalListOfMaps(page.Items, &batch); err != nil {
			return nil, fmt.Errorf("failed to unmarshal courses: %w", err)
		}
		courses = append(courses, batch...)
	}
	return courses, nil
}
