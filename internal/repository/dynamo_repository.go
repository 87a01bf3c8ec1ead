package repository

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/storecore/catalog-service/internal/domain"
	pkgconfig "github.com/storecore/catalog-service/pkg/config"
)

// counterID is the reserved item key holding the id sequence. Product ids
// start at 1, so the counter item never collides with an entity.
const counterID = 0

// DynamoRepository stores products in a single DynamoDB table keyed by the
// numeric "id" attribute.
type DynamoRepository struct {
	client    *dynamodb.Client
	tableName string
}

func NewDynamoDBClient(cfg *pkgconfig.Config) (*dynamodb.Client, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.AWSRegion),
	}
	if cfg.DynamoDBEndpoint != "" {
		// Local DynamoDB accepts any static key pair.
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider("local", "local", ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.TODO(), opts...)
	if err != nil {
		return nil, err
	}

	return dynamodb.NewFromConfig(awsCfg, func(o *dynamodb.Options) {
		if cfg.DynamoDBEndpoint != "" {
			o.BaseEndpoint = aws.String(cfg.DynamoDBEndpoint)
		}
	}), nil
}

func NewDynamoRepository(client *dynamodb.Client, tableName string) *DynamoRepository {
	return &DynamoRepository{
		client:    client,
		tableName: tableName,
	}
}

func (r *DynamoRepository) FindByID(ctx context.Context, id int64) (*domain.Product, error) {
	result, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       idKey(id),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get item: %w", err)
	}

	if result.Item == nil {
		return nil, ErrProductNotFound
	}

	var product domain.Product
	if err := attributevalue.UnmarshalMap(result.Item, &product); err != nil {
		return nil, fmt.Errorf("failed to unmarshal product: %w", err)
	}

	return &product, nil
}

func (r *DynamoRepository) FindAll(ctx context.Context) ([]*domain.Product, error) {
	// The scan filters out the counter item, which shares the table.
	filter := expression.NotEqual(expression.Name("id"), expression.Value(counterID))
	expr, err := expression.NewBuilder().WithFilter(filter).Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build scan expression: %w", err)
	}

	products := []*domain.Product{}
	var startKey map[string]types.AttributeValue
	for {
		result, err := r.client.Scan(ctx, &dynamodb.ScanInput{
			TableName:                 aws.String(r.tableName),
			ExpressionAttributeNames:  expr.Names(),
			ExpressionAttributeValues: expr.Values(),
			FilterExpression:          expr.Filter(),
			ExclusiveStartKey:         startKey,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to scan products: %w", err)
		}

		for _, item := range result.Items {
			var product domain.Product
			if err := attributevalue.UnmarshalMap(item, &product); err != nil {
				return nil, fmt.Errorf("failed to unmarshal product: %w", err)
			}
			products = append(products, &product)
		}

		if result.LastEvaluatedKey == nil {
			break
		}
		startKey = result.LastEvaluatedKey
	}

	// Scan order is arbitrary; present a stable ascending-id order.
	sort.Slice(products, func(i, j int) bool { return products[i].ID < products[j].ID })

	return products, nil
}

func (r *DynamoRepository) FindByNameAndBrand(ctx context.Context, name, brand string) (*domain.Product, error) {
	// "name" is a DynamoDB reserved word; the expression builder
	// aliases it.
	filter := expression.And(
		expression.Equal(expression.Name("name"), expression.Value(name)),
		expression.Equal(expression.Name("brand"), expression.Value(brand)),
	)
	expr, err := expression.NewBuilder().WithFilter(filter).Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build scan expression: %w", err)
	}

	var startKey map[string]types.AttributeValue
	for {
		result, err := r.client.Scan(ctx, &dynamodb.ScanInput{
			TableName:                 aws.String(r.tableName),
			ExpressionAttributeNames:  expr.Names(),
			ExpressionAttributeValues: expr.Values(),
			FilterExpression:          expr.Filter(),
			ExclusiveStartKey:         startKey,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to scan products: %w", err)
		}

		if len(result.Items) > 0 {
			var product domain.Product
			if err := attributevalue.UnmarshalMap(result.Items[0], &product); err != nil {
				return nil, fmt.Errorf("failed to unmarshal product: %w", err)
			}
			return &product, nil
		}

		if result.LastEvaluatedKey == nil {
			return nil, ErrProductNotFound
		}
		startKey = result.LastEvaluatedKey
	}
}

func (r *DynamoRepository) Save(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	now := time.Now().UTC()
	if product.ID == 0 {
		id, err := r.nextID(ctx)
		if err != nil {
			return nil, err
		}
		product.ID = id
		product.CreatedAt = now
	}
	product.UpdatedAt = now

	av, err := attributevalue.MarshalMap(product)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal product: %w", err)
	}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      av,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to put item: %w", err)
	}

	return product, nil
}

func (r *DynamoRepository) Delete(ctx context.Context, product *domain.Product) error {
	_, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key:       idKey(product.ID),
	})
	if err != nil {
		return fmt.Errorf("failed to delete item: %w", err)
	}
	return nil
}

// nextID advances the id sequence with an atomic counter update.
func (r *DynamoRepository) nextID(ctx context.Context) (int64, error) {
	update := expression.Add(expression.Name("counter"), expression.Value(1))
	expr, err := expression.NewBuilder().WithUpdate(update).Build()
	if err != nil {
		return 0, fmt.Errorf("failed to build counter expression: %w", err)
	}

	result, err := r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       idKey(counterID),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
		UpdateExpression:          expr.Update(),
		ReturnValues:              types.ReturnValueUpdatedNew,
	})
	if err != nil {
		return 0, fmt.Errorf("failed to advance id counter: %w", err)
	}

	var counter struct {
		Counter int64 `dynamodbav:"counter"`
	}
	if err := attributevalue.UnmarshalMap(result.Attributes, &counter); err != nil {
		return 0, fmt.Errorf("failed to unmarshal id counter: %w", err)
	}

	return counter.Counter, nil
}

func idKey(id int64) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"id": &types.AttributeValueMemberN{Value: strconv.FormatInt(id, 10)},
	}
}
