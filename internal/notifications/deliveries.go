package notifications

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
)

const DefaultDeliveriesTable = "notifications"

// Delivery is one notification attempt.
type Delivery struct {
	ID          string    `dynamodbav:"id" json:"id"`
	OrderID     string    `dynamodbav:"order_id" json:"orderId"`
	OrderNumber string    `dynamodbav:"order_number,omitempty" json:"orderNumber,omitempty"`
	StatusName  string    `dynamodbav:"status_name" json:"statusName"`
	Recipient   string    `dynamodbav:"recipient,omitempty" json:"recipient,omitempty"`
	Sent        bool      `dynamodbav:"sent" json:"sent"`
	Error       string    `dynamodbav:"error,omitempty" json:"error,omitempty"`
	At          time.Time `dynamodbav:"at" json:"at"`
}

// DynamoAPI is the subset of the DynamoDB client the log uses.
type DynamoAPI interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
}

// DeliveryLog stores deliveries in a DynamoDB table keyed by id, with an
// order_id-index GSI for per-order lookups.
type DeliveryLog struct {
	ddb   DynamoAPI
	table string
}

func NewDeliveryLog(ddb DynamoAPI, table string) *DeliveryLog {
	if table == "" {
		table = DefaultDeliveriesTable
	}
	return &DeliveryLog{ddb: ddb, table: table}
}

// NewDynamoClient builds a DynamoDB client. A non-empty endpoint targets
// DynamoDB Local with static dummy credentials.
func NewDynamoClient(ctx context.Context, region, endpoint string) (*dynamodb.Client, error) {
	opts := []func(*config.LoadOptions) error{config.WithRegion(region)}
	if endpoint != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider("local", "local", ""),
		))
	}

	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return dynamodb.NewFromConfig(cfg, func(o *dynamodb.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
	}), nil
}

// Record writes d, assigning an id when it has none.
func (l *DeliveryLog) Record(ctx context.Context, d Delivery) error {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}

	item, err := attributevalue.MarshalMap(d)
	if err != nil {
		return err
	}

	_, err = l.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(l.table),
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(#id)"),
		ExpressionAttributeNames: map[string]string{
			"#id": "id",
		},
	})
	if err != nil {
		return fmt.Errorf("record delivery %s: %w", d.ID, err)
	}
	return nil
}

// ListByOrder returns every attempt recorded for an order.
func (l *DeliveryLog) ListByOrder(ctx context.Context, orderID string) ([]Delivery, error) {
	out, err := l.ddb.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(l.table),
		IndexName:              aws.String("order_id-index"),
		KeyConditionExpression: aws.String("order_id = :oid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":oid": &types.AttributeValueMemberS{Value: orderID},
		},
	})
	if err != nil {
		return nil, err
	}

	deliveries := make([]Delivery, 0, len(out.Items))
	if err = attributevalue.UnmarshalListOfMaps(out.Items, &deliveries); err != nil {
		return nil, err
	}
	return deliveries, nil
}
