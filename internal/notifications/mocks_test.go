package notifications

import (
	"context"
	"io"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/stretchr/testify/mock"
)

type MockRecipientFinder struct{ mock.Mock }

func (m *MockRecipientFinder) Find(ctx context.Context, orderID string) (Recipient, error) {
	args := m.Called(ctx, orderID)
	return args.Get(0).(Recipient), args.Error(1)
}

type MockMailer struct{ mock.Mock }

func (m *MockMailer) Send(ctx context.Context, to, subject, body string) error {
	return m.Called(ctx, to, subject, body).Error(0)
}

type MockDeliveryRecorder struct{ mock.Mock }

func (m *MockDeliveryRecorder) Record(ctx context.Context, d Delivery) error {
	return m.Called(ctx, d).Error(0)
}

func (m *MockDeliveryRecorder) ListByOrder(ctx context.Context, orderID string) ([]Delivery, error) {
	args := m.Called(ctx, orderID)
	if v := args.Get(0); v != nil {
		return v.([]Delivery), args.Error(1)
	}
	return nil, args.Error(1)
}

type MockNotifier struct{ mock.Mock }

func (m *MockNotifier) Notify(ctx context.Context, orderID, statusName string) (Delivery, error) {
	args := m.Called(ctx, orderID, statusName)
	return args.Get(0).(Delivery), args.Error(1)
}

func (m *MockNotifier) History(ctx context.Context, orderID string) ([]Delivery, error) {
	args := m.Called(ctx, orderID)
	if v := args.Get(0); v != nil {
		return v.([]Delivery), args.Error(1)
	}
	return nil, args.Error(1)
}

type MockDynamo struct{ mock.Mock }

func (m *MockDynamo) PutItem(ctx context.Context, params *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	args := m.Called(ctx, params)
	return &dynamodb.PutItemOutput{}, args.Error(0)
}

func (m *MockDynamo) Query(ctx context.Context, params *dynamodb.QueryInput, _ ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
	args := m.Called(ctx, params)
	if v := args.Get(0); v != nil {
		return v.(*dynamodb.QueryOutput), args.Error(1)
	}
	return nil, args.Error(1)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
