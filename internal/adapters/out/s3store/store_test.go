package s3store_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"repairdesk/internal/adapters/out/s3store"
	"repairdesk/internal/pkg/errs"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockObjectAPI struct {
	mock.Mock
}

func (m *MockObjectAPI) PutObject(ctx context.Context, params *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	args := m.Called(ctx, params)
	if out := args.Get(0); out != nil {
		return out.(*s3.PutObjectOutput), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockObjectAPI) DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	args := m.Called(ctx, params)
	if out := args.Get(0); out != nil {
		return out.(*s3.DeleteObjectOutput), args.Error(1)
	}
	return nil, args.Error(1)
}

var awsConfig = s3store.Config{Region: "us-east-1", Bucket: "repairdesk"}

func TestStore_Upload(t *testing.T) {
	ctx := context.Background()

	t.Run("puts the object and returns its URL", func(t *testing.T) {
		client := new(MockObjectAPI)
		var input *s3.PutObjectInput
		client.On("PutObject", ctx, mock.Anything).
			Run(func(args mock.Arguments) { input = args.Get(1).(*s3.PutObjectInput) }).
			Return(&s3.PutObjectOutput{}, nil).Once()

		att, err := s3store.NewStore(client, awsConfig).
			Upload(ctx, "../photos/front.jpg", "image/jpeg", strings.NewReader("jpeg"), 4)

		require.NoError(t, err)
		assert.Equal(t, "front.jpg", att.Name())
		assert.True(t, strings.HasPrefix(att.URL(), "https://repairdesk.s3.us-east-1.amazonaws.com/attachments/"))
		assert.True(t, strings.HasSuffix(att.URL(), "/front.jpg"))
		assert.Equal(t, "repairdesk", aws.ToString(input.Bucket))
		assert.Equal(t, "image/jpeg", aws.ToString(input.ContentType))
		assert.Equal(t, int64(4), aws.ToInt64(input.ContentLength))
		client.AssertExpectations(t)
	})

	t.Run("uses path-style URLs with a custom endpoint", func(t *testing.T) {
		client := new(MockObjectAPI)
		client.On("PutObject", ctx, mock.Anything).Return(&s3.PutObjectOutput{}, nil).Once()
		cfg := awsConfig
		cfg.Endpoint = "http://localhost:4566/"

		att, err := s3store.NewStore(client, cfg).Upload(ctx, "report.pdf", "", strings.NewReader("pdf"), 3)

		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(att.URL(), "http://localhost:4566/repairdesk/attachments/"))
	})

	t.Run("requires a file name", func(t *testing.T) {
		client := new(MockObjectAPI)

		_, err := s3store.NewStore(client, awsConfig).Upload(ctx, "  ", "", strings.NewReader(""), 0)

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		client.AssertNotCalled(t, "PutObject", mock.Anything, mock.Anything)
	})

	t.Run("wraps S3 errors", func(t *testing.T) {
		client := new(MockObjectAPI)
		client.On("PutObject", ctx, mock.Anything).Return(nil, errors.New("access denied")).Once()

		_, err := s3store.NewStore(client, awsConfig).Upload(ctx, "a.png", "image/png", strings.NewReader("x"), 1)

		require.ErrorContains(t, err, "access denied")
	})
}

func TestStore_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("deletes the object behind the URL", func(t *testing.T) {
		client := new(MockObjectAPI)
		client.On("DeleteObject", ctx, mock.MatchedBy(func(in *s3.DeleteObjectInput) bool {
			return aws.ToString(in.Key) == "attachments/abc/front.jpg" && aws.ToString(in.Bucket) == "repairdesk"
		})).Return(&s3.DeleteObjectOutput{}, nil).Once()

		err := s3store.NewStore(client, awsConfig).
			Delete(ctx, "https://repairdesk.s3.us-east-1.amazonaws.com/attachments/abc/front.jpg")

		require.NoError(t, err)
		client.AssertExpectations(t)
	})

	t.Run("rejects foreign URLs", func(t *testing.T) {
		client := new(MockObjectAPI)

		err := s3store.NewStore(client, awsConfig).Delete(ctx, "https://example.com/attachments/abc/front.jpg")

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		client.AssertNotCalled(t, "DeleteObject", mock.Anything, mock.Anything)
	})
}
