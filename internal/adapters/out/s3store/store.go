// Package s3store keeps attachment files in an S3 bucket.
package s3store

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"repairdesk/internal/core/domain/model/order"
	"repairdesk/internal/pkg/errs"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

const keyPrefix = "attachments"

// ObjectAPI is the subset of the S3 client the store uses.
type ObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// Config describes the bucket and how to reach it. Endpoint is set for
// S3-compatible services such as MinIO or LocalStack and switches to path-style URLs.
type Config struct {
	Region          string
	Bucket          string
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
}

// NewClient builds an S3 client from cfg. Static credentials are used when
// given; otherwise the default AWS credential chain applies.
func NewClient(ctx context.Context, cfg Config) (*s3.Client, error) {
	opts := []func(*config.LoadOptions) error{config.WithRegion(cfg.Region)}
	if cfg.AccessKeyID != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}

	awsConfig, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return s3.NewFromConfig(awsConfig, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	}), nil
}

// Store implements ports.AttachmentStore.
type Store struct {
	client  ObjectAPI
	bucket  string
	baseURL string
}

// NewStore creates a Store writing to cfg.Bucket.
func NewStore(client ObjectAPI, cfg Config) *Store {
	baseURL := fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.Bucket, cfg.Region)
	if cfg.Endpoint != "" {
		baseURL = strings.TrimRight(cfg.Endpoint, "/") + "/" + cfg.Bucket
	}

	return &Store{client: client, bucket: cfg.Bucket, baseURL: baseURL}
}

// Upload stores body under attachments/{uuid}/{name} and returns its reference.
func (s *Store) Upload(ctx context.Context, name, contentType string, body io.Reader, size int64) (order.Attachment, error) {
	name = path.Base(strings.ReplaceAll(strings.TrimSpace(name), "\\", "/"))
	if name == "" || name == "." || name == "/" {
		return order.Attachment{}, errs.NewValueIsRequiredError("name")
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	key := path.Join(keyPrefix, uuid.NewString(), name)
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          body,
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(size),
	})
	if err != nil {
		return order.Attachment{}, fmt.Errorf("failed to upload to S3: %w", err)
	}

	return order.NewAttachment(name, s.baseURL+"/"+key)
}

// Delete removes the object an attachment URL points to. URLs outside the
// bucket are rejected.
func (s *Store) Delete(ctx context.Context, url string) error {
	key, ok := strings.CutPrefix(url, s.baseURL+"/")
	if !ok || !strings.HasPrefix(key, keyPrefix+"/") {
		return errs.NewValueIsInvalidError("url")
	}

	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete file from S3: %w", err)
	}

	return nil
}
