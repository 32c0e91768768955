package s3kv

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
)

// S3Client is the subset of the S3 API used by KV.
type S3Client interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// KV stores each key as one object. Writes are conditional requests, so two
// writers racing on the same key cannot both succeed.
type KV struct {
	client S3Client
	bucket string
	prefix string
}

// Option configures New.
type Option func(*options)

type options struct {
	client        S3Client
	httpClient    *http.Client
	configOptions []func(*config.LoadOptions) error
	clientOptions []func(*s3.Options)
}

// WithS3Client uses a pre-configured client instead of building one.
func WithS3Client(client S3Client) Option {
	return func(o *options) { o.client = client }
}

// WithHTTPClient sets the HTTP client for S3 requests.
func WithHTTPClient(client *http.Client) Option {
	return func(o *options) { o.httpClient = client }
}

// WithConfigOption adds an AWS config load option.
func WithConfigOption(opt func(*config.LoadOptions) error) Option {
	return func(o *options) { o.configOptions = append(o.configOptions, opt) }
}

// WithClientOption adds an S3 client option.
func WithClientOption(opt func(*s3.Options)) Option {
	return func(o *options) { o.clientOptions = append(o.clientOptions, opt) }
}

// New creates a KV over cfg.Bucket.
func New(ctx context.Context, cfg Config, opts ...Option) (*KV, error) {
	if cfg.Bucket == "" || cfg.Region == "" {
		return nil, ErrInvalidConfig
	}

	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	client := o.client
	if client == nil {
		loadOpts := []func(*config.LoadOptions) error{config.WithRegion(cfg.Region)}
		if cfg.AccessKeyID != "" && cfg.SecretKey != "" {
			loadOpts = append(loadOpts, config.WithCredentialsProvider(
				credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretKey, ""),
			))
		}
		if o.httpClient != nil {
			loadOpts = append(loadOpts, config.WithHTTPClient(o.httpClient))
		}
		loadOpts = append(loadOpts, o.configOptions...)

		awsConfig, err := config.LoadDefaultConfig(ctx, loadOpts...)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrFailedToLoadConfig, err)
		}
		client = s3.NewFromConfig(awsConfig, func(so *s3.Options) {
			if cfg.Endpoint != "" {
				so.BaseEndpoint = aws.String(cfg.Endpoint)
			}
			so.UsePathStyle = cfg.ForcePathStyle
			for _, opt := range o.clientOptions {
				opt(so)
			}
		})
	}

	return &KV{client: client, bucket: cfg.Bucket, prefix: cfg.KeyPrefix}, nil
}

// Get returns nil, nil when the object does not exist.
func (s *KV) Get(ctx context.Context, key string) ([]byte, error) {
	value, _, err := s.get(ctx, key)
	return value, err
}

// CompareAndSwap creates the object with If-None-Match when old is nil.
// Otherwise it reads the object, compares it with old and overwrites it with
// If-Match on the ETag it read.
func (s *KV) CompareAndSwap(ctx context.Context, key string, old, next []byte) (bool, error) {
	in := &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(s.prefix + key),
		Body:        bytes.NewReader(next),
		ContentType: aws.String("application/json"),
	}

	if old == nil {
		in.IfNoneMatch = aws.String("*")
	} else {
		current, etag, err := s.get(ctx, key)
		if err != nil {
			return false, err
		}
		if current == nil || !bytes.Equal(current, old) {
			return false, nil
		}
		in.IfMatch = aws.String(etag)
	}

	if _, err := s.client.PutObject(ctx, in); err != nil {
		if isPreconditionFailure(err) {
			return false, nil
		}
		return false, classifyError(err, "put")
	}
	return true, nil
}

func (s *KV) get(ctx context.Context, key string) ([]byte, string, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.prefix + key),
	})
	if err != nil {
		if isNotFound(err) {
			return nil, "", nil
		}
		return nil, "", classifyError(err, "get")
	}
	defer func() { _ = out.Body.Close() }()

	value, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read object body: %w", err)
	}
	return value, aws.ToString(out.ETag), nil
}

func isNotFound(err error) bool {
	var nsk *types.NoSuchKey
	if errors.As(err, &nsk) {
		return true
	}
	var apiErr smithy.APIError
	return errors.As(err, &apiErr) && apiErr.ErrorCode() == "NoSuchKey"
}

func isPreconditionFailure(err error) bool {
	var apiErr smithy.APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	switch apiErr.ErrorCode() {
	case "PreconditionFailed", "ConditionalRequestConflict":
		return true
	}
	return false
}

func classifyError(err error, operation string) error {
	if err == nil {
		return nil
	}

	var nsb *types.NoSuchBucket
	if errors.As(err, &nsb) {
		return ErrBucketNotFound
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "AccessDenied":
			return fmt.Errorf("%w: %s operation", ErrAccessDenied, operation)
		case "SlowDown", "ServiceUnavailable":
			return fmt.Errorf("%w: %s operation", ErrServiceUnavailable, operation)
		case "NoSuchBucket":
			return ErrBucketNotFound
		default:
			return fmt.Errorf("%s operation failed (code: %s): %w", operation, apiErr.ErrorCode(), err)
		}
	}
	return fmt.Errorf("%s operation failed: %w", operation, err)
}
