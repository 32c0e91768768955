package s3kv_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/creatorkit/pkg/paywall"
	"github.com/dmitrymomot/creatorkit/pkg/s3kv"
)

type MockS3Client struct {
	mock.Mock
}

func (m *MockS3Client) GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*s3.GetObjectOutput), args.Error(1)
}

func (m *MockS3Client) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*s3.PutObjectOutput), args.Error(1)
}

func object(body, etag string) *s3.GetObjectOutput {
	return &s3.GetObjectOutput{
		Body: io.NopCloser(bytes.NewReader([]byte(body))),
		ETag: aws.String(etag),
	}
}

func newKV(t *testing.T, client *MockS3Client) *s3kv.KV {
	t.Helper()
	kv, err := s3kv.New(context.Background(), s3kv.Config{
		Bucket:    "creator-site",
		Region:    "us-east-1",
		KeyPrefix: "paywall/",
	}, s3kv.WithS3Client(client))
	require.NoError(t, err)
	return kv
}

func forKey(key string) any {
	return mock.MatchedBy(func(in *s3.GetObjectInput) bool {
		return aws.ToString(in.Bucket) == "creator-site" && aws.ToString(in.Key) == "paywall/"+key
	})
}

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("missing bucket", func(t *testing.T) {
		t.Parallel()
		_, err := s3kv.New(context.Background(), s3kv.Config{Region: "us-east-1"})
		require.ErrorIs(t, err, s3kv.ErrInvalidConfig)
	})

	t.Run("missing region", func(t *testing.T) {
		t.Parallel()
		_, err := s3kv.New(context.Background(), s3kv.Config{Bucket: "b"})
		require.ErrorIs(t, err, s3kv.ErrInvalidConfig)
	})

	t.Run("with mock client", func(t *testing.T) {
		t.Parallel()
		kv, err := s3kv.New(context.Background(), s3kv.Config{Bucket: "b", Region: "r"}, s3kv.WithS3Client(&MockS3Client{}))
		require.NoError(t, err)
		assert.NotNil(t, kv)
	})
}

func TestKV_Get(t *testing.T) {
	t.Parallel()

	t.Run("existing object", func(t *testing.T) {
		t.Parallel()
		client := &MockS3Client{}
		client.On("GetObject", mock.Anything, forKey("sub")).Return(object(`{"tier":"pro"}`, `"e1"`), nil)

		value, err := newKV(t, client).Get(context.Background(), "sub")
		require.NoError(t, err)
		assert.Equal(t, []byte(`{"tier":"pro"}`), value)
		client.AssertExpectations(t)
	})

	t.Run("missing object", func(t *testing.T) {
		t.Parallel()
		client := &MockS3Client{}
		client.On("GetObject", mock.Anything, mock.Anything).Return(nil, &types.NoSuchKey{})

		value, err := newKV(t, client).Get(context.Background(), "sub")
		require.NoError(t, err)
		assert.Nil(t, value)
	})

	t.Run("access denied", func(t *testing.T) {
		t.Parallel()
		client := &MockS3Client{}
		client.On("GetObject", mock.Anything, mock.Anything).
			Return(nil, &smithy.GenericAPIError{Code: "AccessDenied"})

		_, err := newKV(t, client).Get(context.Background(), "sub")
		require.ErrorIs(t, err, s3kv.ErrAccessDenied)
	})
}

func TestKV_CompareAndSwap(t *testing.T) {
	t.Parallel()

	t.Run("create uses if-none-match", func(t *testing.T) {
		t.Parallel()
		client := &MockS3Client{}
		client.On("PutObject", mock.Anything, mock.MatchedBy(func(in *s3.PutObjectInput) bool {
			return aws.ToString(in.IfNoneMatch) == "*" && in.IfMatch == nil
		})).Return(&s3.PutObjectOutput{}, nil)

		ok, err := newKV(t, client).CompareAndSwap(context.Background(), "sub", nil, []byte("v1"))
		require.NoError(t, err)
		assert.True(t, ok)
		client.AssertExpectations(t)
	})

	t.Run("create loses race", func(t *testing.T) {
		t.Parallel()
		client := &MockS3Client{}
		client.On("PutObject", mock.Anything, mock.Anything).
			Return(nil, &smithy.GenericAPIError{Code: "PreconditionFailed"})

		ok, err := newKV(t, client).CompareAndSwap(context.Background(), "sub", nil, []byte("v1"))
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("update uses etag of compared object", func(t *testing.T) {
		t.Parallel()
		client := &MockS3Client{}
		client.On("GetObject", mock.Anything, forKey("sub")).Return(object("v1", `"e1"`), nil)
		client.On("PutObject", mock.Anything, mock.MatchedBy(func(in *s3.PutObjectInput) bool {
			return aws.ToString(in.IfMatch) == `"e1"` && in.IfNoneMatch == nil
		})).Return(&s3.PutObjectOutput{}, nil)

		ok, err := newKV(t, client).CompareAndSwap(context.Background(), "sub", []byte("v1"), []byte("v2"))
		require.NoError(t, err)
		assert.True(t, ok)
		client.AssertExpectations(t)
	})

	t.Run("stale value is rejected without writing", func(t *testing.T) {
		t.Parallel()
		client := &MockS3Client{}
		client.On("GetObject", mock.Anything, mock.Anything).Return(object("v2", `"e2"`), nil)

		ok, err := newKV(t, client).CompareAndSwap(context.Background(), "sub", []byte("v1"), []byte("v3"))
		require.NoError(t, err)
		assert.False(t, ok)
		client.AssertNotCalled(t, "PutObject", mock.Anything, mock.Anything)
	})

	t.Run("concurrent overwrite after compare", func(t *testing.T) {
		t.Parallel()
		client := &MockS3Client{}
		client.On("GetObject", mock.Anything, mock.Anything).Return(object("v1", `"e1"`), nil)
		client.On("PutObject", mock.Anything, mock.Anything).
			Return(nil, &smithy.GenericAPIError{Code: "ConditionalRequestConflict"})

		ok, err := newKV(t, client).CompareAndSwap(context.Background(), "sub", []byte("v1"), []byte("v2"))
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("service error", func(t *testing.T) {
		t.Parallel()
		client := &MockS3Client{}
		client.On("PutObject", mock.Anything, mock.Anything).
			Return(nil, &smithy.GenericAPIError{Code: "SlowDown"})

		ok, err := newKV(t, client).CompareAndSwap(context.Background(), "sub", nil, []byte("v1"))
		require.ErrorIs(t, err, s3kv.ErrServiceUnavailable)
		assert.False(t, ok)
	})
}


func TestKV_UnreachableBucketKeepsDefaults(t *testing.T) {
	t.Parallel()

	client := &MockS3Client{}
	client.On("GetObject", mock.Anything, mock.Anything).Return(nil, errors.New("dial tcp: connection refused"))

	store := paywall.NewStore(newKV(t, client))
	ctx := context.Background()

	assert.Equal(t, paywall.DefaultSubscription(), store.Read(ctx))
	require.NoError(t, store.Write(ctx, paywall.DefaultSubscription()))
	client.AssertNotCalled(t, "PutObject", mock.Anything, mock.Anything)
}
