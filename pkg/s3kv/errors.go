package s3kv

import "errors"

var (
	ErrInvalidConfig      = errors.New("invalid s3 configuration: bucket and region are required")
	ErrFailedToLoadConfig = errors.New("failed to load aws config")

	ErrBucketNotFound     = errors.New("bucket not found")
	ErrAccessDenied       = errors.New("access denied")
	ErrServiceUnavailable = errors.New("service temporarily unavailable")
)
