package redis

import "errors"

var (
	ErrEmptyConnectionURL   = errors.New("empty redis connection URL, set REDIS_URL")
	ErrInvalidConnectionURL = errors.New("invalid redis connection URL")
	ErrRedisNotReady        = errors.New("redis did not answer within the connect timeout")

	// errValueChanged aborts a WATCH transaction whose expected value no longer matches.
	errValueChanged = errors.New("value changed")
)
