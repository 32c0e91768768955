package mongo

import "errors"

var (
	ErrEmptyConnectionURL = errors.New("mongo: MONGODB_URL is not set")
	ErrConnect            = errors.New("mongo: connect failed")
)
