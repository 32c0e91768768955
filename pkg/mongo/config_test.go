package mongo_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/creatorkit/pkg/config"
	"github.com/dmitrymomot/creatorkit/pkg/mongo"
)

func TestConfig_Defaults(t *testing.T) {
	config.ResetCache()
	t.Cleanup(config.ResetCache)
	t.Setenv("MONGODB_URL", "mongodb://localhost:27017")

	var cfg mongo.Config
	require.NoError(t, config.Load(&cfg))

	assert.Equal(t, "creatorkit", cfg.Database)
	assert.Equal(t, "paywall", cfg.Collection)
	assert.Equal(t, 10*time.Second, cfg.ConnectTimeout)
	assert.Equal(t, uint64(3), cfg.RetryAttempts)
}

func TestNew_EmptyURL(t *testing.T) {
	_, err := mongo.New(context.Background(), mongo.Config{})
	require.ErrorIs(t, err, mongo.ErrEmptyConnectionURL)
}

func TestNewKV_NilClientPanics(t *testing.T) {
	assert.Panics(t, func() { mongo.NewKV(nil, mongo.Config{}) })
}
