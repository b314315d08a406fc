package redis_test

import (
	"context"
	"log"
	"os"
	"testing"
	"time"

	"github.com/rafaelleal24/smartpantry/internal/adapters/config"
	adaptredis "github.com/rafaelleal24/smartpantry/internal/adapters/redis"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"
)

var (
	testClient *adaptredis.Client
	endpoint   string
)

func TestMain(m *testing.M) {
	ctx := context.Background()

	container, err := tcredis.Run(ctx, "redis:7-alpine")
	if err != nil {
		log.Fatalf("failed to start redis container: %v", err)
	}

	endpoint, err = container.ConnectionString(ctx)
	if err != nil {
		log.Fatalf("failed to get connection string: %v", err)
	}

	testClient, err = adaptredis.NewConnection(config.RedisConfig{
		URL:       endpoint,
		KeyPrefix: "pantry-test",
	})
	if err != nil {
		log.Fatalf("failed to connect to redis: %v", err)
	}

	code := m.Run()

	_ = testClient.Close()
	_ = container.Terminate(ctx)

	os.Exit(code)
}

func TestClient_KeyPrefixIsolatesDeployments(t *testing.T) {
	ctx := context.Background()
	other, err := adaptredis.NewConnection(config.RedisConfig{URL: endpoint, KeyPrefix: "other-deployment"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = other.Close() })

	require.NoError(t, testClient.Set(ctx, "shared-key", "mine", time.Minute))

	_, err = other.Get(ctx, "shared-key")
	assert.ErrorIs(t, err, goredis.Nil)

	value, err := testClient.Get(ctx, "shared-key")
	require.NoError(t, err)
	assert.Equal(t, "mine", value)

	ttl, err := testClient.TTL(ctx, "shared-key")
	require.NoError(t, err)
	assert.Greater(t, ttl, 50*time.Second)
}

func TestNewConnection_BadURL(t *testing.T) {
	_, err := adaptredis.NewConnection(config.RedisConfig{URL: "not a url"})
	assert.Error(t, err)
}
