// Package cachetest starts a disposable redis for tests.
package cachetest

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/fekuna/agritrace-service/pkg/cache"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

const redisImage = "redis:7-alpine"

// NewRedis runs a redis container for the duration of the test. It skips in
// -short mode and when no container runtime is reachable.
func NewRedis(t *testing.T) *cache.RedisClient {
	t.Helper()
	if testing.Short() {
		t.Skip("redis container skipped in short mode")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)

	ctx := context.Background()
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        redisImage,
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections").WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err, "start redis container")
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "6379/tcp")
	require.NoError(t, err)

	client, err := cache.NewRedisClient(&cache.Config{Addr: net.JoinHostPort(host, port.Port())})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	return client
}
