package cache_test

import (
	"context"
	"errors"
	"hotelpms/infras/otel/mocks"
	"hotelpms/shared/cache"
	"net"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pipelineHook answers transactions in place of a redis server. It keeps one counter and one
// expiry per key, honouring the NX flag of EXPIRE.
type pipelineHook struct {
	counters map[string]int64
	ttls     map[string]time.Duration
	commands [][]string
	err      error
}

func newPipelineHook() *pipelineHook {
	return &pipelineHook{counters: map[string]int64{}, ttls: map[string]time.Duration{}}
}

func (h *pipelineHook) DialHook(next redis.DialHook) redis.DialHook {
	return func(ctx context.Context, network, addr string) (net.Conn, error) {
		return nil, errors.New("no server")
	}
}

func (h *pipelineHook) ProcessHook(next redis.ProcessHook) redis.ProcessHook {
	return next
}

func (h *pipelineHook) ProcessPipelineHook(_ redis.ProcessPipelineHook) redis.ProcessPipelineHook {
	return func(_ context.Context, cmds []redis.Cmder) error {
		if h.err != nil {
			return h.err
		}

		names := make([]string, 0, len(cmds))

		for _, cmd := range cmds {
			names = append(names, cmd.Name())

			switch c := cmd.(type) {
			case *redis.IntCmd:
				key, _ := c.Args()[1].(string)
				h.counters[key]++
				c.SetVal(h.counters[key])
			case *redis.BoolCmd:
				args := c.Args()
				key, _ := args[1].(string)
				seconds, _ := args[2].(int64)
				_, hasTTL := h.ttls[key]
				onlyNew := len(args) > 3 && args[3] == "NX"

				if hasTTL && onlyNew {
					c.SetVal(false)

					continue
				}

				h.ttls[key] = time.Duration(seconds) * time.Second
				c.SetVal(true)
			}
		}

		h.commands = append(h.commands, names)

		return nil
	}
}

func newCache(t *testing.T, hook *pipelineHook) cache.RedisCache {
	t.Helper()

	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:0"})
	client.AddHook(hook)

	t.Cleanup(func() { _ = client.Close() })

	return cache.NewRedisCache(client, mocks.NewOtel())
}

func TestRedisCache_Increment(t *testing.T) {
	ctx := context.Background()
	hook := newPipelineHook()
	redisCache := newCache(t, hook)

	for want := int64(1); want <= 3; want++ {
		count, err := redisCache.Increment(ctx, "limiter:10.0.0.1", 60)

		require.NoError(t, err)
		assert.Equal(t, want, count)
	}

	count, err := redisCache.Increment(ctx, "limiter:10.0.0.2", 60)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	assert.Equal(t, []string{"multi", "incr", "expire", "exec"}, hook.commands[0])
	assert.Len(t, hook.commands, 4)
	assert.Equal(t, 60*time.Second, hook.ttls["limiter:10.0.0.1"])
}

func TestRedisCache_IncrementExpiresOnlyNewWindows(t *testing.T) {
	ctx := context.Background()
	hook := newPipelineHook()
	redisCache := newCache(t, hook)

	_, err := redisCache.Increment(ctx, "limiter:10.0.0.1", 60)
	require.NoError(t, err)

	_, err = redisCache.Increment(ctx, "limiter:10.0.0.1", 600)
	require.NoError(t, err)

	assert.Equal(t, 60*time.Second, hook.ttls["limiter:10.0.0.1"])
}

func TestRedisCache_IncrementError(t *testing.T) {
	hook := newPipelineHook()
	hook.err = errors.New("connection refused")
	redisCache := newCache(t, hook)

	count, err := redisCache.Increment(context.Background(), "limiter:10.0.0.1", 60)

	assert.Error(t, err)
	assert.Zero(t, count)
}
