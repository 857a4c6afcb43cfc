// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package otp

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/inkwell/internal/platform/constants"
)

// scriptedRedis answers the two commands the ledger sends. EvalSha replays
// the verify script against the in-memory keys. Any other command panics on
// the nil embedded client.
type scriptedRedis struct {
	redis.Cmdable

	mu      sync.Mutex
	values  map[string]string
	ttls    map[string]time.Duration
	shas    []string
	evalErr error
}

func newScriptedRedis() *scriptedRedis {
	return &scriptedRedis{values: make(map[string]string), ttls: make(map[string]time.Duration)}
}

func (fake *scriptedRedis) Set(_ context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	fake.mu.Lock()
	defer fake.mu.Unlock()
	fake.values[key] = value.(string)
	fake.ttls[key] = expiration
	return redis.NewStatusResult("OK", nil)
}

func (fake *scriptedRedis) EvalSha(_ context.Context, sha1 string, keys []string, args ...interface{}) *redis.Cmd {
	fake.mu.Lock()
	defer fake.mu.Unlock()
	fake.shas = append(fake.shas, sha1)
	if fake.evalErr != nil {
		return redis.NewCmdResult(nil, fake.evalErr)
	}

	current, ok := fake.values[keys[0]]
	if ok && current == args[0] {
		delete(fake.values, keys[0])
		return redis.NewCmdResult(int64(1), nil)
	}
	return redis.NewCmdResult(int64(0), nil)
}

func TestRedisLedger_IssueWritesPrefixedKeyWithTTL(t *testing.T) {
	client := newScriptedRedis()
	ledger := NewRedisLedger(client)
	ledger.generate = func() (string, error) { return "123456", nil }

	code, err := ledger.Issue(context.Background(), "  Alice@Inkwell.APP ")
	require.NoError(t, err)
	assert.Equal(t, "123456", code)

	key := constants.RedisPrefixOTP + "alice@inkwell.app"
	assert.Equal(t, "123456", client.values[key])
	assert.Equal(t, constants.OTPTTL, client.ttls[key])
}

func TestRedisLedger_VerifyConsumesOnce(t *testing.T) {
	client := newScriptedRedis()
	ledger := NewRedisLedger(client)
	ledger.generate = func() (string, error) { return "654321", nil }
	ctx := context.Background()

	_, err := ledger.Issue(ctx, "alice@inkwell.app")
	require.NoError(t, err)

	ok, err := ledger.Verify(ctx, "alice@inkwell.app", "000000")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = ledger.Verify(ctx, "ALICE@inkwell.app", "654321")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = ledger.Verify(ctx, "alice@inkwell.app", "654321")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NotEmpty(t, client.shas)
	assert.Equal(t, verifyScript.Hash(), client.shas[0])
}

func TestRedisLedger_VerifyConnectivityError(t *testing.T) {
	client := newScriptedRedis()
	client.evalErr = errors.New("dial tcp: connection refused")
	ledger := NewRedisLedger(client)

	ok, err := ledger.Verify(context.Background(), "alice@inkwell.app", "123456")
	require.Error(t, err)
	assert.False(t, ok)
	assert.Contains(t, err.Error(), "redis_otp_verify_failed")
}
