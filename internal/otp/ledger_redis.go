// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package otp

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/inkwell/internal/platform/constants"
	"github.com/taibuivan/inkwell/pkg/loginkey"
)

// verifyScript consumes the code only when it matches. Running it server-side
// makes read-compare-delete a single atomic step across every API instance.
var verifyScript = redis.NewScript(`
local current = redis.call("GET", KEYS[1])
if current and current == ARGV[1] then
	redis.call("DEL", KEYS[1])
	return 1
end
return 0
`)

// RedisLedger stores codes as Redis keys with a native TTL, so expiry needs
// no sweeper.
type RedisLedger struct {
	client   redis.Cmdable
	ttl      time.Duration
	generate func() (string, error)
}

// NewRedisLedger constructs a ledger on top of client.
func NewRedisLedger(client redis.Cmdable) *RedisLedger {
	return &RedisLedger{
		client:   client,
		ttl:      constants.OTPTTL,
		generate: GenerateCode,
	}
}

func redisKey(email string) string {
	return constants.RedisPrefixOTP + loginkey.Email(email)
}

/*
Issue stores a fresh code under the email key, replacing any previous one.

Parameters:
  - context: context.Context
  - email: string

Returns:
  - string: The issued code
  - error: Generation or connectivity errors
*/
func (ledger *RedisLedger) Issue(context context.Context, email string) (string, error) {
	code, err := ledger.generate()
	if err != nil {
		return "", err
	}

	if err := ledger.client.Set(context, redisKey(email), code, ledger.ttl).Err(); err != nil {
		return "", fmt.Errorf("redis_otp_set_failed: %w", err)
	}

	return code, nil
}

/*
Verify atomically compares and consumes the code for email.

Parameters:
  - context: context.Context
  - email: string
  - code: string

Returns:
  - bool: true exactly once per issued code
  - error: Connectivity errors
*/
func (ledger *RedisLedger) Verify(context context.Context, email, code string) (bool, error) {
	result, err := verifyScript.Run(context, ledger.client, []string{redisKey(email)}, code).Int()
	if err != nil {
		return false, fmt.Errorf("redis_otp_verify_failed: %w", err)
	}
	return result == 1, nil
}
