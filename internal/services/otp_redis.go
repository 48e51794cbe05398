package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisOTPStore keeps pending codes in Redis so multiple instances share
// one OTP state. The value carries the expiry instant; the key TTL runs a
// little longer so an expired code is still reported as Expired rather
// than NotFound until Redis drops it.
type RedisOTPStore struct {
	client *redis.Client
}

const redisOTPSlack = time.Minute

// NewRedisOTPStore connects to Redis at addr
func NewRedisOTPStore(addr string) (*RedisOTPStore, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return &RedisOTPStore{client: client}, nil
}

func otpKey(phone string) string {
	return "otp:" + phone
}

func (s *RedisOTPStore) Put(ctx context.Context, phone string, rec OTPRecord) error {
	value := rec.Code + "|" + strconv.FormatInt(rec.ExpiresAt.Unix(), 10)
	ttl := time.Until(rec.ExpiresAt) + redisOTPSlack
	return s.client.Set(ctx, otpKey(phone), value, ttl).Err()
}

func (s *RedisOTPStore) Get(ctx context.Context, phone string) (OTPRecord, bool, error) {
	value, err := s.client.Get(ctx, otpKey(phone)).Result()
	if err == redis.Nil {
		return OTPRecord{}, false, nil
	}
	if err != nil {
		return OTPRecord{}, false, err
	}

	code, expiry, ok := strings.Cut(value, "|")
	if !ok {
		return OTPRecord{}, false, fmt.Errorf("malformed OTP record for %s", phone)
	}
	unix, err := strconv.ParseInt(expiry, 10, 64)
	if err != nil {
		return OTPRecord{}, false, fmt.Errorf("malformed OTP expiry for %s: %w", phone, err)
	}
	return OTPRecord{Code: code, ExpiresAt: time.Unix(unix, 0)}, true, nil
}

func (s *RedisOTPStore) Delete(ctx context.Context, phone string) error {
	return s.client.Del(ctx, otpKey(phone)).Err()
}

func (s *RedisOTPStore) DeleteExpired(ctx context.Context) (int, error) {
	// Redis evicts keys by TTL on its own
	return 0, nil
}
