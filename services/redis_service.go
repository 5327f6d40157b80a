package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"

	"roboquin-http-service/config"
)

// InterfaceRedisService defines the Redis cache service interface
type InterfaceRedisService interface {
	Set(key string, value interface{}, expiration time.Duration) error
	Get(key string, dest interface{}) error
	Delete(key string) error
	ReserveIdempotencyKey(key string, expiration time.Duration) (bool, error)
}

// RedisService handles Redis operations
type RedisService struct {
	Client *redis.Client
	Ctx    context.Context
}

// NewRedisService creates a new Redis service.
// client 为 nil 时根据配置自建连接
func NewRedisService(cfg *config.Config, client *redis.Client) InterfaceRedisService {
	if client == nil {
		client = redis.NewClient(&redis.Options{
			Addr:     cfg.GetRedisAddr(),
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
	}

	return &RedisService{
		Client: client,
		Ctx:    context.Background(),
	}
}

// Set sets a key-value pair in Redis with expiration
func (s *RedisService) Set(key string, value interface{}, expiration time.Duration) error {
	jsonValue, err := json.Marshal(value)
	if err != nil {
		return err
	}

	return s.Client.Set(s.Ctx, key, jsonValue, expiration).Err()
}

// Get gets a value from Redis by key
func (s *RedisService) Get(key string, dest interface{}) error {
	val, err := s.Client.Get(s.Ctx, key).Result()
	if err != nil {
		return err
	}

	return json.Unmarshal([]byte(val), dest)
}

// Delete deletes a key from Redis
func (s *RedisService) Delete(key string) error {
	return s.Client.Del(s.Ctx, key).Err()
}

// ReserveIdempotencyKey 以 SETNX 方式占用幂等键。
// 返回 true 表示首次占用成功；false 表示该键已被使用，请求属于重试
func (s *RedisService) ReserveIdempotencyKey(key string, expiration time.Duration) (bool, error) {
	return s.Client.SetNX(s.Ctx, "idempotency:"+key, 1, expiration).Result()
}
