package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"portfolio/app/models"

	"github.com/redis/go-redis/v9"
)

const redisTimeout = 5 * time.Second

// NewRedisClient connects to Redis and verifies the connection.
func NewRedisClient(addr, password string, db int) (*redis.Client, error) {
	if addr == "" {
		return nil, errors.New("redis address is required")
	}
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), redisTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return client, nil
}

// RedisCommentStore keeps the comment collection as one JSON string value.
type RedisCommentStore struct {
	client *redis.Client
	key    string
}

// NewRedisCommentStore creates a store using CommentsKey.
func NewRedisCommentStore(client *redis.Client) *RedisCommentStore {
	return &RedisCommentStore{client: client, key: CommentsKey}
}

func (s *RedisCommentStore) Load() ([]*models.Comment, error) {
	ctx, cancel := context.WithTimeout(context.Background(), redisTimeout)
	defer cancel()

	data, err := s.client.Get(ctx, s.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis get %s: %w", s.key, err)
	}
	return unmarshalComments(data)
}

func (s *RedisCommentStore) Save(comments []*models.Comment) error {
	data, err := marshalComments(comments)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), redisTimeout)
	defer cancel()
	if err := s.client.Set(ctx, s.key, data, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", s.key, err)
	}
	return nil
}

func (s *RedisCommentStore) Clear() error {
	ctx, cancel := context.WithTimeout(context.Background(), redisTimeout)
	defer cancel()
	if err := s.client.Del(ctx, s.key).Err(); err != nil {
		return fmt.Errorf("redis del %s: %w", s.key, err)
	}
	return nil
}
