package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/shaONme/padel-admin/models"
)

const draftKeyPrefix = "padel:draft:"

// RedisDraftStore хранит черновики в Redis, чтобы незавершённый черновик
// переживал перезапуск админки. Значения — JSON с TTL.
type RedisDraftStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisDraftStore создаёт хранилище поверх готового клиента Redis.
func NewRedisDraftStore(client *redis.Client, ttl time.Duration) *RedisDraftStore {
	return &RedisDraftStore{
		client: client,
		ttl:    ttl,
	}
}

func draftKey(callerID int64) string {
	return fmt.Sprintf("%s%d", draftKeyPrefix, callerID)
}

func (s *RedisDraftStore) Get(ctx context.Context, callerID int64) (*models.TournamentDraft, error) {
	data, err := s.client.Get(ctx, draftKey(callerID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load draft from redis: %w", err)
	}

	var draft models.TournamentDraft
	if err := json.Unmarshal(data, &draft); err != nil {
		return nil, fmt.Errorf("failed to decode stored draft: %w", err)
	}
	return &draft, nil
}

func (s *RedisDraftStore) Save(ctx context.Context, callerID int64, draft *models.TournamentDraft) error {
	data, err := json.Marshal(draft)
	if err != nil {
		return fmt.Errorf("failed to encode draft: %w", err)
	}
	if err := s.client.Set(ctx, draftKey(callerID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save draft to redis: %w", err)
	}
	return nil
}

func (s *RedisDraftStore) Delete(ctx context.Context, callerID int64) error {
	if err := s.client.Del(ctx, draftKey(callerID)).Err(); err != nil {
		return fmt.Errorf("failed to delete draft from redis: %w", err)
	}
	return nil
}
