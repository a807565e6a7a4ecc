// Package redis keeps checkout handoffs in Redis, where they expire on their own.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"marketplace/internal/core/domain/model/cart"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"

	goredis "github.com/redis/go-redis/v9"
)

const keyPrefix = "checkout:handoff:"

// HandoffStore implements ports.CartHandoffStore.
type HandoffStore struct {
	client *goredis.Client
}

func NewHandoffStore(client *goredis.Client) *HandoffStore {
	return &HandoffStore{client: client}
}

func (s *HandoffStore) Put(ctx context.Context, h cart.Handoff, ttl time.Duration) (kernel.UUID, error) {
	if ttl <= 0 {
		return kernel.UUID{}, errs.NewValueIsOutOfRangeError("ttl", ttl, "1ns", "∞")
	}
	payload, err := json.Marshal(h)
	if err != nil {
		return kernel.UUID{}, fmt.Errorf("encode handoff: %w", err)
	}

	id := kernel.NewUUID()
	if err = s.client.Set(ctx, key(id), payload, ttl).Err(); err != nil {
		return kernel.UUID{}, errs.NewPersistenceError("store handoff", err)
	}
	return id, nil
}

func (s *HandoffStore) Get(ctx context.Context, id kernel.UUID) (cart.Handoff, error) {
	if err := id.Validate(); err != nil {
		return cart.Handoff{}, err
	}

	payload, err := s.client.Get(ctx, key(id)).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return cart.Handoff{}, errs.NewObjectNotFoundError("handoff", id.String())
		}
		return cart.Handoff{}, errs.NewPersistenceError("get handoff", err)
	}

	var h cart.Handoff
	if err = json.Unmarshal(payload, &h); err != nil {
		return cart.Handoff{}, fmt.Errorf("decode handoff %s: %w", id, err)
	}
	return h, nil
}

func (s *HandoffStore) Delete(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	if err := s.client.Del(ctx, key(id)).Err(); err != nil {
		return errs.NewPersistenceError("delete handoff", err)
	}
	return nil
}

func key(id kernel.UUID) string {
	return keyPrefix + id.String()
}
