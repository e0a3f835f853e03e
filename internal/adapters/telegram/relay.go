package telegram

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// relayTTL bounds how long an operator can reply to a forwarded message.
const relayTTL = 72 * time.Hour

// RelayStore correlates messages forwarded to the operator chat back to the
// user who wrote them. Transport bookkeeping only, so it lives in redis
// rather than the core's tables.
type RelayStore struct {
	client *redis.Client
}

func NewRelayStore(client *redis.Client) *RelayStore {
	return &RelayStore{client: client}
}

// Save remembers that the forwarded copy messageID belongs to userID.
func (s *RelayStore) Save(ctx context.Context, messageID int, userID int64) error {
	if err := s.client.Set(ctx, relayKey(messageID), userID, relayTTL).Err(); err != nil {
		return fmt.Errorf("save relay entry: %w", err)
	}
	return nil
}

// Resolve returns the user behind a forwarded copy, or redis.Nil via the
// wrapped error when the entry is unknown or expired.
func (s *RelayStore) Resolve(ctx context.Context, messageID int) (int64, error) {
	userID, err := s.client.Get(ctx, relayKey(messageID)).Int64()
	if err != nil {
		return 0, fmt.Errorf("resolve relay entry: %w", err)
	}
	return userID, nil
}

func relayKey(messageID int) string {
	return fmt.Sprintf("relay:%d", messageID)
}
