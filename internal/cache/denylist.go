package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/redis/go-redis/v9"
)

// Denylist records revoked bearer tokens in Redis so the auth middleware can
// reject them without a ledger query. Entries expire with the token itself;
// the tokens table stays the source of truth and a Redis miss only means the
// slower path is taken.
type Denylist struct {
	client *redis.Client
}

func NewDenylist(client *redis.Client) *Denylist {
	return &Denylist{client: client}
}

func denyKey(token string) string {
	sum := sha256.Sum256([]byte(token))
	return "token:revoked:" + hex.EncodeToString(sum[:])
}

func (d *Denylist) Revoke(ctx context.Context, token string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	return d.client.Set(ctx, denyKey(token), "1", ttl).Err()
}

func (d *Denylist) IsRevoked(ctx context.Context, token string) (bool, error) {
	n, err := d.client.Exists(ctx, denyKey(token)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
