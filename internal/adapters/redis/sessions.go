package redisad

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"homestay_wizard/internal/adapters/observability"
	"homestay_wizard/internal/domain"
)

// Sessions keeps wizard sessions in Redis as JSON with a TTL, so abandoned
// drafts expire on their own.
type Sessions struct{ c *redis.Client }

func New(addr, pass string, db int) *Sessions {
	return &Sessions{c: redis.NewClient(&redis.Options{Addr: addr, Password: pass, DB: db})}
}

func key(id string) string { return "wizard:sess:" + id }

func (s *Sessions) Get(ctx context.Context, id string) (domain.Session, bool, error) {
	v, err := s.c.Get(ctx, key(id)).Bytes()
	if err == redis.Nil {
		observability.ObserveSessions("redis", "miss")
		return domain.Session{}, false, nil
	}
	if err != nil {
		return domain.Session{}, false, err
	}
	observability.ObserveSessions("redis", "hit")
	var sess domain.Session
	if err := json.Unmarshal(v, &sess); err != nil {
		return domain.Session{}, false, err
	}
	return sess, true, nil
}

func (s *Sessions) Put(ctx context.Context, sess domain.Session, ttlSec int) error {
	b, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	observability.ObserveSessions("redis", "set")
	return s.c.Set(ctx, key(sess.ID), b, time.Duration(ttlSec)*time.Second).Err()
}

func (s *Sessions) Del(ctx context.Context, id string) error {
	observability.ObserveSessions("redis", "del")
	return s.c.Del(ctx, key(id)).Err()
}
