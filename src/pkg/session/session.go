package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	keyPattern = "SESSION:%s"
	activeKey  = "SESSION:ACTIVE"
)

// Session is the explicit per-login state object. It is populated when the
// dashboard session is opened, cleared on logout, and expires with its TTL.
// Handlers read identity from here (via the verified claims), never from
// ambient state.
type Session struct {
	UserID    string    `json:"userId"`
	Role      string    `json:"role"`
	FullName  string    `json:"fullName"`
	Token     string    `json:"token"`
	CreatedAt time.Time `json:"createdAt"`
}

type Store struct {
	Redis redis.UniversalClient
	TTL   time.Duration
}

func NewStore(client redis.UniversalClient, ttl time.Duration) *Store {
	return &Store{
		Redis: client,
		TTL:   ttl,
	}
}

func (s *Store) Put(ctx context.Context, sess *Session) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	key := fmt.Sprintf(keyPattern, sess.UserID)
	if err := s.Redis.Set(ctx, key, data, s.TTL).Err(); err != nil {
		return err
	}
	return s.Redis.SAdd(ctx, activeKey, sess.UserID).Err()
}

func (s *Store) Get(ctx context.Context, userID string) (*Session, error) {
	data, err := s.Redis.Get(ctx, fmt.Sprintf(keyPattern, userID)).Result()
	if err != nil {
		return nil, err
	}
	var sess Session
	if err := json.Unmarshal([]byte(data), &sess); err != nil {
		return nil, err
	}
	return &sess, nil
}

func (s *Store) Delete(ctx context.Context, userID string) error {
	if err := s.Redis.Del(ctx, fmt.Sprintf(keyPattern, userID)).Err(); err != nil {
		return err
	}
	return s.Redis.SRem(ctx, activeKey, userID).Err()
}

// Active returns user ids with a live session. Expired sessions are pruned
// from the set lazily as the background refreshers encounter them.
func (s *Store) Active(ctx context.Context) ([]string, error) {
	return s.Redis.SMembers(ctx, activeKey).Result()
}

func (s *Store) Prune(ctx context.Context, userID string) error {
	return s.Redis.SRem(ctx, activeKey, userID).Err()
}
