package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/kailas-cloud/pixgallery/internal/db"
	"github.com/kailas-cloud/pixgallery/internal/domain"
	domsession "github.com/kailas-cloud/pixgallery/internal/domain/session"
)

var keyPrefix = domain.KeyPrefix + "session:"

// store is the consumer interface for sessions (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Del(ctx context.Context, key string) error
}

// Repo keeps gallery sessions as JSON documents with an expiry.
type Repo struct {
	store store
	ttl   time.Duration
}

// New creates a session repository. Every Save refreshes the TTL.
func New(s store, ttl time.Duration) *Repo {
	return &Repo{store: s, ttl: ttl}
}

// Get loads a session. Returns domain.ErrSessionNotFound for an unknown or expired id.
func (r *Repo) Get(ctx context.Context, id string) (domsession.Session, error) {
	if id == "" {
		return domsession.Session{}, domain.ErrSessionNotFound
	}

	data, err := r.store.Get(ctx, sessionKey(id))
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return domsession.Session{}, domain.ErrSessionNotFound
		}
		return domsession.Session{}, fmt.Errorf("get session: %w", err)
	}

	var dto sessionDTO
	if err := json.Unmarshal(data, &dto); err != nil {
		return domsession.Session{}, fmt.Errorf("decode session %s: %w", id, err)
	}

	s, err := dto.toDomain()
	if err != nil {
		return domsession.Session{}, fmt.Errorf("decode session %s: %w", id, err)
	}
	return s, nil
}

// Save stores the session under id.
func (r *Repo) Save(ctx context.Context, id string, s domsession.Session) error {
	data, err := json.Marshal(fromDomain(s))
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := r.store.SetWithTTL(ctx, sessionKey(id), data, r.ttl); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// Delete removes the session. Deleting an unknown id is not an error.
func (r *Repo) Delete(ctx context.Context, id string) error {
	if err := r.store.Del(ctx, sessionKey(id)); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func sessionKey(id string) string {
	return keyPrefix + id
}
