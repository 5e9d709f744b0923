package session

import (
	"context"
	"time"

	"github.com/kailas-cloud/pixgallery/internal/db"
	"github.com/kailas-cloud/pixgallery/internal/domain/gallery"
	"github.com/kailas-cloud/pixgallery/internal/domain/image"
	"github.com/kailas-cloud/pixgallery/internal/domain/pagination"
	"github.com/kailas-cloud/pixgallery/internal/domain/query"
	domsession "github.com/kailas-cloud/pixgallery/internal/domain/session"
)

// mockStore implements the consumer interface for tests.
type mockStore struct {
	getFn func(ctx context.Context, key string) ([]byte, error)
	setFn func(ctx context.Context, key string, value []byte, ttl time.Duration) error
	delFn func(ctx context.Context, key string) error
}

func (m *mockStore) Get(ctx context.Context, key string) ([]byte, error) {
	if m.getFn != nil {
		return m.getFn(ctx, key)
	}
	return nil, db.ErrKeyNotFound
}

func (m *mockStore) SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if m.setFn != nil {
		return m.setFn(ctx, key, value, ttl)
	}
	return nil
}

func (m *mockStore) Del(ctx context.Context, key string) error {
	if m.delFn != nil {
		return m.delFn(ctx, key)
	}
	return nil
}

// memStore records writes so Get can return them.
func memStore() *mockStore {
	data := map[string][]byte{}
	return &mockStore{
		getFn: func(_ context.Context, key string) ([]byte, error) {
			v, ok := data[key]
			if !ok {
				return nil, db.ErrKeyNotFound
			}
			return v, nil
		},
		setFn: func(_ context.Context, key string, value []byte, _ time.Duration) error {
			data[key] = value
			return nil
		},
		delFn: func(_ context.Context, key string) error {
			delete(data, key)
			return nil
		},
	}
}

func testSession() domsession.Session {
	var g gallery.Container
	g.RenderCards([]image.Image{
		image.New(7, "https://cdn/7_640.jpg", "https://cdn/7_1280.jpg", "", "red, rose", "",
			image.Stats{Likes: 10, Views: 20, Comments: 30, Downloads: 40}),
		image.New(8, "https://cdn/8_640.jpg", "https://cdn/8_1280.jpg", "", "tulip", "",
			image.Stats{Likes: 1, Views: 2, Comments: 3, Downloads: 4}),
	})
	return domsession.Reconstruct(query.Reconstruct("flowers", 1), g, pagination.MoreAvailable, 120)
}
