package pagecache

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/pixgallery/internal/db"
	"github.com/kailas-cloud/pixgallery/internal/domain/image"
	"github.com/kailas-cloud/pixgallery/internal/domain/page"
)

type mockFetcher struct {
	result page.Page
	err    error
	calls  int
}

func (m *mockFetcher) FetchPage(_ context.Context, _ string, _ int) (page.Page, error) {
	m.calls++
	return m.result, m.err
}

// mockKVStore implements the consumer interface for tests.
type mockKVStore struct {
	getFn func(ctx context.Context, key string) ([]byte, error)
	setFn func(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

func (m *mockKVStore) Get(ctx context.Context, key string) ([]byte, error) {
	if m.getFn != nil {
		return m.getFn(ctx, key)
	}
	return nil, db.ErrKeyNotFound
}

func (m *mockKVStore) SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if m.setFn != nil {
		return m.setFn(ctx, key, value, ttl)
	}
	return nil
}

// memKVStore is a map-backed store for round-trip tests.
type memKVStore struct {
	data map[string][]byte
	ttls map[string]time.Duration
}

func newMemKVStore() *memKVStore {
	return &memKVStore{data: map[string][]byte{}, ttls: map[string]time.Duration{}}
}

func (m *memKVStore) Get(_ context.Context, key string) ([]byte, error) {
	v, ok := m.data[key]
	if !ok {
		return nil, db.ErrKeyNotFound
	}
	return v, nil
}

func (m *memKVStore) SetWithTTL(_ context.Context, key string, value []byte, ttl time.Duration) error {
	m.data[key] = value
	m.ttls[key] = ttl
	return nil
}

func newTestCachedFetcher(t *testing.T, inner *mockFetcher, s store) *CachedFetcher {
	t.Helper()
	return New(inner, s, time.Hour, nil, zap.NewNop())
}

func testPage() page.Page {
	return page.New(4692, 500, []image.Image{
		image.New(1, "https://cdn/1_640.jpg", "https://cdn/1_1280.jpg", "https://pixabay.com/1", "cat, pet", "ann",
			image.Stats{Likes: 1, Views: 2, Comments: 3, Downloads: 4}),
		image.New(2, "https://cdn/2_640.jpg", "https://cdn/2_1280.jpg", "https://pixabay.com/2", "dog", "bob",
			image.Stats{Likes: 5, Views: 6, Comments: 7, Downloads: 8}),
	})
}
