package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/foodiez/directory/pkg/util/errorutil"
)

type fakeCache struct {
	entries map[string][]byte
	gets    int
	sets    int
	getErr  error
}

func newFakeCache() *fakeCache { return &fakeCache{entries: map[string][]byte{}} }

func (c *fakeCache) Get(_ context.Context, key string, dst any) (bool, error) {
	c.gets++
	if c.getErr != nil {
		return false, c.getErr
	}
	raw, ok := c.entries[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dst)
}

func (c *fakeCache) Set(_ context.Context, key string, v any) error {
	c.sets++
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	c.entries[key] = raw
	return nil
}

func TestProfile_ReadThroughCache(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	user, err := f.registration.RegisterUser(ctx, "Jane Doe", "jane@x.com", "secret1")
	require.NoError(t, err)

	cache := newFakeCache()
	profiles := NewProfileService(f.identities, cache, nil)

	got, err := profiles.GetBySlug(ctx, "jane-doe")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
	assert.Equal(t, "Jane Doe", got.Name)
	assert.Empty(t, got.Email)
	assert.Empty(t, got.PasswordHash)
	assert.Equal(t, 1, cache.sets)
	assert.NotContains(t, string(cache.entries["jane-doe"]), "jane@x.com")

	again, err := profiles.GetBySlug(ctx, "jane-doe")
	require.NoError(t, err)
	assert.Equal(t, got.ID, again.ID)
	assert.Equal(t, 1, cache.sets)
	assert.Equal(t, 2, cache.gets)
}

func TestProfile_CacheFailureFallsBackToStore(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.registration.RegisterUser(ctx, "Jane Doe", "jane@x.com", "secret1")
	require.NoError(t, err)

	cache := newFakeCache()
	cache.getErr = errors.New("redis down")
	got, err := NewProfileService(f.identities, cache, nil).GetBySlug(ctx, "jane-doe")
	require.NoError(t, err)
	assert.Equal(t, "jane-doe", got.Slug)
}

func TestProfile_NotFound(t *testing.T) {
	f := newFixture(t)

	_, err := NewProfileService(f.identities, nil, nil).GetBySlug(context.Background(), "ghost")
	de := apperrors.ToDomainError(err)
	require.NotNil(t, de)
	assert.Equal(t, "NOT_FOUND", de.Code)
}
