package service

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/foodiez/directory/internal/auth"
	"github.com/foodiez/directory/internal/config"
	"github.com/foodiez/directory/internal/events"
	"github.com/foodiez/directory/internal/repository/memory"
)

const testAdminCode = "42admin"

type countingVault struct {
	inner    *auth.Vault
	hashes   atomic.Int32
	verifies atomic.Int32
}

func newCountingVault(cost int) *countingVault {
	return &countingVault{inner: auth.NewVault(cost)}
}

func (v *countingVault) Hash(secret string) (string, error) {
	v.hashes.Add(1)
	return v.inner.Hash(secret)
}

func (v *countingVault) Verify(secret, hash string) bool {
	v.verifies.Add(1)
	return v.inner.Verify(secret, hash)
}

type recordedEvents struct {
	mu     sync.Mutex
	events []events.Event
}

func (r *recordedEvents) handler(_ context.Context, e events.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
	return nil
}

func (r *recordedEvents) types() []events.EventType {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]events.EventType, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.Type)
	}
	return out
}

type fixture struct {
	store        *memory.Store
	vault        *countingVault
	identities   *IdentityStore
	registration *RegistrationService
	authn        *AuthenticationService
	tokens       *auth.TokenManager
	recorded     *recordedEvents
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	return newFixtureWithCost(t, bcrypt.MinCost)
}

func newFixtureWithCost(t *testing.T, cost int) *fixture {
	t.Helper()
	store := memory.NewStore()
	vault := newCountingVault(cost)
	dispatcher := events.NewInMemoryDispatcher()
	recorded := &recordedEvents{}
	for _, et := range []events.EventType{
		events.EventUserRegistered,
		events.EventAdminRegistered,
		events.EventRestaurantCreated,
		events.EventReviewPosted,
	} {
		dispatcher.Subscribe(et, recorded.handler)
	}

	identities := NewIdentityStore(config.IdentityConfig{MaxSlugAttempts: 10}, IdentityDependencies{
		UserRepo:       store.Users(),
		AdminRepo:      store.Admins(),
		RestaurantRepo: store.Restaurants(),
	})
	tokens := auth.NewTokenManager("test-secret", 5)
	authn, err := NewAuthenticationService(AuthenticationDependencies{
		Identities: identities,
		Vault:      vault,
		Tokens:     tokens,
	})
	require.NoError(t, err)
	vault.hashes.Store(0)

	return &fixture{
		store:      store,
		vault:      vault,
		identities: identities,
		registration: NewRegistrationService(testAdminCode, RegistrationDependencies{
			Identities: identities,
			Vault:      vault,
			Dispatcher: dispatcher,
		}),
		authn:    authn,
		tokens:   tokens,
		recorded: recorded,
	}
}
