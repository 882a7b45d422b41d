package couriers_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"courierhub/internal/adapters/out/couriers"
	"courierhub/internal/core/ports"
	"courierhub/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAuthenticator struct {
	name  string
	calls atomic.Int64
	delay time.Duration

	// authenticate returns the credential (or error) for the given call
	// number, starting at 1.
	authenticate func(call int64) (ports.Credential, error)
}

func (f *fakeAuthenticator) Name() string {
	return f.name
}

func (f *fakeAuthenticator) Authenticate(_ context.Context) (ports.Credential, error) {
	call := f.calls.Add(1)
	if f.delay > 0 {
		time.Sleep(f.delay)
	}
	return f.authenticate(call)
}

func freshCredential(token string) ports.Credential {
	now := time.Now()
	return ports.Credential{
		Token:     token,
		IssuedAt:  now,
		ExpiresAt: now.Add(12 * time.Hour),
	}
}

func TestCredentialCache_Token(t *testing.T) {
	t.Run("should authenticate once and serve cached token after", func(t *testing.T) {
		cache := couriers.NewCredentialCache(0)
		auth := &fakeAuthenticator{
			name: "delhivery",
			authenticate: func(int64) (ports.Credential, error) {
				return freshCredential("tok-1"), nil
			},
		}

		for range 3 {
			token, err := cache.Token(context.Background(), auth)
			require.NoError(t, err)
			assert.Equal(t, "tok-1", token)
		}

		assert.Equal(t, int64(1), auth.calls.Load())
	})

	t.Run("should collapse concurrent refreshes into one authentication", func(t *testing.T) {
		cache := couriers.NewCredentialCache(0)
		auth := &fakeAuthenticator{
			name:  "xpressbees",
			delay: 20 * time.Millisecond,
			authenticate: func(int64) (ports.Credential, error) {
				return freshCredential("tok-shared"), nil
			},
		}

		var wg sync.WaitGroup
		for range 10 {
			wg.Add(1)
			go func() {
				defer wg.Done()

				token, err := cache.Token(context.Background(), auth)
				assert.NoError(t, err)
				assert.Equal(t, "tok-shared", token)
			}()
		}
		wg.Wait()

		assert.Equal(t, int64(1), auth.calls.Load())
	})

	t.Run("should refresh independently per provider", func(t *testing.T) {
		cache := couriers.NewCredentialCache(0)
		first := &fakeAuthenticator{
			name: "delhivery",
			authenticate: func(int64) (ports.Credential, error) {
				return freshCredential("tok-a"), nil
			},
		}
		second := &fakeAuthenticator{
			name: "bluedart",
			authenticate: func(int64) (ports.Credential, error) {
				return freshCredential("tok-b"), nil
			},
		}

		tokenA, err := cache.Token(context.Background(), first)
		require.NoError(t, err)
		tokenB, err := cache.Token(context.Background(), second)
		require.NoError(t, err)

		assert.Equal(t, "tok-a", tokenA)
		assert.Equal(t, "tok-b", tokenB)
		assert.Equal(t, int64(1), first.calls.Load())
		assert.Equal(t, int64(1), second.calls.Load())
	})

	t.Run("should re-authenticate when token is inside expiry buffer", func(t *testing.T) {
		cache := couriers.NewCredentialCache(couriers.DefaultExpiryBuffer)
		auth := &fakeAuthenticator{
			name: "ecomexpress",
			authenticate: func(call int64) (ports.Credential, error) {
				now := time.Now()
				if call == 1 {
					// Expires within the buffer, so the next lookup misses.
					return ports.Credential{
						Token:     "tok-stale",
						IssuedAt:  now,
						ExpiresAt: now.Add(10 * time.Second),
					}, nil
				}
				return freshCredential("tok-fresh"), nil
			},
		}

		token, err := cache.Token(context.Background(), auth)
		require.NoError(t, err)
		assert.Equal(t, "tok-stale", token)

		token, err = cache.Token(context.Background(), auth)
		require.NoError(t, err)
		assert.Equal(t, "tok-fresh", token)
		assert.Equal(t, int64(2), auth.calls.Load())
	})

	t.Run("should retry once on transient failure", func(t *testing.T) {
		cache := couriers.NewCredentialCache(0)
		auth := &fakeAuthenticator{
			name: "delhivery",
			authenticate: func(call int64) (ports.Credential, error) {
				if call == 1 {
					return ports.Credential{}, errs.NewProviderAPIError("delhivery", 503, errors.New("upstream busy"))
				}
				return freshCredential("tok-retry"), nil
			},
		}

		token, err := cache.Token(context.Background(), auth)

		require.NoError(t, err)
		assert.Equal(t, "tok-retry", token)
		assert.Equal(t, int64(2), auth.calls.Load())
	})

	t.Run("should not retry a credential rejection", func(t *testing.T) {
		cache := couriers.NewCredentialCache(0)
		auth := &fakeAuthenticator{
			name: "xpressbees",
			authenticate: func(int64) (ports.Credential, error) {
				return ports.Credential{}, errs.NewAuthenticationError("xpressbees", errors.New("invalid password"))
			},
		}

		_, err := cache.Token(context.Background(), auth)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrAuthenticationFailed)
		assert.Equal(t, int64(1), auth.calls.Load())
	})

	t.Run("should wrap unexpected failures as authentication errors", func(t *testing.T) {
		cache := couriers.NewCredentialCache(0)
		auth := &fakeAuthenticator{
			name: "bluedart",
			authenticate: func(int64) (ports.Credential, error) {
				return ports.Credential{}, errs.NewProviderAPIError("bluedart", 418, errors.New("unexpected response"))
			},
		}

		_, err := cache.Token(context.Background(), auth)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrAuthenticationFailed)

		var authErr errs.AuthenticationError
		require.ErrorAs(t, err, &authErr)
		assert.Equal(t, "bluedart", authErr.Provider)
	})
}

func TestCredentialCache_Invalidate(t *testing.T) {
	cache := couriers.NewCredentialCache(0)
	auth := &fakeAuthenticator{
		name: "delhivery",
		authenticate: func(call int64) (ports.Credential, error) {
			if call == 1 {
				return freshCredential("tok-old"), nil
			}
			return freshCredential("tok-new"), nil
		},
	}

	token, err := cache.Token(context.Background(), auth)
	require.NoError(t, err)
	assert.Equal(t, "tok-old", token)

	cache.Invalidate("delhivery")

	token, err = cache.Token(context.Background(), auth)
	require.NoError(t, err)
	assert.Equal(t, "tok-new", token)
	assert.Equal(t, int64(2), auth.calls.Load())
}
