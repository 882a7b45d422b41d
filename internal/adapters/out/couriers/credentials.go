package couriers

import (
	"context"
	"errors"
	"sync"
	"time"

	"courierhub/internal/core/ports"
	"courierhub/internal/pkg/errs"

	"golang.org/x/sync/singleflight"
)

// DefaultExpiryBuffer is subtracted from a credential's expiry when judging
// freshness, so tokens are refreshed before the provider rejects them.
const DefaultExpiryBuffer = 60 * time.Second

// Authenticator is the slice of ports.Provider the credential cache needs.
type Authenticator interface {
	Name() string
	Authenticate(ctx context.Context) (ports.Credential, error)
}

// CredentialCache caches provider credentials and collapses concurrent
// refreshes for the same provider into a single authentication call.
// Cache misses for different providers refresh independently.
type CredentialCache struct {
	mu     sync.RWMutex
	creds  map[string]ports.Credential
	group  singleflight.Group
	buffer time.Duration
	now    func() time.Time
}

// NewCredentialCache creates a CredentialCache with the given expiry buffer.
// A non-positive buffer falls back to the default.
func NewCredentialCache(buffer time.Duration) *CredentialCache {
	if buffer <= 0 {
		buffer = DefaultExpiryBuffer
	}

	return &CredentialCache{
		creds:  make(map[string]ports.Credential),
		buffer: buffer,
		now:    time.Now,
	}
}

// Token returns a valid token for the provider, authenticating on cache
// miss or expiry. Concurrent callers for the same provider share one
// in-flight authentication. A transient failure is retried once; a
// rejection (bad credentials) is not.
func (c *CredentialCache) Token(ctx context.Context, auth Authenticator) (string, error) {
	name := auth.Name()

	if cred, ok := c.lookup(name); ok {
		return cred.Token, nil
	}

	result, err, _ := c.group.Do(name, func() (any, error) {
		// Another caller may have refreshed while this one waited.
		if cred, ok := c.lookup(name); ok {
			return cred, nil
		}

		cred, err := c.authenticate(ctx, auth)
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		c.creds[name] = cred
		c.mu.Unlock()

		return cred, nil
	})
	if err != nil {
		return "", err
	}

	return result.(ports.Credential).Token, nil
}

// Invalidate drops the cached credential for a provider, forcing the next
// Token call to re-authenticate. Called after a 401 on a business call.
func (c *CredentialCache) Invalidate(providerName string) {
	c.mu.Lock()
	delete(c.creds, providerName)
	c.mu.Unlock()
}

func (c *CredentialCache) lookup(name string) (ports.Credential, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	cred, ok := c.creds[name]
	if !ok || !cred.Valid(c.now(), c.buffer) {
		return ports.Credential{}, false
	}

	return cred, true
}

func (c *CredentialCache) authenticate(ctx context.Context, auth Authenticator) (ports.Credential, error) {
	cred, err := auth.Authenticate(ctx)
	if err != nil && errs.IsTransient(err) {
		cred, err = auth.Authenticate(ctx)
	}
	if err != nil {
		var authErr errs.AuthenticationError
		if errors.As(err, &authErr) {
			return ports.Credential{}, err
		}
		return ports.Credential{}, errs.NewAuthenticationError(auth.Name(), err)
	}

	return cred, nil
}
