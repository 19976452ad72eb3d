package identity

import (
	"crypto/rand"
	"fmt"
	"strings"
	"sync"

	"photochat/internal/errs"
)

const (
	userIDPrefix = "User_"
	suffixLength = 8
	alphabet     = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

// Resolver hands out the stable per-install user identifier. The identifier is
// generated once, persisted before it is ever returned, and cached afterwards.
type Resolver struct {
	mu     sync.Mutex
	store  *Store
	cached string
}

func NewResolver(store *Store) *Resolver {
	return &Resolver{store: store}
}

// Resolve returns the install's identifier, generating and persisting one on
// first use. When the local store is unusable the call fails with
// errs.ErrStorageUnavailable instead of fabricating a throwaway identifier;
// callers are expected to block chat features until resolution succeeds.
func (r *Resolver) Resolve() (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.cached != "" {
		return r.cached, nil
	}

	userID, err := r.store.Load()
	if err != nil {
		return "", fmt.Errorf("%w: %v", errs.ErrStorageUnavailable, err)
	}

	if userID == "" {
		generated, err := generateUserID()
		if err != nil {
			return "", fmt.Errorf("%w: %v", errs.ErrStorageUnavailable, err)
		}
		if err := r.store.Save(generated); err != nil {
			return "", fmt.Errorf("%w: %v", errs.ErrStorageUnavailable, err)
		}
		// Re-read instead of trusting our own value: if a concurrent process won
		// the insert, its identifier is the one that stuck.
		userID, err = r.store.Load()
		if err != nil || userID == "" {
			return "", fmt.Errorf("%w: %v", errs.ErrStorageUnavailable, err)
		}
	}

	r.cached = userID
	return userID, nil
}

// IsValid reports whether id looks like a device-generated identifier.
func IsValid(id string) bool {
	if !strings.HasPrefix(id, userIDPrefix) {
		return false
	}
	suffix := strings.TrimPrefix(id, userIDPrefix)
	if len(suffix) < suffixLength {
		return false
	}
	for _, r := range suffix {
		if !strings.ContainsRune(alphabet, r) {
			return false
		}
	}
	return true
}

func generateUserID() (string, error) {
	buf := make([]byte, suffixLength)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate identifier: %w", err)
	}
	for i, b := range buf {
		buf[i] = alphabet[int(b)%len(alphabet)]
	}
	return userIDPrefix + string(buf), nil
}
