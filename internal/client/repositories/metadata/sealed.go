package metadata

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/donatello/internal/cryptox"
)

// SaltKey is reserved by SealedRepository for its key-derivation salt.
const SaltKey = "__salt"

const saltSize = 16

var ErrEmptyPassphrase = errors.New("empty passphrase")

// SealedRepository encrypts every value before handing it to the wrapped
// Repository. Keys are stored in clear.
type SealedRepository struct {
	inner Repository
	key   []byte
	salt  []byte
}

var _ Repository = (*SealedRepository)(nil)

// NewSealedRepository wraps inner, reusing the salt already stored there or
// creating a fresh one.
func NewSealedRepository(ctx context.Context, inner Repository, passphrase []byte) (*SealedRepository, error) {
	if len(passphrase) == 0 {
		return nil, ErrEmptyPassphrase
	}

	salt, err := inner.Get(ctx, SaltKey)
	if err != nil {
		return nil, err
	}
	if salt == nil {
		if salt, err = cryptox.RandomBytes(saltSize); err != nil {
			return nil, err
		}
		if err := inner.Set(ctx, SaltKey, salt); err != nil {
			return nil, err
		}
	}

	return &SealedRepository{
		inner: inner,
		key:   cryptox.DeriveKey(passphrase, salt),
		salt:  salt,
	}, nil
}

func (r *SealedRepository) Get(ctx context.Context, key string) ([]byte, error) {
	sealed, err := r.inner.Get(ctx, key)
	if err != nil || sealed == nil {
		return nil, err
	}
	return r.open(key, sealed)
}

func (r *SealedRepository) Set(ctx context.Context, key string, value []byte) error {
	return r.SetMany(ctx, map[string][]byte{key: value})
}

func (r *SealedRepository) SetMany(ctx context.Context, values map[string][]byte) error {
	sealed := make(map[string][]byte, len(values))
	for k, v := range values {
		if k == SaltKey {
			return fmt.Errorf("metadata[%s] is reserved", k)
		}
		s, err := cryptox.Seal(r.key, v)
		if err != nil {
			return fmt.Errorf("failed to seal metadata[%s]: %w", k, err)
		}
		sealed[k] = s
	}
	return r.inner.SetMany(ctx, sealed)
}

func (r *SealedRepository) Delete(ctx context.Context, keys ...string) error {
	return r.inner.Delete(ctx, keys...)
}

func (r *SealedRepository) List(ctx context.Context) (map[string][]byte, error) {
	all, err := r.inner.List(ctx)
	if err != nil {
		return nil, err
	}

	result := make(map[string][]byte, len(all))
	for k, v := range all {
		if k == SaltKey {
			continue
		}
		plain, err := r.open(k, v)
		if err != nil {
			return nil, err
		}
		result[k] = plain
	}
	return result, nil
}

// Clear empties the wrapped store but keeps the salt so the derived key
// stays valid.
func (r *SealedRepository) Clear(ctx context.Context) error {
	if err := r.inner.Clear(ctx); err != nil {
		return err
	}
	return r.inner.Set(ctx, SaltKey, r.salt)
}

func (r *SealedRepository) open(key string, sealed []byte) ([]byte, error) {
	plain, err := cryptox.Open(r.key, sealed)
	if err != nil {
		return nil, fmt.Errorf("failed to open metadata[%s]: %w", key, err)
	}
	return plain, nil
}
