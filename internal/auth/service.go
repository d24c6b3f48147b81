package auth

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/lumapos/lumapos/internal/platform/store"
	"github.com/lumapos/lumapos/internal/shared"
)

// AdminUser is the identity stored in the session for the single admin.
const AdminUser = "admin"

// Service guards the admin-only surface with a single bcrypt-hashed
// password kept in the store.
type Service struct {
	store           *store.Store
	defaultPassword string
}

func NewService(st *store.Store, defaultPassword string) *Service {
	return &Service{store: st, defaultPassword: defaultPassword}
}

// Authenticate checks the supplied password against the stored hash,
// seeding the hash from the configured default on first use.
func (s *Service) Authenticate(ctx context.Context, password string) error {
	hash, err := s.loadHash(ctx)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword(hash, []byte(password)); err != nil {
		return shared.ErrInvalidCredentials
	}
	return nil
}

func (s *Service) loadHash(ctx context.Context) ([]byte, error) {
	var stored string
	err := s.store.Get(ctx, store.KeyAdminPwd, &stored)
	if err == nil {
		return []byte(stored), nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(s.defaultPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	if err := s.store.Put(ctx, store.KeyAdminPwd, string(hash)); err != nil {
		return nil, err
	}
	return hash, nil
}
