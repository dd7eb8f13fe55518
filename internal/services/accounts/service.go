// Package accounts manages tenant accounts. Account creation is the only
// operation in the system that works without a current account: an anonymous
// caller creates a root account that becomes its own owner.
package accounts

import (
	"context"
	stderrors "errors"

	"github.com/agendalabs/meetingd/internal/domain/account"
	"github.com/agendalabs/meetingd/internal/errors"
	"github.com/agendalabs/meetingd/internal/mesh"
	"github.com/agendalabs/meetingd/internal/storage"
	"github.com/agendalabs/meetingd/pkg/logger"
)

// Kind resolves the account service through the mesh.
const Kind = mesh.Kind("accounts")

// Service is the account domain service, bound to one request's mesh.
type Service struct {
	mesh  *mesh.Mesh
	store storage.AccountStore
	log   *logger.Logger
}

// New constructs the service from a mesh.
func New(m *mesh.Mesh) *Service {
	return &Service{
		mesh:  m,
		store: m.Stores().Accounts,
		log:   m.Log().WithField("service", "accounts"),
	}
}

// Create creates an account. Under an authenticated caller the new account
// is owned by that caller; anonymously it is created, committed to obtain an
// identifier, then updated to own itself.
func (s *Service) Create(ctx context.Context, name, email string) (account.Account, error) {
	if current := s.mesh.Account(); current != nil {
		acct, err := s.store.CreateAccount(ctx, account.Account{
			Name:    name,
			Email:   email,
			OwnerID: current.ID,
		})
		if err != nil {
			return account.Account{}, translateCreateErr(err)
		}
		s.log.WithField("account_id", acct.ID).
			WithField("owner_id", current.ID).
			Info("account created")
		return acct, nil
	}

	acct, err := s.store.CreateAccount(ctx, account.Account{Name: name, Email: email})
	if err != nil {
		return account.Account{}, translateCreateErr(err)
	}
	acct, err = s.store.SetAccountOwner(ctx, acct.ID, acct.ID)
	if err != nil {
		return account.Account{}, err
	}
	s.log.WithField("account_id", acct.ID).Info("root account created")
	return acct, nil
}

// List returns all accounts owned by the current account, ordered by
// identifier.
func (s *Service) List(ctx context.Context) ([]account.Account, error) {
	current, err := s.mesh.RequireAccount()
	if err != nil {
		return nil, err
	}
	return s.store.ListAccounts(ctx, current.ID)
}

// Get returns one owned account.
func (s *Service) Get(ctx context.Context, id int64) (account.Account, error) {
	current, err := s.mesh.RequireAccount()
	if err != nil {
		return account.Account{}, err
	}
	acct, err := s.store.GetOwnedAccount(ctx, current.ID, id)
	if err != nil {
		if stderrors.Is(err, storage.ErrNotFound) {
			return account.Account{}, errors.NotFound("account")
		}
		return account.Account{}, err
	}
	return acct, nil
}

// GetByIDs returns the subset of ids owned by the current account. Unknown
// and non-owned ids are silently dropped; callers compare the returned count
// with the distinct requested count to detect invalid references.
func (s *Service) GetByIDs(ctx context.Context, ids []int64) ([]account.Account, error) {
	current, err := s.mesh.RequireAccount()
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, nil
	}
	return s.store.ListAccountsByIDs(ctx, current.ID, ids)
}

func translateCreateErr(err error) error {
	if stderrors.Is(err, storage.ErrDuplicateEmail) {
		return errors.Conflict("email already registered")
	}
	return err
}
