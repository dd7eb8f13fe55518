// Package mesh is the indirection layer between request handlers and the
// domain services. A Mesh is created per request, bound to the caller's
// account (possibly absent) and the storage backends; it resolves service
// kinds to ready instances, guaranteeing at most one instance of each kind
// per request.
package mesh

import (
	stderrors "errors"
	"fmt"

	"github.com/agendalabs/meetingd/internal/domain/account"
	"github.com/agendalabs/meetingd/internal/errors"
	"github.com/agendalabs/meetingd/internal/storage"
	"github.com/agendalabs/meetingd/pkg/logger"
)

// Kind identifies a resolvable service type.
type Kind string

// ErrNoResolvers is reported when a composite has no resolvers configured.
var ErrNoResolvers = stderrors.New("no service resolvers configured")

// Resolver produces a service instance for a kind. A failed resolution
// returns a typed error; resolvers never panic to signal fallback.
type Resolver interface {
	Resolve(m *Mesh, kind Kind) (any, error)
}

// Local constructs services from the process-wide definition table.
type Local struct{}

// Resolve implements Resolver.
func (Local) Resolve(m *Mesh, kind Kind) (any, error) {
	def, ok := lookup(kind)
	if !ok {
		return nil, errors.ConstructionFailure(fmt.Errorf("no service registered for kind %q", kind))
	}
	return def.New(m)
}

// Composite tries resolvers in declared order and returns the first success
// or the last failure.
type Composite []Resolver

// Resolve implements Resolver.
func (c Composite) Resolve(m *Mesh, kind Kind) (any, error) {
	var lastErr error
	for _, r := range c {
		svc, err := r.Resolve(m, kind)
		if err == nil {
			return svc, nil
		}
		lastErr = err
	}
	if lastErr != nil {
		return nil, lastErr
	}
	return nil, errors.ConstructionFailure(ErrNoResolvers)
}

// cached memoizes resolutions per mesh instance.
type cached struct {
	inner Resolver
}

func (c cached) Resolve(m *Mesh, kind Kind) (any, error) {
	if svc, ok := m.cache[kind]; ok {
		return svc, nil
	}
	svc, err := c.inner.Resolve(m, kind)
	if err != nil {
		return nil, err
	}
	m.cache[kind] = svc
	return svc, nil
}

// Mesh is the request-scoped service locator.
type Mesh struct {
	account  *account.Account
	stores   storage.Stores
	log      *logger.Logger
	cache    map[Kind]any
	resolver Resolver
}

// New creates a mesh bound to the caller's account and the storage backends.
// acct is nil for anonymous requests. A nil resolver defaults to local
// construction; the effective resolver is always the caching wrapper around
// a composite of the configured strategies.
func New(acct *account.Account, stores storage.Stores, log *logger.Logger, resolver Resolver) *Mesh {
	if log == nil {
		log = logger.NewDefault("mesh")
	}
	if resolver == nil {
		resolver = Composite{Local{}}
	}
	return &Mesh{
		account:  acct,
		stores:   stores,
		log:      log,
		cache:    make(map[Kind]any),
		resolver: cached{inner: resolver},
	}
}

// Account returns the current account, or nil for anonymous requests.
func (m *Mesh) Account() *account.Account { return m.account }

// Stores returns the storage backends the mesh is bound to.
func (m *Mesh) Stores() storage.Stores { return m.stores }

// Log returns the request logger.
func (m *Mesh) Log() *logger.Logger { return m.log }

// Service resolves kind to a ready instance. The same instance is returned
// for the lifetime of the mesh; construction errors propagate unmodified.
func (m *Mesh) Service(kind Kind) (any, error) {
	return m.resolver.Resolve(m, kind)
}

// RequireAccount returns the current account or an authentication error.
// Every ownership-scoped operation calls this first.
func (m *Mesh) RequireAccount() (*account.Account, error) {
	if m.account == nil {
		return nil, errors.AuthenticationRequired()
	}
	return m.account, nil
}
