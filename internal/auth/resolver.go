package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/sirupsen/logrus"

	"wikimark/app/internal/user"
)

// DefaultIdentityHeader is the header the fronting authentication proxy
// uses to pass the caller's user ID downstream.
const DefaultIdentityHeader = "X-User-ID"

// Resolver answers "who is the current caller" for a request. An empty ID
// with a nil error means the request is anonymous; issuing or verifying
// credentials is the authentication collaborator's job, not this core's.
type Resolver interface {
	Resolve(ctx context.Context, r *http.Request) (string, error)
}

// HeaderResolver trusts an identity header set by the fronting
// authentication proxy and checks that the ID maps to a stored account.
type HeaderResolver struct {
	header string
	users  user.Repository
	logger *logrus.Logger
}

// NewHeaderResolver constructs a resolver reading the given header. An
// empty header name falls back to DefaultIdentityHeader.
func NewHeaderResolver(header string, users user.Repository, logger *logrus.Logger) (*HeaderResolver, error) {
	if users == nil {
		return nil, eris.New("user repository is required")
	}

	if strings.TrimSpace(header) == "" {
		header = DefaultIdentityHeader
	}

	return &HeaderResolver{header: header, users: users, logger: logger}, nil
}

var _ Resolver = (*HeaderResolver)(nil)

// Resolve returns the caller's user ID, or empty when the header is absent
// or names an unknown account.
func (h *HeaderResolver) Resolve(ctx context.Context, r *http.Request) (string, error) {
	if r == nil {
		return "", nil
	}

	id := strings.TrimSpace(r.Header.Get(h.header))
	if id == "" {
		return "", nil
	}

	account, err := h.users.GetByID(ctx, id)
	if err != nil {
		return "", eris.Wrapf(err, "resolving caller identity: %s", id)
	}

	if account == nil {
		if h.logger != nil {
			h.logger.WithField("user_id", id).Warn("identity header names an unknown user")
		}
		return "", nil
	}

	return account.ID, nil
}
