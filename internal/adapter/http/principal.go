package http

import (
	"context"
	"net/http"

	"github.com/neomorfeo/licenseiq/internal/domain"
)

type contextKey int

const principalKey contextKey = iota

// PrincipalMiddleware copies the acting principal from request headers into
// the request context. Token verification happens upstream of this service;
// the gateway forwards the resolved identity as plain headers.
func PrincipalMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actorID := r.Header.Get("X-Actor-Id")
		if actorID != "" {
			principal := domain.Principal{
				UserID: actorID,
				Role:   domain.Role(r.Header.Get("X-Actor-Role")),
			}
			r = r.WithContext(context.WithValue(r.Context(), principalKey, principal))
		}
		next.ServeHTTP(w, r)
	})
}

// Resolver implements domain.PrincipalResolver from the request context
// populated by PrincipalMiddleware.
type Resolver struct{}

// Compile-time check: Resolver implements domain.PrincipalResolver.
var _ domain.PrincipalResolver = (*Resolver)(nil)

// NewResolver creates a context-backed principal resolver.
func NewResolver() *Resolver {
	return &Resolver{}
}

// Resolve returns the principal stored on the context, or
// ErrMissingPrincipal when the request carried no identity.
func (Resolver) Resolve(ctx context.Context) (domain.Principal, error) {
	principal, ok := ctx.Value(principalKey).(domain.Principal)
	if !ok {
		return domain.Principal{}, domain.ErrMissingPrincipal
	}
	return principal, nil
}
