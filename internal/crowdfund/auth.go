package crowdfund

import (
	"context"
	"strings"

	"fundflow/internal/domain"
)

// Authenticator is implemented by the execution host. Invoker returns the
// principal claiming to invoke the current operation; RequireAuth fails unless
// that principal proved control of addr.
type Authenticator interface {
	Invoker(ctx context.Context) (domain.Address, error)
	RequireAuth(ctx context.Context, addr domain.Address) error
}

// Gate applies the ledger's authorization policy on top of an Authenticator.
type Gate struct {
	auth Authenticator
}

// NewGate wraps auth.
func NewGate(auth Authenticator) Gate {
	return Gate{auth: auth}
}

// Authenticate returns the proven identity of the caller.
func (g Gate) Authenticate(ctx context.Context) (domain.Address, error) {
	if g.auth == nil {
		return "", domain.ErrUnauthorized
	}
	addr, err := g.auth.Invoker(ctx)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(string(addr)) == "" {
		return "", domain.ErrUnauthorized
	}
	if err := g.auth.RequireAuth(ctx, addr); err != nil {
		return "", err
	}
	return addr, nil
}

// RequireCallerIs succeeds only when the proven caller equals identity.
func (g Gate) RequireCallerIs(ctx context.Context, identity domain.Address) error {
	caller, err := g.Authenticate(ctx)
	if err != nil {
		return err
	}
	if caller != identity {
		return domain.ErrUnauthorized
	}
	return nil
}

type invokerKey struct{}

// WithInvoker records a principal the host has already verified.
func WithInvoker(ctx context.Context, addr domain.Address) context.Context {
	if strings.TrimSpace(string(addr)) == "" {
		return ctx
	}
	return context.WithValue(ctx, invokerKey{}, addr)
}

// InvokerFromContext returns the principal set by WithInvoker, if any.
func InvokerFromContext(ctx context.Context) (domain.Address, bool) {
	addr, ok := ctx.Value(invokerKey{}).(domain.Address)
	return addr, ok
}

// ContextAuthenticator trusts the principal carried by WithInvoker.
type ContextAuthenticator struct{}

func (ContextAuthenticator) Invoker(ctx context.Context) (domain.Address, error) {
	addr, ok := InvokerFromContext(ctx)
	if !ok {
		return "", domain.ErrUnauthorized
	}
	return addr, nil
}

func (ContextAuthenticator) RequireAuth(ctx context.Context, addr domain.Address) error {
	got, ok := InvokerFromContext(ctx)
	if !ok || got != addr {
		return domain.ErrUnauthorized
	}
	return nil
}
