package crowdfund

import (
	"context"
	"errors"
	"testing"

	"fundflow/internal/domain"
)

type rejectingAuth struct{ addr domain.Address }

func (r rejectingAuth) Invoker(context.Context) (domain.Address, error) { return r.addr, nil }
func (rejectingAuth) RequireAuth(context.Context, domain.Address) error {
	return domain.ErrUnauthorized
}

func TestGateAuthenticate(t *testing.T) {
	tests := []struct {
		name    string
		gate    Gate
		ctx     context.Context
		want    domain.Address
		wantErr error
	}{
		{name: "verified invoker", gate: NewGate(ContextAuthenticator{}), ctx: as(alice), want: alice},
		{name: "no invoker", gate: NewGate(ContextAuthenticator{}), ctx: context.Background(), wantErr: domain.ErrUnauthorized},
		{name: "signature rejected", gate: NewGate(rejectingAuth{addr: alice}), ctx: context.Background(), wantErr: domain.ErrUnauthorized},
		{name: "blank invoker", gate: NewGate(rejectingAuth{addr: " "}), ctx: context.Background(), wantErr: domain.ErrUnauthorized},
		{name: "no authenticator", gate: Gate{}, ctx: as(alice), wantErr: domain.ErrUnauthorized},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := tc.gate.Authenticate(tc.ctx)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("Authenticate() error = %v, want %v", err, tc.wantErr)
			}
			if got != tc.want {
				t.Fatalf("Authenticate() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestGateRequireCallerIs(t *testing.T) {
	gate := NewGate(ContextAuthenticator{})
	if err := gate.RequireCallerIs(as(alice), alice); err != nil {
		t.Fatalf("RequireCallerIs() same caller error: %v", err)
	}
	if err := gate.RequireCallerIs(as(bob), alice); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("RequireCallerIs() other caller error = %v, want ErrUnauthorized", err)
	}
}

func TestWithInvokerIgnoresBlankAddress(t *testing.T) {
	ctx := WithInvoker(context.Background(), "  ")
	if _, ok := InvokerFromContext(ctx); ok {
		t.Fatalf("blank address stored in context")
	}
}
