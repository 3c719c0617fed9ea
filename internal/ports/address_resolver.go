package ports

import (
	"context"
	"cep-distance-service/internal/domain"
)

// Port: a boundary for resolving a postal code to a street-level address.
type AddressResolver interface {
	// Resolve a postal code into an address. Fails with
	// domain.ErrCEPNotFound when the provider reports the code does not
	// exist, and domain.ErrUpstreamUnavailable on transport failures.
	ResolveAddress(ctx context.Context, cep string) (domain.Address, error)
}
