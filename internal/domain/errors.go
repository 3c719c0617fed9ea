package domain

import "errors"

// Error taxonomy for the distance-query pipeline. Each failure mode maps to
// exactly one of these sentinels; callers classify with errors.Is.
var (
	// Malformed or empty input; rejected before any external call.
	ErrInvalidInput = errors.New("invalid input")

	// The lookup provider reports the postal code does not exist.
	ErrCEPNotFound = errors.New("postal code not found")

	// The geocoding provider returned no match for the address.
	ErrNoGeocodeMatch = errors.New("address could not be geocoded")

	// Network failure, timeout or non-2xx response from an external provider.
	ErrUpstreamUnavailable = errors.New("upstream provider unavailable")

	// The repository could not complete a read or write.
	ErrPersistence = errors.New("persistence failure")

	// A CRUD operation referenced an unknown record id.
	ErrRecordNotFound = errors.New("query record not found")
)
