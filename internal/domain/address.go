package domain

import "strings"

// Street-level address resolved from a postal code.
// Fields mirror what the lookup provider returns; any of them may be empty.
type Address struct {
	Street       string
	Neighborhood string
	City         string
	State        string
}

// FreeText builds a geocoding-friendly textual query from the address
// components, skipping empty fields and appending the country.
func (a Address) FreeText() string {
	parts := make([]string, 0, 5)
	for _, p := range []string{a.Street, a.Neighborhood, a.City, a.State, "Brazil"} {
		if strings.TrimSpace(p) != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}
