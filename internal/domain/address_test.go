package domain

import "testing"

func TestAddressFreeText(t *testing.T) {
	tests := []struct {
		name string
		addr Address
		want string
	}{
		{
			name: "full address",
			addr: Address{Street: "Praça da Sé", Neighborhood: "Sé", City: "São Paulo", State: "SP"},
			want: "Praça da Sé, Sé, São Paulo, SP, Brazil",
		},
		{
			name: "missing street and neighborhood",
			addr: Address{City: "Brasília", State: "DF"},
			want: "Brasília, DF, Brazil",
		},
		{
			name: "blank fields skipped",
			addr: Address{Street: "  ", City: "Rio de Janeiro", State: "RJ"},
			want: "Rio de Janeiro, RJ, Brazil",
		},
		{
			name: "empty address still names the country",
			addr: Address{},
			want: "Brazil",
		},
	}

	for _, tc := range tests {
		if got := tc.addr.FreeText(); got != tc.want {
			t.Errorf("%s: FreeText() = %q, want %q", tc.name, got, tc.want)
		}
	}
}
