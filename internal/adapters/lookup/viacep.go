package lookup

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"cep-distance-service/internal/domain"
	"cep-distance-service/internal/metrics"
)

// ViaCEPClient implements AddressResolver using the ViaCEP provider.
//
// The client is a thin adapter: it normalizes the postal code, issues one
// request, and translates the provider's response and failure modes into
// the domain taxonomy. It is safe for concurrent use.
type ViaCEPClient struct {
	session *http.Client
	baseURL string
	metrics *metrics.MetricsRegistry
}

func NewViaCEPClient(baseURL string, timeout time.Duration, reg *metrics.MetricsRegistry) *ViaCEPClient {
	return &ViaCEPClient{
		session: &http.Client{Timeout: timeout},
		baseURL: strings.TrimRight(baseURL, "/"),
		metrics: reg,
	}
}

type viaCEPResponse struct {
	Logradouro string `json:"logradouro"`
	Bairro     string `json:"bairro"`
	Localidade string `json:"localidade"`
	UF         string `json:"uf"`
	Erro       bool   `json:"erro"`
}

// Resolve a postal code into a street-level address.
func (c *ViaCEPClient) ResolveAddress(ctx context.Context, cep string) (_ domain.Address, err error) {
	start := time.Now()
	defer func() { c.metrics.ObserveUpstream("viacep", start, err) }()

	clean := strings.ReplaceAll(strings.TrimSpace(cep), "-", "")
	if clean == "" {
		return domain.Address{}, fmt.Errorf("resolve address: %w: empty postal code", domain.ErrInvalidInput)
	}

	endpoint := fmt.Sprintf("%s/ws/%s/json/", c.baseURL, url.PathEscape(clean))

	req, err := newRequest(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return domain.Address{}, fmt.Errorf("resolve address: %w", err)
	}

	resp, err := do(c.session, req)
	if err != nil {
		return domain.Address{}, fmt.Errorf("resolve address %q: %w", cep, err)
	}
	defer resp.Body.Close()

	var decoded viaCEPResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return domain.Address{}, fmt.Errorf("resolve address %q: decode response: %w: %w", cep, domain.ErrUpstreamUnavailable, err)
	}

	// ViaCEP answers 200 with {"erro": true} for unknown codes.
	if decoded.Erro {
		return domain.Address{}, fmt.Errorf("resolve address %q: %w", cep, domain.ErrCEPNotFound)
	}

	return domain.Address{
		Street:       decoded.Logradouro,
		Neighborhood: decoded.Bairro,
		City:         decoded.Localidade,
		State:        decoded.UF,
	}, nil
}
