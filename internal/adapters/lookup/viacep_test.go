package lookup

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"cep-distance-service/internal/domain"
)

func TestViaCEPResolveAddress(t *testing.T) {
	var gotPath string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"cep":"01001-000","logradouro":"Praça da Sé","bairro":"Sé","localidade":"São Paulo","uf":"SP"}`))
	}))
	defer ts.Close()

	client := NewViaCEPClient(ts.URL, 5*time.Second, nil)

	addr, err := client.ResolveAddress(context.Background(), "01001-000")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotPath != "/ws/01001000/json/" {
		t.Errorf("request path = %q, want /ws/01001000/json/", gotPath)
	}
	if addr.Street != "Praça da Sé" || addr.City != "São Paulo" || addr.State != "SP" {
		t.Errorf("unexpected address: %+v", addr)
	}
}

func TestViaCEPUnknownCode(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"erro": true}`))
	}))
	defer ts.Close()

	client := NewViaCEPClient(ts.URL, 5*time.Second, nil)

	_, err := client.ResolveAddress(context.Background(), "00000-000")
	if !errors.Is(err, domain.ErrCEPNotFound) {
		t.Fatalf("error = %v, want ErrCEPNotFound", err)
	}
}

func TestViaCEPServerError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer ts.Close()

	client := NewViaCEPClient(ts.URL, 5*time.Second, nil)

	_, err := client.ResolveAddress(context.Background(), "01001-000")
	if !errors.Is(err, domain.ErrUpstreamUnavailable) {
		t.Fatalf("error = %v, want ErrUpstreamUnavailable", err)
	}
}

func TestViaCEPTransportFailure(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	ts.Close()

	client := NewViaCEPClient(ts.URL, time.Second, nil)

	_, err := client.ResolveAddress(context.Background(), "01001-000")
	if !errors.Is(err, domain.ErrUpstreamUnavailable) {
		t.Fatalf("error = %v, want ErrUpstreamUnavailable", err)
	}
}

func TestViaCEPEmptyCode(t *testing.T) {
	client := NewViaCEPClient("http://viacep.invalid", time.Second, nil)

	_, err := client.ResolveAddress(context.Background(), "  ")
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("error = %v, want ErrInvalidInput", err)
	}
}
