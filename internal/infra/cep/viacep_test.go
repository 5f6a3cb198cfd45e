package cep

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"dezapego/config"
	"dezapego/internal/domain/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestClient(t *testing.T, handler http.HandlerFunc) service.CEPLookup {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := &config.Config{
		CEP: &config.CEPConfig{
			BaseURL: srv.URL,
			Timeout: 2 * time.Second,
		},
	}

	return New(cfg, testLogger())
}

func TestViaCEP_Lookup(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/01001000/json/", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"cep": "01001-000",
			"logradouro": "Praça da Sé",
			"bairro": "Sé",
			"localidade": "São Paulo",
			"uf": "SP"
		}`))
	})

	addr, err := client.Lookup(context.Background(), "01001-000")
	require.NoError(t, err)
	assert.Equal(t, "01001-000", addr.CEP)
	assert.Equal(t, "São Paulo", addr.City)
	assert.Equal(t, "SP", addr.State)
	assert.Equal(t, "Sé", addr.Neighborhood)
	assert.Equal(t, "Praça da Sé", addr.Street)
}

func TestViaCEP_LookupUnknownCEP(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		// ViaCEP reports unknown codes with HTTP 200 and an error flag.
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"erro": true}`))
	})

	addr, err := client.Lookup(context.Background(), "99999-999")
	assert.ErrorIs(t, err, service.ErrCEPNotFound)
	assert.Nil(t, addr)
}

func TestViaCEP_LookupMalformedCEP(t *testing.T) {
	called := false
	client := newTestClient(t, func(http.ResponseWriter, *http.Request) {
		called = true
	})

	// Invalid formats are rejected before any request goes out.
	for _, cep := range []string{"", "abc", "1234", "123456789"} {
		addr, err := client.Lookup(context.Background(), cep)
		assert.ErrorIs(t, err, service.ErrCEPNotFound)
		assert.Nil(t, addr)
	}
	assert.False(t, called)
}

func TestViaCEP_LookupUpstreamFailure(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	addr, err := client.Lookup(context.Background(), "01001000")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, service.ErrCEPNotFound)
	assert.Nil(t, addr)
}
