// Package cep resolves Brazilian postal codes through a ViaCEP-compatible API.
package cep

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"regexp"
	"strings"
	"time"

	"dezapego/config"
	"dezapego/internal/domain/service"

	"github.com/pkg/errors"
)

const (
	defaultBaseURL = "https://viacep.com.br/ws"
	defaultTimeout = 5 * time.Second
)

var cepPattern = regexp.MustCompile(`^\d{5}-?\d{3}$`)

// viaCEPClient implements service.CEPLookup against the ViaCEP JSON API.
type viaCEPClient struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// viaCEPResponse mirrors the upstream payload. ViaCEP answers HTTP 200 with
// {"erro": true} for unknown codes instead of a 404.
type viaCEPResponse struct {
	CEP          string `json:"cep"`
	Street       string `json:"logradouro"`
	Neighborhood string `json:"bairro"`
	City         string `json:"localidade"`
	State        string `json:"uf"`
	Error        bool   `json:"erro"`
}

// New creates the lookup client from configuration.
func New(cfg *config.Config, logger *slog.Logger) service.CEPLookup {
	baseURL := defaultBaseURL
	timeout := defaultTimeout
	if cfg.CEP != nil {
		if cfg.CEP.BaseURL != "" {
			baseURL = strings.TrimSuffix(cfg.CEP.BaseURL, "/")
		}
		if cfg.CEP.Timeout > 0 {
			timeout = cfg.CEP.Timeout
		}
	}

	return &viaCEPClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// Lookup resolves the given CEP to an address.
func (c *viaCEPClient) Lookup(ctx context.Context, cep string) (*service.CEPAddress, error) {
	if !cepPattern.MatchString(cep) {
		return nil, service.ErrCEPNotFound
	}
	normalized := strings.ReplaceAll(cep, "-", "")

	url := fmt.Sprintf("%s/%s/json/", c.baseURL, normalized)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "cep lookup request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusBadRequest {
		return nil, service.ErrCEPNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("cep service returned status %d", resp.StatusCode)
	}

	var payload viaCEPResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, errors.Wrap(err, "failed to decode cep response")
	}

	if payload.Error {
		return nil, service.ErrCEPNotFound
	}

	c.logger.Debug("CEP resolved",
		slog.String("cep", payload.CEP),
		slog.String("city", payload.City),
		slog.String("state", payload.State),
	)

	return &service.CEPAddress{
		CEP:          payload.CEP,
		City:         payload.City,
		State:        payload.State,
		Neighborhood: payload.Neighborhood,
		Street:       payload.Street,
	}, nil
}
