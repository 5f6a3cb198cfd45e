package service

import (
	"context"
	"errors"
)

// ErrCEPNotFound is returned when the postal service does not know the CEP.
var ErrCEPNotFound = errors.New("cep not found")

// CEPAddress is the location resolved from a Brazilian postal code.
type CEPAddress struct {
	CEP          string `json:"cep"`
	City         string `json:"city"`
	State        string `json:"state"`
	Neighborhood string `json:"neighborhood,omitempty"`
	Street       string `json:"street,omitempty"`
}

// CEPLookup defines the interface for resolving a CEP to an address.
type CEPLookup interface {
	// Lookup resolves the given CEP. Returns ErrCEPNotFound when the postal
	// service reports the code as unknown.
	Lookup(ctx context.Context, cep string) (*CEPAddress, error)
}
