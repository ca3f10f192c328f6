// Package openapi embeds the HTTP contract the request validator enforces.
package openapi

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/getkin/kin-openapi/openapi3"
)

//go:embed gadgets.yaml
var document []byte

// Load parses and validates the embedded document. Servers are dropped so
// routes match on path alone, whatever host the API is reached through.
func Load(ctx context.Context) (*openapi3.T, error) {
	doc, err := openapi3.NewLoader().LoadFromData(document)
	if err != nil {
		return nil, fmt.Errorf("loading OpenAPI document: %w", err)
	}

	if err := doc.Validate(ctx); err != nil {
		return nil, fmt.Errorf("validating OpenAPI document: %w", err)
	}

	doc.Servers = nil

	return doc, nil
}
