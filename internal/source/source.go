// Package source holds the adapters that collect raw contact evidence for a
// business from external services.
package source

import (
	"context"

	"github.com/ajofficial223/Data-Scraper/internal/model"
)

// Adapter queries one external service for one business. A nil response
// with a nil error means the service had nothing; an error means the call
// failed and callers treat the source as having nothing.
type Adapter interface {
	Name() string
	Lookup(ctx context.Context, rec model.BusinessRecord) (*model.RawResponse, error)
}
