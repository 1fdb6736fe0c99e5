package geocoding

import (
	"context"
	"errors"
	"net/http"

	"github.com/vportier/barycentre/internal/models"
)

// Provider is an interface that defines a method for geocoding an address.
// The Geocode method takes a context and a free-text address string as
// input, and returns the corresponding coordinates, or an error when the
// address cannot be resolved.
type Provider interface {
	Geocode(ctx context.Context, address string) (*models.Coordinates, error)
}

// HTTPClient defines the interface for making HTTP requests.
// This allows for easy mocking in tests.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// ErrNotFound is returned when a provider gets a well-formed response that
// contains no match for the address. Callers mark the entry as failed and
// move on; it is never a session-fatal condition.
var ErrNotFound = errors.New("address not found")
