package connect

import (
	"context"
	"errors"
)

// ErrLibraryUnavailable is returned when a code client is requested
// before the provider library finished loading.
var ErrLibraryUnavailable = errors.New("Biblioteca do Google OAuth não está disponível")

// CodeClientConfig configures a consent flow. Completion is delivered
// through the callbacks, RequestCode itself never blocks.
type CodeClientConfig struct {
	ClientID string
	Scopes   []string
	OnCode   func(code string)
	OnError  func(err *ExchangeError)
}

// CodeClient drives the provider consent UI and hands the resulting
// authorization code to OnCode. A dismissed or failed consent surfaces
// through OnError with a terminal kind (Cancelled or ProviderError).
type CodeClient interface {
	RequestCode()
}

// Library models the identity provider runtime. Implementations wrap
// whatever actually renders consent (an embedded browser, a device
// flow, a test double). Callers check Ready or wait on WhenReady
// instead of probing ambient state.
type Library interface {
	Ready() bool
	WhenReady(ctx context.Context) error
	NewCodeClient(config CodeClientConfig) (CodeClient, error)
}

// InitClient creates a code client, failing fast when the library has
// not finished loading. The caller may wait on WhenReady and retry.
func InitClient(library Library, config CodeClientConfig) (CodeClient, error) {
	if library == nil || !library.Ready() {
		return nil, ErrLibraryUnavailable
	}

	if config.OnCode == nil {
		return nil, errors.New("code client requires an OnCode callback")
	}

	return library.NewCodeClient(config)
}
