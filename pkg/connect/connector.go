package connect

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
)

// ConnectorConfig ties the consent flow to the exchange call.
type ConnectorConfig struct {
	ClientID string
	Scopes   []string
	// OnConnected runs after a successful exchange and marker save,
	// this is where the caller refreshes whatever state depends on
	// the connection
	OnConnected func(result ExchangeResult)
}

// Connector runs the whole flow: wait for the library, request a code
// through the consent UI, exchange it and persist the marker.
type Connector struct {
	config  ConnectorConfig
	library Library
	client  *Client
	markers *MarkerStore
}

func NewConnector(config ConnectorConfig, library Library, client *Client, markers *MarkerStore) *Connector {
	return &Connector{
		config:  config,
		library: library,
		client:  client,
		markers: markers,
	}
}

// Connect blocks until the flow finishes or ctx is done. Consent
// dismissal comes back as an ExchangeError with kind Cancelled.
func (connector *Connector) Connect(ctx context.Context) (*ExchangeResult, error) {
	if err := connector.library.WhenReady(ctx); err != nil {
		return nil, fmt.Errorf("provider library not ready: %w", err)
	}

	codeChan := make(chan string, 1)
	errChan := make(chan *ExchangeError, 1)

	codeClient, err := InitClient(connector.library, CodeClientConfig{
		ClientID: connector.config.ClientID,
		Scopes:   connector.config.Scopes,
		OnCode: func(code string) {
			codeChan <- code
		},
		OnError: func(exchangeErr *ExchangeError) {
			errChan <- exchangeErr
		},
	})

	if err != nil {
		return nil, err
	}

	codeClient.RequestCode()

	var code string

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case exchangeErr := <-errChan:
		return nil, exchangeErr
	case code = <-codeChan:
	}

	log.Debug().Int("codeLength", len(code)).Msg("Received authorization code")

	result, exchangeErr := connector.client.ExchangeCode(ctx, code)

	if exchangeErr != nil {
		return nil, exchangeErr
	}

	if connector.markers != nil {
		if err := connector.markers.Save(result.Email); err != nil {
			log.Warn().Err(err).Msg("Failed to save connection marker")
		}
	}

	if connector.config.OnConnected != nil {
		connector.config.OnConnected(*result)
	}

	return result, nil
}
