package connect

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/google/go-querystring/query"
)

// ExchangeTimeout is how long a code exchange may take end to end, the
// authorization code expires quickly anyway.
var ExchangeTimeout = time.Second * 15

type ExchangeResult struct {
	Success      bool   `json:"success"`
	Email        string `json:"email"`
	Name         string `json:"name"`
	Picture      string `json:"picture"`
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

type cacheQuery struct {
	Stamp int64 `url:"_"`
}

// Client performs the code-for-tokens exchange against the hub.
type Client struct {
	// Endpoint is the absolute URL of the exchange route
	Endpoint   string
	HTTPClient *http.Client
	// ConsoleURL overrides the remediation link on redirect mismatch
	ConsoleURL string
	// ConfigTimestamp, when set, records when the redirect URI was
	// last changed in the provider console and feeds the propagation
	// hint on mismatch errors
	ConfigTimestamp time.Time
}

func NewClient(endpoint string) *Client {
	return &Client{
		Endpoint:   endpoint,
		HTTPClient: &http.Client{Timeout: ExchangeTimeout},
	}
}

// ExchangeCode posts the authorization code to the hub and classifies
// the outcome. The response body is always read as text first so a
// parse failure keeps the raw payload for diagnostics.
func (client *Client) ExchangeCode(ctx context.Context, code string) (*ExchangeResult, *ExchangeError) {
	endpoint, err := url.Parse(client.Endpoint)

	if err != nil || !endpoint.IsAbs() || (endpoint.Scheme != "http" && endpoint.Scheme != "https") {
		return nil, newExchangeError(ConfigError, fmt.Sprintf("URL da função inválida: %s", client.Endpoint))
	}

	// The code is single-use, never let a cache answer this request
	cacheValues, err := query.Values(cacheQuery{
		Stamp: time.Now().UnixMilli(),
	})

	if err != nil {
		return nil, newExchangeError(ConfigError, fmt.Sprintf("URL da função inválida: %s", client.Endpoint))
	}

	// Merge, the configured endpoint may carry its own query params
	queries := endpoint.Query()

	for key, values := range cacheValues {
		queries[key] = values
	}

	endpoint.RawQuery = queries.Encode()

	body, err := json.Marshal(map[string]string{
		"code": code,
	})

	if err != nil {
		return nil, newExchangeError(ConfigError, fmt.Sprintf("Falha ao processar autenticação: %v", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint.String(), bytes.NewReader(body))

	if err != nil {
		return nil, newExchangeError(ConfigError, fmt.Sprintf("Falha ao processar autenticação: %v", err))
	}

	req.Header.Set("Content-Type", "application/json")

	httpClient := client.HTTPClient

	if httpClient == nil {
		httpClient = &http.Client{Timeout: ExchangeTimeout}
	}

	resp, err := httpClient.Do(req)

	if err != nil {
		return nil, newExchangeError(NetworkError, fmt.Sprintf("Falha ao processar autenticação: %v", err))
	}

	defer resp.Body.Close()

	text, err := io.ReadAll(resp.Body)

	if err != nil {
		return nil, newExchangeError(NetworkError, fmt.Sprintf("Falha ao processar autenticação: %v", err))
	}

	var data map[string]any

	if err := json.Unmarshal(text, &data); err != nil {
		return nil, &ExchangeError{
			Kind:       ParseError,
			Message:    fmt.Sprintf("Resposta inválida do servidor: %s", string(text)),
			Raw:        string(text),
			StatusCode: resp.StatusCode,
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, client.classifyFailure(resp.StatusCode, string(text), data)
	}

	var result ExchangeResult

	if err := json.Unmarshal(text, &result); err != nil {
		return nil, &ExchangeError{
			Kind:       ParseError,
			Message:    fmt.Sprintf("Resposta inválida do servidor: %s", string(text)),
			Raw:        string(text),
			StatusCode: resp.StatusCode,
		}
	}

	return &result, nil
}

func (client *Client) classifyFailure(status int, text string, data map[string]any) *ExchangeError {
	if errorType, ok := data["error_type"].(string); ok && errorType == "redirect_uri_mismatch" {
		configuredURI := ""

		if details, ok := data["details"].(map[string]any); ok {
			configuredURI, _ = details["configured_uri"].(string)
		}

		exchangeErr := &ExchangeError{
			Kind: RedirectMismatch,
			Message: "Erro de configuração no Google Cloud Console: O URI de redirecionamento não corresponde " +
				"ao configurado. Verifique se o URI " + configuredURI +
				" está listado nas URIs de redirecionamento autorizadas no Console Google Cloud.",
			Details:    data,
			StatusCode: status,
		}

		if client.ConsoleURL != "" {
			exchangeErr.Details["console_url"] = client.ConsoleURL
		}

		if !client.ConfigTimestamp.IsZero() {
			exchangeErr.Details["config_elapsed"] = TimeSinceConfig(client.ConfigTimestamp)
		}

		return exchangeErr
	}

	message, ok := data["error"].(string)

	if !ok || message == "" {
		message = fmt.Sprintf("Falha na autenticação (%d): %s", status, text)
	}

	return &ExchangeError{
		Kind:       ProviderError,
		Message:    message,
		Details:    data,
		StatusCode: status,
	}
}
