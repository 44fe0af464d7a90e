package connect_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/digirioh/hub/pkg/connect"

	"gotest.tools/v3/assert"
)

func TestExchangeCodeSuccess(t *testing.T) {
	var gotMethod string
	var gotCacheBuster string
	var gotBody map[string]string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotCacheBuster = r.URL.Query().Get("_")

		body, err := io.ReadAll(r.Body)
		assert.NilError(t, err)
		assert.NilError(t, json.Unmarshal(body, &gotBody))

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(200)
		w.Write([]byte(`{"success":true,"email":"user@example.com","name":"Test User","picture":"https://example.com/p.png","accessToken":"access-token","refreshToken":""}`))
	}))
	defer server.Close()

	client := connect.NewClient(server.URL)

	result, exchangeErr := client.ExchangeCode(context.Background(), "test-code")

	assert.Assert(t, exchangeErr == nil)
	assert.Equal(t, "POST", gotMethod)
	assert.Assert(t, gotCacheBuster != "")
	assert.Equal(t, "test-code", gotBody["code"])
	assert.Equal(t, true, result.Success)
	assert.Equal(t, "user@example.com", result.Email)
	assert.Equal(t, "Test User", result.Name)
	assert.Equal(t, "access-token", result.AccessToken)
	assert.Equal(t, "", result.RefreshToken)
}

func TestExchangeCodeKeepsEndpointQuery(t *testing.T) {
	var gotQuery map[string][]string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":true,"email":"user@example.com"}`))
	}))
	defer server.Close()

	client := connect.NewClient(server.URL + "/exchange?apikey=anon-key")

	_, exchangeErr := client.ExchangeCode(context.Background(), "test-code")

	assert.Assert(t, exchangeErr == nil)

	// The cache buster is merged into the configured query, not replacing it
	assert.Equal(t, "anon-key", gotQuery["apikey"][0])
	assert.Assert(t, len(gotQuery["_"]) == 1)
}

func TestExchangeCodeInvalidEndpoint(t *testing.T) {
	client := connect.NewClient("not-a-url")

	_, exchangeErr := client.ExchangeCode(context.Background(), "test-code")

	assert.Assert(t, exchangeErr != nil)
	assert.Equal(t, connect.ConfigError, exchangeErr.Kind)

	client = connect.NewClient("ftp://example.com/exchange")

	_, exchangeErr = client.ExchangeCode(context.Background(), "test-code")

	assert.Assert(t, exchangeErr != nil)
	assert.Equal(t, connect.ConfigError, exchangeErr.Kind)
}

func TestExchangeCodeProviderError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(400)
		w.Write([]byte(`{"error":"Falha ao trocar o código por tokens: invalid_grant","details":{"error":"invalid_grant"}}`))
	}))
	defer server.Close()

	client := connect.NewClient(server.URL)

	_, exchangeErr := client.ExchangeCode(context.Background(), "already-redeemed")

	assert.Assert(t, exchangeErr != nil)
	assert.Equal(t, connect.ProviderError, exchangeErr.Kind)
	assert.Equal(t, "Falha ao trocar o código por tokens: invalid_grant", exchangeErr.Message)
	assert.Equal(t, 400, exchangeErr.StatusCode)
}

func TestExchangeCodeRedirectMismatch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(400)
		w.Write([]byte(`{"error":"Erro de configuração no Google Cloud Console","error_type":"redirect_uri_mismatch","details":{"configured_uri":"https://hub.example.com/callback"}}`))
	}))
	defer server.Close()

	client := connect.NewClient(server.URL)
	client.ConsoleURL = "https://console.cloud.google.com/apis/credentials"
	client.ConfigTimestamp = time.Now().Add(-5 * time.Minute)

	_, exchangeErr := client.ExchangeCode(context.Background(), "test-code")

	assert.Assert(t, exchangeErr != nil)
	assert.Equal(t, connect.RedirectMismatch, exchangeErr.Kind)
	assert.Assert(t, exchangeErr.Details != nil)
	assert.Equal(t, "https://console.cloud.google.com/apis/credentials", exchangeErr.Details["console_url"])
	assert.Equal(t, "5 minutos", exchangeErr.Details["config_elapsed"])
}

func TestExchangeCodeParseError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.WriteHeader(200)
		w.Write([]byte("<html>gateway error</html>"))
	}))
	defer server.Close()

	client := connect.NewClient(server.URL)

	_, exchangeErr := client.ExchangeCode(context.Background(), "test-code")

	assert.Assert(t, exchangeErr != nil)
	assert.Equal(t, connect.ParseError, exchangeErr.Kind)
	assert.Equal(t, "<html>gateway error</html>", exchangeErr.Raw)
}

func TestExchangeCodeNetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := connect.NewClient(server.URL)

	_, exchangeErr := client.ExchangeCode(context.Background(), "test-code")

	assert.Assert(t, exchangeErr != nil)
	assert.Equal(t, connect.NetworkError, exchangeErr.Kind)
}
