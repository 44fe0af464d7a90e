package service_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/digirioh/hub/internal/config"
	"github.com/digirioh/hub/internal/service"

	"gotest.tools/v3/assert"
)

func TestConfigured(t *testing.T) {
	googleService := service.NewGoogleOAuthService(service.GoogleOAuthServiceConfig{
		ClientID: "client-id",
	})
	assert.NilError(t, googleService.Init())

	clientID, clientSecret := googleService.Configured()
	assert.Equal(t, true, clientID)
	assert.Equal(t, false, clientSecret)
}

func TestGenerateState(t *testing.T) {
	googleService := service.NewGoogleOAuthService(service.GoogleOAuthServiceConfig{})
	assert.NilError(t, googleService.Init())

	first := googleService.GenerateState()
	second := googleService.GenerateState()

	assert.Assert(t, first != "")
	assert.Assert(t, first != second)
}

func TestGetAuthURL(t *testing.T) {
	googleService := service.NewGoogleOAuthService(service.GoogleOAuthServiceConfig{
		ClientID:    "client-id",
		RedirectURI: "https://app.example.com/conectar",
	})
	assert.NilError(t, googleService.Init())

	authURL := googleService.GetAuthURL("csrf-state")

	assert.Assert(t, strings.Contains(authURL, "client_id=client-id"))
	assert.Assert(t, strings.Contains(authURL, "state=csrf-state"))
	assert.Assert(t, strings.Contains(authURL, "access_type=offline"))
	assert.Assert(t, strings.Contains(authURL, "redirect_uri=https%3A%2F%2Fapp.example.com%2Fconectar"))
}

func TestExchangeUnreachableEndpoint(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	googleService := service.NewGoogleOAuthService(service.GoogleOAuthServiceConfig{
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		TokenURL:     server.URL + "/token",
	})
	assert.NilError(t, googleService.Init())

	_, exchangeErr := googleService.Exchange(context.Background(), "test-code")

	assert.Assert(t, exchangeErr != nil)
	assert.Equal(t, service.ExchangeInternalError, exchangeErr.Kind)
	assert.Assert(t, strings.HasPrefix(exchangeErr.Message, "Erro interno do servidor:"))
}

func TestExchangeCancelledContext(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"access_token":"access-token","token_type":"Bearer"}`))
	}))
	defer server.Close()

	googleService := service.NewGoogleOAuthService(service.GoogleOAuthServiceConfig{
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		TokenURL:     server.URL + "/token",
	})
	assert.NilError(t, googleService.Init())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// A cancelled request context stops the provider call
	_, exchangeErr := googleService.Exchange(ctx, "test-code")

	assert.Assert(t, exchangeErr != nil)
	assert.Equal(t, service.ExchangeInternalError, exchangeErr.Kind)
}

func TestUserinfoCancelledContext(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"google-id","email":"user@gmail.com"}`))
	}))
	defer server.Close()

	googleService := service.NewGoogleOAuthService(service.GoogleOAuthServiceConfig{
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		UserinfoURL:  server.URL + "/userinfo",
	})
	assert.NilError(t, googleService.Init())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, exchangeErr := googleService.Userinfo(ctx, config.TokenSet{AccessToken: "access-token"})

	assert.Assert(t, exchangeErr != nil)
	assert.Equal(t, service.ExchangeProfileError, exchangeErr.Kind)
}

func TestUserinfoParseError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte("<html>not json</html>"))
	}))
	defer server.Close()

	googleService := service.NewGoogleOAuthService(service.GoogleOAuthServiceConfig{
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		UserinfoURL:  server.URL + "/userinfo",
	})
	assert.NilError(t, googleService.Init())

	_, exchangeErr := googleService.Userinfo(context.Background(), config.TokenSet{AccessToken: "access-token"})

	assert.Assert(t, exchangeErr != nil)
	assert.Equal(t, service.ExchangeParseError, exchangeErr.Kind)
	assert.Equal(t, "<html>not json</html>", exchangeErr.Raw)
}

func TestUserinfoProfileError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(401)
		w.Write([]byte(`{"error":{"code":401,"message":"Invalid Credentials"}}`))
	}))
	defer server.Close()

	googleService := service.NewGoogleOAuthService(service.GoogleOAuthServiceConfig{
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		UserinfoURL:  server.URL + "/userinfo",
	})
	assert.NilError(t, googleService.Init())

	_, exchangeErr := googleService.Userinfo(context.Background(), config.TokenSet{AccessToken: "expired-token"})

	assert.Assert(t, exchangeErr != nil)
	assert.Equal(t, service.ExchangeProfileError, exchangeErr.Kind)
	assert.Assert(t, strings.HasPrefix(exchangeErr.Message, "Falha ao obter informações do usuário:"))
}
