package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/digirioh/hub/internal/config"

	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/endpoints"
)

// GoogleOAuthScopes grant the WhatsApp assistant read access to the
// user's mailbox and calendar on top of the identity scopes.
var GoogleOAuthScopes = []string{
	"https://www.googleapis.com/auth/userinfo.email",
	"https://www.googleapis.com/auth/userinfo.profile",
	"https://www.googleapis.com/auth/gmail.readonly",
	"https://www.googleapis.com/auth/calendar",
}

type GoogleUserInfoResponse struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
	Error   any    `json:"error"`
}

type GoogleOAuthServiceConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURI  string
	TokenURL     string // defaults to the Google endpoint
	UserinfoURL  string // defaults to the Google endpoint
}

// GoogleOAuthService performs the authorization-code-for-tokens exchange.
// It is stateless per call and safe for concurrent use.
type GoogleOAuthService struct {
	config      oauth2.Config
	userinfoURL string
	httpClient  *http.Client
}

func NewGoogleOAuthService(config GoogleOAuthServiceConfig) *GoogleOAuthService {
	endpoint := endpoints.Google

	if config.TokenURL != "" {
		endpoint.TokenURL = config.TokenURL
	}

	userinfoURL := config.UserinfoURL

	if userinfoURL == "" {
		userinfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"
	}

	return &GoogleOAuthService{
		config: oauth2.Config{
			ClientID:     config.ClientID,
			ClientSecret: config.ClientSecret,
			RedirectURL:  config.RedirectURI,
			Scopes:       GoogleOAuthScopes,
			Endpoint:     endpoint,
		},
		userinfoURL: userinfoURL,
	}
}

func (google *GoogleOAuthService) Init() error {
	google.httpClient = &http.Client{
		Timeout: 30 * time.Second,
	}
	return nil
}

// oauthContext carries the request context so cancellation reaches the
// provider calls, with the service http client attached.
func (google *GoogleOAuthService) oauthContext(ctx context.Context) context.Context {
	return context.WithValue(ctx, oauth2.HTTPClient, google.httpClient)
}

// Configured reports credential presence as booleans only, the values
// themselves never leave the service.
func (google *GoogleOAuthService) Configured() (clientID bool, clientSecret bool) {
	return google.config.ClientID != "", google.config.ClientSecret != ""
}

func (google *GoogleOAuthService) RedirectURI() string {
	return google.config.RedirectURL
}

func (google *GoogleOAuthService) GenerateState() string {
	b := make([]byte, 64)
	_, err := rand.Read(b)
	if err != nil {
		return base64.RawURLEncoding.EncodeToString(fmt.Appendf(nil, "state-%d", time.Now().UnixNano()))
	}
	return base64.RawURLEncoding.EncodeToString(b)
}

// GetAuthURL builds the redirect-mode consent URL. Offline access is
// requested so the provider issues a refresh token on first consent.
func (google *GoogleOAuthService) GetAuthURL(state string) string {
	return google.config.AuthCodeURL(state, oauth2.AccessTypeOffline)
}

// Exchange redeems the one-time authorization code for a token set. The
// redirect URI sent with the exchange must be byte-identical to the one
// used when the code was issued, so a mismatch gets its own kind.
func (google *GoogleOAuthService) Exchange(ctx context.Context, code string) (config.TokenSet, *ExchangeError) {
	token, err := google.config.Exchange(google.oauthContext(ctx), code)

	if err != nil {
		var retrieveErr *oauth2.RetrieveError

		if !errors.As(err, &retrieveErr) {
			log.Error().Err(err).Msg("Token endpoint unreachable")
			return config.TokenSet{}, NewExchangeError(ExchangeInternalError, fmt.Sprintf("Erro interno do servidor: %v", err))
		}

		status := 0
		if retrieveErr.Response != nil {
			status = retrieveErr.Response.StatusCode
		}

		log.Error().Int("status", status).Str("error", retrieveErr.ErrorCode).Str("description", retrieveErr.ErrorDescription).Msg("Token exchange rejected")

		if retrieveErr.ErrorCode == "redirect_uri_mismatch" {
			return config.TokenSet{}, &ExchangeError{
				Kind:    ExchangeRedirectMismatch,
				Message: "O URI de redirecionamento não corresponde ao configurado no Google Cloud Console.",
				Details: map[string]any{
					"error":             retrieveErr.ErrorCode,
					"error_description": retrieveErr.ErrorDescription,
				},
			}
		}

		if retrieveErr.ErrorCode != "" {
			reason := retrieveErr.ErrorDescription
			if reason == "" {
				reason = retrieveErr.ErrorCode
			}
			return config.TokenSet{}, &ExchangeError{
				Kind:    ExchangeProviderError,
				Message: fmt.Sprintf("Falha ao trocar o código por tokens: %s", reason),
				Details: map[string]any{
					"error":             retrieveErr.ErrorCode,
					"error_description": retrieveErr.ErrorDescription,
				},
			}
		}

		// Non-JSON upstream body, surface the raw text for diagnostics
		return config.TokenSet{}, &ExchangeError{
			Kind:    ExchangeParseError,
			Message: "Resposta inválida da API do Google",
			Raw:     string(retrieveErr.Body),
		}
	}

	idToken, _ := token.Extra("id_token").(string)

	log.Debug().Bool("accessToken", token.AccessToken != "").Bool("refreshToken", token.RefreshToken != "").Bool("idToken", idToken != "").Msg("Tokens obtained")

	return config.TokenSet{
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
		IDToken:      idToken,
	}, nil
}

// Userinfo fetches the authenticated user's profile with a fresh access
// token. Failures here are distinct from exchange failures since the
// tokens were already obtained.
func (google *GoogleOAuthService) Userinfo(ctx context.Context, tokens config.TokenSet) (config.GoogleUser, *ExchangeError) {
	client := google.config.Client(google.oauthContext(ctx), &oauth2.Token{AccessToken: tokens.AccessToken})

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, google.userinfoURL, nil)
	if err != nil {
		return config.GoogleUser{}, NewExchangeError(ExchangeProfileError, fmt.Sprintf("Falha ao obter informações do usuário: %v", err))
	}

	res, err := client.Do(req)
	if err != nil {
		log.Error().Err(err).Msg("Userinfo endpoint unreachable")
		return config.GoogleUser{}, NewExchangeError(ExchangeProfileError, fmt.Sprintf("Falha ao obter informações do usuário: %v", err))
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return config.GoogleUser{}, NewExchangeError(ExchangeProfileError, fmt.Sprintf("Falha ao obter informações do usuário: %v", err))
	}

	log.Debug().Int("status", res.StatusCode).Msg("Userinfo response")

	var userInfo GoogleUserInfoResponse

	if err := json.Unmarshal(body, &userInfo); err != nil {
		return config.GoogleUser{}, &ExchangeError{
			Kind:    ExchangeParseError,
			Message: "Erro ao parsear informações do usuário",
			Raw:     string(body),
		}
	}

	if res.StatusCode < 200 || res.StatusCode >= 300 || userInfo.Error != nil {
		return config.GoogleUser{}, &ExchangeError{
			Kind:    ExchangeProfileError,
			Message: fmt.Sprintf("Falha ao obter informações do usuário: %s", res.Status),
			Raw:     string(body),
		}
	}

	return config.GoogleUser{
		ID:      userInfo.ID,
		Email:   userInfo.Email,
		Name:    userInfo.Name,
		Picture: userInfo.Picture,
	}, nil
}
