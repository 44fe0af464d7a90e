package config

// Version information, set at build time

var Version = "development"
var CommitHash = "development"
var BuildTimestamp = "0000-00-00T00:00:00Z"

// Cookie name template, suffixed with an app specific id at startup

var SessionCookieName = "digirioh-session"

// Google endpoints and console

var GoogleUserinfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"
var GoogleConsoleURL = "https://console.cloud.google.com/apis/credentials"

// Main app config

type Config struct {
	Port               int    `mapstructure:"port" validate:"required"`
	Address            string `mapstructure:"address" validate:"required,ip4_addr"`
	AppURL             string `mapstructure:"app-url" validate:"required,url"`
	LogLevel           string `mapstructure:"log-level" validate:"oneof=trace debug info warn error fatal panic"`
	DatabasePath       string `mapstructure:"database-path" validate:"required"`
	Secret             string `mapstructure:"secret" validate:"required,len=32"`
	SecretFile         string `mapstructure:"secret-file"`
	SecureCookie       bool   `mapstructure:"secure-cookie"`
	SessionExpiry      int    `mapstructure:"session-expiry"`
	LoginTimeout       int    `mapstructure:"login-timeout"`
	LoginMaxRetries    int    `mapstructure:"login-max-retries"`
	TrustedProxies     string `mapstructure:"trusted-proxies"`
	CORSOrigins        string `mapstructure:"cors-origins"`
	GoogleClientID     string `mapstructure:"google-client-id"`
	GoogleClientSecret string `mapstructure:"google-client-secret"`
	GoogleSecretFile   string `mapstructure:"google-client-secret-file"`
	GoogleRedirectURI  string `mapstructure:"google-redirect-uri"`
	ReturnRefreshToken bool   `mapstructure:"return-refresh-token"`
}

// OAuth exchange types

// GoogleUser is the normalized userinfo payload, only the documented
// fields ever leave the service.
type GoogleUser struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

// TokenSet holds the provider tokens obtained from a code exchange. The
// refresh token is only present when consent was granted with offline
// access and may be empty on repeat authorizations.
type TokenSet struct {
	AccessToken  string
	RefreshToken string
	IDToken      string
}

// User/session related stuff

type SessionCookie struct {
	UserID string
	Email  string
	Name   string
}

type UserContext struct {
	UserID     string
	Email      string
	Name       string
	IsLoggedIn bool
}

// Plan catalog, mirrored by the dashboard plan picker

type Plan struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	PriceCents  int    `json:"priceCents"`
	Description string `json:"description"`
}

var Plans = []Plan{
	{ID: "basico", Name: "DigiRioh Básico", PriceCents: 0, Description: "Assistente no WhatsApp com acesso ao Gmail"},
	{ID: "pro", Name: "DigiRioh Pro", PriceCents: 2990, Description: "Gmail, Agenda e lembretes ilimitados"},
}
