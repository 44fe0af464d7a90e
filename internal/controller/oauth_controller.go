package controller

import (
	"time"

	"github.com/digirioh/hub/internal/service"
	"github.com/digirioh/hub/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type ExchangeRequest struct {
	Code string `json:"code"`
}

type ExchangeResponse struct {
	Success      bool   `json:"success"`
	Email        string `json:"email"`
	Name         string `json:"name"`
	Picture      string `json:"picture"`
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

type StatusResponse struct {
	Connected bool   `json:"connected"`
	Email     string `json:"email,omitempty"`
	Since     string `json:"since,omitempty"`
}

type OAuthControllerConfig struct {
	CSRFCookieName     string
	SecureCookie       bool
	CookieDomain       string
	ConsoleURL         string
	ReturnRefreshToken bool
}

type OAuthController struct {
	config      OAuthControllerConfig
	router      *gin.RouterGroup
	google      *service.GoogleOAuthService
	connections *service.ConnectionService
}

func NewOAuthController(config OAuthControllerConfig, router *gin.RouterGroup, google *service.GoogleOAuthService, connections *service.ConnectionService) *OAuthController {
	return &OAuthController{
		config:      config,
		router:      router,
		google:      google,
		connections: connections,
	}
}

func (controller *OAuthController) SetupRoutes() {
	oauthGroup := controller.router.Group("/oauth")
	oauthGroup.GET("/google/url", controller.authURLHandler)
	oauthGroup.POST("/google/exchange", controller.exchangeHandler)
	oauthGroup.GET("/google/status", controller.statusHandler)
	oauthGroup.DELETE("/google", controller.revokeHandler)
}

// authURLHandler serves the redirect-mode consent URL for callers that
// cannot run the popup code client.
func (controller *OAuthController) authURLHandler(c *gin.Context) {
	clientIDSet, clientSecretSet := controller.google.Configured()

	if !clientIDSet || !clientSecretSet {
		c.JSON(500, gin.H{
			"error":                "Credenciais do Google não configuradas no servidor",
			"clientIdPresente":     clientIDSet,
			"clientSecretPresente": clientSecretSet,
		})
		return
	}

	state := controller.google.GenerateState()
	c.SetCookie(controller.config.CSRFCookieName, state, int(time.Hour.Seconds()), "/", controller.config.CookieDomain, controller.config.SecureCookie, true)

	c.JSON(200, gin.H{
		"status":  200,
		"message": "OK",
		"url":     controller.google.GetAuthURL(state),
	})
}

// exchangeHandler walks the exchange states in order, every failure maps
// to a tagged kind so the SPA can render the right remediation.
func (controller *OAuthController) exchangeHandler(c *gin.Context) {
	clientIDSet, clientSecretSet := controller.google.Configured()

	if !clientIDSet || !clientSecretSet {
		log.Error().Bool("clientIdPresente", clientIDSet).Bool("clientSecretPresente", clientSecretSet).Msg("Google credentials not configured")
		c.JSON(500, gin.H{
			"error":                "Credenciais do Google não configuradas no servidor",
			"clientIdPresente":     clientIDSet,
			"clientSecretPresente": clientSecretSet,
		})
		return
	}

	var req ExchangeRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		log.Error().Err(err).Msg("Failed to parse exchange request body")
		c.JSON(400, gin.H{
			"error": "Body da requisição inválido",
		})
		return
	}

	if req.Code == "" {
		log.Warn().Msg("Exchange request without authorization code")
		c.JSON(400, gin.H{
			"error": "Código de autorização não fornecido",
		})
		return
	}

	log.Debug().Str("codePrefix", utils.CodePrefix(req.Code)).Int("codeLength", len(req.Code)).Str("redirectUri", controller.google.RedirectURI()).Msg("Exchanging authorization code")

	tokens, exchangeErr := controller.google.Exchange(c.Request.Context(), req.Code)

	if exchangeErr != nil {
		controller.failExchange(c, exchangeErr)
		return
	}

	user, exchangeErr := controller.google.Userinfo(c.Request.Context(), tokens)

	if exchangeErr != nil {
		controller.failExchange(c, exchangeErr)
		return
	}

	// Persist the connection before responding so a 200 means durable
	// storage, not just a successful provider handshake
	context, err := utils.GetContext(c)

	if err == nil && context.IsLoggedIn {
		if err := controller.connections.Upsert(c.Request.Context(), context.UserID, user, tokens); err != nil {
			log.Error().Err(err).Str("userId", context.UserID).Msg("Failed to store Google connection")
			c.JSON(500, gin.H{
				"error": "Falha ao salvar a conexão",
			})
			return
		}
	} else {
		log.Warn().Msg("Exchange without an authenticated session, connection not persisted")
	}

	response := ExchangeResponse{
		Success:     true,
		Email:       user.Email,
		Name:        user.Name,
		Picture:     user.Picture,
		AccessToken: tokens.AccessToken,
	}

	// The refresh token is long-lived credential material and stays
	// server-side unless explicitly configured otherwise
	if controller.config.ReturnRefreshToken {
		response.RefreshToken = tokens.RefreshToken
	}

	c.JSON(200, response)
}

func (controller *OAuthController) failExchange(c *gin.Context, exchangeErr *service.ExchangeError) {
	switch exchangeErr.Kind {
	case service.ExchangeRedirectMismatch:
		c.JSON(400, gin.H{
			"error":      "Erro de configuração no Google Cloud Console",
			"error_type": "redirect_uri_mismatch",
			"message":    exchangeErr.Message,
			"details": gin.H{
				"configured_uri":   controller.google.RedirectURI(),
				"console_url":      controller.config.ConsoleURL,
				"suggestion":       "Certifique-se que este URI exato esteja adicionado nas URIs de redirecionamento autorizadas no Console Google Cloud.",
				"propagation_time": "As configurações do Google Cloud podem levar de 5 minutos a algumas horas para entrar em vigor.",
			},
		})
	case service.ExchangeProviderError:
		c.JSON(400, gin.H{
			"error":   exchangeErr.Message,
			"details": exchangeErr.Details,
		})
	case service.ExchangeProfileError:
		c.JSON(400, gin.H{
			"error":   exchangeErr.Message,
			"details": exchangeErr.Raw,
		})
	case service.ExchangeParseError:
		c.JSON(500, gin.H{
			"error":   exchangeErr.Message,
			"details": exchangeErr.Raw,
		})
	default:
		c.JSON(500, gin.H{
			"error": exchangeErr.Message,
		})
	}
}

func (controller *OAuthController) statusHandler(c *gin.Context) {
	context, err := utils.GetContext(c)

	if err != nil || !context.IsLoggedIn {
		c.JSON(401, gin.H{
			"status":  401,
			"message": "Unauthorized",
		})
		return
	}

	connection, found, err := controller.connections.Get(c.Request.Context(), context.UserID)

	if err != nil {
		log.Error().Err(err).Str("userId", context.UserID).Msg("Failed to read Google connection")
		c.JSON(500, gin.H{
			"status":  500,
			"message": "Internal Server Error",
		})
		return
	}

	if !found {
		c.JSON(200, StatusResponse{Connected: false})
		return
	}

	c.JSON(200, StatusResponse{
		Connected: true,
		Email:     connection.GoogleEmail,
		Since:     time.Unix(connection.CreatedAt, 0).UTC().Format(time.RFC3339),
	})
}

func (controller *OAuthController) revokeHandler(c *gin.Context) {
	context, err := utils.GetContext(c)

	if err != nil || !context.IsLoggedIn {
		c.JSON(401, gin.H{
			"status":  401,
			"message": "Unauthorized",
		})
		return
	}

	if err := controller.connections.Revoke(c.Request.Context(), context.UserID); err != nil {
		log.Error().Err(err).Str("userId", context.UserID).Msg("Failed to revoke Google connection")
		c.JSON(500, gin.H{
			"status":  500,
			"message": "Internal Server Error",
		})
		return
	}

	log.Info().Str("userId", context.UserID).Msg("Google connection revoked")

	c.JSON(200, gin.H{
		"status":  200,
		"message": "OK",
	})
}
