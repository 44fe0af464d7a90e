package bootstrap

import (
	"fmt"
	"strings"

	"github.com/digirioh/hub/internal/config"
	"github.com/digirioh/hub/internal/controller"
	"github.com/digirioh/hub/internal/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func (app *BootstrapApp) setupRouter() (*gin.Engine, error) {
	engine := gin.New()
	engine.Use(gin.Recovery())

	if len(app.config.TrustedProxies) > 0 {
		err := engine.SetTrustedProxies(strings.Split(app.config.TrustedProxies, ","))

		if err != nil {
			return nil, fmt.Errorf("failed to set trusted proxies: %w", err)
		}
	}

	// The exchange endpoint is called cross-origin from the SPA, so the
	// preflight has to pass with the headers the Supabase client sends
	corsConfig := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "HEAD"},
		AllowHeaders:  []string{"authorization", "x-client-info", "apikey", "content-type"},
		ExposeHeaders: []string{"content-type"},
	}

	if app.config.CORSOrigins == "" || app.config.CORSOrigins == "*" {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = strings.Split(app.config.CORSOrigins, ",")
		corsConfig.AllowCredentials = true
	}

	engine.Use(cors.New(corsConfig))

	zerologMiddleware := middleware.NewZerologMiddleware()

	if err := zerologMiddleware.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize zerolog middleware: %w", err)
	}

	engine.Use(zerologMiddleware.Middleware())

	contextMiddleware := middleware.NewContextMiddleware(app.services.authService)

	if err := contextMiddleware.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize context middleware: %w", err)
	}

	engine.Use(contextMiddleware.Middleware())

	apiRouter := engine.Group("/api")

	oauthController := controller.NewOAuthController(controller.OAuthControllerConfig{
		CSRFCookieName:     app.context.csrfCookieName,
		SecureCookie:       app.config.SecureCookie,
		CookieDomain:       app.context.cookieDomain,
		ConsoleURL:         config.GoogleConsoleURL,
		ReturnRefreshToken: app.config.ReturnRefreshToken,
	}, apiRouter, app.services.googleService, app.services.connectionService)

	oauthController.SetupRoutes()

	userController := controller.NewUserController(apiRouter, app.services.authService, app.services.accountService)

	userController.SetupRoutes()

	planController := controller.NewPlanController(apiRouter, app.services.accountService)

	planController.SetupRoutes()

	contextController := controller.NewContextController(controller.ContextControllerConfig{
		AppURL: app.config.AppURL,
		Title:  "DigiRioh",
	}, apiRouter)

	contextController.SetupRoutes()

	healthController := controller.NewHealthController(apiRouter)

	healthController.SetupRoutes()

	return engine, nil
}
