package bootstrap

import (
	"github.com/digirioh/hub/internal/config"
	"github.com/digirioh/hub/internal/repository"
	"github.com/digirioh/hub/internal/service"
)

type Services struct {
	authService       *service.AuthService
	googleService     *service.GoogleOAuthService
	connectionService *service.ConnectionService
	accountService    *service.AccountService
}

func (app *BootstrapApp) initServices(queries *repository.Queries) (Services, error) {
	services := Services{}

	authService := service.NewAuthService(service.AuthServiceConfig{
		SessionExpiry:     app.config.SessionExpiry,
		SecureCookie:      app.config.SecureCookie,
		CookieDomain:      app.context.cookieDomain,
		LoginTimeout:      app.config.LoginTimeout,
		LoginMaxRetries:   app.config.LoginMaxRetries,
		SessionCookieName: app.context.sessionCookieName,
		HMACSecret:        app.config.Secret,
	}, queries)

	if err := authService.Init(); err != nil {
		return Services{}, err
	}

	services.authService = authService

	googleService := service.NewGoogleOAuthService(service.GoogleOAuthServiceConfig{
		ClientID:     app.config.GoogleClientID,
		ClientSecret: app.config.GoogleClientSecret,
		RedirectURI:  app.config.GoogleRedirectURI,
		UserinfoURL:  config.GoogleUserinfoURL,
	})

	if err := googleService.Init(); err != nil {
		return Services{}, err
	}

	services.googleService = googleService

	connectionService := service.NewConnectionService(queries)

	if err := connectionService.Init(); err != nil {
		return Services{}, err
	}

	services.connectionService = connectionService

	accountService := service.NewAccountService(queries)

	if err := accountService.Init(); err != nil {
		return Services{}, err
	}

	services.accountService = accountService

	return services, nil
}
