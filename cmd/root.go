package cmd

import (
	"github.com/digirioh/hub/internal/bootstrap"
	"github.com/digirioh/hub/internal/config"
	"github.com/digirioh/hub/internal/utils"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:   "digirioh",
	Short: "The DigiRioh account and Google connection hub.",
	Long:  `DigiRioh hub handles user accounts, plans and the Google OAuth code exchange used to connect Gmail and Calendar to the WhatsApp assistant.`,
	Run: func(cmd *cobra.Command, args []string) {
		// Get config
		log.Info().Msg("Parsing config")
		var conf config.Config
		parseErr := viper.Unmarshal(&conf)
		HandleError(parseErr, "Failed to parse config")

		// Secrets may live in files (e.g. docker secrets), resolve them
		// before validation so `validate:"len=32"` sees the real value
		conf.Secret = utils.GetSecret(conf.Secret, conf.SecretFile)
		conf.GoogleClientSecret = utils.GetSecret(conf.GoogleClientSecret, conf.GoogleSecretFile)

		// Validate config
		log.Info().Msg("Validating config")
		validator := validator.New()
		validateErr := validator.Struct(conf)
		HandleError(validateErr, "Invalid config")

		log.Logger = log.Level(utils.GetLogLevel(conf.LogLevel))

		// Create bootstrap app
		app := bootstrap.NewBootstrapApp(conf)

		// Setup
		setupErr := app.Setup()
		HandleError(setupErr, "Failed to setup app")
	},
}

func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to execute command")
	}
}

func HandleError(err error, msg string) {
	if err != nil {
		log.Fatal().Err(err).Msg(msg)
	}
}

func init() {
	viper.AutomaticEnv()
	rootCmd.Flags().Int("port", 3000, "Port to run the server on.")
	rootCmd.Flags().String("address", "0.0.0.0", "Address to bind the server to.")
	rootCmd.Flags().String("app-url", "", "The DigiRioh hub URL.")
	rootCmd.Flags().String("log-level", "info", "Log level (trace, debug, info, warn, error, fatal, panic).")
	rootCmd.Flags().String("database-path", "/data/digirioh.db", "Path to the sqlite database file.")
	rootCmd.Flags().String("secret", "", "Secret to use for signing session cookies (must be exactly 32 characters).")
	rootCmd.Flags().String("secret-file", "", "Path to a file containing the cookie secret.")
	rootCmd.Flags().Bool("secure-cookie", false, "Send cookies over secure connection only.")
	rootCmd.Flags().Int("session-expiry", 86400, "Session expiration time in seconds.")
	rootCmd.Flags().Int("login-timeout", 300, "Login timeout in seconds after max retries reached (0 to disable).")
	rootCmd.Flags().Int("login-max-retries", 5, "Maximum login attempts before timeout (0 to disable).")
	rootCmd.Flags().String("trusted-proxies", "", "Comma separated list of trusted proxy IPs.")
	rootCmd.Flags().String("cors-origins", "", "Comma separated list of allowed CORS origins (empty or * allows all).")
	rootCmd.Flags().String("google-client-id", "", "Google OAuth client ID.")
	rootCmd.Flags().String("google-client-secret", "", "Google OAuth client secret.")
	rootCmd.Flags().String("google-client-secret-file", "", "Path to a file containing the Google OAuth client secret.")
	rootCmd.Flags().String("google-redirect-uri", "", "Redirect URI registered in the Google Cloud Console, must match byte for byte.")
	rootCmd.Flags().Bool("return-refresh-token", false, "Include the Google refresh token in the exchange response.")
	viper.BindEnv("port", "PORT")
	viper.BindEnv("address", "ADDRESS")
	viper.BindEnv("app-url", "APP_URL")
	viper.BindEnv("log-level", "LOG_LEVEL")
	viper.BindEnv("database-path", "DATABASE_PATH")
	viper.BindEnv("secret", "SECRET")
	viper.BindEnv("secret-file", "SECRET_FILE")
	viper.BindEnv("secure-cookie", "SECURE_COOKIE")
	viper.BindEnv("session-expiry", "SESSION_EXPIRY")
	viper.BindEnv("login-timeout", "LOGIN_TIMEOUT")
	viper.BindEnv("login-max-retries", "LOGIN_MAX_RETRIES")
	viper.BindEnv("trusted-proxies", "TRUSTED_PROXIES")
	viper.BindEnv("cors-origins", "CORS_ORIGINS")
	viper.BindEnv("google-client-id", "GOOGLE_CLIENT_ID")
	viper.BindEnv("google-client-secret", "GOOGLE_CLIENT_SECRET")
	viper.BindEnv("google-client-secret-file", "GOOGLE_CLIENT_SECRET_FILE")
	viper.BindEnv("google-redirect-uri", "GOOGLE_REDIRECT_URI")
	viper.BindEnv("return-refresh-token", "RETURN_REFRESH_TOKEN")
	viper.BindPFlags(rootCmd.Flags())
}
