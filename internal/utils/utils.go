package utils

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"strings"

	"github.com/digirioh/hub/internal/config"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/weppos/publicsuffix-go/publicsuffix"
)

// GetSecret returns the secret from the config value or, when a file is
// configured, the first non-empty line of that file.
func GetSecret(conf string, file string) string {
	if conf != "" {
		return conf
	}

	if file == "" {
		return ""
	}

	contents, err := os.ReadFile(file)
	if err != nil {
		return ""
	}

	for _, line := range strings.Split(string(contents), "\n") {
		if strings.TrimSpace(line) != "" {
			return strings.TrimSpace(line)
		}
	}

	return ""
}

// GetCookieDomain derives the cookie domain from the app URL. The
// session cookie is scoped to the registrable domain so the SPA and the
// hub can live on sibling subdomains. Single-label hosts (localhost)
// are kept as-is for local setups.
func GetCookieDomain(appURL string) (string, error) {
	parsed, err := url.Parse(appURL)

	if err != nil {
		return "", fmt.Errorf("failed to parse app URL: %w", err)
	}

	host := parsed.Hostname()

	if host == "" {
		return "", errors.New("app URL has no hostname")
	}

	if net.ParseIP(host) != nil {
		return "", errors.New("IP addresses not allowed")
	}

	if !strings.Contains(host, ".") {
		return host, nil
	}

	domain, err := publicsuffix.Domain(host)

	if err != nil {
		return "", errors.New("domain in public suffix list, cannot set cookies")
	}

	return domain, nil
}

func GetContext(c *gin.Context) (config.UserContext, error) {
	userContextValue, exists := c.Get("context")

	if !exists {
		return config.UserContext{}, errors.New("no user context in request")
	}

	userContext, ok := userContextValue.(*config.UserContext)

	if !ok {
		return config.UserContext{}, errors.New("invalid user context in request")
	}

	return *userContext, nil
}

func GetLogLevel(level string) zerolog.Level {
	switch strings.ToLower(level) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "fatal":
		return zerolog.FatalLevel
	case "panic":
		return zerolog.PanicLevel
	default:
		return zerolog.InfoLevel
	}
}

// CodePrefix returns a safe prefix of an authorization code for logging.
// Codes are single-use secrets and must never be logged in full.
func CodePrefix(code string) string {
	if len(code) <= 10 {
		return code
	}
	return code[:10] + "..."
}
