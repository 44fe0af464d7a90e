// Package connect is the Go rendition of the browser-side Google
// connection flow: a code client abstraction over the provider's
// consent popup, the code-for-tokens exchange call against the hub and
// a small local marker cache mirroring what the SPA keeps in
// localStorage.
package connect

// ErrorKind tags an exchange outcome so callers can render the right
// remediation instead of string-matching messages.
type ErrorKind string

const (
	ConfigError      ErrorKind = "config_error"
	RedirectMismatch ErrorKind = "redirect_uri_mismatch"
	ProviderError    ErrorKind = "provider_error"
	ParseError       ErrorKind = "parse_error"
	NetworkError     ErrorKind = "network_error"
	Cancelled        ErrorKind = "cancelled"
)

type ExchangeError struct {
	Kind    ErrorKind
	Message string
	// Details holds the parsed error body when the server sent one
	Details map[string]any
	// Raw is the unparsed response text, kept for diagnostics when
	// parsing failed
	Raw        string
	StatusCode int
}

func (err *ExchangeError) Error() string {
	return err.Message
}

func newExchangeError(kind ErrorKind, message string) *ExchangeError {
	return &ExchangeError{
		Kind:    kind,
		Message: message,
	}
}
