package service

// ExchangeErrorKind tags every failure of the code exchange flow so the
// controller can map it to a status code and payload without inspecting
// provider internals.
type ExchangeErrorKind string

const (
	ExchangeConfigError      ExchangeErrorKind = "config_error"
	ExchangeBadRequest       ExchangeErrorKind = "bad_request"
	ExchangeRedirectMismatch ExchangeErrorKind = "redirect_uri_mismatch"
	ExchangeProviderError    ExchangeErrorKind = "provider_error"
	ExchangeProfileError     ExchangeErrorKind = "profile_fetch_error"
	ExchangeParseError       ExchangeErrorKind = "parse_error"
	ExchangeInternalError    ExchangeErrorKind = "internal_error"
)

// ExchangeError is decided at the point of failure and carries the
// provider payload verbatim in Details, never the client secret.
type ExchangeError struct {
	Kind    ExchangeErrorKind
	Message string
	Details map[string]any
	Raw     string
}

func (e *ExchangeError) Error() string {
	return e.Message
}

func NewExchangeError(kind ExchangeErrorKind, message string) *ExchangeError {
	return &ExchangeError{
		Kind:    kind,
		Message: message,
	}
}
