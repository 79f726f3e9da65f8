package nytimes

import "errors"

// ErrorKind classifies a failed search.
type ErrorKind int

const (
	// KindConfiguration means no API key is configured. No request was sent.
	KindConfiguration ErrorKind = iota + 1
	// KindRateLimit means the search service answered 429.
	KindRateLimit
	// KindTransport covers network failures, other non-2xx statuses,
	// unreadable bodies and an open circuit breaker.
	KindTransport
	// KindFault means the service answered 2xx with a fault document.
	KindFault
)

// String returns the metric label for the kind.
func (k ErrorKind) String() string {
	switch k {
	case KindConfiguration:
		return "configuration"
	case KindRateLimit:
		return "rate_limit"
	case KindTransport:
		return "transport"
	case KindFault:
		return "fault"
	default:
		return "unknown"
	}
}

// User-facing messages.
const (
	MsgMissingAPIKey      = "NYT API key is missing. Please set NYT_API_KEY in your environment variables."
	MsgRateLimited        = "Rate limit exceeded. Please try again later."
	MsgUnavailable        = "Article search is temporarily unavailable. Please try again later."
	MsgUnreachable        = "Could not reach the article search service. Please try again later."
	MsgUnreadableResponse = "The article search service returned an unreadable response."
	MsgUnknownFault       = "The article search service reported an error."
)

// SearchError is the only error type returned by Client.Search.
// Message is safe to show to users; Err keeps the underlying cause for logs.
type SearchError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

// Error returns the user-facing message.
func (e *SearchError) Error() string {
	return e.Message
}

// Unwrap returns the underlying cause, if any.
func (e *SearchError) Unwrap() error {
	return e.Err
}

// KindOf returns the kind of a SearchError in err's chain, or 0.
func KindOf(err error) ErrorKind {
	var se *SearchError
	if errors.As(err, &se) {
		return se.Kind
	}
	return 0
}
