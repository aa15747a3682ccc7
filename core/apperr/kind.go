package apperr

// Kind is the closed set of error shapes the error handlers know how to answer.
type Kind uint8

const (
	// KindGeneric is any unclassified failure.
	KindGeneric Kind = iota
	// KindMalformedURI means the request path or a path parameter could not be decoded.
	KindMalformedURI
	// KindCSRFMismatch means the request carried a missing or wrong CSRF token.
	KindCSRFMismatch
	// KindBlacklistedIP means the client address is on the blacklist.
	KindBlacklistedIP
	// KindRedirect is a redirect instruction sent through the error channel.
	KindRedirect
)

// Legacy wire codes. Upstream code that still reports errors by code string
// is mapped onto the matching Kind by From.
const (
	CodeCSRFMismatch  = "EBADCSRFTOKEN"
	CodeBlacklistedIP = "blacklisted-ip"
)

func (k Kind) String() string {
	switch k {
	case KindGeneric:
		return "generic"
	case KindMalformedURI:
		return "malformed_uri"
	case KindCSRFMismatch:
		return "csrf_mismatch"
	case KindBlacklistedIP:
		return "blacklisted_ip"
	case KindRedirect:
		return "redirect"
	default:
		return "unknown"
	}
}
