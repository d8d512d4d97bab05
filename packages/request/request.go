package request

import (
	"errors"
	"net/url"
)

const (
	// DefaultUserAgent identifies the library on outbound requests
	DefaultUserAgent = "Mozilla/5.0 (compatible; Go Request library)"
	// DefaultConnectTimeout is the default connection timeout in seconds
	DefaultConnectTimeout = 10
	// DefaultTimeout is the default total request timeout in seconds
	DefaultTimeout = 15
	// MaxRedirects is the maximum number of redirects followed per request
	MaxRedirects = 5
)

// ErrEmptyAddress is returned by New when no target address is given.
var ErrEmptyAddress = errors.New("request: address must not be empty")

// BasicAuthCredentials holds credentials for HTTP basic auth.
type BasicAuthCredentials struct {
	Username string
	Password string
}

// Request holds the configuration for one HTTP call and the result of the
// most recent Execute. A Request may be reconfigured and executed repeatedly;
// each Execute fully replaces the prior result. Distinct Requests are safe
// for concurrent use, a single Request is not synchronized.
type Request struct {
	address        string
	userAgent      string
	connectTimeout int // seconds
	timeout        int // seconds
	verifySSL      bool
	cookiesEnabled bool
	cookieJarPath  string
	method         string
	postFields     string
	basicAuth      *BasicAuthCredentials

	last *Result
}

// New creates a Request for the given address with library defaults:
// 10s connect timeout, 15s total timeout, SSL verification disabled.
func New(address string) (*Request, error) {
	if address == "" {
		return nil, ErrEmptyAddress
	}
	return &Request{
		address:        address,
		userAgent:      DefaultUserAgent,
		connectTimeout: DefaultConnectTimeout,
		timeout:        DefaultTimeout,
	}, nil
}

func (r *Request) SetAddress(address string) *Request {
	r.address = address
	return r
}

func (r *Request) SetUserAgent(ua string) *Request {
	r.userAgent = ua
	return r
}

// SetMethod overrides the HTTP method. An empty method means the transport
// default (GET).
func (r *Request) SetMethod(method string) *Request {
	r.method = method
	return r
}

// SetPostFields sets a raw request body, sent only when the method is POST.
func (r *Request) SetPostFields(fields string) *Request {
	r.postFields = fields
	return r
}

// SetPostForm URL-encodes the given fields as the request body, sent only
// when the method is POST.
func (r *Request) SetPostForm(fields map[string]string) *Request {
	form := url.Values{}
	for k, v := range fields {
		form.Set(k, v)
	}
	r.postFields = form.Encode()
	return r
}

// SetBasicAuth attaches username:password credentials to the request.
func (r *Request) SetBasicAuth(username, password string) *Request {
	r.basicAuth = &BasicAuthCredentials{Username: username, Password: password}
	return r
}

// SetVerifySSL enables or disables TLS certificate verification.
// Verification is disabled by default; callers must opt in.
func (r *Request) SetVerifySSL(verify bool) *Request {
	r.verifySSL = verify
	return r
}

// SetConnectTimeout sets the connection timeout in seconds. Negative values
// are rejected and leave the current value unchanged.
func (r *Request) SetConnectTimeout(seconds int) *Request {
	if seconds >= 0 {
		r.connectTimeout = seconds
	}
	return r
}

// SetTimeout sets the total request timeout in seconds. Negative values are
// rejected and leave the current value unchanged.
func (r *Request) SetTimeout(seconds int) *Request {
	if seconds >= 0 {
		r.timeout = seconds
	}
	return r
}

// EnableCookies turns on cookie persistence. The file at jarPath is used
// both to load cookies before the request and to store cookies after it.
func (r *Request) EnableCookies(jarPath string) error {
	if jarPath == "" {
		return errors.New("request: cookie jar path must not be empty")
	}
	r.cookiesEnabled = true
	r.cookieJarPath = jarPath
	return nil
}

// DisableCookies turns off cookie persistence and clears the jar path.
func (r *Request) DisableCookies() {
	r.cookiesEnabled = false
	r.cookieJarPath = ""
}

func (r *Request) Address() string {
	return r.address
}

func (r *Request) UserAgent() string {
	return r.userAgent
}

// Method returns the configured method override, empty when the transport
// default (GET) applies.
func (r *Request) Method() string {
	return r.method
}

// PostFields returns the configured request body, raw or form-encoded.
func (r *Request) PostFields() string {
	return r.postFields
}

// ConnectTimeout returns the configured connection timeout in seconds.
func (r *Request) ConnectTimeout() int {
	return r.connectTimeout
}

// Timeout returns the configured total timeout in seconds.
func (r *Request) Timeout() int {
	return r.timeout
}

// Result returns the outcome of the most recent Execute, or nil before the
// first execution.
func (r *Request) Result() *Result {
	return r.last
}

// Body returns the response body of the most recent Execute, empty before
// the first execution.
func (r *Request) Body() string {
	if r.last == nil {
		return ""
	}
	return r.last.BodyString()
}

// RawHeader returns the raw header block of the most recent response, empty
// before the first execution.
func (r *Request) RawHeader() string {
	if r.last == nil {
		return ""
	}
	return r.last.RawHeader
}

// StatusCode returns the HTTP status code of the most recent response, zero
// before the first execution and after transport-level failures.
func (r *Request) StatusCode() int {
	if r.last == nil {
		return 0
	}
	return r.last.StatusCode
}

// LatencyMs returns the round-trip time of the most recent Execute in
// milliseconds, rounded to the nearest integer. Zero before the first
// execution.
func (r *Request) LatencyMs() int64 {
	if r.last == nil {
		return 0
	}
	return r.last.LatencyMs()
}

// Err returns the transport-level error of the most recent Execute, nil when
// the request completed (regardless of HTTP status) or before the first
// execution.
func (r *Request) Err() error {
	if r.last == nil {
		return nil
	}
	return r.last.Err
}

// ContainsContent reports whether the most recent response had status 200, a
// non-empty body, and the body contains substr. Literal substring semantics:
// the empty string is contained in any non-empty body.
func (r *Request) ContainsContent(substr string) bool {
	if r.last == nil {
		return false
	}
	return r.last.Contains(substr)
}
