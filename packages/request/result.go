package request

import (
	"strings"
	"time"
)

// Result is the outcome of a single Execute. Transport-level failures are
// carried in Err; an HTTP error status is not a failure. When Err is set the
// response fields hold whatever was observed before the failure, typically a
// zero StatusCode and empty body.
type Result struct {
	StatusCode int
	RawHeader  string // status line + header block, CRLF-terminated
	Body       []byte
	Latency    time.Duration
	Err        error
}

func (r *Result) BodyString() string {
	return string(r.Body)
}

// LatencyMs returns the round-trip latency in milliseconds, rounded to the
// nearest integer.
func (r *Result) LatencyMs() int64 {
	return r.Latency.Round(time.Millisecond).Milliseconds()
}

// Contains reports whether the response had status 200, a non-empty body,
// and the body contains substr.
func (r *Result) Contains(substr string) bool {
	return r.StatusCode == 200 && len(r.Body) > 0 && strings.Contains(r.BodyString(), substr)
}

func (r *Result) IsSuccess() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// ErrString returns the transport error as text, empty when the request
// completed.
func (r *Result) ErrString() string {
	if r.Err == nil {
		return ""
	}
	return r.Err.Error()
}
