// Package request provides a one-shot HTTP request wrapper.
//
// A Request holds the configuration for a single HTTP call: target address,
// timeouts, TLS verification, basic auth, cookie persistence, method and
// POST fields. Execute performs the call synchronously and captures the
// outcome as data; transport failures (DNS, connect, timeout, TLS) never
// surface as Go errors from Execute — callers inspect the Result instead.
package request
