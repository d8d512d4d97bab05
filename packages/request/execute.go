package request

import (
	"crypto/tls"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/httputil"
	"strings"
	"time"

	cookiejar "github.com/juju/persistent-cookiejar"
)

// Execute performs the configured HTTP call synchronously and returns its
// outcome. It never returns a Go error: transport failures are reported in
// Result.Err with a zero status code and empty body. The result is also
// retained on the Request for the accessor methods.
//
// Each call owns one transport handle, released on every exit path. The call
// blocks for at most roughly the connect timeout plus the total timeout.
func (r *Request) Execute() *Result {
	res := r.do()
	r.last = res
	return res
}

func (r *Request) do() *Result {
	transport := &http.Transport{
		DialContext: (&net.Dialer{
			Timeout: time.Duration(r.connectTimeout) * time.Second,
		}).DialContext,
	}
	if !r.verifySSL {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
	}
	defer transport.CloseIdleConnections()

	client := &http.Client{
		Transport: transport,
		Timeout:   time.Duration(r.timeout) * time.Second,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= MaxRedirects {
				return http.ErrUseLastResponse
			}
			return nil
		},
	}

	var jar *cookiejar.Jar
	if r.cookiesEnabled {
		var err error
		jar, err = cookiejar.New(&cookiejar.Options{Filename: r.cookieJarPath})
		if err != nil {
			return &Result{Err: fmt.Errorf("cookie jar %s: %w", r.cookieJarPath, err)}
		}
		client.Jar = jar
	}

	method := r.method
	if method == "" {
		method = http.MethodGet
	}

	// POST fields only apply to POST; for any other method they stay unsent.
	var body io.Reader
	if method == http.MethodPost && r.postFields != "" {
		body = strings.NewReader(r.postFields)
	}

	httpReq, err := http.NewRequest(method, r.address, body)
	if err != nil {
		return &Result{Err: err}
	}

	httpReq.Header.Set("User-Agent", r.userAgent)
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	if r.basicAuth != nil {
		httpReq.SetBasicAuth(r.basicAuth.Username, r.basicAuth.Password)
	}

	start := time.Now()
	httpResp, err := client.Do(httpReq)
	if err != nil {
		return &Result{Latency: time.Since(start), Err: err}
	}
	defer httpResp.Body.Close()

	// Redirects are followed transparently; only the final response's header
	// block is observable.
	rawHeader, err := httputil.DumpResponse(httpResp, false)
	if err != nil {
		return &Result{Latency: time.Since(start), Err: err}
	}

	respBody, err := io.ReadAll(httpResp.Body)
	latency := time.Since(start)
	if err != nil {
		return &Result{
			StatusCode: httpResp.StatusCode,
			RawHeader:  string(rawHeader),
			Latency:    latency,
			Err:        err,
		}
	}

	if jar != nil {
		_ = jar.Save()
	}

	return &Result{
		StatusCode: httpResp.StatusCode,
		RawHeader:  string(rawHeader),
		Body:       respBody,
		Latency:    latency,
	}
}
