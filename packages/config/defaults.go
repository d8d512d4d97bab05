package config

import "github.com/geerlingguy/Request/packages/request"

// Default returns a configuration matching the request library's defaults.
func Default() *Config {
	return &Config{
		UserAgent:      request.DefaultUserAgent,
		Timeout:        request.DefaultTimeout,
		ConnectTimeout: request.DefaultConnectTimeout,
		VerifySSL:      BoolPtr(false),
		CookieJar:      "",
		HistoryDB:      "request_history.db",
		NoColor:        BoolPtr(false),
	}
}
