package reqfile

import (
	"fmt"
	"os"

	"github.com/geerlingguy/Request/packages/config"
	"github.com/geerlingguy/Request/packages/request"
	"gopkg.in/yaml.v3"
)

// File is the top-level shape of a request definition file.
type File struct {
	Requests []*Definition `yaml:"requests"`
}

// Definition describes one request. Unset fields fall back to the defaults
// the file is built against.
type Definition struct {
	Name           string            `yaml:"name,omitempty"`
	URL            string            `yaml:"url"`
	Method         string            `yaml:"method,omitempty"`
	UserAgent      string            `yaml:"userAgent,omitempty"`
	Data           string            `yaml:"data,omitempty"` // raw body, sent on POST
	Form           map[string]string `yaml:"form,omitempty"` // url-encoded fields, sent on POST
	Username       string            `yaml:"username,omitempty"`
	Password       string            `yaml:"password,omitempty"`
	Timeout        int               `yaml:"timeout,omitempty"`        // seconds
	ConnectTimeout int               `yaml:"connectTimeout,omitempty"` // seconds
	VerifySSL      *bool             `yaml:"verifySSL,omitempty"`
	CookieJar      string            `yaml:"cookieJar,omitempty"`
	Check          string            `yaml:"check,omitempty"` // substring the 200 body must contain
}

// DisplayName returns the definition's name, falling back to its URL.
func (d *Definition) DisplayName() string {
	if d.Name != "" {
		return d.Name
	}
	return d.URL
}

// Load parses a request definition file and validates every entry.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	if len(f.Requests) == 0 {
		return nil, fmt.Errorf("%s: no requests defined", path)
	}
	for i, def := range f.Requests {
		if def.URL == "" {
			return nil, fmt.Errorf("%s: request %d is missing a url", path, i+1)
		}
		if def.Data != "" && len(def.Form) > 0 {
			return nil, fmt.Errorf("%s: request %q sets both data and form", path, def.DisplayName())
		}
	}

	return &f, nil
}

// Build produces a configured Request from a definition, applying defaults
// from cfg for anything the definition leaves unset.
func Build(def *Definition, cfg *config.Config) (*request.Request, error) {
	r, err := request.New(def.URL)
	if err != nil {
		return nil, err
	}

	if cfg == nil {
		cfg = config.Default()
	}

	ua := cfg.UserAgent
	if def.UserAgent != "" {
		ua = def.UserAgent
	}
	if ua != "" {
		r.SetUserAgent(ua)
	}

	timeout := cfg.Timeout
	if def.Timeout > 0 {
		timeout = def.Timeout
	}
	if timeout > 0 {
		r.SetTimeout(timeout)
	}

	connectTimeout := cfg.ConnectTimeout
	if def.ConnectTimeout > 0 {
		connectTimeout = def.ConnectTimeout
	}
	if connectTimeout > 0 {
		r.SetConnectTimeout(connectTimeout)
	}

	verify := cfg.GetVerifySSL()
	if def.VerifySSL != nil {
		verify = *def.VerifySSL
	}
	r.SetVerifySSL(verify)

	if def.Method != "" {
		r.SetMethod(def.Method)
	}
	if def.Data != "" {
		r.SetPostFields(def.Data)
	}
	if len(def.Form) > 0 {
		r.SetPostForm(def.Form)
	}
	if def.Username != "" {
		r.SetBasicAuth(def.Username, def.Password)
	}

	jar := cfg.CookieJar
	if def.CookieJar != "" {
		jar = def.CookieJar
	}
	if jar != "" {
		if err := r.EnableCookies(jar); err != nil {
			return nil, err
		}
	}

	return r, nil
}
