package cmd

import (
	"fmt"
	neturl "net/url"
	"os"
	"strings"

	"github.com/geerlingguy/Request/packages/config"
	"github.com/geerlingguy/Request/packages/history"
	"github.com/geerlingguy/Request/packages/output"
	"github.com/geerlingguy/Request/packages/request"
	"github.com/spf13/cobra"
)

var sendCmd = &cobra.Command{
	Use:   "send <url>",
	Short: "Perform a single HTTP request",
	Long: `Perform one synchronous HTTP request and print the outcome.

Examples:
  request send https://example.com/
  request send https://example.com/login -X POST -d user=alice -d pass=s3cret
  request send https://example.com/api -u admin:hunter2 --check '"ok":true'
  request send https://example.com/ --cookie-jar cookies.json --verbose`,
	Args: cobra.ExactArgs(1),
	RunE: sendCommand,
}

var (
	methodFlag         string
	dataFlag           []string
	userFlag           string
	cookieJarFlag      string
	timeoutFlag        int
	connectTimeoutFlag int
	verifyFlag         bool
	userAgentFlag      string
	checkFlag          string
	verboseFlag        bool
	noColorFlag        bool
	noHistoryFlag      bool
	configFlag         string
)

func init() {
	sendCmd.Flags().StringVarP(&methodFlag, "method", "X", "", "HTTP method (default GET; -d implies POST)")
	sendCmd.Flags().StringArrayVarP(&dataFlag, "data", "d", nil, "POST data: key=value (repeatable) or a raw body")
	sendCmd.Flags().StringVarP(&userFlag, "user", "u", "", "Basic auth credentials as user:password")
	sendCmd.Flags().StringVar(&cookieJarFlag, "cookie-jar", getEnvString("REQUEST_COOKIE_JAR", ""), "Cookie jar file, read and written at the same path (env: REQUEST_COOKIE_JAR)")
	sendCmd.Flags().IntVar(&timeoutFlag, "timeout", 0, "Total request timeout in seconds")
	sendCmd.Flags().IntVar(&connectTimeoutFlag, "connect-timeout", 0, "Connection timeout in seconds")
	sendCmd.Flags().BoolVar(&verifyFlag, "verify", getEnvBool("REQUEST_VERIFY_SSL", false), "Enable TLS certificate verification (env: REQUEST_VERIFY_SSL)")
	sendCmd.Flags().StringVarP(&userAgentFlag, "user-agent", "A", "", "User-Agent header")
	sendCmd.Flags().StringVar(&checkFlag, "check", "", "Fail unless the 200 response body contains this substring")
	sendCmd.Flags().BoolVarP(&verboseFlag, "verbose", "v", false, "Show the raw header block and full body")
	sendCmd.Flags().BoolVar(&noColorFlag, "no-color", getEnvBool("REQUEST_NO_COLOR", false), "Disable colored output (env: REQUEST_NO_COLOR)")
	sendCmd.Flags().BoolVar(&noHistoryFlag, "no-history", false, "Do not record this request in the history database")
	sendCmd.Flags().StringVar(&configFlag, "config", getEnvString("REQUEST_CONFIG", ""), "Path to config file (env: REQUEST_CONFIG)")
}

func sendCommand(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	req, err := buildRequestFromFlags(args[0], cfg)
	if err != nil {
		return err
	}

	res := req.Execute()

	formatter := output.NewConsoleFormatter(
		output.WithVerbose(verboseFlag),
		output.WithNoColor(noColorFlag || cfg.GetNoColor()),
	)
	formatter.FormatResult(args[0], res)

	recordHistory(cfg, args[0], req.Method(), res)

	if res.Err != nil {
		os.Exit(ExitTransportError)
	}

	if checkFlag != "" {
		passed := res.Contains(checkFlag)
		formatter.FormatCheck(checkFlag, passed)
		if !passed {
			os.Exit(ExitCheckFailure)
		}
	}

	return nil
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configFlag)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

// buildRequestFromFlags configures a Request from the shared send/bench
// flags, with config-file values filling anything left unset.
func buildRequestFromFlags(url string, cfg *config.Config) (*request.Request, error) {
	req, err := request.New(url)
	if err != nil {
		return nil, err
	}

	ua := cfg.UserAgent
	if userAgentFlag != "" {
		ua = userAgentFlag
	}
	if ua != "" {
		req.SetUserAgent(ua)
	}

	timeout := cfg.Timeout
	if timeoutFlag > 0 {
		timeout = timeoutFlag
	}
	if timeout > 0 {
		req.SetTimeout(timeout)
	}

	connectTimeout := cfg.ConnectTimeout
	if connectTimeoutFlag > 0 {
		connectTimeout = connectTimeoutFlag
	}
	if connectTimeout > 0 {
		req.SetConnectTimeout(connectTimeout)
	}

	req.SetVerifySSL(verifyFlag || cfg.GetVerifySSL())

	method := methodFlag
	if len(dataFlag) > 0 {
		body, err := parseData(dataFlag)
		if err != nil {
			return nil, err
		}
		req.SetPostFields(body)
		if method == "" {
			method = "POST"
		}
	}
	if method != "" {
		req.SetMethod(strings.ToUpper(method))
	}

	if userFlag != "" {
		username, password, found := strings.Cut(userFlag, ":")
		if !found {
			return nil, fmt.Errorf("--user must be user:password, got %q", userFlag)
		}
		req.SetBasicAuth(username, password)
	}

	jar := cfg.CookieJar
	if cookieJarFlag != "" {
		jar = cookieJarFlag
	}
	if jar != "" {
		if err := req.EnableCookies(jar); err != nil {
			return nil, err
		}
	}

	return req, nil
}

// parseData turns repeated -d flags into a request body: key=value pairs are
// URL-encoded as a form, a single argument without '=' is taken as a raw
// body.
func parseData(data []string) (string, error) {
	if len(data) == 1 && !strings.Contains(data[0], "=") {
		return data[0], nil
	}

	form := neturl.Values{}
	for _, d := range data {
		key, value, found := strings.Cut(d, "=")
		if !found || key == "" {
			return "", fmt.Errorf("invalid data %q: expected key=value", d)
		}
		form.Set(key, value)
	}
	return form.Encode(), nil
}

// recordHistory stores the outcome in the history database. History is best
// effort: failures are reported on stderr but never change the exit code.
func recordHistory(cfg *config.Config, address, method string, res *request.Result) {
	if noHistoryFlag || cfg.HistoryDB == "" {
		return
	}

	store, err := history.Open(cfg.HistoryDB)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
		return
	}
	defer store.Close()

	if _, err := store.Record(address, method, res); err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
	}
}
