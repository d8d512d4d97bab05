package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/geerlingguy/Request/packages/bench"
	"github.com/geerlingguy/Request/packages/output"
	"github.com/spf13/cobra"
)

var benchCmd = &cobra.Command{
	Use:   "bench <url>",
	Short: "Repeat a request sequentially and report latency statistics",
	Long: `Repeat one request back to back, a single request in flight at a
time, and report latency percentiles.

Examples:
  request bench https://example.com/ -n 100
  request bench https://example.com/ --duration 30s --rate 10
  request bench https://example.com/api -X POST -d '{"ping":true}' -n 50`,
	Args: cobra.ExactArgs(1),
	RunE: benchCommand,
}

var (
	benchRequestsFlag int
	benchDurationFlag time.Duration
	benchRateFlag     float64
)

func init() {
	benchCmd.Flags().IntVarP(&benchRequestsFlag, "requests", "n", 0, "Number of requests to perform")
	benchCmd.Flags().DurationVarP(&benchDurationFlag, "duration", "D", 0, "Run for this long instead of a fixed count")
	benchCmd.Flags().Float64VarP(&benchRateFlag, "rate", "r", 0, "Target requests per second (0 = unpaced)")

	// The request itself is configured with the same flags as send.
	benchCmd.Flags().StringVarP(&methodFlag, "method", "X", "", "HTTP method (default GET; -d implies POST)")
	benchCmd.Flags().StringArrayVarP(&dataFlag, "data", "d", nil, "POST data: key=value (repeatable) or a raw body")
	benchCmd.Flags().StringVarP(&userFlag, "user", "u", "", "Basic auth credentials as user:password")
	benchCmd.Flags().StringVar(&cookieJarFlag, "cookie-jar", getEnvString("REQUEST_COOKIE_JAR", ""), "Cookie jar file (env: REQUEST_COOKIE_JAR)")
	benchCmd.Flags().IntVar(&timeoutFlag, "timeout", 0, "Total request timeout in seconds")
	benchCmd.Flags().IntVar(&connectTimeoutFlag, "connect-timeout", 0, "Connection timeout in seconds")
	benchCmd.Flags().BoolVar(&verifyFlag, "verify", getEnvBool("REQUEST_VERIFY_SSL", false), "Enable TLS certificate verification (env: REQUEST_VERIFY_SSL)")
	benchCmd.Flags().StringVarP(&userAgentFlag, "user-agent", "A", "", "User-Agent header")
	benchCmd.Flags().BoolVar(&noColorFlag, "no-color", getEnvBool("REQUEST_NO_COLOR", false), "Disable colored output (env: REQUEST_NO_COLOR)")
	benchCmd.Flags().StringVar(&configFlag, "config", getEnvString("REQUEST_CONFIG", ""), "Path to config file (env: REQUEST_CONFIG)")
}

func benchCommand(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if benchRequestsFlag <= 0 && benchDurationFlag <= 0 {
		benchRequestsFlag = 10
	}

	req, err := buildRequestFromFlags(args[0], cfg)
	if err != nil {
		return err
	}

	runner, err := bench.NewRunner(req, &bench.Config{
		Iterations: benchRequestsFlag,
		Duration:   benchDurationFlag,
		Rate:       benchRateFlag,
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Fprintf(os.Stderr, "benchmarking %s\n", args[0])
	summary, err := runner.Run(ctx)
	if err != nil && ctx.Err() == nil {
		return err
	}

	formatter := output.NewConsoleFormatter(
		output.WithNoColor(noColorFlag || cfg.GetNoColor()),
	)
	formatter.FormatBenchSummary(summary)

	return nil
}
