package output

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/geerlingguy/Request/packages/bench"
	"github.com/geerlingguy/Request/packages/history"
	"github.com/geerlingguy/Request/packages/request"
)

const maxBodyPreview = 2048

type ConsoleFormatter struct {
	writer  io.Writer
	verbose bool
	noColor bool
}

type ConsoleOption func(*ConsoleFormatter)

func NewConsoleFormatter(opts ...ConsoleOption) *ConsoleFormatter {
	f := &ConsoleFormatter{
		writer: os.Stdout,
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.noColor {
		color.NoColor = true
	}
	return f
}

func WithWriter(w io.Writer) ConsoleOption {
	return func(f *ConsoleFormatter) {
		f.writer = w
	}
}

func WithVerbose(v bool) ConsoleOption {
	return func(f *ConsoleFormatter) {
		f.verbose = v
	}
}

func WithNoColor(nc bool) ConsoleOption {
	return func(f *ConsoleFormatter) {
		f.noColor = nc
	}
}

// FormatResult renders one executed request. In verbose mode the raw header
// block and the full body are shown; otherwise the body is previewed.
func (f *ConsoleFormatter) FormatResult(name string, res *request.Result) {
	red := color.New(color.FgRed).SprintFunc()
	bold := color.New(color.Bold).SprintFunc()

	fmt.Fprintf(f.writer, "%s\n", bold(name))

	if res.Err != nil {
		fmt.Fprintf(f.writer, "  %s %s\n", red("error:"), res.Err)
		fmt.Fprintf(f.writer, "  latency: %dms\n", res.LatencyMs())
		return
	}

	fmt.Fprintf(f.writer, "  status: %s   latency: %dms\n", f.colorStatus(res.StatusCode), res.LatencyMs())

	if f.verbose {
		fmt.Fprintf(f.writer, "\n%s\n", strings.TrimRight(res.RawHeader, "\r\n"))
		fmt.Fprintf(f.writer, "\n%s\n", res.BodyString())
		return
	}

	body := res.BodyString()
	if len(body) > maxBodyPreview {
		body = body[:maxBodyPreview] + "..."
	}
	if body != "" {
		fmt.Fprintf(f.writer, "\n%s\n", body)
	}
}

// FormatCheck renders the outcome of a substring check.
func (f *ConsoleFormatter) FormatCheck(substr string, passed bool) {
	green := color.New(color.FgGreen).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()

	if passed {
		fmt.Fprintf(f.writer, "  %s body contains %q\n", green("✓"), substr)
	} else {
		fmt.Fprintf(f.writer, "  %s body does not contain %q\n", red("✗"), substr)
	}
}

// FormatBenchSummary renders the aggregate outcome of a benchmark run.
func (f *ConsoleFormatter) FormatBenchSummary(s *bench.Summary) {
	bold := color.New(color.Bold).SprintFunc()

	fmt.Fprintf(f.writer, "\n%s\n", bold("Benchmark Summary"))
	fmt.Fprintf(f.writer, "  duration:   %s\n", s.Duration.Round(time.Millisecond))
	fmt.Fprintf(f.writer, "  requests:   %d\n", s.Total)
	fmt.Fprintf(f.writer, "  errors:     %d (%.1f%%)\n", s.Errors, s.ErrorRate*100)
	fmt.Fprintf(f.writer, "  rps:        %.2f\n", s.RPS)
	if s.Total > 0 {
		fmt.Fprintf(f.writer, "  latency:    min=%s mean=%s max=%s\n",
			s.Min.Round(time.Microsecond), s.Mean.Round(time.Microsecond), s.Max.Round(time.Microsecond))
		fmt.Fprintf(f.writer, "  quantiles:  p50=%s p95=%s p99=%s\n",
			s.P50.Round(time.Microsecond), s.P95.Round(time.Microsecond), s.P99.Round(time.Microsecond))
	}
}

// FormatHistory renders history entries, newest first.
func (f *ConsoleFormatter) FormatHistory(entries []history.Entry) {
	red := color.New(color.FgRed).SprintFunc()

	if len(entries) == 0 {
		fmt.Fprintln(f.writer, "no history")
		return
	}

	for _, e := range entries {
		when := e.CreatedAt.Local().Format("2006-01-02 15:04:05")
		if e.TransportError != "" {
			fmt.Fprintf(f.writer, "%s  %-6s %s  %s\n", when, e.Method, e.Address, red(e.TransportError))
			continue
		}
		fmt.Fprintf(f.writer, "%s  %-6s %s  %s  %dms\n", when, e.Method, e.Address, f.colorStatus(e.StatusCode), e.LatencyMs)
	}
}

func (f *ConsoleFormatter) colorStatus(code int) string {
	s := fmt.Sprintf("%d", code)
	switch {
	case code >= 200 && code < 300:
		return color.New(color.FgGreen).Sprint(s)
	case code >= 300 && code < 400:
		return color.New(color.FgCyan).Sprint(s)
	case code >= 400 && code < 500:
		return color.New(color.FgYellow).Sprint(s)
	default:
		return color.New(color.FgRed).Sprint(s)
	}
}
