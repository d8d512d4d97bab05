// Package bench repeats a configured request and aggregates latency
// statistics. Iterations run strictly sequentially, one request in flight at
// a time, matching the request library's synchronous model.
package bench

import (
	"context"
	"errors"
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"
	"github.com/geerlingguy/Request/packages/request"
	"golang.org/x/time/rate"
)

const (
	// histogram range: 1us to 60s, 3 significant digits
	histMin     = 1
	histMax     = 60_000_000
	histSigFigs = 3
)

// Config controls a benchmark run. Iterations and Duration are alternatives;
// when both are set, whichever limit is reached first stops the run.
type Config struct {
	Iterations int           // total requests; 0 means no count limit
	Duration   time.Duration // wall-clock limit; 0 means no time limit
	Rate       float64       // target requests per second; 0 means unpaced
}

// Validate checks that the config describes a bounded run.
func (c *Config) Validate() error {
	if c.Iterations <= 0 && c.Duration <= 0 {
		return errors.New("bench: either iterations or duration must be set")
	}
	if c.Iterations < 0 {
		return errors.New("bench: iterations must not be negative")
	}
	if c.Rate < 0 {
		return errors.New("bench: rate must not be negative")
	}
	return nil
}

// Summary is the aggregate outcome of a benchmark run.
type Summary struct {
	Duration time.Duration
	Total    int64
	Errors   int64

	RPS       float64
	ErrorRate float64

	P50  time.Duration
	P95  time.Duration
	P99  time.Duration
	Min  time.Duration
	Max  time.Duration
	Mean time.Duration
}

// Runner repeats one request according to a Config.
type Runner struct {
	req     *request.Request
	config  *Config
	limiter *rate.Limiter
}

// NewRunner creates a Runner for the given request.
func NewRunner(req *request.Request, config *Config) (*Runner, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	r := &Runner{req: req, config: config}
	if config.Rate > 0 {
		r.limiter = rate.NewLimiter(rate.Limit(config.Rate), 1)
	}
	return r, nil
}

// Run executes the benchmark. It stops at the configured limits or when ctx
// is cancelled; cancellation is only observed between iterations, so an
// in-flight request always completes.
func (r *Runner) Run(ctx context.Context) (*Summary, error) {
	hist := hdrhistogram.New(histMin, histMax, histSigFigs)

	var total, errCount int64
	start := time.Now()

	var deadline time.Time
	if r.config.Duration > 0 {
		deadline = start.Add(r.config.Duration)
	}

	for {
		if r.config.Iterations > 0 && total >= int64(r.config.Iterations) {
			break
		}
		if !deadline.IsZero() && !time.Now().Before(deadline) {
			break
		}
		select {
		case <-ctx.Done():
			return r.summarize(hist, total, errCount, time.Since(start)), ctx.Err()
		default:
		}

		if r.limiter != nil {
			if err := r.limiter.Wait(ctx); err != nil {
				return r.summarize(hist, total, errCount, time.Since(start)), err
			}
		}

		res := r.req.Execute()
		total++
		if res.Err != nil {
			errCount++
		}

		latencyUs := res.Latency.Microseconds()
		if latencyUs < histMin {
			latencyUs = histMin
		}
		if latencyUs > histMax {
			latencyUs = histMax
		}
		_ = hist.RecordValue(latencyUs)
	}

	return r.summarize(hist, total, errCount, time.Since(start)), nil
}

func (r *Runner) summarize(hist *hdrhistogram.Histogram, total, errCount int64, elapsed time.Duration) *Summary {
	s := &Summary{
		Duration: elapsed,
		Total:    total,
		Errors:   errCount,
	}

	if elapsed.Seconds() > 0 {
		s.RPS = float64(total) / elapsed.Seconds()
	}
	if total > 0 {
		s.ErrorRate = float64(errCount) / float64(total)
		s.P50 = time.Duration(hist.ValueAtQuantile(50)) * time.Microsecond
		s.P95 = time.Duration(hist.ValueAtQuantile(95)) * time.Microsecond
		s.P99 = time.Duration(hist.ValueAtQuantile(99)) * time.Microsecond
		s.Min = time.Duration(hist.Min()) * time.Microsecond
		s.Max = time.Duration(hist.Max()) * time.Microsecond
		s.Mean = time.Duration(hist.Mean()) * time.Microsecond
	}

	return s
}
