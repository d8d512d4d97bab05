package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/geerlingguy/Request/packages/config"
	"github.com/geerlingguy/Request/packages/history"
	"github.com/geerlingguy/Request/packages/output"
	"github.com/geerlingguy/Request/packages/reqfile"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run <file>",
	Short: "Run requests from a YAML definition file",
	Long: `Run the requests defined in a YAML file, in order.

Examples:
  request run requests.yaml
  request run requests.yaml --watch
  request run requests.yaml --verbose --no-history`,
	Args: cobra.ExactArgs(1),
	RunE: runCommand,
}

const (
	// WatchDebounceDelay is the debounce delay for file watch events
	WatchDebounceDelay = 300 * time.Millisecond
)

var (
	runVerboseFlag   bool
	runNoColorFlag   bool
	runNoHistoryFlag bool
	runConfigFlag    string
	watchFlag        bool
)

func init() {
	runCmd.Flags().BoolVarP(&runVerboseFlag, "verbose", "v", false, "Show raw header blocks and full bodies")
	runCmd.Flags().BoolVar(&runNoColorFlag, "no-color", getEnvBool("REQUEST_NO_COLOR", false), "Disable colored output (env: REQUEST_NO_COLOR)")
	runCmd.Flags().BoolVar(&runNoHistoryFlag, "no-history", false, "Do not record requests in the history database")
	runCmd.Flags().StringVar(&runConfigFlag, "config", getEnvString("REQUEST_CONFIG", ""), "Path to config file (env: REQUEST_CONFIG)")
	runCmd.Flags().BoolVarP(&watchFlag, "watch", "w", false, "Watch the file for changes and re-run")
}

func runCommand(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(runConfigFlag)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	if watchFlag {
		return watchAndRun(args[0], cfg)
	}

	failed, err := runFile(args[0], cfg)
	if err != nil {
		return err
	}
	if failed > 0 {
		os.Exit(ExitCheckFailure)
	}
	return nil
}

// runFile executes every request in the file sequentially and returns the
// number of failed checks and transport errors.
func runFile(path string, cfg *config.Config) (int, error) {
	f, err := reqfile.Load(path)
	if err != nil {
		return 0, err
	}

	formatter := output.NewConsoleFormatter(
		output.WithVerbose(runVerboseFlag),
		output.WithNoColor(runNoColorFlag || cfg.GetNoColor()),
	)

	var store *history.Store
	if !runNoHistoryFlag && cfg.HistoryDB != "" {
		store, err = history.Open(cfg.HistoryDB)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: %v\n", err)
		} else {
			defer store.Close()
		}
	}

	failed := 0
	for _, def := range f.Requests {
		req, err := reqfile.Build(def, cfg)
		if err != nil {
			return failed, err
		}

		res := req.Execute()
		formatter.FormatResult(def.DisplayName(), res)

		if store != nil {
			if _, err := store.Record(def.URL, req.Method(), res); err != nil {
				fmt.Fprintf(os.Stderr, "warning: %v\n", err)
			}
		}

		if res.Err != nil {
			failed++
			continue
		}
		if def.Check != "" {
			passed := res.Contains(def.Check)
			formatter.FormatCheck(def.Check, passed)
			if !passed {
				failed++
			}
		}
	}

	return failed, nil
}

// watchAndRun re-runs the file whenever it changes, until interrupted.
func watchAndRun(path string, cfg *config.Config) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}
	defer watcher.Close()

	// Watch the directory: editors often replace the file on save, which
	// drops a watch on the file itself.
	dir := filepath.Dir(path)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}

	if _, err := runFile(path, cfg); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
	}
	fmt.Fprintf(os.Stderr, "\nwatching %s for changes (ctrl-c to stop)\n", path)

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)

	var debounce *time.Timer
	rerun := make(chan struct{}, 1)

	for {
		select {
		case <-sigs:
			return nil
		case <-rerun:
			if _, err := runFile(path, cfg); err != nil {
				fmt.Fprintf(os.Stderr, "error: %v\n", err)
			}
			fmt.Fprintf(os.Stderr, "\nwatching %s for changes (ctrl-c to stop)\n", path)
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != filepath.Clean(path) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(WatchDebounceDelay, func() {
				select {
				case rerun <- struct{}{}:
				default:
				}
			})
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(os.Stderr, "watch error: %v\n", err)
		}
	}
}
