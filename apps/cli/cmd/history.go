package cmd

import (
	"fmt"

	"github.com/geerlingguy/Request/packages/config"
	"github.com/geerlingguy/Request/packages/history"
	"github.com/geerlingguy/Request/packages/output"
	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect the request history database",
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent requests, newest first",
	RunE:  historyListCommand,
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all history entries",
	RunE:  historyClearCommand,
}

var (
	historyLimitFlag   int
	historyDBFlag      string
	historyNoColorFlag bool
	historyConfigFlag  string
)

func init() {
	historyCmd.PersistentFlags().StringVar(&historyDBFlag, "db", getEnvString("REQUEST_HISTORY_DB", ""), "Path to the history database (env: REQUEST_HISTORY_DB)")
	historyCmd.PersistentFlags().StringVar(&historyConfigFlag, "config", getEnvString("REQUEST_CONFIG", ""), "Path to config file (env: REQUEST_CONFIG)")
	historyListCmd.Flags().IntVar(&historyLimitFlag, "limit", 20, "Maximum number of entries to show")
	historyListCmd.Flags().BoolVar(&historyNoColorFlag, "no-color", getEnvBool("REQUEST_NO_COLOR", false), "Disable colored output (env: REQUEST_NO_COLOR)")

	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyClearCmd)
}

func openHistoryStore() (*history.Store, error) {
	dbPath := historyDBFlag
	if dbPath == "" {
		cfg, err := config.Load(historyConfigFlag)
		if err != nil {
			return nil, fmt.Errorf("config: %w", err)
		}
		dbPath = cfg.HistoryDB
	}
	if dbPath == "" {
		return nil, fmt.Errorf("no history database configured")
	}
	return history.Open(dbPath)
}

func historyListCommand(cmd *cobra.Command, args []string) error {
	store, err := openHistoryStore()
	if err != nil {
		return err
	}
	defer store.Close()

	entries, err := store.Recent(historyLimitFlag)
	if err != nil {
		return err
	}

	formatter := output.NewConsoleFormatter(output.WithNoColor(historyNoColorFlag))
	formatter.FormatHistory(entries)
	return nil
}

func historyClearCommand(cmd *cobra.Command, args []string) error {
	store, err := openHistoryStore()
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.Clear(); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "history cleared")
	return nil
}
