package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agvfleet/scheduler/config"
	"github.com/agvfleet/scheduler/core/execlog"
)

var reportAGVFilter string

var reportCmd = &cobra.Command{
	Use:   "report <run_id>",
	Short: "Re-render the move-log stream for a previously recorded run",
	Args:  cobra.ExactArgs(1),
	RunE:  runReport,
}

func init() {
	reportCmd.Flags().StringVar(&reportAGVFilter, "agv", "", "only show moves for this AGV id")
	rootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	store, err := execlog.Open(cfg.ExecLog.Backend, cfg.ExecLog.Path)
	if err != nil {
		return fmt.Errorf("open execlog store: %w", err)
	}
	defer store.Close()

	records, err := store.Query(context.Background(), execlog.Query{RunID: args[0], AGVID: reportAGVFilter})
	if err != nil {
		return fmt.Errorf("query execlog store: %w", err)
	}
	if len(records) == 0 {
		return fmt.Errorf("report: no move-log records found for run %q", args[0])
	}
	for _, rec := range records {
		fmt.Fprintln(cmd.OutOrStdout(), rec.Line)
	}
	return nil
}
