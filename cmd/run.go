package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/agvfleet/scheduler/app"
	"github.com/agvfleet/scheduler/config"
	"github.com/agvfleet/scheduler/infra/logger"
)

var runCmd = &cobra.Command{
	Use:   "run <payload_file> [log_output] [detail_report] [summary_report]",
	Short: "Simulate a payload feed to completion",
	Args:  cobra.RangeArgs(1, 4),
	RunE:  runSimulation,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

// runSimulation implements spec §6's CLI surface: payload_file is required,
// the three remaining positional arguments name optional output files. A
// run that ended in deadlock is logged as a warning and still returns nil;
// errors loading the config or payload feed, running the scheduler, or
// writing an output are returned.
func runSimulation(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	payloadFile := args[0]
	var logOutput, detailReport, summaryReport string
	if len(args) > 1 {
		logOutput = args[1]
	}
	if len(args) > 2 {
		detailReport = args[2]
	}
	if len(args) > 3 {
		summaryReport = args[3]
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	svc, err := app.New(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := svc.Close(); err != nil {
			logger.New("cmd").Errorf("service close: %v", err)
		}
	}()

	result, err := svc.RunFile(ctx, payloadFile)
	if err != nil {
		return fmt.Errorf("run: %w", err)
	}

	if result.Deadlocked {
		logger.New("cmd").Warnf("run %s ended in deadlock at t=%d (%d/%d delivered)",
			svc.RunID, result.EndTimeMinutes, result.Metrics.DeliveredCount, len(result.Payloads))
	}

	if err := writeOrPrint(logOutput, cmd, moveLogText(result)); err != nil {
		return fmt.Errorf("writing move log: %w", err)
	}
	if err := writeOrPrint(detailReport, cmd, result.DetailReport()); err != nil {
		return fmt.Errorf("writing detail report: %w", err)
	}
	if err := writeOrPrint(summaryReport, cmd, result.SummaryReport()); err != nil {
		return fmt.Errorf("writing summary report: %w", err)
	}
	return nil
}

func moveLogText(result app.Result) string {
	var b strings.Builder
	for _, e := range result.MoveLog {
		b.WriteString(e.String())
		b.WriteString("\n")
	}
	return b.String()
}

// writeOrPrint writes content to path, or to the command's stdout when path
// is empty.
func writeOrPrint(path string, cmd *cobra.Command, content string) error {
	if path == "" {
		_, err := fmt.Fprint(cmd.OutOrStdout(), content)
		return err
	}
	return os.WriteFile(path, []byte(content), 0o644)
}
