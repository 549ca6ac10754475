package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agvfleet/scheduler/config"
)

var fleetCmd = &cobra.Command{
	Use:   "fleet",
	Short: "Fleet related commands",
}

var fleetLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List the configured AGVs and their starting stations",
	RunE:  runFleetLs,
}

func init() {
	fleetCmd.AddCommand(fleetLsCmd)
	rootCmd.AddCommand(fleetCmd)
}

func runFleetLs(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	for _, a := range cfg.Fleet {
		fmt.Fprintf(cmd.OutOrStdout(), "%s\tstation %d\n", a.ID, a.Station)
	}
	return nil
}
