// Package cmd is the CLI surface described in spec §6: a run command that
// simulates a payload feed to completion and a handful of read-only
// helpers around it, following the teacher's cobra tree shape.
package cmd

import (
	"github.com/spf13/cobra"
)

var cfgPath string

var rootCmd = &cobra.Command{
	Use:   "agv-sched",
	Short: "Discrete-event AGV fleet scheduler",
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "configuration file (YAML or JSON); default scenario if omitted")
}

// Execute runs the CLI.
func Execute() error { return rootCmd.Execute() }
