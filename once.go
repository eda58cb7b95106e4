package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newOnceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "once",
		Short: "Poll every line once and print the results",
		Long: `Polls every line once, prints one "Línea N: value" line per bus line
and exits. Useful for scripts and for checking connectivity.`,
		Args: cobra.NoArgs,
		RunE: runOnce,
	}
}

func runOnce(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	closeLog, err := setupLog(cmd, cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	poller := newServices(cfg).Arrivals
	snap := poller.Poll(cmd.Context())

	out := cmd.OutOrStdout()
	for _, l := range poller.Lines() {
		fmt.Fprintf(out, "%s %s\n", l.Label(), strings.TrimRight(snap[l.Name], " "))
	}
	return nil
}
