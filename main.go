package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"git.sr.ht/~rockorager/vaxis"
	"git.sr.ht/~rockorager/vaxis/vxfw"
	"github.com/deevus/arrivals-tui/app"
	"github.com/deevus/arrivals-tui/config"
	"github.com/deevus/arrivals-tui/internal"
	"github.com/deevus/arrivals-tui/internal/transit"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "arrivals-tui",
		Short: "Live bus arrival board for nearby Salamanca stops",
		Long: `Shows the next arrivals for lines 9, 7 and 12 and refreshes them
in the background.

Keys:
  q, Ctrl+C  quit
  r          refresh now`,
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE:         runBoard,
	}
	cmd.PersistentFlags().StringP("config", "c", config.DefaultPath(), "path to config file")
	cmd.PersistentFlags().String("log", "", "path to debug log (overrides log_path)")

	cmd.AddCommand(newOnceCmd())
	return cmd
}

func runBoard(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	closeLog, err := setupLog(cmd, cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	root := app.New(app.Params{
		Services:        newServices(cfg),
		RefreshInterval: cfg.RefreshInterval.Duration,
		TickInterval:    config.DefaultTickInterval,
	})

	root.PollNow(cmd.Context())

	vxApp, err := vxfw.NewApp(vaxis.Options{})
	if err != nil {
		return fmt.Errorf("initialising terminal: %w", err)
	}
	root.SetPostEvent(vxApp.PostEvent)

	return vxApp.Run(root)
}

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	return config.LoadOrDefault(path)
}

func newServices(cfg *config.Config) *internal.Services {
	client := transit.NewClient(cfg.ClientParams())
	return internal.NewServices(transit.NewPoller(transit.PollerParams{
		Fetcher:     client,
		Concurrency: cfg.Concurrency,
	}))
}

// setupLog sends the standard logger to the debug log file so nothing is
// written over the board. The returned func closes the file.
func setupLog(cmd *cobra.Command, cfg *config.Config) (func(), error) {
	path := cfg.LogPath
	if override, _ := cmd.Flags().GetString("log"); override != "" {
		path = override
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}
	log.SetOutput(f)
	return func() {
		log.SetOutput(io.Discard)
		_ = f.Close()
	}, nil
}
