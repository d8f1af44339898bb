package cli

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"misleadviz/internal/game"
	"misleadviz/internal/logging"
	"misleadviz/internal/tui"
)

func newPlayCmd(a *app) *cobra.Command {
	var logFile string
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play the game in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.load(cmd, map[string]string{"countdown.interval": "tick"})
			if err != nil {
				return err
			}

			// The terminal is the UI, so logs only go to a file.
			logger := zap.NewNop()
			if logFile != "" {
				lc := cfg.Log
				lc.OutputPath = logFile
				if logger, err = logging.New(lc); err != nil {
					return err
				}
				defer func() { _ = logger.Sync() }()
			}

			return tui.Run(cmd.Context(), game.NewState(),
				game.WithLogger(logger),
				game.WithTickInterval(cfg.Countdown.Interval),
			)
		},
	}
	cmd.Flags().StringVar(&logFile, "log-file", "", "write logs to this file")
	cmd.Flags().Duration("tick", game.DefaultTickInterval, "countdown tick interval")
	return cmd
}
