// Package cli is the misleadviz command tree.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"misleadviz/internal/config"
)

// Version is set at build time with -ldflags "-X misleadviz/internal/cli.Version=...".
var Version = "dev"

type app struct {
	cfgFile string
	envFile string
	v       *viper.Viper
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "misleadviz",
		Short: "Misleading by Design - a game about honest charts",
		Long: `misleadviz hosts a slide-based game about misleading data
visualization. Each scene hands the player a chart control, scores the
choice they publish and shows the reactions it gets.

Play in the browser with "misleadviz serve" or in the terminal with
"misleadviz play".`,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.initConfig()
		},
	}

	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default: ./misleadviz.yaml)")
	root.PersistentFlags().StringVar(&a.envFile, "env-file", ".env", "dotenv file read before the environment")

	root.AddCommand(newServeCmd(a), newPlayCmd(a), newFixturesCmd(), newVersionCmd())
	return root
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return NewRootCmd().ExecuteContext(ctx)
}

// initConfig loads the dotenv file, then the config file, into a fresh viper.
func (a *app) initConfig() error {
	if a.envFile != "" {
		if err := godotenv.Load(a.envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", a.envFile, err)
		}
	}
	a.v = config.New(a.cfgFile)
	return config.Read(a.v)
}

// bind maps config keys to the command's flags. Only flags the user set
// take precedence over the environment and the config file.
func (a *app) bind(cmd *cobra.Command, keys map[string]string) error {
	for key, flag := range keys {
		f := cmd.Flags().Lookup(flag)
		if f == nil {
			return fmt.Errorf("unknown flag %q", flag)
		}
		if err := a.v.BindPFlag(key, f); err != nil {
			return err
		}
	}
	return nil
}

func (a *app) load(cmd *cobra.Command, keys map[string]string) (config.Config, error) {
	if err := a.bind(cmd, keys); err != nil {
		return config.Config{}, err
	}
	return config.Load(a.v)
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "misleadviz %s\n", Version)
		},
	}
}
