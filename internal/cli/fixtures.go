package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"misleadviz/internal/fixtures"
)

func newFixturesCmd() *cobra.Command {
	var (
		format   string
		datasets []string
	)
	cmd := &cobra.Command{
		Use:   "fixtures",
		Short: "Export the scenario datasets",
		Long: "Export the generated datasets behind each scene. Available datasets: " +
			strings.Join(fixtures.DatasetNames(), ", ") + ".",
		RunE: func(cmd *cobra.Command, args []string) error {
			bundle, err := fixtures.Build(datasets...)
			if err != nil {
				return err
			}
			return bundle.Write(cmd.OutOrStdout(), format)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "json", "output format (json, yaml)")
	cmd.Flags().StringSliceVarP(&datasets, "dataset", "d", nil, "datasets to export (default: all)")
	return cmd
}
