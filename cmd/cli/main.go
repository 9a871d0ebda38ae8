package main

import (
	"context"
	"fmt"
	"os"

	"dfsummary/adapters/excel"
	"dfsummary/app"
	"dfsummary/internal/config"
	"dfsummary/internal/container"

	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "dfsummary",
		Short: "Summarize dataset columns from the terminal",
	}

	rootCmd.AddCommand(
		newDatasetsCmd(),
		newSchemaCmd(),
		newSummarizeCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// setup loads configuration and registers datasets. file, when set, is
// registered on top of the configured sources.
func setup(ctx context.Context, file string) (*container.Container, error) {
	appConfig, err := config.LoadWithEnvFile(".env")
	if err != nil {
		return nil, err
	}
	if appConfig.Log.Level == "INFO" {
		appConfig.Log.Level = "WARN"
	}
	c, err := container.New(appConfig, nil)
	if err != nil {
		return nil, err
	}
	if err := c.Init(ctx); err != nil {
		return nil, err
	}
	if file != "" {
		reader := excel.NewDataReader(file, excel.ReaderConfig{
			SheetName: appConfig.Data.SheetName,
			Coercion:  excel.DefaultReaderConfig().Coercion.WithThreshold(appConfig.Data.TypeThreshold),
		}, c.Logger)
		c.Registry.Register(reader)
	}
	return c, nil
}

func newDatasetsCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "datasets",
		Short: "List registered datasets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := setup(cmd.Context(), file)
			if err != nil {
				return err
			}
			defer c.Shutdown(cmd.Context())

			for _, name := range c.Registry.Names() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "CSV or XLSX file to register as an extra dataset")
	return cmd
}

func newSchemaCmd() *cobra.Command {
	var file, format string

	cmd := &cobra.Command{
		Use:   "schema [dataset]",
		Short: "Show column names, types and null counts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := setup(cmd.Context(), file)
			if err != nil {
				return err
			}
			defer c.Shutdown(cmd.Context())

			ds, err := c.Registry.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return renderSchema(cmd.OutOrStdout(), ds.Schema(), format)
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "CSV or XLSX file to register as an extra dataset")
	cmd.Flags().StringVar(&format, "format", "table", "Output format: table or json")
	return cmd
}

func newSummarizeCmd() *cobra.Command {
	var file, format, label string

	cmd := &cobra.Command{
		Use:   "summarize [dataset] [column]",
		Short: "Summarize one column",
		Long: `Summarize one column the way the dashboard does: metrics plus the
chart data (category counts, histogram bins, weekday and time buckets).

Example: dfsummary summarize tips day
         dfsummary summarize --file sales.csv sales region --format json`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := setup(cmd.Context(), file)
			if err != nil {
				return err
			}
			defer c.Shutdown(cmd.Context())

			ds, err := c.Registry.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			view := app.DefaultViewConfig()
			if label != "" {
				view.ColumnLabels = map[string]string{args[1]: label}
			}
			ctrl, err := app.NewController(view, c.Summarizer, c.Charts, c.Logger)
			if err != nil {
				return err
			}
			inst, err := ctrl.OnSelectionChanged(ds, args[1])
			if err != nil {
				return err
			}
			return renderInstruction(cmd.OutOrStdout(), inst, format)
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "CSV or XLSX file to register as an extra dataset")
	cmd.Flags().StringVar(&format, "format", "table", "Output format: table or json")
	cmd.Flags().StringVar(&label, "label", "", "Display label for the column")
	return cmd
}
