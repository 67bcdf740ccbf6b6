package main

import (
	"context"

	gojson "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/sartorproj/goadf/logger"
	"github.com/sartorproj/goadf/stats"
)

func newInterpretCmd(a *app) *cobra.Command {
	var (
		statistic float64
		nobs      int
		series    string
		requestID string
	)

	cmd := &cobra.Command{
		Use:   "interpret",
		Short: "Interpret an ADF test statistic",
		Long: `Interpret an ADF test statistic and print the result as JSON.

Without --nobs the built-in table and default critical values are used.
With --nobs the configured tables are searched for the nearest sample size.`,
		Example: `  adfcheck interpret --statistic -3.1
  adfcheck interpret --statistic -3.1 --nobs 60 --tables adf_tables.json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			idx := stats.DefaultIndex()
			n := 0
			if cmd.Flags().Changed("nobs") {
				loaded, _, err := a.loadIndex()
				if err != nil {
					return err
				}
				if loaded != nil {
					idx = loaded
				}
				n = nobs
			}

			ctx := context.Background()
			if series != "" {
				ctx = context.WithValue(ctx, logger.SeriesKey, series)
			}
			if requestID != "" {
				ctx = context.WithValue(ctx, logger.RequestIDKey, requestID)
			}

			res, err := stats.NewInterpreter(idx, a.logger).Interpret(ctx, statistic, n)
			if err != nil {
				return err
			}
			return writeJSON(cmd, res)
		},
	}

	cmd.Flags().Float64Var(&statistic, "statistic", 0, "ADF test statistic")
	cmd.Flags().IntVar(&nobs, "nobs", 0, "number of observations behind the statistic")
	cmd.Flags().StringVar(&series, "series", "", "series name for log context")
	cmd.Flags().StringVar(&requestID, "request-id", "", "request ID for log context")
	_ = cmd.MarkFlagRequired("statistic")
	return cmd
}

func writeJSON(cmd *cobra.Command, v interface{}) error {
	data, err := gojson.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	_, err = cmd.OutOrStdout().Write(data)
	return err
}
