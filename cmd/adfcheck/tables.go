package main

import (
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/sartorproj/goadf/stats"
	"github.com/sartorproj/goadf/tables"
)

func newTablesCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tables",
		Short: "Inspect and convert ADF tables",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "inspect",
		Short: "Summarise each sample size of the configured tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			idx, rep, err := a.loadIndex()
			if err != nil {
				return err
			}
			if idx == nil {
				idx = stats.DefaultIndex()
			}
			return writeJSON(cmd, struct {
				SampleSizes []tables.Summary `json:"sample_sizes"`
				Report      *tables.Report   `json:"report"`
			}{tables.DescribeIndex(idx), rep})
		},
	})

	var out string
	export := &cobra.Command{
		Use:   "export",
		Short: "Write the configured tables as a JSON document",
		RunE: func(cmd *cobra.Command, args []string) error {
			idx, _, err := a.loadIndex()
			if err != nil {
				return err
			}
			if idx == nil {
				return errors.New("no tables configured, set --tables")
			}

			w := cmd.OutOrStdout()
			if out != "" {
				file, err := os.Create(out)
				if err != nil {
					return err
				}
				defer file.Close()
				w = file
			}
			return tables.EncodeJSON(w, idx)
		},
	}
	export.Flags().StringVarP(&out, "out", "o", "", "output file (stdout when empty)")
	cmd.AddCommand(export)

	return cmd
}
