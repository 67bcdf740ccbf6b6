// Command adfcheck interprets Augmented Dickey-Fuller test statistics
// against tabulated critical values and p-values.
package main

import (
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/sartorproj/goadf/adferrors"
	"github.com/sartorproj/goadf/config"
	"github.com/sartorproj/goadf/logger"
	"github.com/sartorproj/goadf/stats"
	"github.com/sartorproj/goadf/tables"
)

var version = "0.1.0"

func main() {
	_ = godotenv.Load() // .env is optional

	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// app carries the state shared by all subcommands.
type app struct {
	v      *viper.Viper
	cfg    *config.Config
	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New()}
	a.v.SetEnvPrefix("ADF")
	a.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	a.v.AutomaticEnv()

	root := &cobra.Command{
		Use:   "adfcheck",
		Short: "Interpret Augmented Dickey-Fuller test statistics",
		Long: `adfcheck turns a computed ADF test statistic into a p-value, critical values
and a stationarity verdict using tables keyed by sample size.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = logger.Sync()
		},
	}

	flags := root.PersistentFlags()
	flags.String("config", "", "path to a YAML config file")
	flags.String("tables", "", "table document (json, yaml or csv); built-in table when empty")
	flags.String("format", "", "table format, inferred from the extension when empty")
	flags.String("critical", "", "CSV file of critical values to merge into CSV tables")
	flags.String("log-level", "", "log level (debug, info, warn, error)")
	flags.String("log-encoding", "", "log encoding (json or console)")

	_ = a.v.BindPFlag("config", flags.Lookup("config"))
	_ = a.v.BindPFlag("tables.path", flags.Lookup("tables"))
	_ = a.v.BindPFlag("tables.format", flags.Lookup("format"))
	_ = a.v.BindPFlag("tables.critical_path", flags.Lookup("critical"))
	_ = a.v.BindPFlag("log.level", flags.Lookup("log-level"))
	_ = a.v.BindPFlag("log.encoding", flags.Lookup("log-encoding"))

	root.AddCommand(
		newInterpretCmd(a),
		newTablesCmd(a),
		&cobra.Command{
			Use:   "version",
			Short: "Show version information",
			Run: func(cmd *cobra.Command, args []string) {
				fmt.Fprintf(cmd.OutOrStdout(), "adfcheck v%s\n", version)
				fmt.Fprintf(cmd.OutOrStdout(), "Go version: %s\n", runtime.Version())
			},
		},
	)
	return root
}

// setup loads the config file, overlays flags and ADF_* environment
// variables, and builds the logger.
func (a *app) setup() error {
	cfg := config.Default()
	if path := a.v.GetString("config"); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	overlay := map[string]*string{
		"tables.path":          &cfg.Tables.Path,
		"tables.format":        &cfg.Tables.Format,
		"tables.critical_path": &cfg.Tables.CriticalPath,
		"log.level":            &cfg.Log.Level,
		"log.encoding":         &cfg.Log.Encoding,
	}
	for key, dst := range overlay {
		if a.v.IsSet(key) {
			if s := a.v.GetString(key); s != "" {
				*dst = s
			}
		}
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	if err := logger.Init(cfg.Log); err != nil {
		return err
	}
	a.cfg = cfg
	a.logger = logger.Get()
	return nil
}

// loadIndex returns the configured tables, or nil when none are configured.
func (a *app) loadIndex() (*stats.Index, *tables.Report, error) {
	tc := a.cfg.Tables
	if tc.Path == "" {
		return nil, &tables.Report{}, nil
	}

	dec := tables.NewDecoder(a.logger)
	idx, rep, err := dec.Load(tc.Path, tables.Format(strings.ToLower(tc.Format)))
	if err != nil {
		return nil, nil, err
	}

	if tc.CriticalPath != "" {
		file, err := os.Open(tc.CriticalPath)
		if err != nil {
			return nil, nil, adferrors.Wrap(err, adferrors.KindFile, "adfcheck", "open critical values "+tc.CriticalPath)
		}
		defer file.Close()

		crep, err := dec.DecodeCriticalCSV(file, idx, nil)
		if err != nil {
			return nil, nil, err
		}
		rep.DroppedRows += crep.DroppedRows
		rep.DefaultedFields += crep.DefaultedFields
		rep.SkippedKeys = append(rep.SkippedKeys, crep.SkippedKeys...)
	}

	a.logger.Info("loaded ADF tables",
		zap.String("path", tc.Path),
		zap.Int("sample_sizes", len(idx.Critical)),
		zap.Bool("clean", rep.Clean()))
	return idx, rep, nil
}
