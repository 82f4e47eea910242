package main

import (
	"context"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/qatium/epanet-go/internal/config"
	"github.com/qatium/epanet-go/internal/options"
	"github.com/qatium/epanet-go/pkg/epanetout"
)

var (
	rootCmd = &cobra.Command{
		Use:           "epanet-out",
		Short:         "Decode EPANET binary output files",
		Long:          "epanet-out decodes the binary results written by the EPANET engine and exports them.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return setup(cmd)
		},
	}

	configPath string
	workersArg string
	strict     bool
	logLevel   string

	cfg = config.DefaultConfig()
)

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configPath, "config", "", "path to a YAML config file (default: search "+config.EnvConfigPath+", ./"+config.ConfigFileName+", XDG)")
	flags.StringVar(&workersArg, "workers", "", `extraction goroutines, a number or "auto"`)
	flags.BoolVar(&strict, "strict", false, "verify magic numbers, count relations and file size")
	flags.StringVar(&logLevel, "log-level", "", "log level (trace, debug, info, warn, error)")

	rootCmd.AddCommand(inspectCmd, exportCmd, seriesCmd)
}

func main() {
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	ctx := context.Background()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		logrus.Fatal(err)
	}
}

// setup merges the config file with the flags that were set explicitly.
func setup(cmd *cobra.Command) error {
	var (
		loaded *config.Config
		path   string
		err    error
	)
	if configPath != "" {
		loaded, path, err = config.LoadFromPath(configPath)
	} else {
		loaded, path, err = config.Load()
	}
	if err != nil {
		return err
	}
	cfg = loaded

	flags := cmd.Flags()
	if flags.Changed("workers") {
		n, err := options.ParseWorkers(workersArg)
		if err != nil {
			return err
		}
		cfg.Decode.Workers = n
	}
	if flags.Changed("strict") {
		cfg.Decode.Strict = strict
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = logLevel
	}

	level, err := logrus.ParseLevel(cfg.Log.Level)
	if err != nil {
		return err
	}
	logrus.SetLevel(level)
	if cfg.Log.JSON {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}
	if path != "" {
		logrus.WithField("path", path).Debug("loaded config")
	}
	return nil
}

func decodeOptions() epanetout.DecodeOptions {
	return epanetout.DecodeOptions{Workers: cfg.Decode.Workers, Strict: cfg.Decode.Strict}
}

func decodeFile(ctx context.Context, path string) (*epanetout.Results, error) {
	res, err := epanetout.DecodeFile(ctx, path, decodeOptions())
	if err != nil {
		return nil, err
	}
	entry := logrus.WithFields(logrus.Fields{
		"file":    path,
		"nodes":   res.Prolog.NodeCount,
		"links":   res.Prolog.LinkCount,
		"periods": res.Prolog.ReportingPeriods,
	})
	entry.Debug("decoded output file")
	for _, a := range res.Advisories {
		entry.WithFields(logrus.Fields{"field": a.Field, "row": a.Row, "offset": a.Offset}).Warn(a.Reason)
	}
	if res.Epilog.Warnings {
		entry.Warn("engine reported warnings during the run")
	}
	return res, nil
}

func openOutput(path string) (*os.File, func() error, error) {
	if path == "" || path == "-" {
		return os.Stdout, func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}
	return f, f.Close, nil
}
