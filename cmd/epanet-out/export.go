package main

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/qatium/epanet-go/internal/export"
	_ "github.com/qatium/epanet-go/internal/export/avroexport"   // register exporter
	_ "github.com/qatium/epanet-go/internal/export/jsonexport"   // register exporter
	_ "github.com/qatium/epanet-go/internal/export/sqliteexport" // register exporter
	_ "github.com/qatium/epanet-go/internal/export/yamlexport"   // register exporter
)

var (
	exportCmd = &cobra.Command{
		Use:   "export file",
		Short: "Export decoded results",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, output := cfg.Export.Format, cfg.Export.Output
			if cmd.Flags().Changed("format") {
				format = exportFormat
			}
			if cmd.Flags().Changed("output") {
				output = exportOutput
			}
			return runExport(cmd, args[0], format, output)
		},
	}

	exportFormat string
	exportOutput string
)

func init() {
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "json", "output format ("+strings.Join(export.Names(), ", ")+")")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output path (default stdout)")
}

func runExport(cmd *cobra.Command, path, format, output string) error {
	exp, err := export.Lookup(format)
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	res, err := decodeFile(ctx, path)
	if err != nil {
		return err
	}
	entry := logrus.WithFields(logrus.Fields{"format": exp.Name(), "output": output})

	if fe, ok := exp.(export.FileExporter); ok && output != "" && output != "-" {
		if err := fe.ExportFile(ctx, res, output); err != nil {
			return fmt.Errorf("export %s: %w", exp.Name(), err)
		}
		entry.Info("results exported")
		return nil
	}

	w, closeOutput, err := openOutput(output)
	if err != nil {
		return err
	}
	if err := exp.Export(ctx, res, w); err != nil {
		closeOutput()
		return fmt.Errorf("export %s: %w", exp.Name(), err)
	}
	if err := closeOutput(); err != nil {
		return err
	}
	entry.Debug("results exported")
	return nil
}
