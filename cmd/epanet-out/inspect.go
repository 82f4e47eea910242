package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect [file]",
	Short: "Print a summary of an output file",
	Long:  "inspect prints a summary of an output file. Without an argument it reads file paths from stdin, one per line.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if len(args) == 0 {
			return runInteractive(ctx)
		}
		return runInspect(ctx, args[0])
	},
}

func runInteractive(ctx context.Context) error {
	scanner := bufio.NewScanner(os.Stdin)
	logrus.Info("epanet-out inspect mode. Enter an output file path and press Enter (Ctrl+D to exit).")
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if err := runInspect(ctx, line); err != nil {
			logrus.WithError(err).Error("failed to decode output file")
		}
	}
	return scanner.Err()
}

func runInspect(ctx context.Context, path string) error {
	res, err := decodeFile(ctx, path)
	if err != nil {
		return err
	}
	fmt.Println(res.String())
	return nil
}
