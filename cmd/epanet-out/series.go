package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/qatium/epanet-go/pkg/epanetout"
)

var (
	seriesCmd = &cobra.Command{
		Use:   "series file",
		Short: "Print one channel of one node or link",
		Example: `  epanet-out series net1.out --node 10 --channel pressure
  epanet-out series net1.out --link 110 --channel flow`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := decodeFile(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printSeries(os.Stdout, res, seriesNode, seriesLink, seriesChannel)
		},
	}

	seriesNode    string
	seriesLink    string
	seriesChannel string
)

func init() {
	seriesCmd.Flags().StringVar(&seriesNode, "node", "", "node identifier")
	seriesCmd.Flags().StringVar(&seriesLink, "link", "", "link identifier")
	seriesCmd.Flags().StringVar(&seriesChannel, "channel", "", "result channel, e.g. pressure or flow")
	seriesCmd.MarkFlagsMutuallyExclusive("node", "link")
	seriesCmd.MarkFlagsOneRequired("node", "link")
	_ = seriesCmd.MarkFlagRequired("channel")
}

func printSeries(w io.Writer, res *epanetout.Results, nodeID, linkID, channel string) error {
	var values []float32
	switch {
	case nodeID != "":
		n, ok := res.Node(nodeID)
		if !ok {
			return fmt.Errorf("node %q not found", nodeID)
		}
		v, err := n.Channel(channel)
		if err != nil {
			return err
		}
		values = v
	case linkID != "":
		l, ok := res.Link(linkID)
		if !ok {
			return fmt.Errorf("link %q not found", linkID)
		}
		v, err := l.Channel(channel)
		if err != nil {
			return err
		}
		values = v
	default:
		return errors.New("one of --node or --link is required")
	}
	for p, v := range values {
		if _, err := fmt.Fprintf(w, "%d\t%s\t%g\n", p, res.PeriodTime(p), v); err != nil {
			return err
		}
	}
	return nil
}
