// Package avroexport writes results as an Avro object container file with
// one record per element channel.
package avroexport

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/hamba/avro/v2/ocf"

	"github.com/qatium/epanet-go/internal/export"
	"github.com/qatium/epanet-go/pkg/epanetout"
)

// Schema describes a single time series.
const Schema = `{
  "type": "record",
  "name": "Series",
  "namespace": "epanet.out",
  "fields": [
    {"name": "element", "type": {"type": "enum", "name": "Element", "symbols": ["node", "link"]}},
    {"name": "index", "type": "int"},
    {"name": "id", "type": "string"},
    {"name": "category", "type": "string"},
    {"name": "channel", "type": "string"},
    {"name": "start_seconds", "type": "long"},
    {"name": "step_seconds", "type": "long"},
    {"name": "values", "type": {"type": "array", "items": "float"}}
  ]
}`

// Metadata keys stored in the container header.
const (
	MetaTitle     = "epanet.title"
	MetaFlowUnits = "epanet.flow_units"
	MetaPeriods   = "epanet.reporting_periods"
	MetaVersion   = "epanet.version"
)

// Record is the Go shape of Schema.
type Record struct {
	Element      string    `avro:"element"`
	Index        int       `avro:"index"`
	ID           string    `avro:"id"`
	Category     string    `avro:"category"`
	Channel      string    `avro:"channel"`
	StartSeconds int64     `avro:"start_seconds"`
	StepSeconds  int64     `avro:"step_seconds"`
	Values       []float32 `avro:"values"`
}

var (
	nodeChannels = []epanetout.NodeChannel{epanetout.Demand, epanetout.Head, epanetout.Pressure, epanetout.WaterQuality}
	linkChannels = []epanetout.LinkChannel{
		epanetout.Flow, epanetout.Velocity, epanetout.Headloss, epanetout.AvgWaterQuality,
		epanetout.Status, epanetout.Setting, epanetout.ReactionRate, epanetout.Friction,
	}
)

func init() {
	export.Register(Exporter{Codec: ocf.Deflate})
}

// Exporter streams records through an OCF encoder.
type Exporter struct {
	Codec ocf.CodecName
}

// Name returns the canonical exporter name.
func (Exporter) Name() string { return "avro" }

// Export writes res to w.
func (e Exporter) Export(ctx context.Context, res *epanetout.Results, w io.Writer) error {
	meta := map[string][]byte{
		MetaTitle:     []byte(res.Header.Title[0]),
		MetaFlowUnits: []byte(res.Header.FlowUnits.String()),
		MetaPeriods:   []byte(strconv.Itoa(res.Prolog.ReportingPeriods)),
		MetaVersion:   []byte(strconv.Itoa(int(res.Header.Version))),
	}
	opts := []ocf.EncoderFunc{ocf.WithMetadata(meta)}
	if e.Codec != "" {
		opts = append(opts, ocf.WithCodec(e.Codec))
	}
	enc, err := ocf.NewEncoder(Schema, w, opts...)
	if err != nil {
		return fmt.Errorf("create avro encoder: %w", err)
	}

	start := int64(res.Header.ReportStart.Seconds())
	step := int64(res.Header.ReportStep.Seconds())
	for i := range res.Nodes {
		if err := ctx.Err(); err != nil {
			return err
		}
		n := &res.Nodes[i]
		for _, ch := range nodeChannels {
			rec := Record{
				Element: "node", Index: i, ID: n.ID, Category: n.Type.String(), Channel: ch.String(),
				StartSeconds: start, StepSeconds: step, Values: n.Series(ch),
			}
			if err := enc.Encode(rec); err != nil {
				return fmt.Errorf("encode node %s %s: %w", n.ID, ch, err)
			}
		}
	}
	for j := range res.Links {
		if err := ctx.Err(); err != nil {
			return err
		}
		l := &res.Links[j]
		for _, ch := range linkChannels {
			rec := Record{
				Element: "link", Index: j, ID: l.ID, Category: l.Type.String(), Channel: ch.String(),
				StartSeconds: start, StepSeconds: step, Values: l.Series(ch),
			}
			if err := enc.Encode(rec); err != nil {
				return fmt.Errorf("encode link %s %s: %w", l.ID, ch, err)
			}
		}
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("close avro encoder: %w", err)
	}
	return nil
}
