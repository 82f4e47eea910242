// Package jsonexport writes results as a single JSON document.
//
// JSON has no NaN or infinity, so non-finite values are written as null.
package jsonexport

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/qatium/epanet-go/internal/export"
	"github.com/qatium/epanet-go/pkg/epanetout"
)

func init() {
	export.Register(Exporter{Indent: "  "})
}

// Exporter encodes the whole result graph.
type Exporter struct {
	Indent string
}

// Name returns the canonical exporter name.
func (Exporter) Name() string { return "json" }

// Export writes res to w.
func (e Exporter) Export(_ context.Context, res *epanetout.Results, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", e.Indent)
	if err := enc.Encode(newDocument(res)); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

// number is a float32 that encodes NaN and infinities as null.
type number float32

func (n number) MarshalJSON() ([]byte, error) {
	return appendNumber(nil, float32(n)), nil
}

// numbers is a series that encodes NaN and infinities as null.
type numbers []float32

func (s numbers) MarshalJSON() ([]byte, error) {
	if s == nil {
		return []byte("null"), nil
	}
	out := make([]byte, 0, 2+len(s)*8)
	out = append(out, '[')
	for i, v := range s {
		if i > 0 {
			out = append(out, ',')
		}
		out = appendNumber(out, v)
	}
	return append(out, ']'), nil
}

func appendNumber(dst []byte, v float32) []byte {
	f := float64(v)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return append(dst, "null"...)
	}
	return strconv.AppendFloat(dst, f, 'g', -1, 32)
}

// The document types shadow every float field of the result graph. Fields
// not redeclared here are promoted from the embedded values.
type document struct {
	*epanetout.Results
	Epilog epilog `json:"epilog"`
	Energy energy `json:"energy"`
	Nodes  []node `json:"nodes"`
	Links  []link `json:"links"`
}

type epilog struct {
	*epanetout.Epilog
	BulkRate   number `json:"bulkRate"`
	WallRate   number `json:"wallRate"`
	TankRate   number `json:"tankRate"`
	SourceRate number `json:"sourceRate"`
}

type energy struct {
	Pumps      []pump `json:"pumps"`
	PeakDemand number `json:"peakDemand"`
}

type pump struct {
	Link        int    `json:"link"`
	Utilization number `json:"utilization"`
	Efficiency  number `json:"efficiency"`
	KWPerFlow   number `json:"kwPerFlow"`
	AverageKW   number `json:"averageKw"`
	PeakKW      number `json:"peakKw"`
	CostPerDay  number `json:"costPerDay"`
}

type node struct {
	*epanetout.NodeResult
	Elevation    number  `json:"elevation"`
	Demand       numbers `json:"demand"`
	Head         numbers `json:"head"`
	Pressure     numbers `json:"pressure"`
	WaterQuality numbers `json:"waterQuality"`
}

type link struct {
	*epanetout.LinkResult
	Length          number  `json:"length"`
	Diameter        number  `json:"diameter"`
	Flow            numbers `json:"flow"`
	Velocity        numbers `json:"velocity"`
	Headloss        numbers `json:"headloss"`
	AvgWaterQuality numbers `json:"avgWaterQuality"`
	Status          numbers `json:"status"`
	Setting         numbers `json:"setting"`
	ReactionRate    numbers `json:"reactionRate"`
	Friction        numbers `json:"friction"`
}

func newDocument(res *epanetout.Results) document {
	doc := document{
		Results: res,
		Epilog: epilog{
			Epilog:     &res.Epilog,
			BulkRate:   number(res.Epilog.BulkRate),
			WallRate:   number(res.Epilog.WallRate),
			TankRate:   number(res.Epilog.TankRate),
			SourceRate: number(res.Epilog.SourceRate),
		},
		Energy: energy{
			Pumps:      make([]pump, len(res.Energy.Pumps)),
			PeakDemand: number(res.Energy.PeakDemand),
		},
		Nodes: make([]node, len(res.Nodes)),
		Links: make([]link, len(res.Links)),
	}
	for k, p := range res.Energy.Pumps {
		doc.Energy.Pumps[k] = pump{
			Link:        p.Link,
			Utilization: number(p.Utilization),
			Efficiency:  number(p.Efficiency),
			KWPerFlow:   number(p.KWPerFlow),
			AverageKW:   number(p.AverageKW),
			PeakKW:      number(p.PeakKW),
			CostPerDay:  number(p.CostPerDay),
		}
	}
	for i := range res.Nodes {
		n := &res.Nodes[i]
		doc.Nodes[i] = node{
			NodeResult:   n,
			Elevation:    number(n.Elevation),
			Demand:       n.Demand,
			Head:         n.Head,
			Pressure:     n.Pressure,
			WaterQuality: n.WaterQuality,
		}
	}
	for j := range res.Links {
		l := &res.Links[j]
		doc.Links[j] = link{
			LinkResult:      l,
			Length:          number(l.Length),
			Diameter:        number(l.Diameter),
			Flow:            l.Flow,
			Velocity:        l.Velocity,
			Headloss:        l.Headloss,
			AvgWaterQuality: l.AvgWaterQuality,
			Status:          l.Status,
			Setting:         l.Setting,
			ReactionRate:    l.ReactionRate,
			Friction:        l.Friction,
		}
	}
	return doc
}
