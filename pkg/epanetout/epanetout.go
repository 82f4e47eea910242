// Package epanetout decodes the binary output file written by the EPANET
// hydraulic and water quality engine.
package epanetout

import (
	"context"
	"errors"
	"fmt"

	"github.com/qatium/epanet-go/internal/binio"
	"github.com/qatium/epanet-go/internal/classify"
	"github.com/qatium/epanet-go/internal/format"
	"github.com/qatium/epanet-go/internal/ident"
	"github.com/qatium/epanet-go/internal/network"
	"github.com/qatium/epanet-go/internal/options"
	"github.com/qatium/epanet-go/internal/prolog"
	"github.com/qatium/epanet-go/internal/series"
	"github.com/qatium/epanet-go/internal/source"
)

// Decode decodes an output file held in memory with default options.
func Decode(data []byte) (*Results, error) {
	return DecodeWithOptions(context.Background(), data, DecodeOptions{})
}

// DecodeFile maps the file at path read-only and decodes it.
func DecodeFile(ctx context.Context, path string, opts DecodeOptions) (*Results, error) {
	f, err := source.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	res, err := DecodeWithOptions(ctx, f.Bytes(), opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return res, nil
}

// DecodeWithOptions decodes data with custom options. data is only read.
// Any structural violation aborts the decode; no partial result is returned.
// Buffers shorter than MinFileBytes are rejected with ErrMalformedInput.
// Table entries that reference elements outside the network are skipped and
// listed in Results.Advisories unless opts.Strict is set.
func DecodeWithOptions(ctx context.Context, data []byte, opts DecodeOptions) (*Results, error) {
	ctx = opts.toInternal(ctx)
	settings := options.FromContext(ctx)
	if len(data) < format.MinFileBytes {
		return nil, format.Malformed("file", 0, "%d bytes is shorter than the %d byte minimum", len(data), format.MinFileBytes)
	}
	r := binio.New(data)

	pro, err := prolog.Parse(r)
	if err != nil {
		return nil, err
	}
	header, err := prolog.ParseHeader(r)
	if err != nil {
		return nil, err
	}
	epilog, err := prolog.ParseEpilog(r)
	if err != nil {
		return nil, err
	}
	layout := format.Resolve(pro.Counts())
	if settings.Strict {
		if err := verifyStrict(pro, header, epilog, layout, len(data)); err != nil {
			return nil, err
		}
	}

	nodeIDs, err := ident.ReadTable(r, "node id", layout.NodeIDs, pro.NodeCount)
	if err != nil {
		return nil, err
	}
	linkIDs, err := ident.ReadTable(r, "link id", layout.LinkIDs, pro.LinkCount)
	if err != nil {
		return nil, err
	}
	nodeTypes, advisories, err := classify.ReadNodes(r, layout.NodeIndexTable, pro.NodeCount, pro.ResAndTankCount)
	if err != nil {
		return nil, err
	}
	linkTypes, err := classify.ReadLinks(r, layout.LinkTypes, pro.LinkCount)
	if err != nil {
		return nil, err
	}
	lengths, err := classify.ReadLengths(r, layout.LinkLengths, pro.LinkCount)
	if err != nil {
		return nil, err
	}
	endpoints, more, err := network.ReadEndpoints(r, layout)
	if err != nil {
		return nil, err
	}
	advisories = append(advisories, more...)
	elevations, err := network.ReadElevations(r, layout)
	if err != nil {
		return nil, err
	}
	diameters, err := network.ReadDiameters(r, layout)
	if err != nil {
		return nil, err
	}
	energy, more, err := network.ReadEnergy(r, layout)
	if err != nil {
		return nil, err
	}
	advisories = append(advisories, more...)
	if settings.Strict {
		for _, a := range advisories {
			if errors.Is(a, format.ErrMalformedInput) {
				return nil, a.FieldError()
			}
		}
	}

	ext, err := series.New(r, layout, pro.ReportingPeriods)
	if err != nil {
		return nil, err
	}
	nodeSeries, linkSeries, err := ext.All(ctx, settings.EffectiveWorkers())
	if err != nil {
		return nil, err
	}

	res := &Results{
		Prolog:     pro,
		Header:     header,
		Epilog:     epilog,
		Energy:     energy,
		Nodes:      make([]NodeResult, pro.NodeCount),
		Links:      make([]LinkResult, pro.LinkCount),
		Advisories: advisories,
	}
	for i := range res.Nodes {
		s := nodeSeries[i]
		res.Nodes[i] = NodeResult{
			ID:           nodeIDs[i],
			Type:         nodeTypes[i],
			Elevation:    elevations[i],
			Demand:       s[series.Demand],
			Head:         s[series.Head],
			Pressure:     s[series.Pressure],
			WaterQuality: s[series.WaterQuality],
		}
	}
	for j := range res.Links {
		s := linkSeries[j]
		res.Links[j] = LinkResult{
			ID:              linkIDs[j],
			Type:            linkTypes[j],
			StartNode:       nodeID(nodeIDs, endpoints.Start[j]),
			EndNode:         nodeID(nodeIDs, endpoints.End[j]),
			Length:          lengths[j],
			Diameter:        diameters[j],
			Flow:            s[series.Flow],
			Velocity:        s[series.Velocity],
			Headloss:        s[series.Headloss],
			AvgWaterQuality: s[series.AvgWaterQuality],
			Status:          s[series.Status],
			Setting:         s[series.Setting],
			ReactionRate:    s[series.ReactionRate],
			Friction:        s[series.Friction],
		}
	}
	return res, nil
}

// nodeID returns the identifier at position i, or "" for a dangling
// reference.
func nodeID(ids []string, i int) string {
	if i < 0 {
		return ""
	}
	return ids[i]
}

func verifyStrict(pro prolog.Prolog, h prolog.Header, e prolog.Epilog, l format.Layout, size int) error {
	if err := prolog.VerifyMagic(h, e, size); err != nil {
		return err
	}
	if err := pro.Validate(); err != nil {
		return err
	}
	if !l.ResultsFit(pro.ReportingPeriods, size-format.EpilogBytes) {
		return format.Malformed("results", l.Results, "%d periods do not fit before the epilog", pro.ReportingPeriods)
	}
	if want := l.Results + pro.ReportingPeriods*l.FrameBytes + format.EpilogBytes; want != size {
		return format.Malformed("epilog", size-format.EpilogBytes, "file is %d bytes, layout expects %d", size, want)
	}
	return nil
}
