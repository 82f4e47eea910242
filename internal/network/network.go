// Package network decodes the static network description that sits between
// the identifier tables and the results block.
package network

import (
	"fmt"

	"github.com/qatium/epanet-go/internal/binio"
	"github.com/qatium/epanet-go/internal/format"
)

// Endpoints holds the 0-based start and end node of every link. A link whose
// stored node index lies outside the network has -1 in its place.
type Endpoints struct {
	Start []int
	End   []int
}

// ReadEndpoints reads the start and end node tables. Stored indices are
// 1-based; those outside 1..nodeCount are reported as advisories.
func ReadEndpoints(r binio.Reader, l format.Layout) (Endpoints, []format.Advisory, error) {
	start, advisories, err := readRefs(r, "link start node", l.LinkStartNodes, l.Counts.Links, l.Counts.Nodes)
	if err != nil {
		return Endpoints{}, nil, err
	}
	end, more, err := readRefs(r, "link end node", l.LinkEndNodes, l.Counts.Links, l.Counts.Nodes)
	if err != nil {
		return Endpoints{}, nil, err
	}
	return Endpoints{Start: start, End: end}, append(advisories, more...), nil
}

func readRefs(r binio.Reader, field string, offset, count, limit int) ([]int, []format.Advisory, error) {
	raw, err := r.Int32Table(field, offset, count)
	if err != nil {
		return nil, nil, err
	}
	out := make([]int, count)
	var advisories []format.Advisory
	for j, v := range raw {
		pos, a, ok := resolveRef(field, offset+format.WordBytes*j, j, v, limit)
		if !ok {
			advisories = append(advisories, a)
		}
		out[j] = pos
	}
	return out, advisories, nil
}

// resolveRef converts a stored 1-based index to a position, or -1 and an
// advisory when it lies outside 1..limit.
func resolveRef(field string, offset, row int, v int32, limit int) (int, format.Advisory, bool) {
	if v >= 1 && int(v) <= limit {
		return int(v) - 1, format.Advisory{}, true
	}
	return -1, format.Advisory{
		Field: field, Row: row, Value: v, Offset: offset,
		Reason: fmt.Sprintf("index outside 1..%d", limit),
		Err:    format.ErrMalformedInput,
	}, false
}

// ReadElevations reads one elevation per node.
func ReadElevations(r binio.Reader, l format.Layout) ([]float32, error) {
	return r.Float32Table("node elevation", l.NodeElevations, l.Counts.Nodes)
}

// ReadDiameters reads one diameter per link.
func ReadDiameters(r binio.Reader, l format.Layout) ([]float32, error) {
	return r.Float32Table("link diameter", l.LinkDiameters, l.Counts.Links)
}

// PumpEnergy summarises the energy use of one pump over the run.
type PumpEnergy struct {
	Link        int     `json:"link" yaml:"link"`
	Utilization float32 `json:"utilization" yaml:"utilization"`
	Efficiency  float32 `json:"efficiency" yaml:"efficiency"`
	KWPerFlow   float32 `json:"kwPerFlow" yaml:"kw_per_flow"`
	AverageKW   float32 `json:"averageKw" yaml:"average_kw"`
	PeakKW      float32 `json:"peakKw" yaml:"peak_kw"`
	CostPerDay  float32 `json:"costPerDay" yaml:"cost_per_day"`
}

// Energy is the energy usage section.
type Energy struct {
	Pumps      []PumpEnergy `json:"pumps" yaml:"pumps"`
	PeakDemand float32      `json:"peakDemand" yaml:"peak_demand"`
}

// ReadEnergy reads the pump records and the peak energy demand. Pump link
// indices are converted to 0-based link positions; a pump naming a link
// outside the network gets Link -1 and an advisory.
func ReadEnergy(r binio.Reader, l format.Layout) (Energy, []format.Advisory, error) {
	if err := r.CheckTable("pump energy", l.PumpEnergy, l.Counts.Pumps, format.PumpRecordBytes); err != nil {
		return Energy{}, nil, err
	}
	pumps := make([]PumpEnergy, l.Counts.Pumps)
	var advisories []format.Advisory
	for k := range pumps {
		off := l.PumpEnergy + format.PumpRecordBytes*k
		link, a, ok := resolveRef("pump link", off, k, r.Int32At(off), l.Counts.Links)
		if !ok {
			advisories = append(advisories, a)
		}
		pumps[k] = PumpEnergy{
			Link:        link,
			Utilization: r.Float32At(off + 1*format.WordBytes),
			Efficiency:  r.Float32At(off + 2*format.WordBytes),
			KWPerFlow:   r.Float32At(off + 3*format.WordBytes),
			AverageKW:   r.Float32At(off + 4*format.WordBytes),
			PeakKW:      r.Float32At(off + 5*format.WordBytes),
			CostPerDay:  r.Float32At(off + 6*format.WordBytes),
		}
	}
	peak, err := r.Float32("peak energy", l.PeakEnergy)
	if err != nil {
		return Energy{}, nil, err
	}
	return Energy{Pumps: pumps, PeakDemand: peak}, advisories, nil
}
