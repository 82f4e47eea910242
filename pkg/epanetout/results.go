package epanetout

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/qatium/epanet-go/internal/series"
)

// Node returns the first node with the given identifier.
func (r *Results) Node(id string) (*NodeResult, bool) {
	for i := range r.Nodes {
		if r.Nodes[i].ID == id {
			return &r.Nodes[i], true
		}
	}
	return nil, false
}

// Link returns the first link with the given identifier.
func (r *Results) Link(id string) (*LinkResult, bool) {
	for i := range r.Links {
		if r.Links[i].ID == id {
			return &r.Links[i], true
		}
	}
	return nil, false
}

// PeriodTime returns the simulation clock of reporting period p.
func (r *Results) PeriodTime(p int) time.Duration {
	return r.Header.PeriodTime(p)
}

// Series returns the time series of channel ch.
func (n *NodeResult) Series(ch NodeChannel) []float32 {
	switch ch {
	case series.Demand:
		return n.Demand
	case series.Head:
		return n.Head
	case series.Pressure:
		return n.Pressure
	case series.WaterQuality:
		return n.WaterQuality
	default:
		return nil
	}
}

// Channel returns the time series named name, e.g. "pressure".
func (n *NodeResult) Channel(name string) ([]float32, error) {
	ch, err := series.ParseNodeChannel(name)
	if err != nil {
		return nil, err
	}
	return n.Series(ch), nil
}

// Series returns the time series of channel ch.
func (l *LinkResult) Series(ch LinkChannel) []float32 {
	switch ch {
	case series.Flow:
		return l.Flow
	case series.Velocity:
		return l.Velocity
	case series.Headloss:
		return l.Headloss
	case series.AvgWaterQuality:
		return l.AvgWaterQuality
	case series.Status:
		return l.Status
	case series.Setting:
		return l.Setting
	case series.ReactionRate:
		return l.ReactionRate
	case series.Friction:
		return l.Friction
	default:
		return nil
	}
}

// Channel returns the time series named name, e.g. "flow".
func (l *LinkResult) Channel(name string) ([]float32, error) {
	ch, err := series.ParseLinkChannel(name)
	if err != nil {
		return nil, err
	}
	return l.Series(ch), nil
}

// StatusAt decodes the Status channel at period p.
func (l *LinkResult) StatusAt(p int) (LinkStatus, error) {
	if p < 0 || p >= len(l.Status) {
		return 0, fmt.Errorf("period %d outside 0..%d", p, len(l.Status)-1)
	}
	s, ok := series.StatusOf(l.Status[p])
	if !ok {
		return 0, fmt.Errorf("link %s: status value %v at period %d is not a status code", l.ID, l.Status[p], p)
	}
	return s, nil
}

// NodeCounts tallies nodes per category.
func (r *Results) NodeCounts() map[NodeCategory]int {
	out := make(map[NodeCategory]int, 3)
	for _, n := range r.Nodes {
		out[n.Type]++
	}
	return out
}

// LinkCounts tallies links per category.
func (r *Results) LinkCounts() map[LinkCategory]int {
	out := make(map[LinkCategory]int)
	for _, l := range r.Links {
		out[l.Type]++
	}
	return out
}

// String renders a human-readable summary of the results.
func (r *Results) String() string {
	nodes := map[string]int{}
	for c, n := range r.NodeCounts() {
		nodes[c.String()] = n
	}
	links := map[string]int{}
	for c, n := range r.LinkCounts() {
		links[c.String()] = n
	}
	summary := map[string]any{
		"title":             r.Header.Title[0],
		"version":           r.Header.Version,
		"flow_units":        r.Header.FlowUnits.String(),
		"pressure_units":    r.Header.PressureUnits.String(),
		"quality":           r.Header.Quality.String(),
		"reporting_periods": r.Prolog.ReportingPeriods,
		"report_step":       r.Header.ReportStep.String(),
		"duration":          r.Header.Duration.String(),
		"nodes":             nodes,
		"links":             links,
		"warnings":          r.Epilog.Warnings,
	}
	if len(r.Advisories) > 0 {
		summary["advisories"] = len(r.Advisories)
	}
	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return fmt.Sprintf("nodes:%d links:%d periods:%d (marshal error: %v)", len(r.Nodes), len(r.Links), r.Prolog.ReportingPeriods, err)
	}
	return string(data)
}
