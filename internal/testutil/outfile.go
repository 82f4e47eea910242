// Package testutil assembles EPANET output files for tests. Sections are
// written sequentially in file order, independent of the layout resolver.
package testutil

import (
	"bytes"
	"encoding/binary"
	"math"
	"os"
	"path/filepath"
	"testing"
)

const magic = 516114521

// Node is one junction, reservoir or tank.
type Node struct {
	ID        string
	Elevation float32
}

// Tank is a row of the reservoir/tank side table. Node is 1-based.
type Tank struct {
	Node int32
	Area float32
}

// Link is one pipe, pump or valve. Start and End are 1-based node indices.
type Link struct {
	ID       string
	Start    int32
	End      int32
	Type     int32
	Length   float32
	Diameter float32
}

// Pump is one record of the energy usage section. Link is 1-based.
type Pump struct {
	Link        int32
	Utilization float32
	Efficiency  float32
	KWPerFlow   float32
	AverageKW   float32
	PeakKW      float32
	CostPerDay  float32
}

// OutFile describes the content of a synthetic output file.
type OutFile struct {
	Version       int32
	Quality       int32
	TraceNode     int32
	FlowUnits     int32
	PressureUnits int32
	Stats         int32
	ReportStart   int32
	ReportStep    int32
	Duration      int32
	Title         [3]string
	InputFile     string
	ReportFile    string
	ChemicalName  string
	ChemicalUnits string

	Nodes      []Node
	Tanks      []Tank
	Links      []Link
	Pumps      []Pump
	Valves     int32
	PeakEnergy float32

	Periods   int
	NodeValue func(period, ch, node int) float32
	LinkValue func(period, ch, link int) float32

	ReactionRates [4]float32
	Warning       int32
	Magic         int32
}

// NodeValue is the default node result: it encodes its own coordinates.
func NodeValue(period, ch, node int) float32 {
	return float32(10000*period + 100*ch + node)
}

// LinkValue is the default link result, negative to tell it from node values.
func LinkValue(period, ch, link int) float32 {
	return -float32(10000*period + 100*ch + link + 1)
}

// Bytes serialises the file.
func (o OutFile) Bytes() []byte {
	w := &writer{}
	m := o.Magic
	if m == 0 {
		m = magic
	}
	version := o.Version
	if version == 0 {
		version = 20012
	}
	w.i32(m, version)
	w.i32(int32(len(o.Nodes)), int32(len(o.Tanks)), int32(len(o.Links)), int32(len(o.Pumps)), o.Valves)
	w.i32(o.Quality, o.TraceNode, o.FlowUnits, o.PressureUnits, o.Stats)
	w.i32(o.ReportStart, o.ReportStep, o.Duration)
	for _, line := range o.Title {
		w.text(line, 80)
	}
	w.text(o.InputFile, 260)
	w.text(o.ReportFile, 260)
	w.text(o.ChemicalName, 32)
	w.text(o.ChemicalUnits, 32)

	for _, n := range o.Nodes {
		w.text(n.ID, 32)
	}
	for _, l := range o.Links {
		w.text(l.ID, 32)
	}
	for _, l := range o.Links {
		w.i32(l.Start)
	}
	for _, l := range o.Links {
		w.i32(l.End)
	}
	for _, l := range o.Links {
		w.i32(l.Type)
	}
	for _, tk := range o.Tanks {
		w.i32(tk.Node)
	}
	for _, tk := range o.Tanks {
		w.f32(tk.Area)
	}
	for _, n := range o.Nodes {
		w.f32(n.Elevation)
	}
	for _, l := range o.Links {
		w.f32(l.Length)
	}
	for _, l := range o.Links {
		w.f32(l.Diameter)
	}
	for _, p := range o.Pumps {
		w.i32(p.Link)
		w.f32(p.Utilization, p.Efficiency, p.KWPerFlow, p.AverageKW, p.PeakKW, p.CostPerDay)
	}
	w.f32(o.PeakEnergy)

	nodeValue, linkValue := o.NodeValue, o.LinkValue
	if nodeValue == nil {
		nodeValue = NodeValue
	}
	if linkValue == nil {
		linkValue = LinkValue
	}
	for p := 0; p < o.Periods; p++ {
		for ch := 0; ch < 4; ch++ {
			for i := range o.Nodes {
				w.f32(nodeValue(p, ch, i))
			}
		}
		for ch := 0; ch < 8; ch++ {
			for j := range o.Links {
				w.f32(linkValue(p, ch, j))
			}
		}
	}

	w.f32(o.ReactionRates[:]...)
	w.i32(int32(o.Periods), o.Warning, m)
	return w.buf.Bytes()
}

// WriteFile stores the file under t.TempDir and returns its path.
func (o OutFile) WriteFile(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, o.Bytes(), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

// Network returns a small two-node network with a reservoir feeding a
// junction through a pipe, reported over three periods.
func Network() OutFile {
	return OutFile{
		ReportStep: 3600,
		Duration:   7200,
		Title:      [3]string{"Two node network", "", ""},
		Nodes: []Node{
			{ID: "R1", Elevation: 100},
			{ID: "J1", Elevation: 50},
		},
		Tanks: []Tank{{Node: 1, Area: 0}},
		Links: []Link{
			{ID: "P1", Start: 1, End: 2, Type: 1, Length: 1000, Diameter: 12},
		},
		Periods: 3,
	}
}

type writer struct {
	buf bytes.Buffer
}

func (w *writer) i32(vs ...int32) {
	var b [4]byte
	for _, v := range vs {
		binary.LittleEndian.PutUint32(b[:], uint32(v))
		w.buf.Write(b[:])
	}
}

func (w *writer) f32(vs ...float32) {
	var b [4]byte
	for _, v := range vs {
		binary.LittleEndian.PutUint32(b[:], math.Float32bits(v))
		w.buf.Write(b[:])
	}
}

func (w *writer) text(s string, width int) {
	field := make([]byte, width)
	copy(field, s)
	w.buf.Write(field)
}
