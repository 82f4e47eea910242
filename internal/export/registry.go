// Package export writes decoded results to storage and interchange formats.
// Exporters register themselves from their own packages.
package export

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"

	"github.com/qatium/epanet-go/pkg/epanetout"
)

// Exporter writes results to a stream.
type Exporter interface {
	Name() string
	Export(context.Context, *epanetout.Results, io.Writer) error
}

// FileExporter writes results to a path it manages itself, e.g. a database
// that accumulates several runs.
type FileExporter interface {
	ExportFile(ctx context.Context, res *epanetout.Results, path string) error
}

var (
	regMu    sync.RWMutex
	registry = map[string]Exporter{}
)

// Register stores an exporter under its name.
func Register(e Exporter) {
	regMu.Lock()
	defer regMu.Unlock()
	registry[strings.ToLower(e.Name())] = e
}

// Lookup returns the exporter registered under name.
func Lookup(name string) (Exporter, error) {
	regMu.RLock()
	defer regMu.RUnlock()
	if e, ok := registry[strings.ToLower(name)]; ok {
		return e, nil
	}
	return nil, fmt.Errorf("exporter %q not found (available: %s)", name, strings.Join(namesLocked(), ", "))
}

// Names lists the registered exporters in sorted order.
func Names() []string {
	regMu.RLock()
	defer regMu.RUnlock()
	return namesLocked()
}

func namesLocked() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
