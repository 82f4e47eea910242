// Package yamlexport writes results as a YAML document.
package yamlexport

import (
	"context"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/qatium/epanet-go/internal/export"
	"github.com/qatium/epanet-go/pkg/epanetout"
)

func init() {
	export.Register(Exporter{})
}

// Exporter encodes the whole result graph.
type Exporter struct{}

// Name returns the canonical exporter name.
func (Exporter) Name() string { return "yaml" }

// Export writes res to w.
func (Exporter) Export(_ context.Context, res *epanetout.Results, w io.Writer) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)

	if err := encoder.Encode(res); err != nil {
		encoder.Close()
		return fmt.Errorf("failed to encode YAML: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return fmt.Errorf("failed to flush YAML: %w", err)
	}
	return nil
}
