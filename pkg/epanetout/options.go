package epanetout

import (
	"context"

	internalopts "github.com/qatium/epanet-go/internal/options"
)

// DecodeOptions configures decoding. Whatever the options, a buffer shorter
// than MinFileBytes (the 884 byte header, the peak energy word and the 28 byte
// epilog) fails with ErrMalformedInput.
type DecodeOptions struct {
	// Workers bounds the goroutines extracting time series; 0 uses GOMAXPROCS.
	Workers int
	// Strict verifies the magic numbers, the count relations and the exact
	// file size. It also rejects reservoir/tank rows, link endpoints and
	// pump records that point outside the network instead of reporting them
	// as advisories.
	Strict bool
}

func (opts DecodeOptions) toInternal(ctx context.Context) context.Context {
	return internalopts.WithSettings(ctx, internalopts.Settings{
		Workers: opts.Workers,
		Strict:  opts.Strict,
	})
}
