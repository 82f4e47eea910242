package options

import (
	"context"
	"fmt"
	"runtime"
	"strconv"
	"strings"
)

// Settings tune a decode without changing its result.
type Settings struct {
	// Workers bounds the extraction goroutines; 0 means GOMAXPROCS.
	Workers int
	// Strict turns advisory layout checks into errors.
	Strict bool
}

type contextKey struct{}

// WithSettings stores the provided settings inside the context.
func WithSettings(ctx context.Context, s Settings) context.Context {
	return context.WithValue(ctx, contextKey{}, s)
}

// FromContext retrieves the settings from context, or the zero value.
func FromContext(ctx context.Context) Settings {
	if v := ctx.Value(contextKey{}); v != nil {
		if s, ok := v.(Settings); ok {
			return s
		}
	}
	return Settings{}
}

// EffectiveWorkers resolves the worker bound.
func (s Settings) EffectiveWorkers() int {
	if s.Workers <= 0 {
		return runtime.GOMAXPROCS(0)
	}
	return s.Workers
}

// ParseWorkers accepts "auto", an empty string or a non-negative integer.
func ParseWorkers(input string) (int, error) {
	clean := strings.TrimSpace(input)
	if clean == "" || strings.EqualFold(clean, "auto") {
		return 0, nil
	}
	n, err := strconv.Atoi(clean)
	if err != nil {
		return 0, fmt.Errorf("invalid worker count %q: %w", input, err)
	}
	if n < 0 {
		return 0, fmt.Errorf("worker count must not be negative, got %d", n)
	}
	return n, nil
}
