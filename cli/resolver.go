package cli

import (
	"io"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"
)

// resolve returns a [kong.ConfigurationLoader] that parses config files
// written in YAML.
//
// It can be used with [kong.Configuration] like this:
//
//	kong.Configuration(resolve(name), "/path/to/config")
//
// FlowDSL source describes dataflow pipelines, not key/value settings, so
// it is not suited to holding CLI flag values itself. The config file
// format is plain YAML instead:
//
//	log_level: debug
//	log_format: json
//	log_pretty: true
//
// This configuration is applied to Kong flags:
//
//	--log-level=debug
//	--log-format=json
//	--log-pretty=true
//
// Command-line flags override config file values. name is accepted for
// symmetry with the per-namespace resolver it replaces, but a flat YAML
// document has no namespace to select.
func resolve(_ string) func(r io.Reader) (kong.Resolver, error) {
	return func(r io.Reader) (kong.Resolver, error) {
		buf, err := io.ReadAll(r)
		if err != nil {
			// Unreadable config - return empty config rather than fail the run.
			return config{}, nil
		}

		var doc map[string]any

		if err := yaml.Unmarshal(buf, &doc); err != nil {
			// Parse error - return empty config, same tolerance as a missing file.
			return config{}, nil
		}

		return config(doc), nil
	}
}

// config implements [kong.Resolver] for a flat YAML config document.
type config map[string]any

// Validate implements [kong.Resolver].
func (r config) Validate(*kong.Application) error {
	return nil
}

// Resolve implements [kong.Resolver].
func (r config) Resolve(
	_ *kong.Context,
	_ *kong.Path,
	flag *kong.Flag,
) (any, error) {
	// Kong flags use hyphens (e.g., "log-level") but YAML keys conventionally
	// use underscores. Try both forms.
	name := flag.Name
	underscoreName := strings.ReplaceAll(name, "-", "_")

	if value, ok := r[name]; ok {
		return stringify(value), nil
	}

	if value, ok := r[underscoreName]; ok {
		return stringify(value), nil
	}

	// Not found - return nil to let Kong use defaults.
	return nil, nil
}

// stringify coerces numeric YAML scalars to strings, since Kong's resolver
// contract expects flag values it can re-parse from text.
func stringify(v any) any {
	switch n := v.(type) {
	case int:
		return strconv.Itoa(n)
	case int64:
		return strconv.FormatInt(n, 10)
	case uint64:
		return strconv.FormatUint(n, 10)
	case float64:
		return strconv.FormatFloat(n, 'f', -1, 64)
	default:
		return v
	}
}
