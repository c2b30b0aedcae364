// Package config loads the YAML run configuration of the populate and watch
// commands.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"

	"github.com/coolbeans/roadsign/pkg/ncs"
	"github.com/coolbeans/roadsign/pkg/ontology"
	"github.com/coolbeans/roadsign/pkg/populate"
	"github.com/coolbeans/roadsign/pkg/store"
)

// Config describes one population run.
type Config struct {
	// Sources are RDF files or doublestar patterns ("data/**/*.ttl"),
	// loaded in order.
	Sources []string `yaml:"sources"`

	// Reference is the NCS to RGB reference table, optionally .xz or .gz.
	Reference string `yaml:"reference"`

	// Ontology is the unpopulated ontology to extend. Empty starts from a
	// fresh ontology named OntologyIRI.
	Ontology string `yaml:"ontology,omitempty"`

	// Output is where the populated ontology is written.
	Output string `yaml:"output"`

	// Format of Output; inferred from its extension when empty.
	Format string `yaml:"format,omitempty"`

	OntologyIRI   string `yaml:"ontology_iri,omitempty"`
	Classifier    string `yaml:"classifier"`
	RoadSignClass string `yaml:"road_sign_class,omitempty"`

	// OnError is halt or skip.
	OnError string `yaml:"on_error"`

	// MetadataPolicy is last, first or reject.
	MetadataPolicy string `yaml:"metadata_policy"`

	MetricsFile string `yaml:"metrics_file,omitempty"`
	LogLevel    string `yaml:"log_level"`

	// Debounce is how long the watch command waits for changes to settle,
	// e.g. "500ms".
	Debounce string `yaml:"debounce,omitempty"`
}

// Default returns the configuration of a run in the working directory with
// the standard file names.
func Default() *Config {
	return &Config{
		Sources:        []string{"roadsign-data_modified.ttl"},
		Reference:      "ncs_rgb.txt",
		Ontology:       "ontology_unpopulated.owl",
		Output:         "ontology_populated_nsc.owl",
		OntologyIRI:    ontology.DefaultIRI,
		Classifier:     string(ncs.ApproachNearest),
		RoadSignClass:  store.RSSRoadSign,
		OnError:        string(populate.Halt),
		MetadataPolicy: string(populate.MetadataLast),
		LogLevel:       "info",
		Debounce:       "500ms",
	}
}

// Load reads a configuration file. Keys missing from the file keep their
// Default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) // #nosec G304 - path is supplied by the operator
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	config := Default()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return config, nil
}

// Validate checks every field that has a fixed set of values.
func (c *Config) Validate() error {
	if len(c.Sources) == 0 {
		return fmt.Errorf("sources: at least one source is required")
	}
	for i, source := range c.Sources {
		if strings.TrimSpace(source) == "" {
			return fmt.Errorf("sources[%d]: empty path", i)
		}
		if !doublestar.ValidatePathPattern(source) {
			return fmt.Errorf("sources[%d]: invalid pattern %q", i, source)
		}
	}

	if c.Output == "" {
		return fmt.Errorf("output is required")
	}
	if _, err := c.OutputFormat(); err != nil {
		return fmt.Errorf("format: %w", err)
	}

	approach, err := c.Approach()
	if err != nil {
		return fmt.Errorf("classifier: %w", err)
	}
	if approach == ncs.ApproachNearest && c.Reference == "" {
		return fmt.Errorf("reference is required for the %s classifier", approach)
	}

	if c.Ontology == "" && c.OntologyIRI == "" {
		return fmt.Errorf("ontology_iri is required when no input ontology is given")
	}

	if _, err := populate.ParseErrorPolicy(c.OnError); err != nil {
		return fmt.Errorf("on_error: %w", err)
	}
	if _, err := populate.ParseMetadataPolicy(c.MetadataPolicy); err != nil {
		return fmt.Errorf("metadata_policy: %w", err)
	}
	if _, err := c.Level(); err != nil {
		return fmt.Errorf("log_level: %w", err)
	}
	if _, err := c.DebounceDelay(); err != nil {
		return fmt.Errorf("debounce: %w", err)
	}

	return nil
}

// Approach returns the configured classifier approach.
func (c *Config) Approach() (ncs.Approach, error) {
	name := ncs.Approach(strings.ToLower(c.Classifier))
	if name == "" {
		return ncs.ApproachNearest, nil
	}
	for _, approach := range ncs.Approaches() {
		if approach == name {
			return approach, nil
		}
	}
	return "", fmt.Errorf("unknown classifier %q", c.Classifier)
}

// OutputFormat returns Format, or the format implied by Output's extension.
func (c *Config) OutputFormat() (store.Format, error) {
	if c.Format != "" {
		return store.ParseFormat(c.Format)
	}
	return store.FormatFromPath(c.Output)
}

// PipelineOptions translates the policy fields into pipeline options.
func (c *Config) PipelineOptions() ([]populate.Option, error) {
	errorPolicy, err := populate.ParseErrorPolicy(c.OnError)
	if err != nil {
		return nil, err
	}
	metadataPolicy, err := populate.ParseMetadataPolicy(c.MetadataPolicy)
	if err != nil {
		return nil, err
	}

	options := []populate.Option{
		populate.WithErrorPolicy(errorPolicy),
		populate.WithMetadataPolicy(metadataPolicy),
	}
	if c.RoadSignClass != "" {
		options = append(options, populate.WithRoadSignClass(c.RoadSignClass))
	}
	return options, nil
}

// Level parses LogLevel (debug, info, warn, error).
func (c *Config) Level() (slog.Level, error) {
	var level slog.Level
	if c.LogLevel == "" {
		return slog.LevelInfo, nil
	}
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, err
	}
	return level, nil
}

// DebounceDelay parses Debounce; empty means 500ms.
func (c *Config) DebounceDelay() (time.Duration, error) {
	if c.Debounce == "" {
		return 500 * time.Millisecond, nil
	}
	delay, err := time.ParseDuration(c.Debounce)
	if err != nil {
		return 0, err
	}
	if delay < 0 {
		return 0, fmt.Errorf("negative duration %s", c.Debounce)
	}
	return delay, nil
}

// ResolveSources expands the source patterns into file paths, keeping the
// configured order and dropping duplicates. A pattern that matches nothing is
// an error; plain paths are returned as given.
func (c *Config) ResolveSources() ([]string, error) {
	var paths []string
	seen := make(map[string]bool)

	for _, source := range c.Sources {
		matches := []string{source}
		if hasGlobMeta(source) {
			var err error
			matches, err = doublestar.FilepathGlob(source, doublestar.WithFilesOnly())
			if err != nil {
				return nil, fmt.Errorf("failed to expand %q: %w", source, err)
			}
			if len(matches) == 0 {
				return nil, fmt.Errorf("source pattern %q matched no files", source)
			}
		}

		for _, match := range matches {
			if !seen[match] {
				seen[match] = true
				paths = append(paths, match)
			}
		}
	}

	return paths, nil
}

func hasGlobMeta(pattern string) bool {
	return strings.ContainsAny(pattern, "*?[{")
}
