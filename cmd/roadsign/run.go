package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/coolbeans/roadsign/pkg/config"
	"github.com/coolbeans/roadsign/pkg/ncs"
	"github.com/coolbeans/roadsign/pkg/ontology"
	"github.com/coolbeans/roadsign/pkg/populate"
	"github.com/coolbeans/roadsign/pkg/store"
)

// runSummary is what a finished populate run reports.
type runSummary struct {
	RunID    string
	Sources  int
	Triples  int
	Records  int
	Ontology store.IndexStats
	Skipped  []*populate.RecordError
	Output   string
	Format   store.Format
	Duration time.Duration
}

// loadConfig reads --config (or the defaults) and applies the flags that
// were set on the command line.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.Default()
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	stringFlags := map[string]*string{
		"reference":       &cfg.Reference,
		"ontology":        &cfg.Ontology,
		"ontology-iri":    &cfg.OntologyIRI,
		"output":          &cfg.Output,
		"format":          &cfg.Format,
		"classifier":      &cfg.Classifier,
		"on-error":        &cfg.OnError,
		"metadata-policy": &cfg.MetadataPolicy,
		"metrics-file":    &cfg.MetricsFile,
		"log-level":       &cfg.LogLevel,
	}
	for name, field := range stringFlags {
		flag := cmd.Flags().Lookup(name)
		if flag == nil || !flag.Changed {
			continue
		}
		*field = flag.Value.String()
	}

	if cmd.Flags().Changed("source") {
		sources, err := cmd.Flags().GetStringSlice("source")
		if err != nil {
			return nil, err
		}
		cfg.Sources = sources
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func newLogger(cfg *config.Config) (*slog.Logger, error) {
	level, err := cfg.Level()
	if err != nil {
		return nil, err
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})), nil
}

// buildClassifier loads the reference table only when the approach needs it.
func buildClassifier(cfg *config.Config) (ncs.Classifier, error) {
	approach, err := cfg.Approach()
	if err != nil {
		return nil, err
	}

	var table *ncs.LookupTable
	if approach == ncs.ApproachNearest {
		table, err = ncs.LoadLookupFile(cfg.Reference)
		if err != nil {
			return nil, err
		}
	}
	return ncs.NewClassifier(approach, table)
}

// runPopulate performs one complete batch: classifier, sources, pipeline,
// emission and a single save. Nothing is written when any step fails.
func runPopulate(cfg *config.Config, logger *slog.Logger, metrics *populate.Metrics) (*runSummary, error) {
	started := time.Now()

	classifier, err := buildClassifier(cfg)
	if err != nil {
		return nil, err
	}

	sources, err := cfg.ResolveSources()
	if err != nil {
		return nil, err
	}
	triples, err := store.LoadFiles(sources)
	if err != nil {
		return nil, err
	}
	logger.Debug("sources loaded", "files", len(sources), "triples", triples.Count())

	kb, err := openKnowledgeBase(cfg)
	if err != nil {
		return nil, err
	}

	options, err := cfg.PipelineOptions()
	if err != nil {
		return nil, err
	}
	options = append(options, populate.WithLogger(logger), populate.WithMetrics(metrics))

	result, err := populate.NewPipeline(classifier, options...).Run(triples)
	if err != nil {
		return nil, err
	}

	if err := populate.Emit(kb, result.Records); err != nil {
		return nil, err
	}

	format, err := cfg.OutputFormat()
	if err != nil {
		return nil, err
	}
	if err := kb.Save(cfg.Output, format); err != nil {
		return nil, err
	}

	if cfg.MetricsFile != "" {
		if err := metrics.WriteTextfile(cfg.MetricsFile); err != nil {
			logger.Warn("failed to write metrics", "path", cfg.MetricsFile, "error", err)
		}
	}

	return &runSummary{
		RunID:    result.RunID,
		Sources:  len(sources),
		Triples:  triples.Count(),
		Records:  len(result.Records),
		Ontology: kb.Store().Stats(),
		Skipped:  result.Skipped,
		Output:   cfg.Output,
		Format:   format,
		Duration: time.Since(started),
	}, nil
}

func openKnowledgeBase(cfg *config.Config) (*ontology.KnowledgeBase, error) {
	if cfg.Ontology == "" {
		return ontology.New(cfg.OntologyIRI), nil
	}
	return ontology.Load(cfg.Ontology, cfg.OntologyIRI)
}

// watchedFiles lists every input of a run.
func watchedFiles(cfg *config.Config) ([]string, error) {
	files, err := cfg.ResolveSources()
	if err != nil {
		return nil, err
	}

	approach, err := cfg.Approach()
	if err != nil {
		return nil, err
	}
	if approach == ncs.ApproachNearest {
		files = append(files, cfg.Reference)
	}
	if cfg.Ontology != "" {
		files = append(files, cfg.Ontology)
	}
	return files, nil
}

func printSummary(cmd *cobra.Command, summary *runSummary) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Populated %s (%s)\n", summary.Output, summary.Format)
	fmt.Fprintf(out, "  Run:       %s\n", summary.RunID)
	fmt.Fprintf(out, "  Sources:   %d files, %d triples\n", summary.Sources, summary.Triples)
	fmt.Fprintf(out, "  Signs:     %d\n", summary.Records)
	fmt.Fprintf(out, "  Ontology:  %d triples, %d subjects\n",
		summary.Ontology.TotalTriples, summary.Ontology.UniqueSubjects)
	if len(summary.Skipped) > 0 {
		fmt.Fprintf(out, "  Skipped:   %d\n", len(summary.Skipped))
		for _, skipped := range summary.Skipped {
			fmt.Fprintf(out, "    - %v\n", skipped)
		}
	}
	fmt.Fprintf(out, "  Duration:  %v\n", summary.Duration.Round(time.Millisecond))
}
