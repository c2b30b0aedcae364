package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/coolbeans/roadsign/pkg/ncs"
	"github.com/coolbeans/roadsign/pkg/populate"
	"github.com/coolbeans/roadsign/pkg/watch"
)

func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().StringSlice("source", nil, "RDF source files or glob patterns (repeatable)")
	cmd.Flags().String("reference", "", "NCS to RGB reference table (.txt, .xz, .gz)")
	cmd.Flags().String("ontology", "", "unpopulated ontology to extend (empty for a new one)")
	cmd.Flags().String("ontology-iri", "", "IRI of a new ontology")
	cmd.Flags().String("output", "", "populated ontology output path")
	cmd.Flags().String("format", "", "output format: rdfxml, turtle, ntriples, jsonld")
	cmd.Flags().String("classifier", "", "colour classifier: rules or nearest")
	cmd.Flags().String("on-error", "", "failed record policy: halt or skip")
	cmd.Flags().String("metadata-policy", "", "repeated image metadata: last, first or reject")
	cmd.Flags().String("metrics-file", "", "write Prometheus metrics to this textfile")
}

func populateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "populate",
		Short: "Classify colours and populate the ontology",
		Long: `Load the RDF sources, classify every border, ground and symbol colour and
write one RoadSign individual per sign to the output ontology.

The output is written once, at the end of a successful run.

Example:
  roadsign populate
  roadsign populate --config roadsign.yaml
  roadsign populate --source 'data/**/*.ttl' --classifier rules --ontology "" --output signs.ttl`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			logger, err := newLogger(cfg)
			if err != nil {
				return err
			}
			metrics, err := populate.NewMetrics()
			if err != nil {
				return err
			}

			summary, err := runPopulate(cfg, logger, metrics)
			if err != nil {
				return err
			}

			printSummary(cmd, summary)
			return nil
		},
	}

	addRunFlags(cmd)
	return cmd
}

func classifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "classify <ncs-code>...",
		Short: "Classify NCS colour codes",
		Long: `Print the primary colour of each NCS code.

Example:
  roadsign classify "NCS S 1050-Y90R" "S 0500-N"
  roadsign classify --classifier rules "S 2060-R80B"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			classifier, err := buildClassifier(cfg)
			if err != nil {
				return err
			}

			failed := 0
			for _, code := range args {
				colour, err := classifier.Classify(code)
				if err != nil {
					failed++
					fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", code, err)
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", code, strings.ToUpper(colour))
			}

			if failed > 0 {
				return fmt.Errorf("%d of %d codes could not be classified", failed, len(args))
			}
			return nil
		},
	}

	cmd.Flags().String("classifier", "", "colour classifier: rules or nearest")
	cmd.Flags().String("reference", "", "NCS to RGB reference table")
	return cmd
}

func lookupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lookup <ncs-code>...",
		Short: "Show the reference RGB of NCS codes and their nearest prototype",
		Long: `Resolve NCS codes through the reference table and show the RGB value,
the nearest primary colour and its distance.

Example:
  roadsign lookup "NCS S 1050-Y90R"
  roadsign lookup --reference ncs_rgb.txt.xz "S 0500-N"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			table, err := ncs.LoadLookupFile(cfg.Reference)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Reference: %s (%d codes)\n\n", cfg.Reference, table.Len())
			for _, code := range args {
				rgb, ok := table.Lookup(ncs.LookupKey(code))
				if !ok {
					return &ncs.CodeError{Code: code, Err: ncs.ErrUnknownCode}
				}
				colour, distance := ncs.Nearest(rgb)
				fmt.Fprintf(out, "%s\n", code)
				fmt.Fprintf(out, "  RGB:      %s (%s)\n", rgb, rgb.Hex())
				fmt.Fprintf(out, "  Nearest:  %s\n", colour)
				fmt.Fprintf(out, "  Distance: %.2f\n", distance)
			}
			return nil
		},
	}

	cmd.Flags().String("reference", "", "NCS to RGB reference table")
	return cmd
}

func paletteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "palette",
		Short: "List the primary colour prototypes and hue buckets",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Prototypes:")
			for _, prototype := range ncs.Prototypes() {
				fmt.Fprintf(out, "  %-7s %-15s %s\n", prototype.Colour, prototype.RGB, prototype.RGB.Hex())
			}

			fmt.Fprintln(out, "\nHue buckets:")
			for _, colour := range ncs.PrimaryColours() {
				hues := ncs.Hues(colour)
				if len(hues) == 0 {
					continue
				}
				fmt.Fprintf(out, "  %-7s %s\n", colour, strings.Join(hues, " "))
			}
			return nil
		},
	}
}

func watchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Populate, then populate again whenever an input file changes",
		Long: `Run populate once, then watch the source files, the reference table and
the input ontology. Every change triggers a complete new run; runs never
overlap. Stop with Ctrl-C.

Sources are resolved once at start; files added later that match a glob
need a restart.

Example:
  roadsign watch --config roadsign.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			logger, err := newLogger(cfg)
			if err != nil {
				return err
			}
			metrics, err := populate.NewMetrics()
			if err != nil {
				return err
			}
			files, err := watchedFiles(cfg)
			if err != nil {
				return err
			}
			debounce, err := cfg.DebounceDelay()
			if err != nil {
				return err
			}

			if summary, err := runPopulate(cfg, logger, metrics); err != nil {
				logger.Error("initial run failed", "error", err)
			} else {
				printSummary(cmd, summary)
			}

			watcher, err := watch.New(watch.Config{Files: files, Debounce: debounce, Logger: logger})
			if err != nil {
				return err
			}
			watcher.OnChange(func(changes watch.ChangeSet) error {
				logger.Info("inputs changed", "paths", changes.Paths)
				summary, err := runPopulate(cfg, logger, metrics)
				if err != nil {
					return err
				}
				printSummary(cmd, summary)
				return nil
			})

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if err := watcher.Start(ctx); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Watching %d files. Press Ctrl-C to stop.\n", len(files))

			<-watcher.Done()
			status := watcher.Status()
			fmt.Fprintf(cmd.OutOrStdout(), "Stopped after %d runs (%d failed)\n", status.Batches, status.Failures)
			return watcher.Stop()
		},
	}

	addRunFlags(cmd)
	return cmd
}
