package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "0.1.0"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "roadsign",
		Short: "Populate a road-sign ontology from NCS-coloured observations",
		Long: `Roadsign reads road-sign observations encoded as RDF, classifies every
NCS colour code into one of six primary colours and writes the signs as
individuals of a road-sign ontology.

Two classifiers are available:
  - rules:   hue bucket and blackness/chromaticness thresholds
  - nearest: RGB from an NCS reference table, nearest of six prototypes`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().String("config", "", "YAML run configuration")
	rootCmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error")

	rootCmd.AddCommand(populateCmd())
	rootCmd.AddCommand(classifyCmd())
	rootCmd.AddCommand(lookupCmd())
	rootCmd.AddCommand(paletteCmd())
	rootCmd.AddCommand(watchCmd())

	return rootCmd
}
