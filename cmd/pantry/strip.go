// Strip command removes the dependency-groups table from a manifest.
// Build backends must exclude the table from distribution artifacts.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/pantry/internal/manifest"
)

var flagStripOutput string

var stripCmd = &cobra.Command{
	Use:   "strip [manifest]",
	Short: "Print the manifest with dependency-groups removed",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runStrip,
}

func init() {
	stripCmd.Flags().StringVarP(&flagStripOutput, "output", "o", "", "write result to FILE instead of stdout")
}

func runStrip(cmd *cobra.Command, args []string) error {
	path := resolveManifestPath()
	if len(args) == 1 {
		path = args[0]
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading manifest: %w", err)
	}

	out, err := manifest.Strip(data)
	if err != nil {
		return err
	}

	if flagStripOutput == "" {
		fmt.Print(string(out))
		return nil
	}
	if err := os.WriteFile(flagStripOutput, out, 0o644); err != nil {
		fatalSys("writing output", err)
	}
	logger.Debug("stripped manifest written", "path", flagStripOutput)
	return nil
}
