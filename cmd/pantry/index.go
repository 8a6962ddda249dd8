// Index command records manifests into the workspace index.
package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/pantry/internal/manifest"
	"github.com/mesh-intelligence/pantry/internal/resolve"
)

var indexCmd = &cobra.Command{
	Use:   "index [manifest...]",
	Short: "Validate, expand, and record manifests into the workspace index",
	Long: `Index validates each manifest, expands every group, and records the
manifest, its groups, and their flattened requirements into the
SQLite-backed workspace index. Re-indexing a manifest replaces its
previous record.`,
	RunE: runIndex,
}

func runIndex(cmd *cobra.Command, args []string) error {
	manifests := args
	if len(manifests) == 0 {
		manifests = []string{resolveManifestPath()}
	}

	backend, err := attachBackend()
	if err != nil {
		fatalSys("index", err)
	}
	defer backend.Detach()

	for _, path := range manifests {
		m, err := manifest.Load(path)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		if !m.HasGroups() {
			return fmt.Errorf("%s: no dependency-groups table", path)
		}

		expanded, problems := resolve.ExpandAll(m.Groups)
		if len(problems) > 0 {
			for _, p := range problems {
				logger.Error("expansion failed", "manifest", path, "err", p)
			}
			return fmt.Errorf("%s: %d group(s) failed to expand", path, len(problems))
		}

		absPath, err := filepath.Abs(path)
		if err != nil {
			fatalSys("resolving path", err)
		}

		id, err := backend.IndexManifest(absPath, m.Groups, expanded)
		if err != nil {
			fatalSys("recording manifest", err)
		}
		fmt.Printf("indexed %s (%d groups) as %s\n", path, len(m.Groups), id)
	}
	return nil
}
