// Shared helpers for pantry CLI commands.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/mesh-intelligence/pantry/internal/manifest"
	"github.com/mesh-intelligence/pantry/internal/sqlite"
	"github.com/mesh-intelligence/pantry/pkg/types"
)

// loadManifest loads the manifest selected by flags and config.
// Parse errors are returned as-is so validate can report them in full.
func loadManifest() (*manifest.Manifest, error) {
	path := resolveManifestPath()
	logger.Debug("loading manifest", "path", path)
	return manifest.Load(path)
}

// attachBackend resolves the data directory, creates a SQLite index
// backend, and attaches it. The caller must defer backend.Detach().
func attachBackend() (*sqlite.Backend, error) {
	dataDir, err := resolveDataDir()
	if err != nil {
		return nil, fmt.Errorf("resolve data dir: %w", err)
	}

	cfg := types.Config{
		Backend: defaultBackend,
		DataDir: dataDir,
	}

	backend := sqlite.NewBackend()
	if err := backend.Attach(cfg); err != nil {
		return nil, fmt.Errorf("attach index: %w", err)
	}
	logger.Debug("index attached", "data_dir", dataDir)
	return backend, nil
}

// printJSON writes v to stdout as indented JSON.
func printJSON(v any) error {
	output, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}
	fmt.Println(string(output))
	return nil
}

// formatEntry renders one entry for human-readable output.
func formatEntry(e types.Entry) string {
	switch e.Kind {
	case types.KindSpecifier:
		return e.Specifier
	case types.KindInclude:
		return fmt.Sprintf("include %s", e.Include)
	case types.KindPath:
		return formatPathDependency(e.Path)
	default:
		return fmt.Sprintf("<%s>", e.Kind)
	}
}

// formatPathDependency renders a path dependency as "path ./x" plus
// any options that are set.
func formatPathDependency(dep *types.PathDependency) string {
	var b strings.Builder
	fmt.Fprintf(&b, "path %s", dep.Path)
	if len(dep.Extras) > 0 {
		fmt.Fprintf(&b, " [%s]", strings.Join(dep.Extras, ","))
	}
	if dep.Editable != nil {
		fmt.Fprintf(&b, " editable=%t", *dep.Editable)
	}
	if dep.OnlyDeps != nil {
		fmt.Fprintf(&b, " only-deps=%t", *dep.OnlyDeps)
	}
	return b.String()
}

// fatalSys reports a system-level failure and exits with code 2.
func fatalSys(context string, err error) {
	fmt.Fprintf(os.Stderr, "%s: %v\n", context, err)
	os.Exit(exitSysError)
}
