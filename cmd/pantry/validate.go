// Validate command checks a manifest's dependency-groups table against
// the schema and reports every problem found.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/pantry/internal/manifest"
)

var validateCmd = &cobra.Command{
	Use:   "validate [manifest]",
	Short: "Validate the dependency-groups table of a manifest",
	Long: `Validate parses the manifest and checks its dependency-groups table:
group names must be lowercase alphanumerics with internal hyphens (at
least two characters), and every entry must be a version-specifier
string, an include object, or a path dependency object.

All problems are reported, not just the first. The exit code is 1 when
the table is invalid.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runValidate,
}

func runValidate(cmd *cobra.Command, args []string) error {
	path := resolveManifestPath()
	if len(args) == 1 {
		path = args[0]
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading manifest: %w", err)
	}

	problems := manifest.Validate(data)

	if flagJSON {
		report := struct {
			Path     string   `json:"path"`
			Valid    bool     `json:"valid"`
			Problems []string `json:"problems,omitempty"`
		}{Path: path, Valid: len(problems) == 0}
		for _, p := range problems {
			report.Problems = append(report.Problems, p.Error())
		}
		if err := printJSON(report); err != nil {
			return err
		}
		if len(problems) > 0 {
			os.Exit(exitUserError)
		}
		return nil
	}

	if len(problems) == 0 {
		m, err := manifest.Parse(data)
		if err != nil {
			return err
		}
		fmt.Printf("%s: dependency-groups valid (%d groups)\n", path, len(m.Groups))
		return nil
	}

	for _, p := range problems {
		fmt.Fprintln(os.Stderr, p)
	}
	return fmt.Errorf("%s: %d problem(s) found", path, len(problems))
}
