// Resolve command expands groups: includes are flattened, duplicate
// specifiers dropped, and duplicate path dependencies merged.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/pantry/internal/resolve"
	"github.com/mesh-intelligence/pantry/pkg/types"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve <group>...",
	Short: "Expand groups to flat requirement lists",
	Long: `Resolve expands each named group: include entries are replaced by the
target group's entries depth-first, duplicate specifier strings are
dropped, and path dependencies pointing at the same path are merged
(extras concatenate; editable survives only when all agree; only-deps
is true only when every instance sets it true).`,
	Args: cobra.MinimumNArgs(1),
	RunE: runResolve,
}

func runResolve(cmd *cobra.Command, args []string) error {
	m, err := loadManifest()
	if err != nil {
		return err
	}

	expanded := make(map[string][]types.Entry, len(args))
	for _, name := range args {
		entries, err := resolve.Expand(m.Groups, name)
		if err != nil {
			return fmt.Errorf("resolving %q: %w", name, err)
		}
		expanded[name] = entries
	}

	if flagJSON {
		return printJSON(expanded)
	}

	for i, name := range args {
		if len(args) > 1 {
			if i > 0 {
				fmt.Println()
			}
			fmt.Printf("%s:\n", name)
		}
		for _, e := range expanded[name] {
			fmt.Println(formatEntry(e))
		}
	}
	return nil
}
