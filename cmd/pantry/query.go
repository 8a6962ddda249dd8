// Query command reads records back out of the workspace index.
package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// Index table names accepted by query.
const (
	tableManifests    = "manifests"
	tableGroups       = "groups"
	tableRequirements = "requirements"
)

var queryCmd = &cobra.Command{
	Use:   "query <table> [key=value...]",
	Short: "Query the workspace index",
	Long: `Query reads records from an index table with optional equality
filters given as key=value pairs.

Tables and their filter keys:
  manifests       (no filters)
  groups          manifest_id, name
  requirements    group_id, kind

Example:
  pantry query manifests
  pantry query groups name=dev
  pantry query requirements group_id=<id>`,
	Args: cobra.MinimumNArgs(1),
	RunE: runQuery,
}

func runQuery(cmd *cobra.Command, args []string) error {
	tableName := args[0]

	filter := make(map[string]string)
	for _, arg := range args[1:] {
		key, value, ok := strings.Cut(arg, "=")
		if !ok {
			return fmt.Errorf("invalid filter %q (expected key=value)", arg)
		}
		filter[key] = value
	}

	backend, err := attachBackend()
	if err != nil {
		fatalSys("query", err)
	}
	defer backend.Detach()

	switch tableName {
	case tableManifests:
		if len(filter) > 0 {
			return fmt.Errorf("manifests query takes no filters")
		}
		records, err := backend.Manifests()
		if err != nil {
			return fmt.Errorf("fetch manifests: %w", err)
		}
		if flagJSON {
			return printJSON(records)
		}
		for _, r := range records {
			fmt.Printf("%s  scanned=%s  id=%s\n", r.Path, r.ScannedAt, r.ManifestID)
		}
	case tableGroups:
		records, err := backend.Groups(filter)
		if err != nil {
			return fmt.Errorf("fetch groups: %w", err)
		}
		if flagJSON {
			return printJSON(records)
		}
		for _, r := range records {
			fmt.Printf("%s  entries=%d  manifest=%s  id=%s\n", r.Name, r.EntryCount, r.ManifestID, r.GroupID)
		}
	case tableRequirements:
		records, err := backend.Requirements(filter)
		if err != nil {
			return fmt.Errorf("fetch requirements: %w", err)
		}
		if flagJSON {
			return printJSON(records)
		}
		for _, r := range records {
			fmt.Printf("%s  %s\n", r.Kind, r.Value)
		}
	default:
		return fmt.Errorf("unknown table %q (valid: %s, %s, %s)",
			tableName, tableManifests, tableGroups, tableRequirements)
	}
	return nil
}
