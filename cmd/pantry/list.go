// List command prints the groups defined in a manifest.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List dependency groups with entry counts",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func runList(cmd *cobra.Command, args []string) error {
	m, err := loadManifest()
	if err != nil {
		return err
	}
	if !m.HasGroups() {
		return fmt.Errorf("%s: no dependency-groups table", m.Path)
	}

	if flagJSON {
		type groupInfo struct {
			Name    string `json:"name"`
			Entries int    `json:"entries"`
		}
		groups := make([]groupInfo, 0, len(m.Groups))
		for _, name := range m.Groups.Names() {
			groups = append(groups, groupInfo{Name: name, Entries: len(m.Groups[name])})
		}
		return printJSON(groups)
	}

	for _, name := range m.Groups.Names() {
		fmt.Printf("%s (%d entries)\n", name, len(m.Groups[name]))
	}
	return nil
}
