// Show command prints the raw entries of one group, includes unresolved.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show <group>",
	Short: "Show the raw entries of a group",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

func runShow(cmd *cobra.Command, args []string) error {
	m, err := loadManifest()
	if err != nil {
		return err
	}

	entries, err := m.Groups.Get(args[0])
	if err != nil {
		return fmt.Errorf("group %q: %w (known: %v)", args[0], err, m.Groups.Names())
	}

	if flagJSON {
		return printJSON(entries)
	}
	for _, e := range entries {
		fmt.Println(formatEntry(e))
	}
	return nil
}
