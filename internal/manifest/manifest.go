// Package manifest reads pyproject-style TOML manifests and decodes
// their dependency-groups table into typed group entries.
package manifest

import (
	"errors"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/mesh-intelligence/pantry/pkg/types"
)

// TableName is the top-level manifest table holding dependency groups.
const TableName = "dependency-groups"

// Manifest is a parsed project manifest. Groups holds the decoded
// dependency-groups table; the full document is retained so the table
// can be stripped without losing the rest of the manifest.
type Manifest struct {
	Path   string
	Groups types.Groups

	doc map[string]any
}

// Load reads and parses the manifest at path.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest: %w", err)
	}
	m, err := Parse(data)
	if err != nil {
		return nil, err
	}
	m.Path = path
	return m, nil
}

// Parse decodes a manifest document and its dependency-groups table.
// A manifest without the table parses successfully with nil Groups;
// use HasGroups to distinguish. Schema violations inside the table are
// joined into a single error; Validate returns them individually.
func Parse(data []byte) (*Manifest, error) {
	m, problems, err := parse(data)
	if err != nil {
		return nil, err
	}
	if len(problems) > 0 {
		return m, errors.Join(problems...)
	}
	return m, nil
}

// Validate parses a manifest and returns every schema problem found in
// its dependency-groups table. A TOML syntax error is returned as the
// single problem. A manifest without the table yields
// types.ErrNoDependencyGroups.
func Validate(data []byte) []error {
	m, problems, err := parse(data)
	if err != nil {
		return []error{err}
	}
	if !m.HasGroups() {
		return []error{types.ErrNoDependencyGroups}
	}
	return problems
}

// HasGroups reports whether the manifest contains a dependency-groups
// table, even an empty or invalid one.
func (m *Manifest) HasGroups() bool {
	if m.doc == nil {
		return false
	}
	_, ok := m.doc[TableName]
	return ok
}

// parse decodes the TOML document and collects schema problems from
// the dependency-groups table. The returned error is fatal (syntax or
// table-shape); problems are per-group schema violations.
func parse(data []byte) (*Manifest, []error, error) {
	var doc map[string]any
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, nil, fmt.Errorf("parsing manifest: %w", err)
	}

	m := &Manifest{doc: doc}

	raw, ok := doc[TableName]
	if !ok {
		return m, nil, nil
	}
	table, ok := raw.(map[string]any)
	if !ok {
		return nil, nil, fmt.Errorf("%s must be a table, got %s", TableName, tomlTypeName(raw))
	}

	groups, problems := decodeGroups(table)
	m.Groups = groups
	return m, problems, nil
}
