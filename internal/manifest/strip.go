package manifest

import (
	"fmt"

	"github.com/pelletier/go-toml/v2"
)

// Strip returns the manifest with the dependency-groups table removed.
// Build backends must exclude the table from produced distribution
// artifacts; this is the canonical transform for that. A manifest
// without the table is returned unchanged, byte for byte. The
// dependency-groups table need not be schema-valid to be stripped.
func Strip(data []byte) ([]byte, error) {
	var doc map[string]any
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing manifest: %w", err)
	}

	if _, ok := doc[TableName]; !ok {
		return data, nil
	}
	delete(doc, TableName)

	out, err := toml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encoding manifest: %w", err)
	}
	return out, nil
}
