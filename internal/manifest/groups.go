package manifest

import (
	"fmt"
	"sort"

	"github.com/mesh-intelligence/pantry/pkg/types"
)

// Keys permitted in a path dependency object alongside "path".
var pathObjectKeys = map[string]bool{
	"path":      true,
	"extras":    true,
	"editable":  true,
	"only-deps": true,
}

// decodeGroups converts the raw dependency-groups table into typed
// groups, collecting every schema violation rather than stopping at
// the first. Groups that decode cleanly are returned even when other
// groups have problems.
func decodeGroups(table map[string]any) (types.Groups, []error) {
	groups := make(types.Groups, len(table))
	var problems []error

	// Sort keys so problem ordering is stable across runs.
	names := make([]string, 0, len(table))
	for name := range table {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if err := types.ValidateGroupName(name); err != nil {
			problems = append(problems, fmt.Errorf("group %q: %w", name, err))
			continue
		}

		list, ok := table[name].([]any)
		if !ok {
			problems = append(problems,
				fmt.Errorf("group %q: value must be an array, got %s: %w",
					name, tomlTypeName(table[name]), types.ErrInvalidEntry))
			continue
		}

		entries := make([]types.Entry, 0, len(list))
		bad := false
		for i, elem := range list {
			entry, err := decodeEntry(elem)
			if err != nil {
				problems = append(problems, fmt.Errorf("group %q: entry %d: %w", name, i+1, err))
				bad = true
				continue
			}
			entries = append(entries, entry)
		}
		if !bad {
			groups[name] = entries
		}
	}
	return groups, problems
}

// decodeEntry converts one array element into an Entry. Strings are
// specifier entries; tables must be either an include object (exactly
// one key, "include") or a path object.
func decodeEntry(elem any) (types.Entry, error) {
	switch v := elem.(type) {
	case string:
		if v == "" {
			return types.Entry{}, fmt.Errorf("specifier must not be empty: %w", types.ErrInvalidEntry)
		}
		return types.NewSpecifier(v), nil
	case map[string]any:
		if _, ok := v["include"]; ok {
			return decodeInclude(v)
		}
		if _, ok := v["path"]; ok {
			return decodePath(v)
		}
		return types.Entry{}, fmt.Errorf("object must have an include or path key: %w", types.ErrInvalidEntry)
	default:
		return types.Entry{}, fmt.Errorf("entry must be a string or object, got %s: %w",
			tomlTypeName(elem), types.ErrInvalidEntry)
	}
}

// decodeInclude decodes an include object. Exactly one key is allowed.
func decodeInclude(obj map[string]any) (types.Entry, error) {
	if len(obj) != 1 {
		return types.Entry{}, fmt.Errorf("include object must have exactly one key: %w", types.ErrInvalidEntry)
	}
	target, ok := obj["include"].(string)
	if !ok {
		return types.Entry{}, fmt.Errorf("include must be a string, got %s: %w",
			tomlTypeName(obj["include"]), types.ErrInvalidEntry)
	}
	if err := types.ValidateGroupName(target); err != nil {
		return types.Entry{}, fmt.Errorf("include target %q: %w", target, err)
	}
	return types.NewInclude(target), nil
}

// decodePath decodes a path dependency object. Only the keys in
// pathObjectKeys are permitted.
func decodePath(obj map[string]any) (types.Entry, error) {
	for key := range obj {
		if !pathObjectKeys[key] {
			return types.Entry{}, fmt.Errorf("unknown path dependency key %q: %w", key, types.ErrInvalidEntry)
		}
	}

	dep := types.PathDependency{}

	p, ok := obj["path"].(string)
	if !ok {
		return types.Entry{}, fmt.Errorf("path must be a string, got %s: %w",
			tomlTypeName(obj["path"]), types.ErrInvalidEntry)
	}
	if p == "" {
		return types.Entry{}, fmt.Errorf("path must not be empty: %w", types.ErrInvalidEntry)
	}
	dep.Path = p

	if raw, ok := obj["extras"]; ok {
		list, ok := raw.([]any)
		if !ok {
			return types.Entry{}, fmt.Errorf("extras must be an array of strings, got %s: %w",
				tomlTypeName(raw), types.ErrInvalidEntry)
		}
		for _, e := range list {
			s, ok := e.(string)
			if !ok {
				return types.Entry{}, fmt.Errorf("extras element must be a string, got %s: %w",
					tomlTypeName(e), types.ErrInvalidEntry)
			}
			dep.Extras = append(dep.Extras, s)
		}
	}

	if raw, ok := obj["editable"]; ok {
		b, ok := raw.(bool)
		if !ok {
			return types.Entry{}, fmt.Errorf("editable must be a boolean, got %s: %w",
				tomlTypeName(raw), types.ErrInvalidEntry)
		}
		dep.Editable = &b
	}

	if raw, ok := obj["only-deps"]; ok {
		b, ok := raw.(bool)
		if !ok {
			return types.Entry{}, fmt.Errorf("only-deps must be a boolean, got %s: %w",
				tomlTypeName(raw), types.ErrInvalidEntry)
		}
		dep.OnlyDeps = &b
	}

	return types.NewPath(dep), nil
}

// tomlTypeName names a decoded TOML value for error messages.
func tomlTypeName(v any) string {
	switch v.(type) {
	case nil:
		return "nothing"
	case string:
		return "string"
	case bool:
		return "boolean"
	case int64, int, float64:
		return "number"
	case []any:
		return "array"
	case map[string]any:
		return "table"
	default:
		return fmt.Sprintf("%T", v)
	}
}
