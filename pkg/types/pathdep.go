package types

// PathDependency refers to a local filesystem location, optionally
// installed in editable mode or restricted to its transitive
// dependencies only. Editable and OnlyDeps are tri-state: nil means
// the manifest did not set the key.
type PathDependency struct {
	Path     string   `json:"path"`
	Extras   []string `json:"extras,omitempty"`
	Editable *bool    `json:"editable,omitempty"`
	OnlyDeps *bool    `json:"only-deps,omitempty"`
}

// MergePathDependencies collapses duplicate instances of the same path
// encountered during group expansion into a single dependency:
//
//   - extras lists concatenate in encounter order;
//   - editable resolves to a single boolean only when every instance
//     that sets it agrees, otherwise it is treated as absent;
//   - only-deps is true only when every instance sets it true; if any
//     instance sets it otherwise the result is false; it stays absent
//     when no instance sets it.
//
// All instances must share the same Path; callers group by path first.
// Returns the zero value for an empty input.
func MergePathDependencies(deps []PathDependency) PathDependency {
	if len(deps) == 0 {
		return PathDependency{}
	}

	merged := PathDependency{Path: deps[0].Path}
	for _, d := range deps {
		merged.Extras = append(merged.Extras, d.Extras...)
	}

	merged.Editable = mergeAgreeing(deps, func(d PathDependency) *bool { return d.Editable })
	merged.OnlyDeps = mergeAllTrue(deps, func(d PathDependency) *bool { return d.OnlyDeps })
	return merged
}

// mergeAgreeing returns the shared value when every set instance
// agrees, nil otherwise.
func mergeAgreeing(deps []PathDependency, get func(PathDependency) *bool) *bool {
	var result *bool
	for _, d := range deps {
		v := get(d)
		if v == nil {
			continue
		}
		if result == nil {
			val := *v
			result = &val
			continue
		}
		if *result != *v {
			return nil
		}
	}
	return result
}

// mergeAllTrue returns true when every instance sets the flag true,
// false when any instance sets it to something else, and nil when no
// instance sets it at all.
func mergeAllTrue(deps []PathDependency, get func(PathDependency) *bool) *bool {
	anySet := false
	allTrue := true
	for _, d := range deps {
		v := get(d)
		if v == nil {
			allTrue = false
			continue
		}
		anySet = true
		if !*v {
			allTrue = false
		}
	}
	if !anySet {
		return nil
	}
	result := allTrue
	return &result
}
