package types

// Entry kinds. Every entry in a group is exactly one of these.
const (
	KindSpecifier = "specifier"
	KindInclude   = "include"
	KindPath      = "path"
)

// Entry is one element of a dependency group: a version-specifier
// string, an include reference to another group, or a path dependency.
// Exactly one of the payload fields is meaningful, selected by Kind.
type Entry struct {
	Kind      string          `json:"kind"`
	Specifier string          `json:"specifier,omitempty"`
	Include   string          `json:"include,omitempty"`
	Path      *PathDependency `json:"path,omitempty"`
}

// NewSpecifier returns a specifier entry for the given requirement string.
func NewSpecifier(spec string) Entry {
	return Entry{Kind: KindSpecifier, Specifier: spec}
}

// NewInclude returns an include entry referencing the named group.
func NewInclude(group string) Entry {
	return Entry{Kind: KindInclude, Include: group}
}

// NewPath returns a path dependency entry.
func NewPath(dep PathDependency) Entry {
	return Entry{Kind: KindPath, Path: &dep}
}

// Validate checks structural consistency of the entry.
// Returns ErrInvalidEntry if the kind is unknown or the payload for the
// kind is missing, and ErrInvalidGroupName for an include entry whose
// target violates the group name rule.
func (e Entry) Validate() error {
	switch e.Kind {
	case KindSpecifier:
		if e.Specifier == "" {
			return ErrInvalidEntry
		}
	case KindInclude:
		if err := ValidateGroupName(e.Include); err != nil {
			return err
		}
	case KindPath:
		if e.Path == nil || e.Path.Path == "" {
			return ErrInvalidEntry
		}
	default:
		return ErrInvalidEntry
	}
	return nil
}
