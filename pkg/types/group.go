package types

import (
	"errors"
	"regexp"
	"sort"
)

// Group name rule: lowercase alphanumerics with internal hyphens,
// minimum length two. The first and last characters must be
// alphanumeric, so "-ab" and "ab-" are rejected along with "a".
var groupNameRE = regexp.MustCompile(`^[a-z0-9][a-z0-9-]*[a-z0-9]$`)

// Group and entry errors.
var (
	ErrInvalidGroupName   = errors.New("invalid group name")
	ErrGroupNotFound      = errors.New("group not found")
	ErrIncludeCycle       = errors.New("include cycle")
	ErrInvalidEntry       = errors.New("invalid group entry")
	ErrNoDependencyGroups = errors.New("manifest has no dependency-groups table")
)

// ValidateGroupName checks name against the group name rule.
// Returns ErrInvalidGroupName on failure.
func ValidateGroupName(name string) error {
	if !groupNameRE.MatchString(name) {
		return ErrInvalidGroupName
	}
	return nil
}

// Groups maps a group name to its ordered entry list.
type Groups map[string][]Entry

// Names returns all group names in sorted order for stable output.
func (g Groups) Names() []string {
	names := make([]string, 0, len(g))
	for name := range g {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Get returns the entries of the named group.
// Returns ErrGroupNotFound if the group does not exist.
func (g Groups) Get(name string) ([]Entry, error) {
	entries, ok := g[name]
	if !ok {
		return nil, ErrGroupNotFound
	}
	return entries, nil
}
