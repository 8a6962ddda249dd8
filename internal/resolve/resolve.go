// Package resolve expands dependency groups: include references are
// replaced by the target group's entries, duplicate specifiers are
// dropped, and duplicate path dependencies are merged.
package resolve

import (
	"fmt"
	"strings"

	"github.com/mesh-intelligence/pantry/pkg/types"
)

// Expand flattens the named group. Includes are resolved depth-first
// in entry order. A group reached twice through different include
// chains (a diamond) contributes its entries once. Include chains that
// revisit a group currently being expanded are cycles and fail with
// types.ErrIncludeCycle; unknown groups fail with types.ErrGroupNotFound.
//
// The result contains only specifier and path entries. Exact duplicate
// specifier strings are dropped (first occurrence kept) and duplicate
// path values are merged per types.MergePathDependencies.
func Expand(groups types.Groups, name string) ([]types.Entry, error) {
	e := &expander{
		groups:  groups,
		inStack: make(map[string]bool),
		done:    make(map[string]bool),
	}
	if err := e.expand(name); err != nil {
		return nil, err
	}
	return e.finish(), nil
}

// ExpandAll expands every group, in sorted name order. Groups that
// fail to expand are omitted from the result and reported in the
// returned error list.
func ExpandAll(groups types.Groups) (map[string][]types.Entry, []error) {
	result := make(map[string][]types.Entry, len(groups))
	var problems []error
	for _, name := range groups.Names() {
		entries, err := Expand(groups, name)
		if err != nil {
			problems = append(problems, fmt.Errorf("group %q: %w", name, err))
			continue
		}
		result[name] = entries
	}
	return result, problems
}

// expander carries DFS state for one Expand call.
type expander struct {
	groups  types.Groups
	stack   []string        // current include chain, for cycle reporting
	inStack map[string]bool // groups on the chain
	done    map[string]bool // groups already expanded (diamond skip)
	flat    []types.Entry   // specifier and path entries in encounter order
}

func (e *expander) expand(name string) error {
	if e.inStack[name] {
		return fmt.Errorf("%w: %s", types.ErrIncludeCycle,
			strings.Join(append(e.stack, name), " -> "))
	}
	if e.done[name] {
		return nil
	}

	entries, err := e.groups.Get(name)
	if err != nil {
		return fmt.Errorf("%w: %q", types.ErrGroupNotFound, name)
	}

	e.stack = append(e.stack, name)
	e.inStack[name] = true
	defer func() {
		e.stack = e.stack[:len(e.stack)-1]
		delete(e.inStack, name)
	}()

	for _, entry := range entries {
		if entry.Kind == types.KindInclude {
			if err := e.expand(entry.Include); err != nil {
				return err
			}
			continue
		}
		e.flat = append(e.flat, entry)
	}

	e.done[name] = true
	return nil
}

// finish deduplicates specifiers and merges path dependencies while
// preserving first-occurrence order.
func (e *expander) finish() []types.Entry {
	seenSpec := make(map[string]bool)
	pathDeps := make(map[string][]types.PathDependency)
	var order []types.Entry

	for _, entry := range e.flat {
		switch entry.Kind {
		case types.KindSpecifier:
			if seenSpec[entry.Specifier] {
				continue
			}
			seenSpec[entry.Specifier] = true
			order = append(order, entry)
		case types.KindPath:
			p := entry.Path.Path
			if _, seen := pathDeps[p]; !seen {
				order = append(order, entry)
			}
			pathDeps[p] = append(pathDeps[p], *entry.Path)
		}
	}

	result := make([]types.Entry, 0, len(order))
	for _, entry := range order {
		if entry.Kind == types.KindPath {
			merged := types.MergePathDependencies(pathDeps[entry.Path.Path])
			entry = types.NewPath(merged)
		}
		result = append(result, entry)
	}
	return result
}
