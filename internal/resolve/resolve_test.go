package resolve

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/pantry/pkg/types"
)

func boolPtr(b bool) *bool { return &b }

func specifiers(entries []types.Entry) []string {
	var out []string
	for _, e := range entries {
		if e.Kind == types.KindSpecifier {
			out = append(out, e.Specifier)
		}
	}
	return out
}

func TestExpandFlatGroup(t *testing.T) {
	groups := types.Groups{
		"test": {types.NewSpecifier("pytest"), types.NewSpecifier("coverage")},
	}

	entries, err := Expand(groups, "test")
	require.NoError(t, err)
	assert.Equal(t, []string{"pytest", "coverage"}, specifiers(entries))
}

func TestExpandIncludeOrder(t *testing.T) {
	// Includes are replaced in place, depth-first.
	groups := types.Groups{
		"base": {types.NewSpecifier("requests")},
		"dev": {
			types.NewSpecifier("black"),
			types.NewInclude("base"),
			types.NewSpecifier("mypy"),
		},
	}

	entries, err := Expand(groups, "dev")
	require.NoError(t, err)
	assert.Equal(t, []string{"black", "requests", "mypy"}, specifiers(entries))
}

func TestExpandDiamond(t *testing.T) {
	// base is reachable through both left and right; its entries
	// appear once, at first encounter.
	groups := types.Groups{
		"base":  {types.NewSpecifier("requests")},
		"left":  {types.NewInclude("base"), types.NewSpecifier("flask")},
		"right": {types.NewInclude("base"), types.NewSpecifier("django")},
		"all":   {types.NewInclude("left"), types.NewInclude("right")},
	}

	entries, err := Expand(groups, "all")
	require.NoError(t, err)
	assert.Equal(t, []string{"requests", "flask", "django"}, specifiers(entries))
}

func TestExpandCycle(t *testing.T) {
	groups := types.Groups{
		"ga": {types.NewInclude("gb")},
		"gb": {types.NewInclude("gc")},
		"gc": {types.NewInclude("ga")},
	}

	_, err := Expand(groups, "ga")
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrIncludeCycle)
	assert.Contains(t, err.Error(), "ga -> gb -> gc -> ga")
}

func TestExpandSelfInclude(t *testing.T) {
	groups := types.Groups{
		"dev": {types.NewInclude("dev")},
	}

	_, err := Expand(groups, "dev")
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrIncludeCycle)
}

func TestExpandUnknownRoot(t *testing.T) {
	_, err := Expand(types.Groups{}, "missing")
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrGroupNotFound)
	assert.Contains(t, err.Error(), `"missing"`)
}

func TestExpandUnknownInclude(t *testing.T) {
	groups := types.Groups{
		"dev": {types.NewInclude("nope")},
	}

	_, err := Expand(groups, "dev")
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrGroupNotFound)
	assert.Contains(t, err.Error(), `"nope"`)
}

func TestExpandDropsDuplicateSpecifiers(t *testing.T) {
	groups := types.Groups{
		"base": {types.NewSpecifier("pytest")},
		"dev":  {types.NewSpecifier("pytest"), types.NewInclude("base"), types.NewSpecifier("mypy")},
	}

	entries, err := Expand(groups, "dev")
	require.NoError(t, err)
	assert.Equal(t, []string{"pytest", "mypy"}, specifiers(entries))
}

func TestExpandMergesPathDependencies(t *testing.T) {
	groups := types.Groups{
		"one": {types.NewPath(types.PathDependency{
			Path: ".", Extras: []string{"mysql"}, Editable: boolPtr(true), OnlyDeps: boolPtr(true),
		})},
		"two": {types.NewPath(types.PathDependency{
			Path: ".", Extras: []string{"redis"}, Editable: boolPtr(false), OnlyDeps: boolPtr(false),
		})},
		"all": {types.NewInclude("one"), types.NewInclude("two")},
	}

	entries, err := Expand(groups, "all")
	require.NoError(t, err)
	require.Len(t, entries, 1)

	dep := entries[0].Path
	require.NotNil(t, dep)
	assert.Equal(t, ".", dep.Path)
	assert.Equal(t, []string{"mysql", "redis"}, dep.Extras)
	// Disagreeing editable resolves to absent.
	assert.Nil(t, dep.Editable)
	// Disagreeing only-deps resolves to false.
	require.NotNil(t, dep.OnlyDeps)
	assert.False(t, *dep.OnlyDeps)
}

func TestExpandKeepsDistinctPaths(t *testing.T) {
	groups := types.Groups{
		"local": {
			types.NewPath(types.PathDependency{Path: "."}),
			types.NewPath(types.PathDependency{Path: "../lib"}),
		},
	}

	entries, err := Expand(groups, "local")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, ".", entries[0].Path.Path)
	assert.Equal(t, "../lib", entries[1].Path.Path)
}

func TestExpandAll(t *testing.T) {
	groups := types.Groups{
		"base":   {types.NewSpecifier("requests")},
		"dev":    {types.NewInclude("base"), types.NewSpecifier("mypy")},
		"broken": {types.NewInclude("missing")},
	}

	expanded, problems := ExpandAll(groups)

	require.Len(t, problems, 1)
	assert.ErrorIs(t, problems[0], types.ErrGroupNotFound)
	assert.Contains(t, problems[0].Error(), `group "broken"`)

	require.Contains(t, expanded, "base")
	require.Contains(t, expanded, "dev")
	assert.NotContains(t, expanded, "broken")
	assert.Equal(t, []string{"requests", "mypy"}, specifiers(expanded["dev"]))
}
