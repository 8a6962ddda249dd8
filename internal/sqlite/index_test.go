package sqlite

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/pantry/pkg/types"
)

// demoGroups returns a small valid group set with its expansion.
func demoGroups() (types.Groups, map[string][]types.Entry) {
	groups := types.Groups{
		"test": {types.NewSpecifier("pytest")},
		"dev":  {types.NewInclude("test"), types.NewSpecifier("mypy")},
	}
	expanded := map[string][]types.Entry{
		"test": {types.NewSpecifier("pytest")},
		"dev":  {types.NewSpecifier("pytest"), types.NewSpecifier("mypy")},
	}
	return groups, expanded
}

func TestIndexManifest(t *testing.T) {
	b := attachTestBackend(t, testConfig(t))
	groups, expanded := demoGroups()

	manifestID, err := b.IndexManifest("proj/pyproject.toml", groups, expanded)
	require.NoError(t, err)
	require.NotEmpty(t, manifestID)

	manifests, err := b.Manifests()
	require.NoError(t, err)
	require.Len(t, manifests, 1)
	assert.Equal(t, "proj/pyproject.toml", manifests[0].Path)
	assert.Equal(t, manifestID, manifests[0].ManifestID)
	assert.NotEmpty(t, manifests[0].ScannedAt)

	records, err := b.Groups(nil)
	require.NoError(t, err)
	require.Len(t, records, 2)
	// Sorted by name: dev, test.
	assert.Equal(t, "dev", records[0].Name)
	assert.Equal(t, 2, records[0].EntryCount)
	assert.Equal(t, "test", records[1].Name)
	assert.Equal(t, 1, records[1].EntryCount)
}

func TestIndexManifestReplacesPreviousScan(t *testing.T) {
	b := attachTestBackend(t, testConfig(t))
	groups, expanded := demoGroups()

	first, err := b.IndexManifest("pyproject.toml", groups, expanded)
	require.NoError(t, err)

	second, err := b.IndexManifest("pyproject.toml", groups, expanded)
	require.NoError(t, err)
	assert.NotEqual(t, first, second)

	manifests, err := b.Manifests()
	require.NoError(t, err)
	require.Len(t, manifests, 1)
	assert.Equal(t, second, manifests[0].ManifestID)

	records, err := b.Groups(nil)
	require.NoError(t, err)
	assert.Len(t, records, 2)
}

func TestGroupsFilter(t *testing.T) {
	b := attachTestBackend(t, testConfig(t))
	groups, expanded := demoGroups()
	_, err := b.IndexManifest("pyproject.toml", groups, expanded)
	require.NoError(t, err)

	records, err := b.Groups(map[string]string{"name": "dev"})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "dev", records[0].Name)

	_, err = b.Groups(map[string]string{"entry_count": "2"})
	assert.ErrorIs(t, err, types.ErrInvalidFilter)
}

func TestRequirementsHoldExpandedEntries(t *testing.T) {
	b := attachTestBackend(t, testConfig(t))
	groups, expanded := demoGroups()
	_, err := b.IndexManifest("pyproject.toml", groups, expanded)
	require.NoError(t, err)

	devGroups, err := b.Groups(map[string]string{"name": "dev"})
	require.NoError(t, err)
	require.Len(t, devGroups, 1)

	reqs, err := b.Requirements(map[string]string{"group_id": devGroups[0].GroupID})
	require.NoError(t, err)
	require.Len(t, reqs, 2)

	var entry types.Entry
	require.NoError(t, json.Unmarshal([]byte(reqs[0].Value), &entry))
	assert.Equal(t, types.KindSpecifier, entry.Kind)
}

func TestJSONLSurvivesReattach(t *testing.T) {
	cfg := testConfig(t)
	b := NewBackend()
	require.NoError(t, b.Attach(cfg))

	groups, expanded := demoGroups()
	_, err := b.IndexManifest("pyproject.toml", groups, expanded)
	require.NoError(t, err)
	require.NoError(t, b.Detach())

	// JSONL files are the source of truth; a fresh attach rebuilds the
	// database from them.
	for _, file := range []string{manifestsFile, groupsFile, requirementsFile} {
		_, err := os.Stat(filepath.Join(cfg.DataDir, file))
		require.NoError(t, err, file)
	}

	b2 := attachTestBackend(t, cfg)
	manifests, err := b2.Manifests()
	require.NoError(t, err)
	require.Len(t, manifests, 1)

	records, err := b2.Groups(nil)
	require.NoError(t, err)
	assert.Len(t, records, 2)
}

func TestLoadToleratesUnknownFieldsAndMalformedLines(t *testing.T) {
	cfg := testConfig(t)

	jsonl := `{"manifest_id":"m-001","path":"pyproject.toml","scanned_at":"2026-01-15T10:30:00Z","future_field":"ignored"}
not json at all
{"manifest_id":"m-002","path":"other/pyproject.toml","scanned_at":"2026-01-15T10:31:00Z"}
`
	require.NoError(t, os.WriteFile(filepath.Join(cfg.DataDir, manifestsFile), []byte(jsonl), 0o644))

	b := attachTestBackend(t, cfg)
	manifests, err := b.Manifests()
	require.NoError(t, err)
	require.Len(t, manifests, 2)
	assert.Equal(t, "other/pyproject.toml", manifests[0].Path)
	assert.Equal(t, "pyproject.toml", manifests[1].Path)
}
