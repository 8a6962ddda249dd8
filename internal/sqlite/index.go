// Index operations: recording manifest scans and querying them.
package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/mesh-intelligence/pantry/pkg/types"
)

// IndexManifest records one manifest scan: the manifest itself, its
// groups, and each group's flattened expansion. A previous scan of the
// same path is replaced. Returns the manifest record ID.
func (b *Backend) IndexManifest(path string, groups types.Groups, expanded map[string][]types.Entry) (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.checkAttached(); err != nil {
		return "", err
	}

	tx, err := b.db.Begin()
	if err != nil {
		return "", fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if err := deleteManifestRows(tx, path); err != nil {
		return "", err
	}

	manifestID := newUUID()
	scannedAt := time.Now().UTC().Format(time.RFC3339)
	if _, err := tx.Exec(
		"INSERT INTO manifests (manifest_id, path, scanned_at) VALUES (?, ?, ?)",
		manifestID, path, scannedAt); err != nil {
		return "", fmt.Errorf("inserting manifest: %w", err)
	}

	for _, name := range groups.Names() {
		groupID := newUUID()
		if _, err := tx.Exec(
			"INSERT INTO groups (group_id, manifest_id, name, entry_count) VALUES (?, ?, ?, ?)",
			groupID, manifestID, name, len(groups[name])); err != nil {
			return "", fmt.Errorf("inserting group %q: %w", name, err)
		}

		for _, entry := range expanded[name] {
			value, err := json.Marshal(entry)
			if err != nil {
				return "", fmt.Errorf("encoding requirement: %w", err)
			}
			if _, err := tx.Exec(
				"INSERT INTO requirements (requirement_id, group_id, kind, value) VALUES (?, ?, ?, ?)",
				newUUID(), groupID, entry.Kind, string(value)); err != nil {
				return "", fmt.Errorf("inserting requirement: %w", err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("committing transaction: %w", err)
	}

	if err := b.persistAll(); err != nil {
		return "", err
	}
	return manifestID, nil
}

// deleteManifestRows removes a manifest and its dependent rows.
func deleteManifestRows(tx *sql.Tx, path string) error {
	var manifestID string
	err := tx.QueryRow("SELECT manifest_id FROM manifests WHERE path = ?", path).Scan(&manifestID)
	if err == sql.ErrNoRows {
		return nil
	}
	if err != nil {
		return fmt.Errorf("looking up manifest: %w", err)
	}

	if _, err := tx.Exec(
		"DELETE FROM requirements WHERE group_id IN (SELECT group_id FROM groups WHERE manifest_id = ?)",
		manifestID); err != nil {
		return fmt.Errorf("deleting requirements: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM groups WHERE manifest_id = ?", manifestID); err != nil {
		return fmt.Errorf("deleting groups: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM manifests WHERE manifest_id = ?", manifestID); err != nil {
		return fmt.Errorf("deleting manifest: %w", err)
	}
	return nil
}

// Manifests returns all indexed manifests ordered by path.
func (b *Backend) Manifests() ([]types.ManifestRecord, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if err := b.checkAttached(); err != nil {
		return nil, err
	}
	return queryManifests(b.db)
}

// Filterable columns per query.
var (
	groupFilterColumns       = map[string]bool{"manifest_id": true, "name": true}
	requirementFilterColumns = map[string]bool{"group_id": true, "kind": true}
)

// Groups returns group records matching the filter. Allowed filter
// keys: manifest_id, name. An empty filter matches all groups.
func (b *Backend) Groups(filter map[string]string) ([]types.GroupRecord, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if err := b.checkAttached(); err != nil {
		return nil, err
	}

	where, args, err := buildWhere(filter, groupFilterColumns)
	if err != nil {
		return nil, err
	}

	rows, err := b.db.Query(
		"SELECT group_id, manifest_id, name, entry_count FROM groups"+where+" ORDER BY name", args...)
	if err != nil {
		return nil, fmt.Errorf("querying groups: %w", err)
	}
	defer rows.Close()

	var records []types.GroupRecord
	for rows.Next() {
		var r types.GroupRecord
		if err := rows.Scan(&r.GroupID, &r.ManifestID, &r.Name, &r.EntryCount); err != nil {
			return nil, fmt.Errorf("scanning group: %w", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// Requirements returns requirement records matching the filter.
// Allowed filter keys: group_id, kind.
func (b *Backend) Requirements(filter map[string]string) ([]types.RequirementRecord, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if err := b.checkAttached(); err != nil {
		return nil, err
	}

	where, args, err := buildWhere(filter, requirementFilterColumns)
	if err != nil {
		return nil, err
	}

	rows, err := b.db.Query(
		"SELECT requirement_id, group_id, kind, value FROM requirements"+where+" ORDER BY requirement_id", args...)
	if err != nil {
		return nil, fmt.Errorf("querying requirements: %w", err)
	}
	defer rows.Close()

	var records []types.RequirementRecord
	for rows.Next() {
		var r types.RequirementRecord
		if err := rows.Scan(&r.RequirementID, &r.GroupID, &r.Kind, &r.Value); err != nil {
			return nil, fmt.Errorf("scanning requirement: %w", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// buildWhere builds an equality WHERE clause from a filter, rejecting
// keys outside the allowed column set with ErrInvalidFilter.
func buildWhere(filter map[string]string, allowed map[string]bool) (string, []any, error) {
	if len(filter) == 0 {
		return "", nil, nil
	}

	keys := make([]string, 0, len(filter))
	for k := range filter {
		if !allowed[k] {
			return "", nil, fmt.Errorf("%w: %q", types.ErrInvalidFilter, k)
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	clauses := make([]string, 0, len(keys))
	args := make([]any, 0, len(keys))
	for _, k := range keys {
		clauses = append(clauses, k+" = ?")
		args = append(args, filter[k])
	}
	return " WHERE " + strings.Join(clauses, " AND "), args, nil
}

// queryManifests reads every manifest row.
func queryManifests(db *sql.DB) ([]types.ManifestRecord, error) {
	rows, err := db.Query("SELECT manifest_id, path, scanned_at FROM manifests ORDER BY path")
	if err != nil {
		return nil, fmt.Errorf("querying manifests: %w", err)
	}
	defer rows.Close()

	var records []types.ManifestRecord
	for rows.Next() {
		var r types.ManifestRecord
		if err := rows.Scan(&r.ManifestID, &r.Path, &r.ScannedAt); err != nil {
			return nil, fmt.Errorf("scanning manifest: %w", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// persistAll exports every index table to its JSONL file atomically.
// Callers must hold b.mu.
func (b *Backend) persistAll() error {
	manifests, err := queryManifests(b.db)
	if err != nil {
		return err
	}
	groups, err := b.queryAllGroups()
	if err != nil {
		return err
	}
	requirements, err := b.queryAllRequirements()
	if err != nil {
		return err
	}

	if err := persistRecords(b.config.DataDir, manifestsFile, manifests); err != nil {
		return err
	}
	if err := persistRecords(b.config.DataDir, groupsFile, groups); err != nil {
		return err
	}
	return persistRecords(b.config.DataDir, requirementsFile, requirements)
}

func (b *Backend) queryAllGroups() ([]types.GroupRecord, error) {
	rows, err := b.db.Query("SELECT group_id, manifest_id, name, entry_count FROM groups ORDER BY group_id")
	if err != nil {
		return nil, fmt.Errorf("querying groups: %w", err)
	}
	defer rows.Close()

	var records []types.GroupRecord
	for rows.Next() {
		var r types.GroupRecord
		if err := rows.Scan(&r.GroupID, &r.ManifestID, &r.Name, &r.EntryCount); err != nil {
			return nil, fmt.Errorf("scanning group: %w", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

func (b *Backend) queryAllRequirements() ([]types.RequirementRecord, error) {
	rows, err := b.db.Query("SELECT requirement_id, group_id, kind, value FROM requirements ORDER BY requirement_id")
	if err != nil {
		return nil, fmt.Errorf("querying requirements: %w", err)
	}
	defer rows.Close()

	var records []types.RequirementRecord
	for rows.Next() {
		var r types.RequirementRecord
		if err := rows.Scan(&r.RequirementID, &r.GroupID, &r.Kind, &r.Value); err != nil {
			return nil, fmt.Errorf("scanning requirement: %w", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// persistRecords writes one table's records to its JSONL file.
func persistRecords[T any](dataDir, file string, records []T) error {
	raw, err := marshalRecords(records)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", file, err)
	}
	if err := writeJSONL(filepath.Join(dataDir, file), raw); err != nil {
		return fmt.Errorf("persisting %s: %w", file, err)
	}
	return nil
}
