// JSONL loading on Attach.
package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
)

// jsonlTableMapping maps JSONL filenames to their SQLite tables and
// column lists. The order matters: tables with foreign keys load after
// their referenced tables.
var jsonlTableMapping = []struct {
	file    string
	table   string
	columns []string
}{
	{manifestsFile, "manifests", []string{"manifest_id", "path", "scanned_at"}},
	{groupsFile, "groups", []string{"group_id", "manifest_id", "name", "entry_count"}},
	{requirementsFile, "requirements", []string{"requirement_id", "group_id", "kind", "value"}},
}

// loadAllJSONL reads each JSONL file from the data directory and
// inserts its records into the corresponding SQLite table. Loading is
// transactional: all succeed or the database stays empty. Malformed
// lines are skipped, and unknown JSON fields are ignored so records
// written by newer generations still load.
func loadAllJSONL(db *sql.DB, dataDir string) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("beginning load transaction: %w", err)
	}
	defer tx.Rollback()

	for _, mapping := range jsonlTableMapping {
		records, err := readJSONL(filepath.Join(dataDir, mapping.file))
		if err != nil {
			return fmt.Errorf("reading %s: %w", mapping.file, err)
		}
		if len(records) == 0 {
			continue
		}
		if err := insertRecords(tx, mapping.table, mapping.columns, records); err != nil {
			return fmt.Errorf("loading %s into %s: %w", mapping.file, mapping.table, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing load transaction: %w", err)
	}
	return nil
}

// insertRecords inserts parsed JSONL records into a SQLite table. Only
// listed columns are extracted; extra JSON fields do not cause errors.
// Records that fail to parse or violate constraints are skipped.
func insertRecords(tx *sql.Tx, table string, columns []string, records []json.RawMessage) error {
	placeholders := make([]string, len(columns))
	for i := range placeholders {
		placeholders[i] = "?"
	}
	insertSQL := fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s)",
		table,
		strings.Join(columns, ", "),
		strings.Join(placeholders, ", "),
	)

	stmt, err := tx.Prepare(insertSQL)
	if err != nil {
		return fmt.Errorf("preparing insert for %s: %w", table, err)
	}
	defer stmt.Close()

	for _, rec := range records {
		var obj map[string]any
		if err := json.Unmarshal(rec, &obj); err != nil {
			continue
		}

		args := make([]any, len(columns))
		for i, col := range columns {
			args[i] = obj[col]
		}

		if _, err := stmt.Exec(args...); err != nil {
			continue
		}
	}
	return nil
}
