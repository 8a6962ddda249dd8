// Package sqlite implements the workspace index for Pantry: SQLite is
// the query engine, JSONL files in the data directory are the source
// of truth. The database file is rebuilt from JSONL on every Attach.
package sqlite

// Schema DDL for the index tables.
const (
	createManifests = `CREATE TABLE manifests (
    manifest_id TEXT PRIMARY KEY,
    path TEXT NOT NULL UNIQUE,
    scanned_at TEXT NOT NULL
);`

	createGroups = `CREATE TABLE groups (
    group_id TEXT PRIMARY KEY,
    manifest_id TEXT NOT NULL,
    name TEXT NOT NULL,
    entry_count INTEGER NOT NULL,
    FOREIGN KEY (manifest_id) REFERENCES manifests(manifest_id)
);`

	createRequirements = `CREATE TABLE requirements (
    requirement_id TEXT PRIMARY KEY,
    group_id TEXT NOT NULL,
    kind TEXT NOT NULL,
    value TEXT NOT NULL,
    FOREIGN KEY (group_id) REFERENCES groups(group_id)
);`
)

// allSchemas lists DDL statements in creation order: referenced tables
// before tables holding their foreign keys.
var allSchemas = []string{
	createManifests,
	createGroups,
	createRequirements,
}
