package types

import "errors"

// Index lifecycle errors.
var (
	ErrIndexDetached   = errors.New("index is detached")
	ErrAlreadyAttached = errors.New("index is already attached")
	ErrInvalidFilter   = errors.New("invalid filter key")
)

// ManifestRecord is one indexed manifest scan.
type ManifestRecord struct {
	ManifestID string `json:"manifest_id"`
	Path       string `json:"path"`
	ScannedAt  string `json:"scanned_at"`
}

// GroupRecord is one dependency group of an indexed manifest.
type GroupRecord struct {
	GroupID    string `json:"group_id"`
	ManifestID string `json:"manifest_id"`
	Name       string `json:"name"`
	EntryCount int    `json:"entry_count"`
}

// RequirementRecord is one entry of a group's flattened expansion.
// Value holds the JSON encoding of the expanded Entry.
type RequirementRecord struct {
	RequirementID string `json:"requirement_id"`
	GroupID       string `json:"group_id"`
	Kind          string `json:"kind"`
	Value         string `json:"value"`
}
