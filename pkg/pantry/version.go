// Package pantry exposes module-level metadata.
package pantry

// Version is the pantry release version.
const Version = "v0.2.0"
