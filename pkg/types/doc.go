// Package types defines dependency group entities, the index Config,
// and standard errors for the Pantry manifest tooling.
package types
