// Package types defines the card and column domain types, the DocumentStore
// interface, the proposal outcome taxonomy, and standard errors for the
// tripboard reconciliation engine.
package types
