// Package id generates transaction identifiers.
// This is the canonical source for ID generation across the codebase.
package id
