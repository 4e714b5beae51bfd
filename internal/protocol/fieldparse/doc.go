// Package fieldparse accumulates TAG=VALUE fields one character at a time.
//
// Ownership boundary:
// - tag digit accumulation and range checks
// - value length limits
// - per-field error isolation and commit
//
// Message framing, checksum and body-length validation belong to callers.
package fieldparse
