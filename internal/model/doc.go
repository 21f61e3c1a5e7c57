// Package model defines the data structures shared by both extraction pipelines.
//
// This package contains the following main types:
//   - Candidate / RowCandidate: A located unit awaiting normalization
//   - Record / Listing: A normalized entity with ordered fields
//   - ResultSet: The ordered records of one invocation
//   - Run: The state owned by one pipeline invocation
//
// It also holds the failure sentinels (ErrTransport, ErrStructureMismatch,
// ErrFieldExtraction, ErrPersistence) every other package wraps, so that a
// caller can classify an error without importing the component that raised it.
package model
