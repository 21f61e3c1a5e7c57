// Package normalize turns located candidates into canonical records.
//
// Normalization is pure and idempotent. Missing values are replaced with
// model.Placeholder rather than left empty, and a candidate that lacks its
// identifying field (a listing title, a row's natural key) is rejected with
// model.ErrFieldExtraction so that the caller can drop it and continue.
package normalize
