// Package naming decides whether two display names refer to the same entity.
//
// Two normalisation policies exist and are deliberately kept apart:
//
//   - Slug (lowercase, whitespace to hyphen, [a-z0-9-] only) is used for
//     remote lookups and when comparing against static index entries.
//   - Compact (lowercase, [a-z0-9] only) is used when verifying the declared
//     name inside a probed content file.
//
// Equality is exact string equality of the normalised forms. There is no
// fuzzy matching.
package naming
