// Package discovery finds locally stored custom content files.
//
// There is no directory listing available to the content fetcher, so the
// Loader combines two sources per category:
//   - the static index (index.json), whose entries are kept only if their
//     file actually loads
//   - speculative probing of conventional filenames derived from a seed
//     vocabulary of common names, in three spellings plus a few prefixes
//
// The four categories are scanned concurrently on a worker pool. Errors are
// never returned; a candidate that cannot be fetched or parsed simply does
// not appear in the result.
//
// A name reachable through two filenames (for example through the index and
// through a probed spelling) appears twice.
package discovery
