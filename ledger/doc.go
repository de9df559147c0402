// Package ledger persists the user's ordered list of character records.
//
// The whole list is read and written as a single unit under one key of a
// primary storage.Store. An optional secondary store receives a mirrored
// copy of every successful write and serves reads when the primary cannot.
//
// # Upsert
//
// Upsert matches an incoming record against the stored list with an ordered
// cascade of name matchers (see DefaultMatchers). The first stage that finds
// any record wins; within a stage the earliest record wins. A matched slot
// is replaced by the incoming record, but the slot keeps its original name:
//
//	stored:   {"name": "Garb (Tamta)", "level": 2}
//	incoming: {"name": "Garb", "level": 3}
//	result:   {"name": "Garb (Tamta)", "level": 3}
//
// Upsert is a load, merge, save sequence without locking. Concurrent writers
// race on the full list and the last write wins.
//
// # Portable format
//
// Export wraps the list with metadata:
//
//	{
//	  "exportDate": "2025-01-02T03:04:05.000Z",
//	  "version": "1.0",
//	  "characters": [ ... ]
//	}
//
// Import accepts that shape or a bare JSON array.
package ledger
