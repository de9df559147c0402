// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


// Package storage provides the storage abstraction for character data.
//
// A Store is a durable byte store with one value per key. The ledger treats
// every backend the same way, so desktop and web targets only differ in
// which implementation is chosen at startup:
//
//   - storage/file: one file per key in an application data directory,
//     written atomically (desktop primary store)
//   - storage/badger: BadgerDB key-value store (web-mode local storage and
//     desktop backup)
//   - storage/sqlite: SQLite key-value table (alternative local store)
//
// # Constructor Return Type Pattern
//
// Backend constructors return their concrete type so callers can reach
// backend-specific helpers such as IsClosed or Dir. Consumers that only
// persist data should depend on the Store interface.
//
// # Thread Safety
//
// All implementations must be safe for concurrent use. Note that this says
// nothing about read-modify-write sequences built on top of a Store; those
// are last-write-wins.
//
// # Context Support
//
// All Store methods accept context.Context. Pass context.Background() for
// operations without specific timeout requirements.
package storage
