// Copyright 2025 Bayt Lab
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

// Package storage defines the persistence interfaces for corpus records and
// the MUS serialization helpers shared by all backends.
//
// The retrieval engine itself never touches storage at query time: it is
// built from an in-memory snapshot of the corpus. Storage exists so that
// ingested records, embeddings included, survive restarts and can be
// re-loaded without re-embedding. The canonical implementation backed by
// BadgerDB lives in the storage/badger sub-package.
package storage
