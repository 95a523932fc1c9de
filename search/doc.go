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

// Package search provides hybrid retrieval over an annotated verse corpus.
//
// The Engine type implements a multi-stage retrieval algorithm that combines:
//   - Exact matching on normalized verse text (authoritative, always rank 1)
//   - Sparse lexical retrieval using BM25 over an inverted index
//   - Dense semantic retrieval using embedding cosine similarity
//   - Weighted score fusion of the sparse and dense candidate lists
//   - A keyword-overlap fallback scan for queries nothing else matched
//
// An Engine is immutable once built: all retrieval paths are read-only, so a
// single Engine is safe for unbounded concurrent use. Refreshing the corpus
// means building a new Engine and swapping it in.
//
// All rankings are deterministic. Score ties are broken by record ID in
// ascending byte order at every stage, so the same query against the same
// corpus always yields the same result list, and the results for a smaller
// k are a prefix of the results for a larger k.
package search
