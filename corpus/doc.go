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

// Package corpus loads annotated verse collections from JSON source files.
//
// The loader is the single entry point for corpus data: it parses the source
// rows, splits combined verse/commentary text where needed, computes the
// normalized form of every verse and validates the result (non-empty corpus,
// unique ids, non-empty verses). Everything downstream of the loader can
// assume records are well-formed.
package corpus
