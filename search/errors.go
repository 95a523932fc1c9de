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

package search

import "errors"

var (
	// ErrEmbedderRequired is returned when an embedder is not provided.
	ErrEmbedderRequired = errors.New("embedder required")

	// ErrInvalidK is returned when a retrieval is requested with k < 1.
	ErrInvalidK = errors.New("k must be at least 1")

	// ErrInvalidWeights is returned when fusion weights are negative or sum to zero.
	ErrInvalidWeights = errors.New("fusion weights must be non-negative and sum to a positive value")

	// ErrDimensionMismatch is returned when stored record vectors disagree
	// on embedding dimensionality.
	ErrDimensionMismatch = errors.New("embedding dimension mismatch")
)
