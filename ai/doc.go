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

// Package ai provides abstractions for the embedding services used by Bayt.
//
// The package defines the Embedder interface that the retrieval engine and
// the ingestion pipeline depend on, following the dependency inversion
// principle: the domain and business logic depend on abstractions rather
// than on a concrete embedding backend.
//
// # Implementation Packages
//
// The ai package includes two implementation sub-packages:
//
//   - ai/openai: Production implementation using OpenAI-compatible APIs
//   - ai/mock: Test doubles for unit testing without external dependencies
//
// # Constructor Return Type Pattern
//
// Public constructors (openai.NewEmbedder) return INTERFACE types to enforce
// abstraction and prevent accidental coupling to a concrete implementation.
//
//	embedder, err := openai.NewEmbedder(config)  // returns ai.Embedder
//
// The test utility constructor (mock.NewMockEmbedder) returns a CONCRETE type
// to enable test assertions and behavior injection via the mock's public
// fields and methods (EmbedTextFunc, CallCount, Reset).
//
// # Usage Example
//
//	config := ai.NewConfig(
//	    ai.WithEmbeddingHost("http://localhost:11434"),
//	    ai.WithEmbeddingModel("intfloat/multilingual-e5-base"),
//	)
//	embedder, err := openai.NewEmbedder(config)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	vector, err := embedder.EmbedText(ctx, "قفا نبك من ذكرى حبيب ومنزل")
package ai
