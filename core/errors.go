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

package core

import "errors"

// Domain validation errors
var (
	// ErrInvalidRecord indicates a Record failed validation.
	ErrInvalidRecord = errors.New("invalid record")

	// ErrEmptyVerse indicates the Verse field is empty.
	ErrEmptyVerse = errors.New("verse text cannot be empty")

	// ErrEmptyID indicates the ID field is empty.
	ErrEmptyID = errors.New("record id cannot be empty")

	// ErrDuplicateID indicates two records in a corpus share an ID.
	ErrDuplicateID = errors.New("duplicate record id")

	// ErrEmptyCorpus indicates a corpus contains no records.
	ErrEmptyCorpus = errors.New("corpus contains no records")
)
