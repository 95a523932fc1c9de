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

import "fmt"

// ValidateRecord validates a Record according to domain rules.
//
// Validation rules:
//   - ID must not be empty
//   - Verse must not be empty
//
// NOT validated (populated later):
//   - Normalized (computed by the corpus loader)
//   - Vector (can be empty until ingestion embeds the record)
func ValidateRecord(record *Record) error {
	if record == nil {
		return fmt.Errorf("%w: record is nil", ErrInvalidRecord)
	}

	if record.ID == "" {
		return fmt.Errorf("%w: %w", ErrInvalidRecord, ErrEmptyID)
	}

	if record.Verse == "" {
		return fmt.Errorf("%w: %w", ErrInvalidRecord, ErrEmptyVerse)
	}

	return nil
}

// ValidateRecords validates every record in a corpus slice and enforces
// corpus-level rules: the corpus must be non-empty and IDs must be unique.
func ValidateRecords(records []*Record) error {
	if len(records) == 0 {
		return ErrEmptyCorpus
	}

	seen := make(map[ID]struct{}, len(records))
	for i, record := range records {
		if err := ValidateRecord(record); err != nil {
			return fmt.Errorf("record %d: %w", i, err)
		}
		if _, ok := seen[record.ID]; ok {
			return fmt.Errorf("%w: %q", ErrDuplicateID, record.ID)
		}
		seen[record.ID] = struct{}{}
	}

	return nil
}
