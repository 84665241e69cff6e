// Copyright 2025 Spontanique ApS
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

// ValidateEvent validates an Event according to domain rules.
//
// Validation rules:
//   - Title must not be empty
//   - Category must not be empty
//   - Price must not be negative
//   - SourceType must be valid (Native or External)
//   - EventDate must be set
//
// NOT validated:
//   - ID (0 is valid; IDs are assigned by storage or content hashing)
//   - Category membership in the category vocabulary (the search engine simply
//     never matches unknown categories)
func ValidateEvent(event *Event) error {
	if event == nil {
		return fmt.Errorf("%w: event is nil", ErrInvalidEvent)
	}

	if event.Title == "" {
		return fmt.Errorf("%w: %w", ErrInvalidEvent, ErrEmptyTitle)
	}

	if event.Category == "" {
		return fmt.Errorf("%w: %w", ErrInvalidEvent, ErrEmptyCategory)
	}

	if event.Price < 0 {
		return fmt.Errorf("%w: %w", ErrInvalidEvent, ErrNegativePrice)
	}

	if err := ValidateSourceType(event.Source); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidEvent, err)
	}

	if event.EventDate.IsZero() {
		return fmt.Errorf("%w: %w", ErrInvalidEvent, ErrMissingEventDate)
	}

	return nil
}

// ValidateSourceType validates that a SourceType has a valid value.
func ValidateSourceType(source SourceType) error {
	if source != SourceTypeNative && source != SourceTypeExternal {
		return fmt.Errorf("%w: value %d", ErrInvalidSourceType, source)
	}
	return nil
}
