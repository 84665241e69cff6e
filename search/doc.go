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


// Package search provides lexical relevance scoring and ranking over the
// event catalog.
//
// The Searcher type implements a single-pass pipeline:
//   - Tokenization and one-hop firewall synonym expansion
//   - Time and price preference parsing from the raw query
//   - Hard filtering by time window, price window and category
//   - Multi-signal weighted scoring (title, category, description, venue)
//   - Threshold filtering and deterministic ordering
//
// The pipeline is a pure function of its inputs: the static registries are
// immutable after construction, all per-call state is freshly allocated, and
// concurrent searches are race-free without locking.
package search
