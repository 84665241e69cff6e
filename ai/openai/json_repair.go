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


package openai

import "unicode"

// repairJSON fixes the two kinds of malformed output small local models most
// often produce: object keys missing their opening quote (`{min": 0}` or
// `{min: 0}`) and trailing commas before a closing brace or bracket. Content
// inside string literals is never touched.
func repairJSON(s string) string {
	in := []rune(s)
	out := make([]rune, 0, len(in)+16)

	inString := false
	escaped := false

	for i := 0; i < len(in); i++ {
		ch := in[i]

		if inString {
			out = append(out, ch)
			if escaped {
				escaped = false
			} else if ch == '\\' {
				escaped = true
			} else if ch == '"' {
				inString = false
			}
			continue
		}

		switch {
		case ch == '"':
			inString = true
			out = append(out, ch)

		case ch == ',':
			// Drop the comma if only whitespace separates it from a closer.
			j := i + 1
			for j < len(in) && unicode.IsSpace(in[j]) {
				j++
			}
			if j < len(in) && (in[j] == '}' || in[j] == ']') {
				continue
			}
			out = append(out, ch)

		case ch == '{' || ch == '[':
			out = append(out, ch)

		case isIdentRune(ch) && keyPosition(out):
			// Bare key: collect it, skip a stray closing quote, and emit the
			// key properly quoted when a colon follows.
			start := i
			for i < len(in) && isIdentRune(in[i]) {
				i++
			}
			key := in[start:i]
			if i < len(in) && in[i] == '"' {
				i++
			}
			j := i
			for j < len(in) && unicode.IsSpace(in[j]) {
				j++
			}
			if j < len(in) && in[j] == ':' {
				out = append(out, '"')
				out = append(out, key...)
				out = append(out, '"')
				i--
				continue
			}
			// Not a key after all; restore what was consumed.
			out = append(out, in[start:i]...)
			i--

		default:
			out = append(out, ch)
		}
	}

	return string(out)
}

// keyPosition reports whether the output so far ends where an object key may
// start, skipping trailing whitespace.
func keyPosition(out []rune) bool {
	for i := len(out) - 1; i >= 0; i-- {
		if unicode.IsSpace(out[i]) {
			continue
		}
		return out[i] == '{' || out[i] == ','
	}
	return false
}
