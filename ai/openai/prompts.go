package openai

import (
	"fmt"
	"strings"

	"github.com/spontanique/eventscout/ai"
)

const intentResponseSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "properties": {
    "categories": {
      "type": "array",
      "items": {"type": "string"}
    },
    "keywords": {
      "type": "array",
      "items": {"type": "string"}
    },
    "price_range": {
      "type": "object",
      "properties": {
        "min": {"type": "number", "minimum": 0},
        "max": {"type": "number", "minimum": 0}
      },
      "required": ["min", "max"],
      "additionalProperties": false
    },
    "time_preference": {"type": "string"},
    "location": {"type": "string"}
  },
  "required": ["categories", "keywords", "price_range", "time_preference", "location"],
  "additionalProperties": false
}`

const intentPromptTemplate = `You are an event search analyzer. Extract search parameters from natural language queries and return them as JSON.

Output ONLY valid JSON which complies with the schema given below. Do not include any preamble, explanation,
greeting, or acknowledgment. Start your response directly with the opening brace { and end with the closing
brace }. Your output must exactly follow this schema:

%s

Rules:
- categories: only values from this list: %s. Empty array if none apply.
- keywords: the meaningful search words from the query, lowercase.
- price_range: min and max in DKK. A min and max of 0 means free. Use {"min":0,"max":2000} when the query says nothing about price.
- time_preference: exactly one of: %s.
- location: the city the user asked about, default "%s".
- The JSON must parse without errors; no trailing commas, no extra keys, and no extraneous text outside the object.

Examples:
Input: "jazz music tonight"
Output:
{"categories":["music"],"keywords":["jazz","music"],"price_range":{"min":0,"max":2000},"time_preference":"tonight","location":"%s"}

Input: "cheap yoga classes"
Output:
{"categories":["fitness"],"keywords":["yoga","classes"],"price_range":{"min":0,"max":200},"time_preference":"anytime","location":"%s"}

Input: "games this weekend"
Output:
{"categories":["entertainment"],"keywords":["games"],"price_range":{"min":0,"max":2000},"time_preference":"weekend","location":"%s"}`

// buildSystemPrompt creates the system prompt with the category and time
// vocabularies and the default city embedded.
func buildSystemPrompt(defaultLocation string) string {
	return fmt.Sprintf(intentPromptTemplate,
		intentResponseSchema,
		strings.Join(ai.IntentCategories, ", "),
		strings.Join(ai.TimePreferences, ", "),
		defaultLocation,
		defaultLocation,
		defaultLocation,
		defaultLocation)
}
