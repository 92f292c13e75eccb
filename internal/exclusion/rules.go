// Package exclusion holds the user's exclusion rules and the engine that
// decides whether a normalized record belongs in the report.
package exclusion

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"github.com/titanous/json5"
)

// Rules is the declarative exclusion configuration. Every field is optional;
// an absent field places no restriction, except IncludedCalendarNames which
// is an allow-list: when empty no calendar event is kept.
type Rules struct {
	URLPrefixes           []string           `json:"urlPrefixes,omitempty"`
	URLContains           []string           `json:"urlContains,omitempty"`
	NotionIDs             []string           `json:"notionIds,omitempty"`
	TitleContains         []string           `json:"titleContains,omitempty"`
	MessageExclusions     []MessageExclusion `json:"messageExclusions,omitempty"`
	IncludedCalendarNames []string           `json:"includedCalendarNames,omitempty"`
}

// MessageExclusion drops messages on Channel that contain any of Patterns.
type MessageExclusion struct {
	Channel  string   `json:"channel"`
	Patterns []string `json:"patterns"`
}

// ValidationError reports rules text that does not match the schema.
// Err carries the validator's diagnostics.
type ValidationError struct {
	Err error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid exclusion rules: %v", e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }

const schemaURL = "dayreport://exclusions.schema.json"

const schemaJSON = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "additionalProperties": false,
  "$defs": {
    "patterns": {
      "type": "array",
      "items": {"type": "string", "minLength": 1}
    }
  },
  "properties": {
    "urlPrefixes":   {"$ref": "#/$defs/patterns"},
    "urlContains":   {"$ref": "#/$defs/patterns"},
    "notionIds": {
      "type": "array",
      "items": {"type": "string", "pattern": "^[0-9a-f]{32}$"}
    },
    "titleContains": {"$ref": "#/$defs/patterns"},
    "messageExclusions": {
      "type": "array",
      "items": {
        "type": "object",
        "additionalProperties": false,
        "required": ["channel", "patterns"],
        "properties": {
          "channel":  {"type": "string", "minLength": 1},
          "patterns": {"$ref": "#/$defs/patterns"}
        }
      }
    },
    "includedCalendarNames": {"$ref": "#/$defs/patterns"}
  }
}`

var compileSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	doc, err := jsonschema.UnmarshalJSON(strings.NewReader(schemaJSON))
	if err != nil {
		return nil, fmt.Errorf("load rules schema: %w", err)
	}
	c := jsonschema.NewCompiler()
	if err := c.AddResource(schemaURL, doc); err != nil {
		return nil, fmt.Errorf("add rules schema: %w", err)
	}
	return c.Compile(schemaURL)
})

// Parse decodes JSON5 rules text and validates it against the rules schema.
// Schema violations are returned as *ValidationError.
func Parse(text []byte) (Rules, error) {
	var raw any
	if err := json5.Unmarshal(text, &raw); err != nil {
		return Rules{}, fmt.Errorf("parse exclusion rules: %w", err)
	}

	// Round-trip through plain JSON so the validator and the struct decoder
	// see the same document.
	plain, err := json.Marshal(raw)
	if err != nil {
		return Rules{}, fmt.Errorf("normalize exclusion rules: %w", err)
	}

	schema, err := compileSchema()
	if err != nil {
		return Rules{}, err
	}
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(plain))
	if err != nil {
		return Rules{}, fmt.Errorf("normalize exclusion rules: %w", err)
	}
	if err := schema.Validate(inst); err != nil {
		return Rules{}, &ValidationError{Err: err}
	}

	var rules Rules
	if err := json.Unmarshal(plain, &rules); err != nil {
		return Rules{}, fmt.Errorf("decode exclusion rules: %w", err)
	}
	return rules, nil
}
