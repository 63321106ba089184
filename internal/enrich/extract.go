// internal/enrich/extract.go
package enrich

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Payload is what the model is asked to return for one product.
type Payload struct {
	Tags       []string               `json:"tags"`
	Materials  []string               `json:"materials"`
	Attributes map[string]interface{} `json:"attributes"`
}

// ExtractJSON pulls the first balanced {...} block out of a model reply.
// Models wrap JSON in prose or markdown fences often enough that plain
// unmarshalling of the whole reply is not reliable.
func ExtractJSON(raw string) (string, error) {
	start := -1
	depth := 0
	inString := false
	escaped := false

	for i, r := range raw {
		if start >= 0 && inString {
			switch {
			case escaped:
				escaped = false
			case r == '\\':
				escaped = true
			case r == '"':
				inString = false
			}
			continue
		}

		switch r {
		case '{':
			if start < 0 {
				start = i
			}
			depth++
		case '}':
			if start >= 0 {
				depth--
				if depth == 0 {
					return raw[start : i+1], nil
				}
			}
		case '"':
			if start >= 0 {
				inString = true
			}
		}
	}

	return "", errors.New("no balanced JSON object found in reply")
}

// ParsePayload decodes a model reply into a Payload, tolerating missing
// fields. Nil slices come back empty so downstream updates stay uniform.
func ParsePayload(raw string) (*Payload, error) {
	block, err := ExtractJSON(raw)
	if err != nil {
		return nil, err
	}

	var payload Payload
	if err := json.Unmarshal([]byte(block), &payload); err != nil {
		return nil, fmt.Errorf("failed to decode enrichment payload: %w", err)
	}

	if payload.Tags == nil {
		payload.Tags = []string{}
	}
	if payload.Materials == nil {
		payload.Materials = []string{}
	}
	if payload.Attributes == nil {
		payload.Attributes = map[string]interface{}{}
	}

	return &payload, nil
}
