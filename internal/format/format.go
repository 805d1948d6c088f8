// Package format normalizes raw lookup payloads into user-facing text.
package format

import (
	"encoding/json"
	"fmt"
)

// Clean decodes raw JSON and prunes null and empty leaves from the tree,
// returning a compact indented rendering. The transformer is schema-agnostic:
// it walks the decoded {map, slice, scalar} union recursively. Deterministic
// for a fixed payload (object keys are emitted sorted).
func Clean(raw json.RawMessage) string {
	var decoded interface{}
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return string(raw)
	}

	pruned := prune(decoded)
	if pruned == nil {
		pruned = map[string]interface{}{}
	}

	out, err := json.MarshalIndent(pruned, "", "  ")
	if err != nil {
		return string(raw)
	}

	return string(out)
}

// Render embeds the cleaned payload in the result template along with the
// caller's post-spend balance. Pure: no side effects, no network access.
func Render(raw json.RawMessage, credits int64) string {
	return fmt.Sprintf(
		"📄 *OSINT Result*\n\n```json\n%s\n```\n\n💳 Credits remaining: *%d*",
		Clean(raw),
		credits,
	)
}

// prune returns nil for values with no information content: null, empty
// strings, and containers whose every element pruned away. Zero numbers and
// false are kept; absence of data is not the same as a falsy value.
func prune(v interface{}) interface{} {
	switch value := v.(type) {
	case nil:
		return nil
	case string:
		if value == "" {
			return nil
		}
		return value
	case map[string]interface{}:
		cleaned := make(map[string]interface{}, len(value))
		for key, elem := range value {
			if p := prune(elem); p != nil {
				cleaned[key] = p
			}
		}
		if len(cleaned) == 0 {
			return nil
		}
		return cleaned
	case []interface{}:
		cleaned := make([]interface{}, 0, len(value))
		for _, elem := range value {
			if p := prune(elem); p != nil {
				cleaned = append(cleaned, p)
			}
		}
		if len(cleaned) == 0 {
			return nil
		}
		return cleaned
	default:
		return value
	}
}
