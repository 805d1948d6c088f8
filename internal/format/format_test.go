package format

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClean_PrunesEmptyLeaves(t *testing.T) {
	raw := json.RawMessage(`{
		"name": "John",
		"address": "",
		"operator": null,
		"tags": [],
		"meta": {"note": "", "inner": {}},
		"circle": "Delhi"
	}`)

	cleaned := Clean(raw)

	assert.Contains(t, cleaned, `"name": "John"`)
	assert.Contains(t, cleaned, `"circle": "Delhi"`)
	assert.NotContains(t, cleaned, "address")
	assert.NotContains(t, cleaned, "operator")
	assert.NotContains(t, cleaned, "tags")
	assert.NotContains(t, cleaned, "meta")
}

func TestClean_KeepsZeroAndFalse(t *testing.T) {
	raw := json.RawMessage(`{"count": 0, "verified": false}`)

	cleaned := Clean(raw)

	assert.Contains(t, cleaned, `"count": 0`)
	assert.Contains(t, cleaned, `"verified": false`)
}

func TestClean_PrunesNestedArrays(t *testing.T) {
	raw := json.RawMessage(`{"results": [{"a": ""}, {"b": "x"}, null]}`)

	cleaned := Clean(raw)

	assert.Contains(t, cleaned, `"b": "x"`)
	assert.NotContains(t, cleaned, `"a"`)
}

func TestClean_Deterministic(t *testing.T) {
	raw := json.RawMessage(`{"z": "last", "a": "first", "m": {"y": 1, "b": 2}}`)

	first := Clean(raw)
	second := Clean(raw)

	assert.Equal(t, first, second)
	// Keys come out sorted regardless of input order.
	assert.Less(t, strings.Index(first, `"a"`), strings.Index(first, `"z"`))
}

func TestClean_InvalidJSONPassesThrough(t *testing.T) {
	raw := json.RawMessage(`not json at all`)

	assert.Equal(t, "not json at all", Clean(raw))
}

func TestRender(t *testing.T) {
	raw := json.RawMessage(`{"name": "John"}`)

	rendered := Render(raw, 4)

	assert.Contains(t, rendered, "📄 *OSINT Result*")
	assert.Contains(t, rendered, "```json")
	assert.Contains(t, rendered, `"name": "John"`)
	assert.Contains(t, rendered, "Credits remaining: *4*")
}

func TestRender_Deterministic(t *testing.T) {
	raw := json.RawMessage(`{"b": 2, "a": 1}`)

	assert.Equal(t, Render(raw, 3), Render(raw, 3))
}
