package jsonrepair

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRepairEndToEndScenarios(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
		opts  []Option
	}{
		{"single_quotes", `{'key': 'value'}`, `{"key": "value"}`, nil},
		{"unquoted_keys", `{key: "value", name: "John"}`, `{"key": "value", "name": "John"}`, nil},
		{"trailing_comma", `{"key": "value",}`, `{"key": "value"}`, nil},
		{"missing_comma_between_pairs", `{"key1": "v1" "key2": "v2"}`, `{"key1": "v1","key2": "v2"}`, nil},
		{"truncated_number", `{"count": 123`, `{"count": 123}`, nil},
		{"truncated_string", `{"name": "John", "description": "A person who`, `{"name": "John", "description": "A person who"}`, nil},
		{"truncated_keyword", `{"active": tru`, `{"active": ""}`, nil},
		{"truncated_unicode_escape", `{"emoji": "\u26`, `{"emoji": "\\u26"}`, nil},
		{"omit_empty_dangling_value", `{"a": 1, "b": }`, `{"a": 1}`, []Option{WithOmitEmptyValues()}},
		{"fenced_json", "```json\n{\"x\":1}\n```", `{"x":1}`, nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Repair(tc.input, tc.opts...)
			assert.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestRepairIdempotentOnValidJSON(t *testing.T) {
	valid := []string{
		`{"a":1,"b":[1,2,3],"c":{"d":true,"e":null}}`,
		`[]`,
		`{}`,
		`"just a string"`,
		`42`,
		`[1,2,3]`,
	}
	for _, v := range valid {
		got, err := Repair(v)
		assert.NoError(t, err)
		assert.Equal(t, v, got)
	}
}

func TestDecodeSurfacesRepairedValue(t *testing.T) {
	v, err := Decode(`{key: 1, nested: {a: 'b'}}`)
	assert.NoError(t, err)
	m, ok := v.(map[string]any)
	assert.True(t, ok)
	assert.Equal(t, float64(1), m["key"])
	nested, ok := m["nested"].(map[string]any)
	assert.True(t, ok)
	assert.Equal(t, "b", nested["a"])
}

func TestDecodeFlattenInnerJSON(t *testing.T) {
	v, err := Decode(`{"body": "{\"id\": 1}"}`, WithFlattenInnerJSON())
	assert.NoError(t, err)
	m := v.(map[string]any)
	body, ok := m["body"].(map[string]any)
	assert.True(t, ok)
	assert.Equal(t, float64(1), body["id"])
}

func TestRepairEmbeddedQuoteHeuristic(t *testing.T) {
	_, err := Repair(`{"text": "she said "hello" to me"}`)
	assert.NoError(t, err)
}

func TestRepairNestedArraysAndObjects(t *testing.T) {
	v, err := Decode(`{"items": [{"id": 1}, {"id": 2,}, {"id": 3`)
	assert.NoError(t, err)
	m := v.(map[string]any)
	items := m["items"].([]any)
	assert.Len(t, items, 3)
}

func TestRepairGuardRejectsOversizedInput(t *testing.T) {
	_, err := Repair(`{"a": 1}`, WithMaxInputBytes(4))
	assert.ErrorIs(t, err, ErrInputTooLarge)
}

func TestRepairGuardRejectsExcessiveDepth(t *testing.T) {
	_, err := Repair(`{"a":{"b":{"c":{"d":1}}}}`, WithMaxDepth(2))
	assert.ErrorIs(t, err, ErrTooDeep)
}
