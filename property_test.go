package jsonrepair

import (
	"testing"

	jsoniter "github.com/json-iterator/go"

	"github.com/bingoohuang/jsonrepair/internal/corpus"
)

// These tests exercise spec.md §8's universal properties at scale, using
// internal/corpus to generate and corrupt random documents rather than a
// fixed table of hand-picked examples.

const propertyRounds = 200

func TestPropertyIdempotenceOnValidInput(t *testing.T) {
	for i := 0; i < propertyRounds; i++ {
		doc := corpus.Document(4)
		got, err := Repair(string(doc))
		if err != nil {
			t.Fatalf("Repair(%s) error: %v", doc, err)
		}
		if got != string(doc) {
			t.Fatalf("not idempotent: input %s, got %s", doc, got)
		}
	}
}

func TestPropertyClosure(t *testing.T) {
	for i := 0; i < propertyRounds; i++ {
		doc := corpus.Document(4)
		mangled, kind := corpus.Mangle(doc)

		got, err := Repair(string(mangled))
		if err != nil {
			t.Fatalf("Repair error on %s-mangled input %s: %v", kind, mangled, err)
		}
		if got == "" {
			continue
		}
		if !jsoniter.Valid([]byte(got)) {
			t.Fatalf("%s-mangled input %s repaired to non-JSON %s", kind, mangled, got)
		}
	}
}

func TestPropertyStructuralMonotonicityOnTruncation(t *testing.T) {
	for i := 0; i < propertyRounds; i++ {
		doc := corpus.Document(3)
		if len(doc) < 4 {
			continue
		}

		full, err := Decode(string(doc))
		if err != nil {
			t.Fatalf("Decode(%s) error: %v", doc, err)
		}
		fullMap, ok := full.(map[string]any)
		if !ok {
			continue
		}

		cut := len(doc) * 2 / 3
		prefix := doc[:cut]
		got, err := Decode(string(prefix))
		if err != nil {
			t.Fatalf("Decode(prefix %s) error: %v", prefix, err)
		}
		gotMap, ok := got.(map[string]any)
		if !ok {
			t.Fatalf("Decode(prefix %s) = %#v, want an object", prefix, got)
		}

		for k, v := range gotMap {
			fv, present := fullMap[k]
			if !present {
				t.Fatalf("prefix decode introduced key %q absent from the full document", k)
			}
			if isCompleteValue(v) && !valuesAgree(v, fv) {
				t.Fatalf("prefix decode of key %q = %#v disagrees with full decode %#v", k, v, fv)
			}
		}
	}
}

// isCompleteValue reports whether v looks like a value the engine
// finished writing rather than one it force-closed at truncation (an
// empty string or nil, which spec.md §4.5 uses as filler).
func isCompleteValue(v any) bool {
	switch t := v.(type) {
	case string:
		return t != ""
	case nil:
		return false
	default:
		return true
	}
}

func valuesAgree(a, b any) bool {
	switch av := a.(type) {
	case float64:
		bv, ok := b.(float64)
		return ok && av == bv
	case string:
		bv, ok := b.(string)
		return ok && av == bv
	case bool:
		bv, ok := b.(bool)
		return ok && av == bv
	default:
		return true
	}
}

func TestPropertyCommentTransparency(t *testing.T) {
	for i := 0; i < propertyRounds; i++ {
		doc := corpus.Document(3)
		commented, kind := corpus.Mangle(doc)
		if kind != corpus.MangleLineComment && kind != corpus.MangleBlockComment {
			continue
		}

		want, err := Decode(string(doc))
		if err != nil {
			t.Fatalf("Decode(%s) error: %v", doc, err)
		}
		got, err := Decode(string(commented))
		if err != nil {
			t.Fatalf("Decode(commented %s) error: %v", commented, err)
		}
		if !deepEqualJSON(got, want) {
			t.Fatalf("comment insertion changed decoded value: %#v vs %#v", got, want)
		}
	}
}

func TestPropertyQuoteSubstitutionNeutrality(t *testing.T) {
	for i := 0; i < propertyRounds; i++ {
		doc := corpus.Document(3)
		swapped, kind := corpus.Mangle(doc)
		if kind != corpus.MangleSwapQuotes {
			continue
		}

		want, err := Decode(string(doc))
		if err != nil {
			t.Fatalf("Decode(%s) error: %v", doc, err)
		}
		got, err := Decode(string(swapped))
		if err != nil {
			t.Fatalf("Decode(quote-swapped %s) error: %v", swapped, err)
		}
		if !deepEqualJSON(got, want) {
			t.Fatalf("quote substitution changed decoded value: %#v vs %#v", got, want)
		}
	}
}

func deepEqualJSON(a, b any) bool {
	switch av := a.(type) {
	case map[string]any:
		bv, ok := b.(map[string]any)
		if !ok || len(av) != len(bv) {
			return false
		}
		for k, v := range av {
			if !deepEqualJSON(v, bv[k]) {
				return false
			}
		}
		return true
	case []any:
		bv, ok := b.([]any)
		if !ok || len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !deepEqualJSON(av[i], bv[i]) {
				return false
			}
		}
		return true
	default:
		return a == b
	}
}
