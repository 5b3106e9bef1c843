package jsonrepair

import "testing"

// newTestEngine builds an engine over input with default options, for
// tests that want to drive individual state-machine steps directly
// rather than go through Repair's public surface.
func newTestEngine(input string) *engine {
	return newEngine([]byte(input), newOptions(nil))
}

func TestCurrentKeyStartMarksOutputPositionOfPendingKey(t *testing.T) {
	e := newTestEngine(`{"a": `)
	e.run()

	// After a key/colon pair with no value supplied yet, currentKeyStart
	// must point at the '"' that opens the key in e.output, not at some
	// stale or negative offset.
	if e.currentKeyStart < 0 {
		t.Fatalf("currentKeyStart = %d, want a valid offset into output", e.currentKeyStart)
	}
	if e.output[e.currentKeyStart] != '"' {
		t.Fatalf("output[currentKeyStart] = %q, want '\"'", e.output[e.currentKeyStart])
	}
}

func TestRemoveCurrentKeyRestoresOutputToPreKeyState(t *testing.T) {
	e := newTestEngine(`{"a": 1, "b": `)
	e.run()

	before := len(e.output)
	e.removeCurrentKey()
	if len(e.output) >= before {
		t.Fatalf("removeCurrentKey did not shrink output: before=%d after=%d", before, len(e.output))
	}
	if e.currentKeyStart != -1 {
		t.Fatalf("currentKeyStart = %d after removeCurrentKey, want -1", e.currentKeyStart)
	}

	got, err := e.finalize()
	if err != nil {
		t.Fatalf("finalize error: %v", err)
	}
	want := `{"a": 1}`
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestRemoveCurrentKeyIsNoOpWithNoPendingKey(t *testing.T) {
	e := newTestEngine(`{"a": 1}`)
	e.currentKeyStart = -1
	before := append([]byte(nil), e.output...)
	e.removeCurrentKey()
	if string(e.output) != string(before) {
		t.Fatalf("removeCurrentKey mutated output with no pending key: before %q, after %q", before, e.output)
	}
}

func TestConsumeNumberRollsBackDanglingExponentMarker(t *testing.T) {
	e := newTestEngine(`123e`)
	e.state = stInObjectValue
	e.consumeNumber()
	if string(e.output) != "123" {
		t.Fatalf("got %q, want %q (exponent marker with no digits rolled back)", e.output, "123")
	}
}

func TestConsumeNumberKeepsExponentWithDigits(t *testing.T) {
	e := newTestEngine(`123e10`)
	e.state = stInObjectValue
	e.consumeNumber()
	if string(e.output) != "123e10" {
		t.Fatalf("got %q, want %q", e.output, "123e10")
	}
}

func TestConsumeNumberRollsBackExponentSignWithNoDigits(t *testing.T) {
	e := newTestEngine(`5e+`)
	e.state = stInObjectValue
	e.consumeNumber()
	if string(e.output) != "5" {
		t.Fatalf("got %q, want %q", e.output, "5")
	}
}

func TestDelimiterStackDepthTracksNetPushMinusPop(t *testing.T) {
	e := newTestEngine(`{"a": [1, 2, {"b": 3}]}`)
	e.run()
	if depth := len(e.stack); depth != 0 {
		t.Fatalf("stack depth after full document = %d, want 0", depth)
	}
}

func TestDelimiterStackReflectsUnclosedContainersAtEOF(t *testing.T) {
	e := newTestEngine(`{"a": [1, 2, {"b": 3`)
	e.run()
	// three containers were opened ({, [, {) and none closed before EOF.
	if depth := len(e.stack); depth != 3 {
		t.Fatalf("stack depth = %d, want 3", depth)
	}
	if e.stack[0] != '}' || e.stack[1] != ']' || e.stack[2] != '}' {
		t.Fatalf("stack = %v, want closers in open order [}, ], }]", e.stack)
	}
}

func TestDelimiterStackPopMatchesTopOnClose(t *testing.T) {
	e := newTestEngine(`{"a": [1]}`)
	e.run()
	if len(e.stack) != 0 {
		t.Fatalf("stack should be fully unwound, got %v", e.stack)
	}
}
