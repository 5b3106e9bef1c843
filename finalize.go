package jsonrepair

import (
	"bytes"

	jsoniter "github.com/json-iterator/go"
)

// finalize implements §4.6. It runs once after the main loop has
// consumed every input byte, closing whatever was left open.
func (e *engine) finalize() (string, error) {
	e.finalizeString()
	e.finalizeExpectingColon()
	e.finalizeDanglingKey()
	e.finalizeDanglingValue()
	e.finalizeStack()

	if !e.opts.EnsureASCII {
		if reencoded, ok := reencodeNonASCII(e.output); ok {
			e.output = reencoded
		}
	}

	if len(e.output) == 0 {
		return "", nil
	}

	var probe any
	if err := jsoniter.Unmarshal(e.output, &probe); err != nil {
		return "", newRepairFailedError(string(e.output), e.pos, err)
	}
	return string(e.output), nil
}

// finalizeString is finaliser step 1: close a string still open at
// end-of-input.
func (e *engine) finalizeString() {
	if !e.inString {
		return
	}
	if e.opts.OmitIncompleteStrings && e.stateBeforeString == stInObjectValue {
		e.removeCurrentKey()
		e.log(EventKeyDeleted)
		e.inString = false
		e.state = stExpectingCommaOrEnd
		return
	}
	e.emitByte('"')
	e.inString = false
	e.log(EventStringClosedAtBrace)
	if e.stateBeforeString == stInObjectKey {
		e.state = stExpectingColon
	} else {
		e.state = stExpectingCommaOrEnd
		e.currentKeyStart = -1
	}
}

// finalizeExpectingColon is finaliser step 2: the input ended on a bare
// key with no colon at all.
func (e *engine) finalizeExpectingColon() {
	if e.state != stExpectingColon {
		return
	}
	if e.opts.OmitEmptyValues {
		e.removeCurrentKey()
		e.log(EventKeyDeleted)
	} else {
		e.emitString(`:""`)
		e.log(EventEmptyValueAdded)
	}
	e.state = stExpectingCommaOrEnd
}

// finalizeDanglingKey is finaliser step 3: state settled back on
// InObjectKey with a dangling opening quote that never got a value.
func (e *engine) finalizeDanglingKey() {
	if e.state != stInObjectKey {
		return
	}
	if len(e.output) == 0 || e.output[len(e.output)-1] != '"' {
		return
	}
	if bytes.HasSuffix(e.output, []byte(`:""`)) {
		return
	}
	if e.opts.OmitEmptyValues {
		e.removeCurrentKey()
		e.log(EventKeyDeleted)
	} else {
		e.emitString(`:""`)
		e.log(EventEmptyValueAdded)
	}
	e.state = stExpectingCommaOrEnd
}

// finalizeDanglingValue is finaliser step 4: state settled on
// InObjectValue with output still ending in ':'.
func (e *engine) finalizeDanglingValue() {
	if e.state != stInObjectValue {
		return
	}
	if !e.outputEndsWithColon() {
		return
	}
	e.trimTrailingWhitespace()
	e.emitMissingValue()
	e.state = stExpectingCommaOrEnd
}

// finalizeStack is finaliser step 5: pop every still-open container,
// supplying a missing value first when a closer would otherwise follow a
// bare colon.
func (e *engine) finalizeStack() {
	for len(e.stack) > 0 {
		e.stripTrailingComma()
		closer, _ := e.pop()
		if closer == '}' && e.outputEndsWithColon() {
			e.emitMissingValue()
		}
		e.emitByte(closer)
		e.log(EventCloserAdded)
	}
}
