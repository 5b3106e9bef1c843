package jsonrepair

// stepInString implements §4.3, the string sub-machine. It is dispatched
// once per byte while state == stInString.
func (e *engine) stepInString() {
	b := e.input[e.pos]

	// A double-quote inside a single-quoted string is never a
	// terminator: the engine upgrades the delimiter to '"' on close, so
	// an embedded '"' must be escaped rather than closing early.
	if e.stringDelim == '\'' && b == '"' {
		e.emitString(`\"`)
		e.pos++
		return
	}

	if b == '\\' {
		e.state = stInStringEscape
		e.pos++
		return
	}

	isSmart := smartQuoteAt(e.input, e.pos)
	if b == e.stringDelim || isSmart {
		consumed := 1
		if isSmart {
			consumed = 3
		}
		if e.stateBeforeString == stInObjectValue && !isSmart {
			if e.embeddedQuoteIsEscape(e.pos) {
				e.emitString(`\"`)
				e.pos++
				return
			}
		}
		e.closeString(consumed)
		return
	}

	if b == '}' || b == ']' {
		if e.unclosedStringHeuristic(b) {
			// A later matching delimiter exists: this structural byte is
			// ordinary string content.
			e.emitByte(b)
			e.pos++
			return
		}
		e.closeStringAtStructural()
		return
	}

	e.emitByte(b)
	e.pos++
}

// closeString terminates the current string, always emitting an ASCII
// '"' regardless of the original delimiter, and consumes the delimiter
// bytes (1 for ASCII, 3 for a smart quote).
func (e *engine) closeString(consumed int) {
	e.emitByte('"')
	e.inString = false
	e.pos += consumed
	if e.stateBeforeString == stInObjectKey {
		e.state = stExpectingColon
	} else {
		e.state = stExpectingCommaOrEnd
		e.currentKeyStart = -1
	}
}

// closeStringAtStructural closes the string at a '}' or ']' without
// consuming that byte, so the outer machine processes it next.
func (e *engine) closeStringAtStructural() {
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

// unclosedStringHeuristic implements §4.3.2: given a '}' or ']' while
// inside a string, look for another occurrence of the string delimiter
// before a repeat of the same structural byte. True means "found" (the
// structural byte is ordinary content); false means "unclosed" (the
// structural byte should terminate the string).
func (e *engine) unclosedStringHeuristic(structural byte) bool {
	for i := e.pos + 1; i < len(e.input); i++ {
		if e.input[i] == structural {
			return false
		}
		if e.input[i] == e.stringDelim {
			return true
		}
		if e.stringDelim == '"' && smartQuoteAt(e.input, i) {
			return true
		}
	}
	return false
}

// embeddedQuoteIsEscape implements §4.3.1. pos is the index of an ASCII
// quote matching the current delimiter, encountered while
// stateBeforeString == InObjectValue. It returns true when the quote
// should be escaped (embedded content) rather than closing the string.
func (e *engine) embeddedQuoteIsEscape(pos int) bool {
	input := e.input
	p := pos + 1
	for p < len(input) && isASCIIWhitespace(input[p]) {
		p++
	}
	if p >= len(input) {
		return false
	}
	c := input[p]

	switch {
	case c == ',' || c == '}' || c == ']':
		return false
	case c == ':':
		return false
	case c == '"' || c == '\'':
		return !looksLikeKeyStart(input, p)
	case c == '_' || c == '.' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z'):
		return e.scanIdentifierRun(p)
	default:
		return false
	}
}

// scanIdentifierRun handles the c is alphabetic/_/. branch of §4.3.1: scan
// forward from p until the next ':', ',', '}', ']', or quote, and decide
// whether the interstitial text looks like a new object key.
func (e *engine) scanIdentifierRun(p int) bool {
	input := e.input
	q := p
	for q < len(input) {
		switch input[q] {
		case ':':
			return !isIdentifierRun(input[p:q])
		case ',', '}', ']':
			return true
		case '"', '\'':
			return !looksLikeKeyStart(input, q)
		}
		q++
	}
	// Ran off the end without a terminator: ambiguous, treat as embedded.
	return true
}

func isIdentifierRun(b []byte) bool {
	if len(b) == 0 {
		return false
	}
	for _, c := range b {
		if !isIdentByte(c) {
			return false
		}
	}
	return true
}

// looksLikeKeyStart reports whether the quote at index q opens a
// `"key":` pattern: scan to its matching close quote (backslash escapes
// suspend matching for one byte), skip whitespace, and check for ':'.
func looksLikeKeyStart(input []byte, q int) bool {
	delim := input[q]
	i := q + 1
	for i < len(input) {
		if input[i] == '\\' {
			i += 2
			continue
		}
		if input[i] == delim {
			i++
			break
		}
		i++
	}
	for i < len(input) && isASCIIWhitespace(input[i]) {
		i++
	}
	return i < len(input) && input[i] == ':'
}
