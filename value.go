package jsonrepair

var keywordCandidates = []struct {
	word string
	norm string
}{
	{"true", "true"},
	{"false", "false"},
	{"null", "null"},
	{"none", "null"},
}

// matchKeyword looks for a case-insensitive true/false/null/None keyword
// at pos with a word-boundary suffix: the byte following the match, if
// any, must not itself be an identifier byte.
func matchKeyword(input []byte, pos int) (norm string, n int, ok bool) {
	for _, cand := range keywordCandidates {
		wl := len(cand.word)
		if pos+wl > len(input) {
			continue
		}
		if !equalFoldASCII(input[pos:pos+wl], cand.word) {
			continue
		}
		if pos+wl < len(input) && isIdentByte(input[pos+wl]) {
			continue
		}
		return cand.norm, wl, true
	}
	return "", 0, false
}

func equalFoldASCII(b []byte, s string) bool {
	if len(b) != len(s) {
		return false
	}
	for i := 0; i < len(b); i++ {
		bc, sc := b[i], s[i]
		if bc >= 'A' && bc <= 'Z' {
			bc += 'a' - 'A'
		}
		if sc >= 'A' && sc <= 'Z' {
			sc += 'a' - 'A'
		}
		if bc != sc {
			return false
		}
	}
	return true
}

func (e *engine) stepInObjectValue() {
	c := e.input[e.pos]
	switch {
	case c == '{':
		e.emitByte('{')
		e.push('}')
		e.pos++
		e.state = stInObjectKey
	case c == '[':
		e.emitByte('[')
		e.push(']')
		e.pos++
		e.state = stInArray
	case c == '"' || c == '\'':
		e.openValueString(c, stInObjectValue)
	case smartQuoteAt(e.input, e.pos):
		e.openValueSmartQuote(stInObjectValue)
	case c == '}':
		e.closeContainerFromValue('}')
	case c == ',':
		if e.outputEndsWithColon() {
			e.emitMissingValue()
		}
		e.state = stExpectingCommaOrEnd
	default:
		if norm, n, ok := matchKeyword(e.input, e.pos); ok {
			e.emitKeyword(norm, n)
			return
		}
		switch {
		case c == '-' || c == '+' || isDigit(c):
			e.consumeNumber()
		case c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z'):
			e.handleUnquotedStringValue()
		default:
			e.pos++
		}
	}
}

func (e *engine) closeContainerFromValue(closer byte) {
	if e.outputEndsWithColon() {
		e.emitMissingValue()
	}
	e.stripTrailingComma()
	e.emitByte(closer)
	e.pop()
	e.pos++
	e.log(EventCloserAdded)
	e.state = e.afterCloseState()
}

func (e *engine) emitKeyword(norm string, n int) {
	original := string(e.input[e.pos : e.pos+n])
	e.emitString(norm)
	if original != norm {
		e.log(EventBooleanNormalised)
	}
	e.pos += n
	e.currentKeyStart = -1
	e.state = stExpectingCommaOrEnd
}

func (e *engine) stepInArray() {
	c := e.input[e.pos]
	switch {
	case c == '{':
		e.emitByte('{')
		e.push('}')
		e.pos++
		e.state = stInObjectKey
	case c == '[':
		e.emitByte('[')
		e.push(']')
		e.pos++
		e.state = stInArray
	case c == '"' || c == '\'':
		e.openValueString(c, stInArray)
	case smartQuoteAt(e.input, e.pos):
		e.openValueSmartQuote(stInArray)
	case c == ']':
		e.stripTrailingComma()
		e.emitByte(']')
		e.pop()
		e.pos++
		e.log(EventCloserAdded)
		e.state = e.afterCloseState()
	default:
		if norm, n, ok := matchKeyword(e.input, e.pos); ok {
			e.emitKeyword(norm, n)
			return
		}
		switch {
		case c == '-' || c == '+' || isDigit(c):
			e.consumeNumber()
		default:
			// arrays get no unquoted-string-value promotion and no
			// missing-value handling: anything else is noise, skipped.
			e.pos++
		}
	}
}

// openValueString opens a string value, applying the
// double-quote-at-start-of-value skip when the value begins `""X` with X
// not itself a quote or a structural byte.
func (e *engine) openValueString(delim byte, before stateTag) {
	if delim == '"' && e.pos+2 < len(e.input) && e.input[e.pos+1] == '"' {
		x := e.input[e.pos+2]
		if x != '"' && x != ',' && x != '}' {
			e.pos++ // skip the first, spurious quote
		}
	}

	e.emitByte('"')
	e.stringDelim = e.input[e.pos]
	e.stateBeforeString = before
	e.inString = true
	e.pos++
	if e.stringDelim == '\'' {
		e.log(EventQuoteConverted)
	}
	e.state = stInString
}

func (e *engine) openValueSmartQuote(before stateTag) {
	e.emitByte('"')
	e.stringDelim = '"'
	e.stateBeforeString = before
	e.inString = true
	e.pos += 3
	e.state = stInString
}

// consumeNumber implements the InNumber row of the transition table: sign,
// integer part, optional fraction, optional exponent, rolling back an
// exponent marker left with no following digits.
func (e *engine) consumeNumber() {
	c := e.input[e.pos]
	if c == '-' {
		e.emitByte('-')
		e.pos++
	} else if c == '+' {
		e.pos++ // JSON numbers never carry a leading '+'; drop it.
	}

	digits := 0
	for e.pos < len(e.input) && isDigit(e.input[e.pos]) {
		e.emitByte(e.input[e.pos])
		e.pos++
		digits++
	}
	if digits == 0 {
		e.emitByte('0')
	}

	if e.pos < len(e.input) && e.input[e.pos] == '.' && e.pos+1 < len(e.input) && isDigit(e.input[e.pos+1]) {
		e.emitByte('.')
		e.pos++
		for e.pos < len(e.input) && isDigit(e.input[e.pos]) {
			e.emitByte(e.input[e.pos])
			e.pos++
		}
	}

	if e.pos < len(e.input) && (e.input[e.pos] == 'e' || e.input[e.pos] == 'E') {
		expStart := len(e.output)
		e.emitByte(e.input[e.pos])
		e.pos++
		if e.pos < len(e.input) && (e.input[e.pos] == '+' || e.input[e.pos] == '-') {
			e.emitByte(e.input[e.pos])
			e.pos++
		}
		expDigits := 0
		for e.pos < len(e.input) && isDigit(e.input[e.pos]) {
			e.emitByte(e.input[e.pos])
			e.pos++
			expDigits++
		}
		if expDigits == 0 {
			e.output = e.output[:expStart]
		}
	}

	e.currentKeyStart = -1
	e.state = stExpectingCommaOrEnd
}
