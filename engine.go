package jsonrepair

// run drives the engine over the whole input, one dispatch per call,
// until every byte has been consumed. It never returns an error: every
// unexpected byte is skipped, inserted around, or promoted into a repair,
// per spec.md §7.
func (e *engine) run() {
	for e.pos < len(e.input) {
		switch e.state {
		case stInStringEscape:
			e.handleEscape()
		case stInString:
			e.stepInString()
		default:
			e.skipWhitespace()
			if e.pos >= len(e.input) {
				return
			}
			e.dispatch()
		}
	}
}

func (e *engine) dispatch() {
	switch e.state {
	case stStart:
		e.stepStart()
	case stInObjectKey:
		e.stepInObjectKey()
	case stExpectingColon:
		e.stepExpectingColon()
	case stInObjectValue:
		e.stepInObjectValue()
	case stInArray:
		e.stepInArray()
	case stExpectingCommaOrEnd:
		e.stepExpectingCommaOrEnd()
	case stInNumber:
		// Reached only if a caller lands here directly; consumeNumber is
		// normally invoked straight from stepInObjectValue/stepInArray.
		e.consumeNumber()
	}
}

func (e *engine) stepStart() {
	c := e.input[e.pos]
	switch c {
	case '{':
		e.emitByte('{')
		e.push('}')
		e.pos++
		e.state = stInObjectKey
	case '[':
		e.emitByte('[')
		e.push(']')
		e.pos++
		e.state = stInArray
	default:
		e.pos++
	}
}

func (e *engine) stepInObjectKey() {
	c := e.input[e.pos]
	switch {
	case c == '}':
		e.stripTrailingComma()
		e.emitByte('}')
		e.pop()
		e.pos++
		e.log(EventCloserAdded)
		e.state = e.afterCloseState()
	case c == '"' || c == '\'':
		e.openObjectKeyString(c)
	case smartQuoteAt(e.input, e.pos):
		e.openObjectKeySmartQuote()
	case isIdentByte(c):
		e.readBareKey()
	default:
		e.pos++
	}
}

// openObjectKeyString opens an object key delimited by delim, handling
// the doubled-quote typographic pattern (`""name""`) specially.
func (e *engine) openObjectKeyString(delim byte) {
	// Key doubled-quote pattern: opening quote immediately doubled and
	// followed by an alphanumeric, '_', or space is a typographic
	// delimiter, not an empty string followed by a bare key.
	if e.pos+2 < len(e.input) && e.input[e.pos+1] == delim {
		next := e.input[e.pos+2]
		if isIdentByte(next) || next == ' ' {
			e.readDoubledQuoteKey(delim)
			return
		}
	}

	e.currentKeyStart = len(e.output)
	e.emitByte('"')
	e.stringDelim = delim
	e.stateBeforeString = stInObjectKey
	e.inString = true
	e.pos++
	if delim == '\'' {
		e.log(EventQuoteConverted)
	}
	e.state = stInString
}

func (e *engine) openObjectKeySmartQuote() {
	e.currentKeyStart = len(e.output)
	e.emitByte('"')
	e.stringDelim = '"'
	e.stateBeforeString = stInObjectKey
	e.inString = true
	e.pos += 3
	e.state = stInString
}

// readDoubledQuoteKey consumes a `""key""`-style key: one opening
// delimiter byte pair, key bytes verbatim, and a closing delimiter that
// may be doubled, a single quote directly before ':', a bare ':', or '}'.
func (e *engine) readDoubledQuoteKey(delim byte) {
	e.currentKeyStart = len(e.output)
	e.emitByte('"')
	e.pos += 2 // past the doubled opening delimiter

	for e.pos < len(e.input) {
		b := e.input[e.pos]
		if b == delim && e.pos+1 < len(e.input) && e.input[e.pos+1] == delim {
			e.pos += 2
			break
		}
		if b == delim {
			// a single closing quote directly before ':' also closes.
			p := e.pos + 1
			for p < len(e.input) && isASCIIWhitespace(e.input[p]) {
				p++
			}
			if p < len(e.input) && e.input[p] == ':' {
				e.pos++
				break
			}
		}
		if b == ':' || b == '}' {
			break
		}
		e.emitByte(b)
		e.pos++
	}
	e.emitByte('"')
	e.log(EventQuoteConverted)
	e.state = stExpectingColon
}

func (e *engine) readBareKey() {
	e.currentKeyStart = len(e.output)
	e.emitByte('"')
	for e.pos < len(e.input) && isIdentByte(e.input[e.pos]) {
		e.emitByte(e.input[e.pos])
		e.pos++
	}
	e.emitByte('"')
	e.state = stExpectingColon
}

func (e *engine) stepExpectingColon() {
	c := e.input[e.pos]
	if c == ':' {
		e.emitByte(':')
		e.pos++
		for e.pos < len(e.input) && e.input[e.pos] == ' ' {
			e.emitByte(' ')
			e.pos++
		}
		e.state = stInObjectValue
		return
	}
	e.emitByte(':')
	e.log(EventColonInserted)
	e.state = stInObjectValue
}

// emitMissingValue substitutes "" for a value that was never supplied, or
// deletes the pending key when OmitEmptyValues is set.
func (e *engine) emitMissingValue() {
	if e.opts.OmitEmptyValues {
		e.removeCurrentKey()
		e.log(EventKeyDeleted)
		return
	}
	e.emitString(`""`)
	e.log(EventEmptyValueAdded)
}

func (e *engine) stepExpectingCommaOrEnd() {
	c := e.input[e.pos]
	if top, ok := e.top(); ok && c == top {
		e.stripTrailingComma()
		e.emitByte(c)
		e.pop()
		e.pos++
		e.log(EventCloserAdded)
		e.state = e.afterCloseState()
		return
	}
	if c == ',' {
		e.emitByte(',')
		e.pos++
		for e.pos < len(e.input) && e.input[e.pos] == ' ' {
			e.emitByte(' ')
			e.pos++
		}
		e.currentKeyStart = -1
		e.state = e.afterCloseState()
		return
	}
	e.emitByte(',')
	e.log(EventCommaInserted)
	e.currentKeyStart = -1
	e.state = e.afterCloseState()
}
