package jsonrepair

var truncatedKeywordPrefixes = []string{
	"t", "tr", "tru",
	"f", "fa", "fal", "fals",
	"n", "nu", "nul",
}

func isTruncatedKeywordPrefix(s string) bool {
	for _, p := range truncatedKeywordPrefixes {
		if equalFoldASCII([]byte(s), p) {
			return true
		}
	}
	return false
}

// onlyClosersRemain reports whether every byte from pos to the end of
// input is a closer or ASCII whitespace.
func onlyClosersRemain(input []byte, pos int) bool {
	for i := pos; i < len(input); i++ {
		b := input[i]
		if b == '}' || b == ']' || isASCIIWhitespace(b) {
			continue
		}
		return false
	}
	return true
}

// handleUnquotedStringValue implements §4.5: an object value that starts
// with a letter or '_' and was never quoted.
func (e *engine) handleUnquotedStringValue() {
	start := e.pos
	for e.pos < len(e.input) {
		b := e.input[e.pos]
		if b == ',' || b == '}' || b == ']' || b == '"' || b == '\'' {
			break
		}
		e.pos++
	}
	raw := e.input[start:e.pos]
	trimmed := rtrimASCIIWhitespace(raw)

	if len(trimmed) > 0 && isTruncatedKeywordPrefix(string(trimmed)) && onlyClosersRemain(e.input, e.pos) {
		e.emitMissingValue()
		e.state = stExpectingCommaOrEnd
		return
	}

	if e.pos < len(e.input) {
		stop := e.input[e.pos]
		if stop == '"' || stop == '\'' {
			if looksLikeKeyStart(e.input, e.pos) {
				e.emitByte('"')
				e.emitEscaped(trimmed)
				e.emitByte('"')
				e.emitString(", ")
				e.log(EventCommaInserted)
				e.state = stInObjectKey
				return
			}
		}
	}

	if len(trimmed) == 0 {
		e.emitMissingValue()
		e.state = stExpectingCommaOrEnd
		return
	}

	e.emitByte('"')
	e.emitEscaped(trimmed)
	e.emitByte('"')
	e.currentKeyStart = -1
	e.state = stExpectingCommaOrEnd
}

// emitEscaped writes s with '\' and '"' escaped, per §4.5's closing rule.
func (e *engine) emitEscaped(s []byte) {
	for _, b := range s {
		if b == '\\' || b == '"' {
			e.emitByte('\\')
		}
		e.emitByte(b)
	}
}

func rtrimASCIIWhitespace(b []byte) []byte {
	i := len(b)
	for i > 0 && isASCIIWhitespace(b[i-1]) {
		i--
	}
	return b[:i]
}
