package jsonrepair

// handleEscape implements §4.4. It runs once, with state == stInStringEscape
// and pos pointing at the byte immediately after the backslash that was
// not itself emitted.
func (e *engine) handleEscape() {
	c := e.input[e.pos]
	switch c {
	case '"', '\\', '/', 'b', 'f', 'n', 'r', 't':
		e.emitByte('\\')
		e.emitByte(c)
		e.pos++
	case 'u':
		if e.pos+5 <= len(e.input) && isHex4(e.input[e.pos+1:e.pos+5]) {
			e.emitByte('\\')
			e.emitByte('u')
			e.emit(e.input[e.pos+1 : e.pos+5])
			e.pos += 5
		} else {
			e.emitByte('\\')
			e.emitByte('\\')
			e.emitByte('u')
			e.pos++
		}
	default:
		e.emitByte('\\')
		e.emitByte('\\')
		e.emitByte(c)
		e.pos++
	}
	e.state = stInString
}

func isHex4(b []byte) bool {
	if len(b) != 4 {
		return false
	}
	for _, c := range b {
		if !isHexDigit(c) {
			return false
		}
	}
	return true
}

func isHexDigit(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}
