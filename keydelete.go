package jsonrepair

// removeCurrentKey implements §4.7: truncate output back to the start of
// the most recently emitted key, trim trailing whitespace, then drop a
// trailing comma (and any whitespace before it). A no-op when no key is
// pending.
func (e *engine) removeCurrentKey() {
	if e.currentKeyStart < 0 {
		return
	}
	e.output = e.output[:e.currentKeyStart]
	e.trimTrailingWhitespace()
	if len(e.output) > 0 && e.output[len(e.output)-1] == ',' {
		e.output = e.output[:len(e.output)-1]
		e.trimTrailingWhitespace()
	}
	e.currentKeyStart = -1
}

func (e *engine) trimTrailingWhitespace() {
	i := len(e.output)
	for i > 0 && isASCIIWhitespace(e.output[i-1]) {
		i--
	}
	e.output = e.output[:i]
}
