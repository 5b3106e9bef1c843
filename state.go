package jsonrepair

// stateTag is the engine's discriminated state tag. Dispatch is a tight
// switch over this tag rather than any form of runtime polymorphism;
// the state machine needs none.
type stateTag int

const (
	stStart stateTag = iota
	stInObjectKey
	stInObjectValue
	stInArray
	stInString
	stInStringEscape
	stInNumber
	stExpectingColon
	stExpectingCommaOrEnd
)

func (s stateTag) String() string {
	switch s {
	case stStart:
		return "Start"
	case stInObjectKey:
		return "InObjectKey"
	case stInObjectValue:
		return "InObjectValue"
	case stInArray:
		return "InArray"
	case stInString:
		return "InString"
	case stInStringEscape:
		return "InStringEscape"
	case stInNumber:
		return "InNumber"
	case stExpectingColon:
		return "ExpectingColon"
	case stExpectingCommaOrEnd:
		return "ExpectingCommaOrEnd"
	default:
		return "Unknown"
	}
}

// engine holds the state of a single Repair invocation. It is allocated
// per call, mutated only by the engine, and discarded once the finaliser
// returns; see spec.md §3's Lifecycle note.
type engine struct {
	input []byte
	output []byte
	pos    int
	state  stateTag

	// stack is the ordered sequence of expected closers, top last.
	stack []byte

	inString          bool
	stringDelim       byte
	stateBeforeString stateTag

	// currentKeyStart indexes into output at the opening '"' of the most
	// recently emitted key, or -1 if none.
	currentKeyStart int

	opts Options
}

func newEngine(input []byte, opts Options) *engine {
	return &engine{
		input:           input,
		output:          make([]byte, 0, len(input)+16),
		currentKeyStart: -1,
		opts:            opts,
	}
}

func isASCIIWhitespace(b byte) bool {
	switch b {
	case ' ', '\t', '\r', '\n':
		return true
	default:
		return false
	}
}

func isIdentByte(b byte) bool {
	return b == '_' || b == '-' ||
		(b >= '0' && b <= '9') ||
		(b >= 'a' && b <= 'z') ||
		(b >= 'A' && b <= 'Z')
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

// peek returns the byte at pos and whether pos is in range.
func (e *engine) peek() (byte, bool) {
	if e.pos >= len(e.input) {
		return 0, false
	}
	return e.input[e.pos], true
}

func (e *engine) skipWhitespace() {
	for e.pos < len(e.input) && isASCIIWhitespace(e.input[e.pos]) {
		e.pos++
	}
}

func (e *engine) emitByte(b byte) { e.output = append(e.output, b) }

func (e *engine) emit(b []byte) { e.output = append(e.output, b...) }

func (e *engine) emitString(s string) { e.output = append(e.output, s...) }

func (e *engine) push(closer byte) { e.stack = append(e.stack, closer) }

func (e *engine) pop() (byte, bool) {
	if len(e.stack) == 0 {
		return 0, false
	}
	n := len(e.stack) - 1
	c := e.stack[n]
	e.stack = e.stack[:n]
	return c, true
}

func (e *engine) top() (byte, bool) {
	if len(e.stack) == 0 {
		return 0, false
	}
	return e.stack[len(e.stack)-1], true
}

// afterCloseState returns the state to resume in once a container has
// been closed and any pending comma has been consumed: InObjectKey when
// the (new) top of stack is an object, InArray when it is an array, or
// Start when the stack is empty.
func (e *engine) afterCloseState() stateTag {
	top, ok := e.top()
	if !ok {
		return stStart
	}
	if top == '}' {
		return stInObjectKey
	}
	return stInArray
}

// stripTrailingComma removes a trailing comma from output, along with any
// ASCII whitespace between the comma and the end of the buffer. It is a
// no-op if output does not end with a (possibly whitespace-trailed) comma.
func (e *engine) stripTrailingComma() {
	i := len(e.output)
	for i > 0 && isASCIIWhitespace(e.output[i-1]) {
		i--
	}
	if i > 0 && e.output[i-1] == ',' {
		e.output = e.output[:i-1]
	}
}

// outputEndsWithColon reports whether output, ignoring trailing ASCII
// whitespace, ends with ':'.
func (e *engine) outputEndsWithColon() bool {
	i := len(e.output)
	for i > 0 && isASCIIWhitespace(e.output[i-1]) {
		i--
	}
	return i > 0 && e.output[i-1] == ':'
}

// smartQuoteAt reports whether the three bytes starting at i form one of
// the four UTF-8 typographic quotation marks.
func smartQuoteAt(input []byte, i int) bool {
	if i+3 > len(input) {
		return false
	}
	if input[i] != 0xE2 || input[i+1] != 0x80 {
		return false
	}
	switch input[i+2] {
	case 0x9C, 0x9D, 0x98, 0x99:
		return true
	default:
		return false
	}
}

// log forwards a decision to the configured Logger with a ±15-byte
// context window built around the current input offset.
func (e *engine) log(event Event) {
	e.opts.Logger.LogEvent(event, e.pos, contextWindow(e.input, e.pos))
}
