package jsonrepair

import (
	"bytes"

	"github.com/buger/jsonparser"
	jsoniter "github.com/json-iterator/go"
)

// sanitize implements §4.1: it runs before the engine ever sees a byte,
// pulling JSON-shaped content out of markdown fences and stripped
// comments, and, failing that, out of the largest balanced object or
// first balanced array it can find.
func sanitize(input []byte, logger Logger) []byte {
	input = extractFences(input)
	input = stripComments(input, logger)

	if jsoniter.Valid(input) {
		return input
	}
	if obj, ok := largestBalanced(input, '{', '}'); ok {
		return obj
	}
	if arr, ok := firstBalanced(input, '[', ']'); ok {
		return arr
	}
	return input
}

// extractFences implements the markdown fence extraction rule: prefer
// ```json fences, fall back to plain ``` fences, else leave input as is.
func extractFences(input []byte) []byte {
	if parts, ok := scanFences(input, true); ok {
		return bytes.Join(parts, nil)
	}
	if parts, ok := scanFences(input, false); ok {
		return bytes.Join(parts, nil)
	}
	return input
}

const fenceMarker = "```"

// scanFences finds every fenced block in input. When jsonOnly is true it
// only matches fences whose opening line is ```json; otherwise it
// matches any fence at all. It returns the interior of each fence found,
// in order, with trailing whitespace before the closing marker trimmed.
func scanFences(input []byte, jsonOnly bool) ([][]byte, bool) {
	var parts [][]byte
	i := 0
	for {
		start := bytes.Index(input[i:], []byte(fenceMarker))
		if start < 0 {
			break
		}
		start += i
		afterMarker := start + len(fenceMarker)

		if jsonOnly {
			if !bytes.HasPrefix(input[afterMarker:], []byte("json")) {
				i = afterMarker
				continue
			}
			afterMarker += len("json")
		}

		lineEnd := bytes.IndexByte(input[afterMarker:], '\n')
		if lineEnd < 0 {
			break
		}
		bodyStart := afterMarker + lineEnd + 1

		closeRel := bytes.Index(input[bodyStart:], []byte(fenceMarker))
		if closeRel < 0 {
			break
		}
		bodyEnd := bodyStart + closeRel

		parts = append(parts, rtrimASCIIWhitespace(input[bodyStart:bodyEnd]))
		i = bodyEnd + len(fenceMarker)
	}
	return parts, len(parts) > 0
}

// stripComments implements the comment-stripping pass: tracks string
// state and a backslash parity flag outside strings, recognises // and
// /* */ comments, and suppresses // immediately following a URL scheme
// like http:.
func stripComments(input []byte, logger Logger) []byte {
	out := make([]byte, 0, len(input))
	inString := false
	var delim byte
	escaped := false
	parity := false

	for i := 0; i < len(input); i++ {
		b := input[i]

		if inString {
			out = append(out, b)
			if escaped {
				escaped = false
				continue
			}
			if b == '\\' {
				escaped = true
				continue
			}
			if b == delim {
				inString = false
			}
			continue
		}

		if b == '"' || b == '\'' {
			inString = true
			delim = b
			parity = false
			out = append(out, b)
			continue
		}

		if b == '\\' {
			parity = !parity
			out = append(out, b)
			continue
		}

		if b == '/' && i+1 < len(input) && input[i+1] == '/' && !parity {
			if isURLScheme(out) {
				out = append(out, b)
				parity = false
				continue
			}
			end := i
			for end < len(input) && input[end] != '\n' && input[end] != '\r' {
				end++
			}
			logger.LogEvent(EventCommentRemoved, i, contextWindow(input, i))
			out = spliceComment(out, input, end)
			i = end - 1
			parity = false
			continue
		}

		if b == '/' && i+1 < len(input) && input[i+1] == '*' {
			end := bytes.Index(input[i+2:], []byte("*/"))
			var commentEnd int
			if end < 0 {
				commentEnd = len(input)
			} else {
				commentEnd = i + 2 + end + 2
			}
			logger.LogEvent(EventCommentRemoved, i, contextWindow(input, i))
			out = spliceComment(out, input, commentEnd)
			i = commentEnd - 1
			parity = false
			continue
		}

		if b == '\n' || b == '\r' {
			parity = false
		}
		out = append(out, b)
	}
	return out
}

// isURLScheme reports whether out ends in ':' preceded by a run of two
// or more alphabetic bytes, i.e. the '//' about to be scanned is part of
// a URL like http:// rather than a comment.
func isURLScheme(out []byte) bool {
	if len(out) == 0 || out[len(out)-1] != ':' {
		return false
	}
	i := len(out) - 1
	letters := 0
	for i > 0 {
		c := out[i-1]
		if (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') {
			letters++
			i--
			continue
		}
		break
	}
	return letters >= 2
}

// spliceComment drops input[len(out'):commentEnd), the comment just
// recognised, inserting a single space if both surrounding bytes were
// non-whitespace, and collapsing to one space if both were spaces.
func spliceComment(out, input []byte, commentEnd int) []byte {
	before := len(out) > 0 && !isASCIIWhitespace(out[len(out)-1])
	after := commentEnd < len(input) && !isASCIIWhitespace(input[commentEnd])

	beforeSpace := len(out) > 0 && isASCIIWhitespace(out[len(out)-1])
	afterSpace := commentEnd < len(input) && isASCIIWhitespace(input[commentEnd])

	if before && after {
		out = append(out, ' ')
	} else if beforeSpace && afterSpace {
		out = out[:len(out)-1]
	}
	return out
}

// largestBalanced scans input for the longest balanced open/close
// substring that parses as valid JSON, ignoring delimiters inside string
// literals. Ties favour the earliest match.
func largestBalanced(input []byte, open, close byte) ([]byte, bool) {
	var best []byte
	for start := 0; start < len(input); start++ {
		if input[start] != open {
			continue
		}
		end, ok := matchBalanced(input, start, open, close)
		if !ok {
			continue
		}
		candidate := input[start : end+1]
		if len(candidate) <= len(best) {
			continue
		}
		if candidateValid(candidate, open) {
			best = candidate
		}
	}
	if best == nil {
		return nil, false
	}
	return best, true
}

// firstBalanced returns the first balanced substring that parses as
// valid JSON.
func firstBalanced(input []byte, open, close byte) ([]byte, bool) {
	for start := 0; start < len(input); start++ {
		if input[start] != open {
			continue
		}
		end, ok := matchBalanced(input, start, open, close)
		if !ok {
			continue
		}
		candidate := input[start : end+1]
		if candidateValid(candidate, open) {
			return candidate, true
		}
	}
	return nil, false
}

// candidateValid probes a balanced substring with jsonparser's cheap
// streaming walk before falling back to jsoniter's authoritative strict
// parse. jsonparser rejects most broken candidates without allocating a
// decode tree, which matters here since largestBalanced tries a
// candidate at every occurrence of the opener.
func candidateValid(candidate []byte, open byte) bool {
	if open == '{' {
		if err := jsonparser.ObjectEach(candidate, func(_, _ []byte, _ jsonparser.ValueType, _ int) error {
			return nil
		}); err != nil {
			return false
		}
	} else {
		if _, err := jsonparser.ArrayEach(candidate, func(_ []byte, _ jsonparser.ValueType, _ int, _ error) {}); err != nil {
			return false
		}
	}
	return jsoniter.Valid(candidate)
}

// matchBalanced finds the index of the byte matching input[start] (an
// open delimiter), honouring string literals: brackets inside a quoted
// string never count, and a backslash suspends quote matching for one
// byte.
func matchBalanced(input []byte, start int, open, close byte) (int, bool) {
	depth := 0
	inString := false
	var delim byte
	escaped := false

	for i := start; i < len(input); i++ {
		b := input[i]
		if inString {
			if escaped {
				escaped = false
				continue
			}
			if b == '\\' {
				escaped = true
				continue
			}
			if b == delim {
				inString = false
			}
			continue
		}
		switch b {
		case '"', '\'':
			inString = true
			delim = b
		case open:
			depth++
		case close:
			depth--
			if depth == 0 {
				return i, true
			}
		}
	}
	return 0, false
}
