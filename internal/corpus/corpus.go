// Package corpus generates random valid JSON documents and then
// corrupts them, for the property-based tests exercising idempotence,
// closure, structural monotonicity, comment transparency and
// quote-substitution neutrality.
package corpus

import (
	"strconv"

	"github.com/Pallinder/go-randomdata"
	"github.com/brianvoe/gofakeit/v6"
)

// Document returns a random, strictly valid JSON object with at most
// depth levels of nesting.
func Document(depth int) []byte {
	if depth < 1 {
		depth = 1
	}
	return appendRandObject(nil, depth)
}

func appendRandString(dst []byte) []byte {
	dst = append(dst, '"')
	dst = append(dst, escapeWord(randomWord())...)
	return append(dst, '"')
}

// randomWord alternates between the two generators wired for this
// package so a corpus run exercises both.
func randomWord() string {
	if gofakeit.Bool() {
		return gofakeit.Word()
	}
	return randomdata.SillyName()
}

func escapeWord(s string) []byte {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '"' || s[i] == '\\' {
			out = append(out, '\\')
		}
		out = append(out, s[i])
	}
	return out
}

func appendRandValue(dst []byte, depth int) []byte {
	switch gofakeit.Number(0, 6) {
	case 0:
		dst = appendRandString(dst)
	case 1:
		if depth > 1 {
			dst = append(dst, '[')
			n := gofakeit.Number(0, 3)
			for i := 0; i < n; i++ {
				if i > 0 {
					dst = append(dst, ',')
				}
				dst = appendRandValue(dst, depth-1)
			}
			dst = append(dst, ']')
		} else {
			dst = appendRandString(dst)
		}
	case 2:
		if depth > 1 {
			dst = appendRandObject(dst, depth-1)
		} else {
			dst = appendRandString(dst)
		}
	case 3:
		dst = strconv.AppendFloat(dst, gofakeit.Float64Range(-1000, 1000), 'f', 2, 64)
	case 4:
		dst = append(dst, "true"...)
	case 5:
		dst = append(dst, "false"...)
	case 6:
		dst = append(dst, "null"...)
	}
	return dst
}

func appendRandObject(dst []byte, depth int) []byte {
	dst = append(dst, '{')
	n := gofakeit.Number(1, 4)
	for i := 0; i < n; i++ {
		if i > 0 {
			dst = append(dst, ',')
		}
		dst = appendRandString(dst)
		dst = append(dst, ':')
		dst = appendRandValue(dst, depth-1)
	}
	return append(dst, '}')
}

// MangleKind names one kind of corruption Mangle can apply.
type MangleKind string

const (
	MangleDropCloser    MangleKind = "drop_closer"
	MangleSwapQuotes    MangleKind = "swap_quotes"
	MangleLineComment   MangleKind = "line_comment"
	MangleBlockComment  MangleKind = "block_comment"
	MangleTruncateToken MangleKind = "truncate_token"
)

var mangleKinds = []MangleKind{
	MangleDropCloser, MangleSwapQuotes, MangleLineComment,
	MangleBlockComment, MangleTruncateToken,
}

// Mangle applies one randomly chosen corruption to doc and reports which
// kind it applied, so a caller can pick the matching property to check.
func Mangle(doc []byte) ([]byte, MangleKind) {
	kind := mangleKinds[gofakeit.Number(0, len(mangleKinds)-1)]
	switch kind {
	case MangleDropCloser:
		return dropLastCloser(doc), kind
	case MangleSwapQuotes:
		return swapOuterQuotes(doc), kind
	case MangleLineComment:
		return injectComment(doc, "// injected\n"), kind
	case MangleBlockComment:
		return injectComment(doc, "/* injected */"), kind
	default:
		return truncateMidToken(doc), kind
	}
}

// dropLastCloser removes the final byte of doc, which for a well-formed
// document generated by Document is always a closer.
func dropLastCloser(doc []byte) []byte {
	if len(doc) == 0 {
		return doc
	}
	return doc[:len(doc)-1]
}

// swapOuterQuotes replaces every ASCII '"' with '\'', exercising
// quote-substitution neutrality (spec.md §8 property 5).
func swapOuterQuotes(doc []byte) []byte {
	out := make([]byte, len(doc))
	copy(out, doc)
	for i, b := range out {
		if b == '"' {
			out[i] = '\''
		}
	}
	return out
}

// injectComment splices comment into the middle of doc, at a position
// guaranteed to land outside any string literal: right after the first
// top-level ',' or, failing that, right after the opening '{'.
func injectComment(doc []byte, comment string) []byte {
	depth := 0
	inString := false
	for i, b := range doc {
		if inString {
			if b == '"' {
				inString = false
			}
			continue
		}
		switch b {
		case '"':
			inString = true
		case '{', '[':
			depth++
		case '}', ']':
			depth--
		case ',':
			if depth == 1 {
				out := make([]byte, 0, len(doc)+len(comment))
				out = append(out, doc[:i+1]...)
				out = append(out, comment...)
				out = append(out, doc[i+1:]...)
				return out
			}
		}
	}
	if len(doc) == 0 {
		return doc
	}
	out := make([]byte, 0, len(doc)+len(comment))
	out = append(out, doc[0])
	out = append(out, comment...)
	out = append(out, doc[1:]...)
	return out
}

// truncateMidToken cuts doc partway through, simulating a stream that
// ended mid-token, the primary use case described in spec.md §1.
func truncateMidToken(doc []byte) []byte {
	if len(doc) < 2 {
		return doc
	}
	cut := gofakeit.Number(1, len(doc)-1)
	return doc[:cut]
}
