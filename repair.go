package jsonrepair

import (
	"fmt"

	jsoniter "github.com/json-iterator/go"

	"github.com/bingoohuang/jsonrepair/internal/guard"
)

// Repair implements the library's primary entry point (spec.md §6): it
// sanitises input, runs the resource guard, drives the repair engine to
// completion, and hands the result through the finaliser.
func Repair(input string, opts ...Option) (string, error) {
	return repairWith(input, newOptions(opts))
}

func repairWith(input string, o Options) (string, error) {
	clean := sanitize([]byte(input), o.Logger)

	if size, exceeded := guard.TooLarge(clean, o.MaxInputBytes); exceeded {
		return "", fmt.Errorf("%w: %d bytes (max %d)", ErrInputTooLarge, size, o.MaxInputBytes)
	}
	if depth, exceeded := guard.TooDeep(clean, o.MaxDepth); exceeded {
		return "", fmt.Errorf("%w: depth %d (max %d)", ErrTooDeep, depth, o.MaxDepth)
	}

	if jsoniter.Valid(clean) {
		return string(clean), nil
	}

	e := newEngine(clean, o)
	e.run()
	return e.finalize()
}

// Decode implements spec.md §6's decode: it repairs input, then parses
// the result with a strict JSON decoder, surfacing the decoder's own
// error unchanged on failure. With WithFlattenInnerJSON, any string
// value that is itself valid JSON is unwrapped into its parsed form.
func Decode(input string, opts ...Option) (any, error) {
	o := newOptions(opts)
	repaired, err := repairWith(input, o)
	if err != nil {
		return nil, err
	}
	var v any
	if err := jsoniter.UnmarshalFromString(repaired, &v); err != nil {
		return nil, err
	}
	if o.FlattenInnerJSON {
		v = FlattenInnerJSON(v)
	}
	return v, nil
}
