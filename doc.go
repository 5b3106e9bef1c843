// Package jsonrepair repairs malformed or truncated JSON-like text into
// strictly valid JSON.
//
// It is aimed at salvaging output from sources that emit near-JSON text:
// large-language-model completions, hand-typed configuration, log lines
// with JSON embedded in prose, including text that was cut off mid-token
// because a stream ended early.
//
// Repair runs a single left-to-right pass over the input: a markdown-fence
// and comment-stripping sanitiser feeds a tokenising state machine that
// emits canonical JSON, and a finalisation phase closes every construct
// still open when the input runs out. The engine never backtracks and
// never fails; the only error it can return, RepairFailedError, signals
// that the finalised output failed to parse as strict JSON, which the
// tests in this package treat as a defect.
package jsonrepair
