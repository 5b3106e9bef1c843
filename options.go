package jsonrepair

// Option configures a repair run. Options are applied in order, so a later
// Option can override an earlier one.
//
//	repaired, err := jsonrepair.Repair(input,
//		jsonrepair.WithOmitEmptyValues(),
//		jsonrepair.WithLogger(jsonrepair.NewStderrLogger()),
//	)
type Option func(*Options)

// Options holds the tunable behaviour of a single Repair or Decode call.
// It must be built with the With* functions rather than constructed by
// hand, so new fields never silently change the zero value's meaning.
type Options struct {
	// EnsureASCII controls the finaliser's Unicode re-encode pass. When
	// true (the default) \uXXXX escapes are kept as written. When false,
	// the finaliser rewrites \uXXXX escapes of non-ASCII runes inside
	// strings as literal UTF-8. Literal non-ASCII bytes in the input are
	// copied through unchanged either way.
	EnsureASCII bool

	// OmitEmptyValues, when true, deletes a key that lost its value or
	// colon instead of substituting "".
	OmitEmptyValues bool

	// OmitIncompleteStrings, when true, deletes an object key whose
	// string value was still open at end-of-input instead of closing
	// the string in place.
	OmitIncompleteStrings bool

	// Logger receives one LogEvent per repair decision. Nil disables
	// logging; Repair substitutes NopLogger internally so the engine
	// never needs a nil check in its hot loop.
	Logger Logger

	// MaxDepth caps container nesting the guard pre-flight will accept
	// before Repair even starts. Zero disables the check. See
	// internal/guard for the walker this wraps.
	MaxDepth int

	// MaxInputBytes caps the sanitised input size the guard pre-flight
	// will accept. Zero disables the check.
	MaxInputBytes int

	// FlattenInnerJSON, when true, makes Decode replace any string value
	// that is itself a valid JSON object or array with its parsed form,
	// recursively.
	FlattenInnerJSON bool
}

// defaultOptions mirrors the library surface's documented defaults:
// EnsureASCII true, both omit-* flags false, no logger, no resource caps.
func defaultOptions() Options {
	return Options{
		EnsureASCII: true,
	}
}

func newOptions(opts []Option) Options {
	o := defaultOptions()
	for _, apply := range opts {
		apply(&o)
	}
	if o.Logger == nil {
		o.Logger = NopLogger{}
	}
	return o
}

// WithEnsureASCII overrides the default (true) ensure-ASCII behaviour.
// Pass false to have the finaliser re-encode the output with literal
// non-ASCII runes instead of \uXXXX escapes.
func WithEnsureASCII(ensure bool) Option {
	return func(o *Options) { o.EnsureASCII = ensure }
}

// WithOmitEmptyValues makes the engine delete keys that lost their colon
// or value rather than substituting an empty string.
func WithOmitEmptyValues() Option {
	return func(o *Options) { o.OmitEmptyValues = true }
}

// WithOmitIncompleteStrings makes the finaliser delete an object key whose
// string value is still open at end-of-input rather than closing it.
func WithOmitIncompleteStrings() Option {
	return func(o *Options) { o.OmitIncompleteStrings = true }
}

// WithLogger attaches a Logger that receives one LogEvent per repair
// decision. The context string it is handed is built from the input
// bytes around the event's offset.
func WithLogger(l Logger) Option {
	return func(o *Options) { o.Logger = l }
}

// WithMaxDepth rejects input nested deeper than depth before repair
// begins. Zero (the default) disables the check.
func WithMaxDepth(depth int) Option {
	return func(o *Options) { o.MaxDepth = depth }
}

// WithMaxInputBytes rejects sanitised input longer than n bytes before
// repair begins. Zero (the default) disables the check.
func WithMaxInputBytes(n int) Option {
	return func(o *Options) { o.MaxInputBytes = n }
}

// WithFlattenInnerJSON makes Decode unwrap string values that are
// themselves valid JSON objects or arrays into their parsed form,
// recursively.
func WithFlattenInnerJSON() Option {
	return func(o *Options) { o.FlattenInnerJSON = true }
}
