package codec

import (
	"fmt"

	"github.com/arloliu/tensorjson/errs"
	"github.com/arloliu/tensorjson/internal/options"
)

// DefaultMaxDepth is the nesting depth limit applied to both encoding and
// decoding unless overridden with WithMaxDepth (encode side only).
const DefaultMaxDepth = 1024

// FallbackFunc is the user extensibility point: it receives a host value the
// dispatcher does not recognize and returns a substitute to encode in its
// place. The substitute is dispatched exactly once; if it is unsupported too,
// encoding fails rather than looping through the hook again.
type FallbackFunc func(v any) (any, error)

// EncoderConfig is the resolved option set for a single encode call.
//
// It is built once from the supplied options, then treated as immutable for
// the duration of the call. Nothing is shared between calls, so concurrent
// encodes need no locking as long as the fallback hook itself is
// concurrency-safe.
type EncoderConfig struct {
	fallback FallbackFunc
	maxDepth int

	sortKeys           bool
	indent             bool
	nonStringKeys      bool
	strictIntegers     bool
	serializeBuffers   bool
	passthroughBuffers bool
	sanitizeNaN        bool
	naiveUTC           bool
	utcZ               bool
	omitSubsecond      bool
	appendNewline      bool
}

// Option configures an encode call.
type Option = options.Option[*EncoderConfig]

func newEncoderConfig() *EncoderConfig {
	return &EncoderConfig{maxDepth: DefaultMaxDepth}
}

// WithSortKeys emits object keys in byte-wise sorted order instead of
// insertion order.
func WithSortKeys() Option {
	return options.NoError(func(c *EncoderConfig) {
		c.sortKeys = true
	})
}

// WithIndent pretty-prints the output with newlines and a fixed 2-space
// indent per nesting level. No other indent width is supported.
func WithIndent() Option {
	return options.NoError(func(c *EncoderConfig) {
		c.indent = true
	})
}

// WithNonStringKeys coerces Bool, Int, Float, Null, Timestamp and UniqueID
// map keys to their canonical string form instead of failing. Duplicate keys
// produced by coercion are emitted as-is, not deduplicated.
func WithNonStringKeys() Option {
	return options.NoError(func(c *EncoderConfig) {
		c.nonStringKeys = true
	})
}

// WithStrictIntegers rejects integers whose magnitude exceeds the 53-bit
// range a float64 represents exactly, protecting consumers that decode JSON
// numbers as doubles.
func WithStrictIntegers() Option {
	return options.NoError(func(c *EncoderConfig) {
		c.strictIntegers = true
	})
}

// WithSerializeBuffers enables the numeric array adapter for ndarray.Buffer
// inputs. Without it such inputs are routed like any unrecognized value.
func WithSerializeBuffers() Option {
	return options.NoError(func(c *EncoderConfig) {
		c.serializeBuffers = true
	})
}

// WithPassthroughBuffers routes every ndarray.Buffer to the fallback hook
// instead of the adapter, letting callers substitute their own
// representation.
func WithPassthroughBuffers() Option {
	return options.NoError(func(c *EncoderConfig) {
		c.passthroughBuffers = true
	})
}

// WithSanitizeNaN renders non-finite floats as null instead of the bare
// NaN/Infinity/-Infinity literals, keeping the output strict JSON.
func WithSanitizeNaN() Option {
	return options.NoError(func(c *EncoderConfig) {
		c.sanitizeNaN = true
	})
}

// WithNaiveUTC treats timestamps without an explicit offset as UTC. It has
// no effect on timestamps that already carry an offset.
func WithNaiveUTC() Option {
	return options.NoError(func(c *EncoderConfig) {
		c.naiveUTC = true
	})
}

// WithUTCZ renders a UTC offset as the literal Z instead of +00:00. It only
// applies when the resolved offset is exactly UTC.
func WithUTCZ() Option {
	return options.NoError(func(c *EncoderConfig) {
		c.utcZ = true
	})
}

// WithOmitSubsecond drops sub-second precision from timestamp rendering.
func WithOmitSubsecond() Option {
	return options.NoError(func(c *EncoderConfig) {
		c.omitSubsecond = true
	})
}

// WithAppendNewline appends a trailing newline after the top-level value.
func WithAppendNewline() Option {
	return options.NoError(func(c *EncoderConfig) {
		c.appendNewline = true
	})
}

// WithMaxDepth overrides the default nesting depth limit.
func WithMaxDepth(depth int) Option {
	return options.New(func(c *EncoderConfig) error {
		if depth <= 0 {
			return fmt.Errorf("%w: max depth must be positive, got %d", errs.ErrInvalidOption, depth)
		}
		c.maxDepth = depth

		return nil
	})
}

// WithFallback registers the fallback hook invoked for unrecognized values.
func WithFallback(fn FallbackFunc) Option {
	return options.New(func(c *EncoderConfig) error {
		if fn == nil {
			return fmt.Errorf("%w: fallback hook must not be nil", errs.ErrInvalidOption)
		}
		c.fallback = fn

		return nil
	})
}
