package nbt

import (
	"fmt"

	"github.com/arloliu/anvil/endian"
	"github.com/arloliu/anvil/internal/options"
)

// DefaultMaxDepth is the default limit on compound and list nesting.
const DefaultMaxDepth = 512

// MaxStringLength is the longest string or name the wire format can carry.
const MaxStringLength = 1<<15 - 1

// CodecConfig holds the settings shared by the decoder and the encoder.
type CodecConfig struct {
	engine   endian.EndianEngine
	maxDepth int
}

// NewCodecConfig creates a config with big-endian byte order and DefaultMaxDepth.
func NewCodecConfig() *CodecConfig {
	return &CodecConfig{
		engine:   endian.GetBigEndianEngine(),
		maxDepth: DefaultMaxDepth,
	}
}

// Engine returns the configured byte order.
func (c *CodecConfig) Engine() endian.EndianEngine {
	return c.engine
}

// MaxDepth returns the configured nesting limit.
func (c *CodecConfig) MaxDepth() int {
	return c.maxDepth
}

// Option represents a functional option for configuring the CodecConfig.
type Option = options.Option[*CodecConfig]

// WithBigEndian selects big-endian byte order, used by Java edition files.
// It is the default option.
func WithBigEndian() Option {
	return options.NoError(func(c *CodecConfig) {
		c.engine = endian.GetBigEndianEngine()
	})
}

// WithLittleEndian selects little-endian byte order, used by Bedrock edition files.
func WithLittleEndian() Option {
	return options.NoError(func(c *CodecConfig) {
		c.engine = endian.GetLittleEndianEngine()
	})
}

// WithByteOrder selects an explicit byte order engine.
func WithByteOrder(engine endian.EndianEngine) Option {
	return options.New(func(c *CodecConfig) error {
		if engine == nil {
			return fmt.Errorf("byte order engine must not be nil")
		}
		c.engine = engine

		return nil
	})
}

// WithMaxDepth limits how deeply compounds and lists may nest.
//
// Decoding a deeper stream fails with errs.ErrMalformedStream instead of exhausting
// the goroutine stack.
func WithMaxDepth(depth int) Option {
	return options.New(func(c *CodecConfig) error {
		if depth <= 0 {
			return fmt.Errorf("invalid max depth: %d", depth)
		}
		c.maxDepth = depth

		return nil
	})
}

func newConfig(opts []Option) (*CodecConfig, error) {
	cfg := NewCodecConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	return cfg, nil
}
