package region

import (
	"fmt"

	"github.com/arloliu/anvil/compress"
	"github.com/arloliu/anvil/format"
	"github.com/arloliu/anvil/internal/options"
	"github.com/arloliu/anvil/nbt"
)

// Config holds the settings of a Reader or Writer.
//
// Reader options: WithTagOptions, WithExternalChunks.
// Writer options: WithTagOptions, WithCompression, WithCustomCompression.
type Config struct {
	tagOpts []nbt.Option

	// external chunk lookup
	external    bool
	externalDir string
	regionX     int
	regionZ     int

	// writer
	compression format.CompressionType
	customName  string
}

// NewConfig creates a config with zlib compression and default tag options.
func NewConfig() *Config {
	return &Config{
		compression: format.CompressionZlib,
	}
}

// Option represents a functional option for configuring a Reader or Writer.
type Option = options.Option[*Config]

// WithTagOptions passes options to the tag decoder and encoder, for example
// nbt.WithLittleEndian or nbt.WithMaxDepth.
func WithTagOptions(opts ...nbt.Option) Option {
	return options.NoError(func(c *Config) {
		c.tagOpts = append(c.tagOpts, opts...)
	})
}

// WithExternalChunks enables loading oversized chunks stored in c.<x>.<z>.mcc files.
//
// Open sets this automatically when the file name follows the r.<x>.<z>.mca pattern.
//
// Parameters:
//   - dir: Directory containing the .mcc files (usually the region directory)
//   - regionX, regionZ: Region coordinates, used to derive absolute chunk coordinates
func WithExternalChunks(dir string, regionX, regionZ int) Option {
	return options.NoError(func(c *Config) {
		c.external = true
		c.externalDir = dir
		c.regionX = regionX
		c.regionZ = regionZ
	})
}

// WithCompression selects a built-in compression scheme for written chunks.
//
// The default is format.CompressionZlib, which every game version can read.
func WithCompression(compression format.CompressionType) Option {
	return options.New(func(c *Config) error {
		if compression.IsExternal() || compression == format.CompressionCustom {
			return fmt.Errorf("invalid chunk compression: %s", compression)
		}
		if _, err := compress.GetCodec(compression); err != nil {
			return err
		}
		c.compression = compression
		c.customName = ""

		return nil
	})
}

// WithCustomCompression selects a codec registered with compress.RegisterCustom.
// Chunks are stored with scheme 127 followed by the algorithm name.
func WithCustomCompression(name string) Option {
	return options.New(func(c *Config) error {
		if len(name) == 0 || len(name) > nbt.MaxStringLength {
			return fmt.Errorf("invalid custom compression name length: %d", len(name))
		}
		if _, err := compress.GetCustomCodec(name); err != nil {
			return err
		}
		c.compression = format.CompressionCustom
		c.customName = name

		return nil
	})
}

func newConfig(opts []Option) (*Config, error) {
	cfg := NewConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	return cfg, nil
}
