package arraypool

import (
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const (
	// DefaultMaxTrackedLength is the tracking ceiling of pools built by NewDefault.
	DefaultMaxTrackedLength = 1 << 20

	// DefaultMaxArraysPerBucket is the bucket depth of pools built by NewDefault.
	DefaultMaxArraysPerBucket = 50
)

// Option configures optional pool behaviour.
type Option func(*config)

type config struct {
	logger         *zap.Logger
	minClassLength int
}

func newConfig(opts []Option) config {
	c := config{
		logger:         zap.NewNop(),
		minClassLength: DefaultMinClassLength,
	}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

func (c *config) validate() error {
	n := c.minClassLength
	if n <= 0 || n > MaxClassLength || n&(n-1) != 0 {
		return errors.Wrapf(ErrInvalidArgument, "min class length %d is not a power of two in [1, %d]", n, MaxClassLength)
	}
	return nil
}

// WithLogger sets the logger used for pool diagnostics.
// Protocol violations are logged at warn level, discarded arrays at debug level.
func WithLogger(logger *zap.Logger) Option {
	return func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithMinClassLength sets the capacity of the smallest size class.
// It must be a power of two.
func WithMinClassLength(n int) Option {
	return func(c *config) {
		c.minClassLength = n
	}
}

// Config describes pool sizing in a form that embeds into application config.
// Zero fields fall back to the package defaults.
type Config struct {
	MaxTrackedLength   int `toml:"max-tracked-length"`
	MaxArraysPerBucket int `toml:"max-arrays-per-bucket"`
	MinClassLength     int `toml:"min-class-length"`
}

func (c Config) adjust() Config {
	if c.MaxTrackedLength == 0 {
		c.MaxTrackedLength = DefaultMaxTrackedLength
	}
	if c.MaxArraysPerBucket == 0 {
		c.MaxArraysPerBucket = DefaultMaxArraysPerBucket
	}
	if c.MinClassLength == 0 {
		c.MinClassLength = DefaultMinClassLength
	}
	return c
}

// NewFromConfig creates a pool from cfg. Options given explicitly are applied
// after the ones derived from cfg.
func NewFromConfig[T any](cfg Config, opts ...Option) (*Pool[T], error) {
	cfg = cfg.adjust()
	opts = append([]Option{WithMinClassLength(cfg.MinClassLength)}, opts...)
	return New[T](cfg.MaxTrackedLength, cfg.MaxArraysPerBucket, opts...)
}
