package arraypool

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewFromConfigDefaults(t *testing.T) {
	p, err := NewFromConfig[byte](Config{})
	require.NoError(t, err)
	assert.Equal(t, DefaultMaxTrackedLength, p.MaxTrackedLength())
	assert.Equal(t, DefaultMaxArraysPerBucket, p.MaxArraysPerBucket())
	assert.Equal(t, DefaultMinClassLength, p.classes.minLength())
}

func TestNewFromConfig(t *testing.T) {
	p, err := NewFromConfig[int](Config{
		MaxTrackedLength:   4096,
		MaxArraysPerBucket: 3,
		MinClassLength:     64,
	})
	require.NoError(t, err)
	assert.Equal(t, 4096, p.MaxTrackedLength())
	assert.Equal(t, 3, p.MaxArraysPerBucket())
	assert.Len(t, p.MustAcquire(1), 64)
	assert.Len(t, p.buckets, 7)
}

func TestNewFromConfigExplicitOptionsWin(t *testing.T) {
	p, err := NewFromConfig[int](Config{MinClassLength: 64}, WithMinClassLength(32))
	require.NoError(t, err)
	assert.Len(t, p.MustAcquire(1), 32)
}

func TestNewFromConfigInvalid(t *testing.T) {
	_, err := NewFromConfig[int](Config{MaxTrackedLength: -1})
	assert.True(t, errors.Is(err, ErrInvalidArgument), "err: %v", err)

	_, err = NewFromConfig[int](Config{MinClassLength: 48})
	assert.True(t, errors.Is(err, ErrInvalidArgument), "err: %v", err)
}

func TestWithLoggerNil(t *testing.T) {
	c := newConfig([]Option{WithLogger(nil)})
	assert.NotNil(t, c.logger)

	logger := zap.NewExample()
	c = newConfig([]Option{WithLogger(logger)})
	assert.Same(t, logger, c.logger)
}
