package flow_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ardnew/flowc/flow"
)

func TestSourceLocate(t *testing.T) {
	src := flow.NewSource("t.flow", []byte("ab\ncd\ne"))

	line, col := src.Locate(0)
	assert.Equal(t, 1, line)
	assert.Equal(t, 0, col)

	line, col = src.Locate(3)
	assert.Equal(t, 2, line)
	assert.Equal(t, 0, col)

	line, col = src.Locate(6)
	assert.Equal(t, 3, line)
	assert.Equal(t, 0, col)

	// Out of range clamps to buffer length.
	line, col = src.Locate(100)
	assert.Equal(t, 3, line)
	assert.Equal(t, 1, col)
}

func TestSpanSlice(t *testing.T) {
	buf := []byte("hello world")
	s := flow.Span{Begin: 6, End: 11}
	require.Equal(t, "world", s.Slice(buf))

	// Out-of-range endpoints clamp rather than panic.
	s = flow.Span{Begin: 6, End: 1000}
	require.Equal(t, "world", s.Slice(buf))
}

func TestSpanContains(t *testing.T) {
	outer := flow.Span{Begin: 0, End: 10}
	inner := flow.Span{Begin: 2, End: 5}
	assert.True(t, outer.Contains(inner))
	assert.False(t, inner.Contains(outer))
}
