package ast

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPositionCompare(t *testing.T) {
	tests := []struct {
		a, b Position
		want int
	}{
		{pos(0, 0), pos(0, 0), 0},
		{pos(0, 1), pos(0, 2), -1},
		{pos(1, 0), pos(0, 9), 1},
		{pos(2, 3), pos(2, 1), 1},
		{pos(0, 9), pos(1, 0), -1},
	}
	for _, tt := range tests {
		if got := tt.a.Compare(tt.b); got != tt.want {
			t.Errorf("%v.Compare(%v) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestNewSpanRejectsReversed(t *testing.T) {
	_, err := NewSpan(pos(1, 4), pos(1, 2))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidSpan))

	var spanErr *SpanError
	require.True(t, errors.As(err, &spanErr))
	assert.Equal(t, pos(1, 4), spanErr.Span.From)

	s, err := NewSpan(pos(0, 0), pos(0, 0))
	require.NoError(t, err)
	assert.True(t, s.Valid())
}

func TestSpanContains(t *testing.T) {
	s := Span{From: pos(0, 5), To: pos(0, 12)}

	assert.True(t, s.Contains(pos(0, 5)))
	assert.True(t, s.Contains(pos(0, 8)))
	assert.True(t, s.Contains(pos(0, 12)))
	assert.False(t, s.Contains(pos(0, 4)))
	assert.False(t, s.Contains(pos(0, 13)))
	assert.False(t, s.Contains(pos(1, 6)))
}

func TestPathRoundTrip(t *testing.T) {
	path, err := ParsePath("2,0,1")
	require.NoError(t, err)
	assert.Equal(t, []int{2, 0, 1}, path)
	assert.Equal(t, "2,0,1", FormatPath(path))

	_, err = ParsePath("1,x")
	assert.Error(t, err)

	assert.Equal(t, "3", ChildID("", 3))
	assert.Equal(t, "3,0", ChildID("3", 0))
}
