package maze

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearcherExhausted(t *testing.T) {
	start := State{Cell: 0, Orientation: Orientations()[0]}
	s := newSearcher(26)
	for _, o := range Orientations() {
		s.parent[State{Cell: 26, Orientation: o}] = edge{}
	}

	path, err := s.run(start)
	assert.ErrorIs(t, err, ErrNoPath)
	assert.Nil(t, path)
	assert.Empty(t, s.queue)
}

func TestSearcherDetoursAroundSeenStates(t *testing.T) {
	start := State{Cell: Center, Orientation: Orientations()[0]}
	blockedCell := Center + Size // (1,2,1)

	s := newSearcher(Center + Size*Size)
	for _, o := range Orientations() {
		s.parent[State{Cell: blockedCell, Orientation: o}] = edge{}
	}
	path, err := s.run(start)
	require.NoError(t, err)

	cur := start
	for _, a := range path {
		var moved bool
		cur, moved = cur.AttemptTurn(a)
		require.True(t, moved)
		assert.NotEqual(t, blockedCell, cur.Cell)
	}
	assert.Equal(t, Center+Size*Size, cur.Cell)
}
