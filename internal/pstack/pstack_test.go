package pstack_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/go-nbt/nbt/internal/pstack"
)

func TestPushPop(t *testing.T) {
	s := pstack.New()
	require.True(t, s.Empty())

	require.NoError(t, s.Push(pstack.Frame{Kind: pstack.FrameCompound, TapeIndex: 3}))
	require.Equal(t, 1, s.Depth())
	require.Equal(t, pstack.FrameCompound, s.Top().Kind)

	f := s.Pop()
	require.Equal(t, 3, f.TapeIndex)
	require.True(t, s.Empty())
}

func TestMaxDepthExceeded(t *testing.T) {
	s := pstack.New()
	for i := 0; i < pstack.MaxDepth; i++ {
		require.NoError(t, s.Push(pstack.Frame{Kind: pstack.FrameCompound}))
	}
	err := s.Push(pstack.Frame{Kind: pstack.FrameCompound})
	require.ErrorIs(t, err, pstack.ErrMaxDepthExceeded)
	require.Equal(t, pstack.MaxDepth, s.Depth())
}

func TestDecrementRemaining(t *testing.T) {
	s := pstack.New()
	require.NoError(t, s.Push(pstack.Frame{Kind: pstack.FrameListOfCompounds, Remaining: 2}))
	require.False(t, s.DecrementRemaining())
	require.True(t, s.DecrementRemaining())
}
