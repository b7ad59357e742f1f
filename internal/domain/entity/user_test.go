package entity

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewUser_DefaultState(t *testing.T) {
	u := NewUser(1, 10)
	require.Equal(t, StateMainMenu, u.State)
	require.Equal(t, ModeSingle, u.Mode)
	require.Equal(t, int64(1), u.ID)
	require.Equal(t, int64(10), u.ChatID)
	require.False(t, u.Ready())
}

func TestUser_SetKeySwitchesMode(t *testing.T) {
	u := NewUser(1, 10)
	u.SetKey(NewMultiKey(map[int][]int{1: {3, 1}}))
	require.Equal(t, ModeMulti, u.Mode)
	require.True(t, u.Ready())
}
