package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionState_AbsentVersusEmptyCart(t *testing.T) {
	absent, err := json.Marshal(NewSessionState())
	require.NoError(t, err)
	assert.JSONEq(t, `{}`, string(absent))

	s := NewSessionState()
	s.Cart = NewCart()
	empty, err := json.Marshal(s)
	require.NoError(t, err)
	assert.JSONEq(t, `{"cart":{}}`, string(empty))
}

func TestSessionState_RoundTrip(t *testing.T) {
	id := 7
	s := NewSessionState()
	s.EnsureCart().Set("1", 2)
	s.EnsureWishlist().Add("4")
	s.UserID = &id
	s.Username = "ada"

	data, err := json.Marshal(s)
	require.NoError(t, err)

	var back SessionState
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, 2, back.Cart.Quantity("1"))
	assert.True(t, back.Wishlist.Has("4"))
	require.NotNil(t, back.UserID)
	assert.Equal(t, 7, *back.UserID)
	assert.True(t, back.IsAuthenticated())
}

func TestSessionState_ClearAndFlashes(t *testing.T) {
	s := NewSessionState()
	s.EnsureCart().Add("1")
	s.IsAdmin = true
	s.AddFlash("info", "hello")

	assert.Equal(t, []Flash{{Category: "info", Message: "hello"}}, s.PopFlashes())
	assert.Empty(t, s.PopFlashes())

	s.Clear()
	assert.Nil(t, s.Cart)
	assert.False(t, s.IsAuthenticated())
}
