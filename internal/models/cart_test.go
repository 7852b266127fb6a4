package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCart_AddIncrements(t *testing.T) {
	c := NewCart()
	assert.Equal(t, 1, c.Add("3"))
	assert.Equal(t, 2, c.Add("3"))
	assert.Equal(t, 2, c.Quantity("3"))
	assert.Equal(t, 2, c.TotalItems())
}

func TestCart_SetZeroEqualsRemove(t *testing.T) {
	a := NewCart()
	a.Add("1")
	a.Add("2")
	b := a.Clone()

	a.Set("1", 0)
	b.Remove("1")

	assert.Equal(t, a.Items(), b.Items())
	assert.Equal(t, 0, a.Quantity("1"))
	assert.Equal(t, 1, a.Len())
}

func TestCart_SetNegativeRemoves(t *testing.T) {
	c := NewCart()
	c.Set("7", 4)
	assert.Equal(t, 4, c.Quantity("7"))
	c.Set("7", -2)
	assert.True(t, c.IsEmpty())
}

func TestCart_RemoveMissingIsNoop(t *testing.T) {
	c := NewCart()
	c.Remove("99")
	assert.True(t, c.IsEmpty())

	var zero Cart
	zero.Remove("1")
	assert.Equal(t, 1, zero.Add("1"))
}

func TestCart_JSONDropsNonPositive(t *testing.T) {
	var c Cart
	require.NoError(t, json.Unmarshal([]byte(`{"1":2,"2":0,"3":-1}`), &c))
	assert.Equal(t, map[string]int{"1": 2}, c.Items())

	out, err := json.Marshal(c)
	require.NoError(t, err)
	assert.JSONEq(t, `{"1":2}`, string(out))
}

func TestCart_NilIsEmpty(t *testing.T) {
	var c *Cart
	assert.True(t, c.IsEmpty())
	assert.Equal(t, 0, c.TotalItems())
	assert.Empty(t, c.Items())
}
