package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestGetSet(t *testing.T) {
	c := New(time.Minute)

	_, ok := c.Get(Key("versions", "SH001", "MAIN"))
	require.False(t, ok)

	c.Set(Key("versions", "SH001", "MAIN"), []int{1, 2, 3})

	got, ok := c.Get(Key("versions", "SH001", "MAIN"))
	require.True(t, ok)
	require.Equal(t, []int{1, 2, 3}, got)
}

func TestExpiry(t *testing.T) {
	c := New(time.Minute)
	current := time.Unix(1000, 0)
	c.now = func() time.Time { return current }

	c.Set("k", "v")

	_, ok := c.Get("k")
	require.True(t, ok)

	current = current.Add(2 * time.Minute)
	_, ok = c.Get("k")
	require.False(t, ok)
}

func TestInvalidatePrefix(t *testing.T) {
	c := New(time.Minute)

	c.Set(Key("versions", "SH001", "MAIN"), 1)
	c.Set(Key("versions", "SH001", "ALT"), 2)
	c.Set(Key("shots", "SEQ_1"), 3)

	c.InvalidatePrefix(Key("versions", "SH001"))

	_, ok := c.Get(Key("versions", "SH001", "MAIN"))
	require.False(t, ok)
	_, ok = c.Get(Key("versions", "SH001", "ALT"))
	require.False(t, ok)
	_, ok = c.Get(Key("shots", "SEQ_1"))
	require.True(t, ok)
}

func TestKeyDistinguishesArgBoundaries(t *testing.T) {
	require.NotEqual(t, Key("op", "ab", "c"), Key("op", "a", "bc"))
}
