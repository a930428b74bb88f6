package naming

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestConditionShotNumber(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"1", "1"},
		{"12a", "12A"},
		{"10S", "10S"},
		{"abc92a", "92A"},
		{"abc323d432e", "323D"},
		{"1-2", "12"},
		{"001", "001"},
	}

	for _, tc := range cases {
		got, err := ConditionShotNumber(tc.in)
		require.NoError(t, err, "input %q", tc.in)
		require.Equal(t, tc.want, got, "input %q", tc.in)
	}
}

func TestConditionShotNumber_Invalid(t *testing.T) {
	for _, in := range []string{"", "abc", "---", "10q"} {
		_, err := ConditionShotNumber(in)
		require.ErrorIs(t, err, ErrInvalidShotNumber, "input %q", in)
	}
}

func TestShotCode(t *testing.T) {
	conv := DefaultConventions()

	cases := []struct {
		number string
		want   string
	}{
		{"1", "SH001"},
		{"12A", "SH012A"},
		{"323D", "SH323D"},
		{"1234", "SH1234"},
	}

	for _, tc := range cases {
		got, err := conv.ShotCode(tc.number)
		require.NoError(t, err)
		require.Equal(t, tc.want, got)
	}
}

func TestShotCode_FromRawNumbers(t *testing.T) {
	conv := DefaultConventions()

	// The full pipeline: raw user input conditioned then composed.
	cases := []struct {
		raw  string
		want string
	}{
		{"1", "SH001"},
		{"12a", "SH012A"},
		{"abc323d", "SH323D"},
	}

	for _, tc := range cases {
		number, err := ConditionShotNumber(tc.raw)
		require.NoError(t, err)
		code, err := conv.ShotCode(number)
		require.NoError(t, err)
		require.Equal(t, tc.want, code)
	}
}

func TestNextAlternate(t *testing.T) {
	used := map[string]bool{"10": true, "10A": true, "10B": true}
	next, err := NextAlternate("10", used)
	require.NoError(t, err)
	require.Equal(t, "10C", next)

	// Alternate allocation on an alternate uses the same digit run.
	next, err = NextAlternate("10A", used)
	require.NoError(t, err)
	require.Equal(t, "10C", next)
}

func TestNextAlternate_SkipsQ(t *testing.T) {
	used := map[string]bool{}
	for _, letter := range "ABCDEFGHIJKLMNOP" {
		used["7"+string(letter)] = true
	}
	next, err := NextAlternate("7", used)
	require.NoError(t, err)
	require.Equal(t, "7R", next)
}

func TestNextAlternate_Exhausted(t *testing.T) {
	used := map[string]bool{}
	for _, letter := range AlternateLetters {
		used["3"+string(letter)] = true
	}
	_, err := NextAlternate("3", used)
	require.ErrorIs(t, err, ErrNoAlternateSlot)
}
