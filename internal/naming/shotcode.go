package naming

import (
	"regexp"
	"strings"
)

// AlternateLetters is the alphabet scanned when allocating alternate
// shots. Q is reserved and never used.
const AlternateLetters = "ABCDEFGHIJKLMNOPRSTUVWXYZ"

var (
	nonAlnum  = regexp.MustCompile(`[^0-9a-zA-Z]+`)
	shotToken = regexp.MustCompile(`^[^0-9]*([0-9]+)([a-zA-Z]?)[a-zA-Z0-9]*$`)
)

// ConditionShotNumber normalizes a raw shot number token to its canonical
// form: the leading digit run plus at most one upper-cased alternate
// letter. Garbage around the token is discarded.
//
//	"1"        -> "1"
//	"12a"      -> "12A"
//	"abc323d"  -> "323D"
func ConditionShotNumber(raw string) (string, error) {
	token := nonAlnum.ReplaceAllString(raw, "")
	m := shotToken.FindStringSubmatch(token)
	if m == nil {
		return "", ErrInvalidShotNumber
	}
	number := m[1] + strings.ToUpper(m[2])
	if strings.HasSuffix(number, "Q") {
		return "", ErrInvalidShotNumber
	}
	return number, nil
}

// SplitShotNumber splits a conditioned shot number into its digit run and
// its alternate letter (empty when the shot has no alternate).
func SplitShotNumber(number string) (digits, letter string, err error) {
	m := shotToken.FindStringSubmatch(number)
	if m == nil {
		return "", "", ErrInvalidShotNumber
	}
	return m[1], strings.ToUpper(m[2]), nil
}

// NextAlternate returns the first unused alternate number for the given
// base shot number, scanning the alternate alphabet in order. The used
// set holds conditioned shot numbers already present in the sequence.
//
//	NextAlternate("10", {"10", "10A", "10B"}) -> "10C"
//
// Returns ErrNoAlternateSlot once the alphabet is exhausted.
func NextAlternate(base string, used map[string]bool) (string, error) {
	digits, _, err := SplitShotNumber(base)
	if err != nil {
		return "", err
	}
	for _, letter := range AlternateLetters {
		candidate := digits + string(letter)
		if !used[candidate] {
			return candidate, nil
		}
	}
	return "", ErrNoAlternateSlot
}
