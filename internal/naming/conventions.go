package naming

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Conventions holds the numbering convention of a project: the prefixes
// and zero paddings used when composing shot codes and revision/version
// strings.
type Conventions struct {
	ShotPrefix  string
	ShotPadding int
	RevPrefix   string
	RevPadding  int
	VerPrefix   string
	VerPadding  int
}

// DefaultConventions mirrors the studio-wide defaults: SH001, r01, v001.
func DefaultConventions() Conventions {
	return Conventions{
		ShotPrefix:  "SH",
		ShotPadding: 3,
		RevPrefix:   "r",
		RevPadding:  2,
		VerPrefix:   "v",
		VerPadding:  3,
	}
}

// ShotCode composes the canonical shot code for a conditioned shot
// number.
//
//	{SH, 3}.ShotCode("1")   -> "SH001"
//	{SH, 3}.ShotCode("12A") -> "SH012A"
func (c Conventions) ShotCode(number string) (string, error) {
	digits, letter, err := SplitShotNumber(number)
	if err != nil {
		return "", err
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		return "", ErrInvalidShotNumber
	}
	return fmt.Sprintf("%s%0*d%s", c.ShotPrefix, c.ShotPadding, n, letter), nil
}

// RevString converts a revision number to its padded string form (r01).
func (c Conventions) RevString(n int) string {
	return fmt.Sprintf("%s%0*d", c.RevPrefix, c.RevPadding, n)
}

// VerString converts a version number to its padded string form (v001).
func (c Conventions) VerString(n int) string {
	return fmt.Sprintf("%s%0*d", c.VerPrefix, c.VerPadding, n)
}

var leadingDigits = regexp.MustCompile(`^[0-9]+`)

// ParseShotNumber recovers the shot number from a shot code, dropping
// the zero padding: "SH041A" -> "41A". The returned bool reports whether
// the code matched the convention.
func (c Conventions) ParseShotNumber(code string) (string, bool) {
	rest, found := strings.CutPrefix(code, c.ShotPrefix)
	if !found {
		return "", false
	}
	digits := leadingDigits.FindString(rest)
	if digits == "" {
		return "", false
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		return "", false
	}
	return strconv.Itoa(n) + rest[len(digits):], true
}

// ParseRevNumber converts "r01" to 1. The returned bool reports whether
// the string matched prefix plus digits exactly.
func (c Conventions) ParseRevNumber(s string) (int, bool) {
	return parseNumberString(s, c.RevPrefix)
}

// ParseVerNumber converts "v010" to 10. The returned bool reports whether
// the string matched prefix plus digits exactly.
func (c Conventions) ParseVerNumber(s string) (int, bool) {
	return parseNumberString(s, c.VerPrefix)
}

func parseNumberString(s, prefix string) (int, bool) {
	rest, found := strings.CutPrefix(s, prefix)
	if !found || rest == "" {
		return 0, false
	}
	for _, r := range rest {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(rest)
	if err != nil {
		return 0, false
	}
	return n, true
}
