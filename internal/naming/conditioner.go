// Package naming implements the string conditioning rules, shot code
// composition and file name grammar shared by all tracked entities.
package naming

import (
	"regexp"
	"strings"
)

var (
	camelBoundary   = regexp.MustCompile(`([a-z])([A-Z])`)
	invalidChars    = regexp.MustCompile(`[^a-zA-Z0-9_\s]+`)
	leadingNonAlpha = regexp.MustCompile(`^[^a-zA-Z]+`)
	whitespaceRun   = regexp.MustCompile(`\s+`)
)

// Condition normalizes a project or sequence name. The rules are applied
// in a fixed order and the function is idempotent: conditioning an already
// conditioned name returns it unchanged.
//
//	"Test Project 1" -> "TEST_PROJECT_1"
//	"camelCase"      -> "CAMEL_CASE"
//	"-minus-"        -> "MINUS_"
//
// Returns ErrInvalidName if nothing is left after conditioning.
func Condition(raw string) (string, error) {
	name := conditionCommon(raw, true)
	name = strings.ToUpper(name)
	if name == "" {
		return "", ErrInvalidName
	}
	return name, nil
}

// ConditionVersionName normalizes a Version base or take name. Unlike
// Condition it keeps mixed case and instead upper-cases the first letter
// of every underscore-separated word.
//
//	"baseName"      -> "BaseName"  (no camel expansion for version names)
//	" 12 base name" -> "Base_Name"
//	"_base_name_"   -> "Base_Name"
func ConditionVersionName(raw string) (string, error) {
	name := conditionCommon(raw, false)

	words := strings.Split(name, "_")
	kept := words[:0]
	for _, word := range words {
		if word == "" {
			continue
		}
		kept = append(kept, strings.ToUpper(word[:1])+word[1:])
	}
	name = strings.Join(kept, "_")

	if name == "" {
		return "", ErrInvalidName
	}
	return name, nil
}

// conditionCommon applies the rules shared by both conditioning variants.
func conditionCommon(raw string, expandCamel bool) string {
	name := strings.TrimSpace(raw)
	name = strings.ReplaceAll(name, "-", "_")
	if expandCamel {
		name = camelBoundary.ReplaceAllString(name, "${1}_${2}")
	}
	name = invalidChars.ReplaceAllString(name, "")
	name = leadingNonAlpha.ReplaceAllString(name, "")
	name = whitespaceRun.ReplaceAllString(name, "_")
	return name
}
