// Package user holds the user model. Users are defined in the studio
// configuration and persisted into each project store they create
// versions in, so legacy stores stay self-describing.
package user

import "strings"

// User identifies a person creating versions. Initials are embedded in
// rendered file names and must stay short and stable.
type User struct {
	Name     string `json:"name" yaml:"name"`
	Initials string `json:"initials" yaml:"initials"`
	Email    string `json:"email,omitempty" yaml:"email,omitempty"`
}

// Validate reports whether the user carries the fields file naming
// depends on.
func (u User) Validate() error {
	if strings.TrimSpace(u.Name) == "" {
		return ErrInvalidUser
	}
	initials := strings.TrimSpace(u.Initials)
	if initials == "" || strings.ContainsAny(initials, " \t_") {
		return ErrInvalidUser
	}
	return nil
}
