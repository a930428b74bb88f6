// Package asset implements named, typed deliverables that are not tied
// to a shot number, unless their type is shot-dependent.
package asset

import (
	"time"

	"github.com/reelworks/pipetrack/internal/naming"
)

// Asset is identified by the (BaseName, SubName, TypeName) triple within
// its project. SequenceID is empty for project-wide assets.
type Asset struct {
	ID         string    `json:"id"`
	SequenceID string    `json:"sequence_id,omitempty"`
	BaseName   string    `json:"base_name"`
	SubName    string    `json:"sub_name"`
	TypeName   string    `json:"type_name"`
	CreatedAt  time.Time `json:"created_at"`
}

// Query enumerates the exact fields discovery results can be filtered
// by. Empty fields match anything.
type Query struct {
	BaseName     string
	SubName      string
	TypeCode     string
	RevString    string
	VerString    string
	UserInitials string
	Notes        string
}

// Matches reports whether parsed file metadata satisfies every set
// field of the query.
func (q Query) Matches(md naming.Metadata) bool {
	match := func(want, got string) bool { return want == "" || want == got }
	return match(q.BaseName, md.BaseName) &&
		match(q.SubName, md.SubName) &&
		match(q.TypeCode, md.TypeCode) &&
		match(q.RevString, md.RevString) &&
		match(q.VerString, md.VerString) &&
		match(q.UserInitials, md.UserInitials) &&
		match(q.Notes, md.Notes)
}
