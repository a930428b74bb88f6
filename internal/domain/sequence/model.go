// Package sequence implements the named shot groupings of a project.
package sequence

import (
	"time"

	"github.com/reelworks/pipetrack/internal/naming"
)

// Sequence groups an ordered set of shots within a project.
type Sequence struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Code string `json:"code"`

	// ProjectName is the owning project, set when the sequence is
	// loaded. It is part of sequence identity, not of the stored row:
	// the store itself is scoped to one project.
	ProjectName string `json:"project_name,omitempty"`

	// NoSubNameField marks sequences whose legacy file names carry no
	// subName field. Selects the parser grammar during discovery.
	NoSubNameField bool `json:"no_sub_name_field,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// Equal reports sequence identity: same name under the same project.
func (s *Sequence) Equal(o *Sequence) bool {
	if s == nil || o == nil {
		return s == o
	}
	return s.Name == o.Name && s.ProjectName == o.ProjectName
}

// ConditionName normalizes a raw sequence name.
func ConditionName(raw string) (string, error) {
	return naming.Condition(raw)
}
