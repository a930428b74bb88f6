// Package project holds the top-level container of one production:
// its identity, numbering conventions and image settings. Project
// lifecycle (find-or-create against the shared store) is coordinated by
// the tracker.
package project

import (
	"time"

	"github.com/reelworks/pipetrack/internal/naming"
)

// Project is the top-level container for one production's sequences,
// shots and assets. The name is conditioned and globally unique across
// the repository root; looking a name up always yields the same logical
// project.
type Project struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Code string `json:"code"`

	// Conventions governs shot codes and revision/version strings for
	// everything inside this project.
	Conventions naming.Conventions `json:"conventions"`

	FPS    int `json:"fps"`
	Width  int `json:"width"`
	Height int `json:"height"`

	// Structure lists the folder templates created on disk for each
	// sequence ({{.Sequence.Code}} is substituted).
	Structure []string `json:"structure,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// ConditionName normalizes a raw project name. Returns
// naming.ErrInvalidName when nothing is left.
func ConditionName(raw string) (string, error) {
	return naming.Condition(raw)
}
