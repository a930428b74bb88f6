// Package shot implements shots: numbered units of footage within a
// sequence, identified by a digit run plus an optional alternate letter.
package shot

import (
	"time"

	"github.com/reelworks/pipetrack/internal/naming"
)

// Shot is one unit of footage. Number is the conditioned token ("1",
// "12A"); the display code is derived from it and the project
// conventions, never stored redundantly.
type Shot struct {
	ID         string    `json:"id"`
	SequenceID string    `json:"sequence_id"`
	Number     string    `json:"number"`
	StartFrame int       `json:"start_frame"`
	EndFrame   int       `json:"end_frame"`
	Descr      string    `json:"description,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// Duration is always derived from the current frame bounds.
func (s *Shot) Duration() int {
	return s.EndFrame - s.StartFrame + 1
}

// Code composes the canonical shot code, e.g. number "12A" with the
// default conventions yields "SH012A".
func (s *Shot) Code(conv naming.Conventions) (string, error) {
	return conv.ShotCode(s.Number)
}
