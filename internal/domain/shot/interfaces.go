package shot

import "context"

// Repository provides persistence for shots within one project store.
type Repository interface {
	Create(ctx context.Context, sh *Shot) error
	GetByNumber(ctx context.Context, sequenceID, number string) (*Shot, error)
	ListBySequence(ctx context.Context, sequenceID string) ([]Shot, error)
	UpdateFrames(ctx context.Context, id string, startFrame, endFrame int) error
}
