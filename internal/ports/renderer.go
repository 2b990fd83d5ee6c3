package ports

import (
	"context"

	"github.com/XingWo/skyblessings-go/internal/domain"
)

// RenderOptions are per-request rendering switches.
type RenderOptions struct {
	// Stroke draws a thin gray outline behind each text run.
	Stroke bool
}

// Renderer turns a drawn blessing record into encoded PNG bytes.
type Renderer interface {
	Render(ctx context.Context, rec domain.BlessingRecord, opts RenderOptions) ([]byte, error)
}
