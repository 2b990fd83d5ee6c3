package ports

import (
	"context"

	"github.com/XingWo/skyblessings-go/internal/domain"
)

// BlessingSource provides the static blessing table.
type BlessingSource interface {
	Table(ctx context.Context) (domain.Table, error)
}
